package error

import "errors"

// Recipient domain errors.
var (
	// ErrRecipientNotFound is returned when a recipient referenced by id does not exist.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrRecipientNameExists is returned when a recipient name already exists
	// within the budget (case-insensitive).
	ErrRecipientNameExists = errors.New("recipient already exists in this budget")
)

// RecipientErrorCode defines error codes for recipient errors.
// Format: RCP-XXYYYY where XX is category and YYYY is specific error.
type RecipientErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRecipientNameExists RecipientErrorCode = "RCP-010001"

	// Lookup errors (02XXXX)
	ErrCodeRecipientNotFound RecipientErrorCode = "RCP-020001"
)

// RecipientError represents a recipient error with code and message.
type RecipientError struct {
	Code    RecipientErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecipientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecipientError) Unwrap() error {
	return e.Err
}

// NewRecipientError creates a new RecipientError with the given code and message.
func NewRecipientError(code RecipientErrorCode, message string, err error) *RecipientError {
	return &RecipientError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
