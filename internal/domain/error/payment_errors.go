package error

import "errors"

// Payment orchestration domain errors.
var (
	// ErrInsufficientBalance is returned when a payment exceeds the budget's
	// available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientSenderTotal is returned when a transfer exceeds the
	// sender's current total.
	ErrInsufficientSenderTotal = errors.New("insufficient balance in sender account")

	// ErrTooFewTransactions is returned when consolidating a recipient with
	// one or zero transactions.
	ErrTooFewTransactions = errors.New("recipient must have more than one transaction to consolidate")

	// ErrNoActiveBudget is returned when an operation requires a budget
	// context and none is active.
	ErrNoActiveBudget = errors.New("no active budget found")

	// ErrMissingNewRecipientName is returned when a transfer targets a new
	// recipient but no name was supplied.
	ErrMissingNewRecipientName = errors.New("new recipient name is required")

	// ErrStorage is what unexpected storage failures normalize to at the
	// orchestrator boundary.
	ErrStorage = errors.New("storage operation failed")

	// ErrPartialFailure is returned when a multi-step operation succeeded
	// partway and could not be rolled back.
	ErrPartialFailure = errors.New("operation partially applied")
)

// PaymentErrorCode defines error codes for payment orchestration errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInsufficientBalance     PaymentErrorCode = "PAY-010001"
	ErrCodeInsufficientSenderTotal PaymentErrorCode = "PAY-010002"
	ErrCodeTooFewTransactions      PaymentErrorCode = "PAY-010003"
	ErrCodeMissingNewRecipientName PaymentErrorCode = "PAY-010004"

	// Context errors (02XXXX)
	ErrCodeNoActiveBudget PaymentErrorCode = "PAY-020001"

	// Storage errors (03XXXX)
	ErrCodeStorage        PaymentErrorCode = "PAY-030001"
	ErrCodePartialFailure PaymentErrorCode = "PAY-030002"
)

// PaymentError represents a payment orchestration error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
