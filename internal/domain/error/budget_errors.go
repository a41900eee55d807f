// Package error defines domain-specific errors for the payment mindmap ledger.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget referenced by id does not exist.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetNameExists is returned when creating a budget whose name already
	// exists (case-insensitive, trimmed).
	ErrBudgetNameExists = errors.New("a budget with this name already exists")

	// ErrNegativeInitialPayment is returned when an initial payment amount is negative.
	ErrNegativeInitialPayment = errors.New("initial payment cannot be negative")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNameExists       BudgetErrorCode = "BDG-010001"
	ErrCodeNegativeInitialPayment BudgetErrorCode = "BDG-010002"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BDG-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
