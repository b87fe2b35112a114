// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Recurring processing errors.
var (
	// ErrTemplateNotFound is returned when a due template vanished before processing.
	ErrTemplateNotFound = errors.New("recurring template not found")

	// ErrRunInProgress is returned when another scheduler run holds the lock.
	ErrRunInProgress = errors.New("recurring run already in progress")

	// ErrRateLimited is returned when on-demand processing is requested too often.
	ErrRateLimited = errors.New("too many requests")
)

// RecurringErrorCode defines error codes for recurring processing errors.
// Format: REC-KKYYYY where KK is the error kind and YYYY is the specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRunInProgress RecurringErrorCode = "REC-010001"
	ErrCodeRateLimited   RecurringErrorCode = "REC-010002"

	// Not found errors (02XXXX)
	ErrCodeTemplateNotFound RecurringErrorCode = "REC-020001"
)

// RecurringError represents a recurring processing error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *RecurringError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *RecurringError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *RecurringError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
