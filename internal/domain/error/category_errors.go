// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category does not exist or is not owned by the caller.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryName is returned when the category name is empty or too long.
	ErrInvalidCategoryName = errors.New("invalid category name")

	// ErrInvalidApplicability is returned when the category applicability is unknown.
	ErrInvalidApplicability = errors.New("invalid category applicability")

	// ErrCategoryNameExists is returned when the user already has a category with that name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryInUse is returned when deleting a category still referenced by transactions.
	ErrCategoryInUse = errors.New("category is referenced by transactions")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-KKYYYY where KK is the error kind and YYYY is the specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryName   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidApplicability  CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryInUse         CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010005"

	// Not found errors (02XXXX)
	ErrCodeCategoryNotFound CategoryErrorCode = "CAT-020001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *CategoryError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *CategoryError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *CategoryError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
