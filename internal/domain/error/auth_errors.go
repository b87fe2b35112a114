// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Authentication errors.
var (
	// ErrInvalidToken is returned when an access token cannot be validated.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingToken is returned when no access token was presented.
	ErrMissingToken = errors.New("missing token")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-KKYYYY where KK is the error kind and YYYY is the specific error.
type AuthErrorCode string

const (
	// Unauthorized errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030002"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *AuthError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *AuthError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *AuthError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
