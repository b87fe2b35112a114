// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Wallet domain errors.
var (
	// ErrWalletNotFound is returned when a wallet does not exist or is not owned by the caller.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidWalletCategory is returned when the wallet category is unknown.
	ErrInvalidWalletCategory = errors.New("invalid wallet category")

	// ErrInvalidWalletName is returned when the wallet name is empty or too long.
	ErrInvalidWalletName = errors.New("invalid wallet name")

	// ErrInvalidInitialBalance is returned when the initial balance is negative.
	ErrInvalidInitialBalance = errors.New("invalid initial balance")
)

// WalletErrorCode defines error codes for wallet errors.
// Format: WAL-KKYYYY where KK is the error kind and YYYY is the specific error.
type WalletErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWalletCategory WalletErrorCode = "WAL-010001"
	ErrCodeInvalidWalletName     WalletErrorCode = "WAL-010002"
	ErrCodeInvalidInitialBalance WalletErrorCode = "WAL-010003"
	ErrCodeMissingWalletFields   WalletErrorCode = "WAL-010004"

	// Not found errors (02XXXX)
	ErrCodeWalletNotFound WalletErrorCode = "WAL-020001"
)

// WalletError represents a wallet error with code and message.
type WalletError struct {
	Code    WalletErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *WalletError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *WalletError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *WalletError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *WalletError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *WalletError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewWalletError creates a new WalletError with the given code and message.
func NewWalletError(code WalletErrorCode, message string, err error) *WalletError {
	return &WalletError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
