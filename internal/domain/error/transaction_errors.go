// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist or is not owned by the caller.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionName is returned when the transaction name is empty or too long.
	ErrInvalidTransactionName = errors.New("invalid transaction name")

	// ErrInvalidFrequency is returned when a frequency is unknown or missing on a recurring transaction.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrCategoryNotOwnedByUser is returned when the category does not belong to the caller.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrWalletNotOwnedByUser is returned when the wallet does not belong to the caller.
	ErrWalletNotOwnedByUser = errors.New("wallet does not belong to user")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrInvalidTransactionDateRange is returned when a listing filter has its start after its end.
	ErrInvalidTransactionDateRange = errors.New("invalid date range")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-KKYYYY where KK is the error kind and YYYY is the specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionName   TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidFrequency         TransactionErrorCode = "TXN-010004"
	ErrCodeTxnCategoryNotOwned      TransactionErrorCode = "TXN-010005"
	ErrCodeTxnWalletNotOwned        TransactionErrorCode = "TXN-010006"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010007"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010008"
	ErrCodeInvalidTxnDateRange      TransactionErrorCode = "TXN-010009"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *TransactionError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *TransactionError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *TransactionError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
