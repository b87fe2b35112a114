// Package error defines domain-specific errors for the ledger service.
package error

import (
	"errors"
	"fmt"
)

// Kind classifies domain errors independently of the feature that raised them.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindExternalService   Kind = "external_service"
	KindInternal          Kind = "internal"
)

// Error codes follow the format PFX-KKYYYY where KK selects the kind.
var kindsByCategory = map[string]Kind{
	"01": KindValidation,
	"02": KindNotFound,
	"03": KindUnauthorized,
	"04": KindInsufficientFunds,
	"05": KindExternalService,
	"09": KindInternal,
}

// kindFromCode extracts the kind from a PFX-KKYYYY code.
func kindFromCode(code string) Kind {
	for i := 0; i < len(code); i++ {
		if code[i] == '-' && i+3 <= len(code) {
			if kind, ok := kindsByCategory[code[i+1:i+3]]; ok {
				return kind
			}
			break
		}
	}
	return KindInternal
}

// CodedError is implemented by every domain error surfaced to API callers.
type CodedError interface {
	error
	ErrorCode() string
	ErrorMessage() string
	Kind() Kind
}

// KindOf returns the kind of the first coded error in err's chain.
func KindOf(err error) Kind {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Kind()
	}
	return KindInternal
}

// ErrInsufficientFunds is matched by every InsufficientFundsError.
var ErrInsufficientFunds = errors.New("insufficient funds")

// InsufficientFundsError reports a transfer larger than the available balance.
type InsufficientFundsError struct {
	Available int64
	Requested int64
}

// Error implements the error interface.
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %d, requested %d", e.Available, e.Requested)
}

// Is lets errors.Is match ErrInsufficientFunds.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
