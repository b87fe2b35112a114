// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Scenario calculator errors.
var (
	// ErrInvalidScenarioAmount is returned when an income, expense or savings amount is negative.
	ErrInvalidScenarioAmount = errors.New("invalid scenario amount")

	// ErrInvalidScenarioRate is returned when a rate or percentage change is out of range.
	ErrInvalidScenarioRate = errors.New("invalid scenario rate")

	// ErrInvalidHorizon is returned when a projection horizon is out of range.
	ErrInvalidHorizon = errors.New("invalid projection horizon")
)

// ScenarioErrorCode defines error codes for scenario errors.
// Format: SCN-KKYYYY where KK is the error kind and YYYY is the specific error.
type ScenarioErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidScenarioAmount ScenarioErrorCode = "SCN-010001"
	ErrCodeInvalidScenarioRate   ScenarioErrorCode = "SCN-010002"
	ErrCodeInvalidHorizon        ScenarioErrorCode = "SCN-010003"
)

// ScenarioError represents a scenario error with code and message.
type ScenarioError struct {
	Code    ScenarioErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScenarioError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScenarioError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *ScenarioError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *ScenarioError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *ScenarioError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewScenarioError creates a new ScenarioError with the given code and message.
func NewScenarioError(code ScenarioErrorCode, message string, err error) *ScenarioError {
	return &ScenarioError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
