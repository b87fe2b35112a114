// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal does not exist or is not owned by the caller.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrMilestoneNotFound is returned when a milestone does not exist on the goal.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrInvalidTargetAmount is returned when the target amount is not positive.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidTransferAmount is returned when a fund transfer amount is not positive.
	ErrInvalidTransferAmount = errors.New("invalid transfer amount")

	// ErrInvalidGoalName is returned when the goal name is empty or too long.
	ErrInvalidGoalName = errors.New("invalid goal name")

	// ErrInvalidGoalStatus is returned when the goal status is unknown.
	ErrInvalidGoalStatus = errors.New("invalid goal status")

	// ErrInvalidMilestonePace is returned when the milestone pace is unknown.
	ErrInvalidMilestonePace = errors.New("invalid milestone pace")

	// ErrInvalidDateRange is returned when a history range has its start after its end.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrMilestoneGeneration is returned when milestone suggestions could not be produced.
	ErrMilestoneGeneration = errors.New("milestone generation failed")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-KKYYYY where KK is the error kind and YYYY is the specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTargetAmount   GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTransferAmount GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalName       GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalStatus     GoalErrorCode = "GOL-010004"
	ErrCodeInvalidMilestonePace  GoalErrorCode = "GOL-010005"
	ErrCodeInvalidDateRange      GoalErrorCode = "GOL-010006"
	ErrCodeMissingGoalFields     GoalErrorCode = "GOL-010007"

	// Not found errors (02XXXX)
	ErrCodeGoalNotFound       GoalErrorCode = "GOL-020001"
	ErrCodeGoalWalletNotFound GoalErrorCode = "GOL-020002"
	ErrCodeMilestoneNotFound  GoalErrorCode = "GOL-020003"

	// Insufficient funds errors (04XXXX)
	ErrCodeWalletInsufficientFunds GoalErrorCode = "GOL-040001"
	ErrCodeGoalInsufficientFunds   GoalErrorCode = "GOL-040002"

	// External service errors (05XXXX)
	ErrCodeMilestoneGeneration GoalErrorCode = "GOL-050001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *GoalError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *GoalError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *GoalError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
