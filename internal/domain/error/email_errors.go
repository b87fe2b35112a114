package error

import "errors"

var (
	// ErrEmailQueueFailed is returned when a notification cannot be stored in the queue.
	ErrEmailQueueFailed = errors.New("failed to queue email")

	// ErrInvalidTemplate is returned for a queued job whose template is unknown.
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrTemplateRenderFailed is returned when a known template fails to execute.
	ErrTemplateRenderFailed = errors.New("failed to render email template")

	// ErrPermanentEmailFailure marks a provider rejection that retrying cannot fix.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure marks a provider failure worth retrying.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode defines error codes for notification email errors.
type EmailErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTemplate EmailErrorCode = "EML-010001"

	// External service errors (05XXXX)
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-050001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-050002"

	// Internal errors (09XXXX)
	ErrCodeEmailQueueFailed     EmailErrorCode = "EML-090001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EML-090002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *EmailError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the user-facing message.
func (e *EmailError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *EmailError) Kind() Kind { return kindFromCode(string(e.Code)) }

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
