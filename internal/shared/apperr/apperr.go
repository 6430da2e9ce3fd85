package apperr

import "fmt"

// Kind classifies a failure for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindValidation
	KindDispatchFailure
)

// Error is a classified application error. Handlers funnel every failure
// through this type so each endpoint surfaces the same error shape.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated reports a request with no valid session.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Code: "unauthenticated", Message: message}
}

// Unauthorized reports a valid session acting on a resource it does not own.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: "unauthorized", Message: message}
}

// NotFound reports a resource that does not exist.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: message}
}

// Validation reports malformed input with optional field-level details.
func Validation(message string, details any) *Error {
	return &Error{Kind: KindValidation, Code: "validation_error", Message: message, Details: details}
}

// Dispatch reports a task queue that rejected or failed to accept a task.
func Dispatch(err error) *Error {
	return &Error{Kind: KindDispatchFailure, Code: "dispatch_failure", Message: "failed to dispatch analysis task", Err: err}
}

// Internal wraps an unclassified failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal_error", Message: message, Err: err}
}
