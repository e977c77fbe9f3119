package apperrors

import (
	"errors"
)

// appError implements the apperrors.Error interface. It provides a concrete
// implementation with support for error wrapping, status codes, and kinds.
type appError struct {
	msg           string  // primary error message
	base          error   // base error for errors.Is/As compatibility
	wrappedErrors []error // additional wrapped errors
	statuscode    int     // HTTP status code
	kind          Kind    // outcome classification
}

// Error returns the error message.
func (e *appError) Error() string {
	return e.msg
}

// Unwrap returns the base error for compatibility with errors.Is / errors.As.
func (e *appError) Unwrap() error {
	return e.base
}

// UnwrapAll returns all wrapped errors in the order they were added.
func (e *appError) UnwrapAll() []error {
	return e.wrappedErrors
}

// Msg creates a new error with a new message and wraps the original error.
// The new error inherits the status code and kind from the original.
func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:           msg,
		base:          e,
		wrappedErrors: append([]error{e}, e.wrappedErrors...),
		statuscode:    e.statuscode,
		kind:          e.kind,
	}
}

// New creates a fresh error using the current error as a template.
// The new error inherits the status code and kind but starts with a new message.
func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		base:       e,
		statuscode: e.statuscode,
		kind:       e.kind,
	}
}

// MsgErr creates a new error with a message and wraps additional errors.
// The new error inherits the status code and kind from the original.
func (e *appError) MsgErr(msg string, errs ...error) Error {
	all := append([]error{e}, errs...)
	return &appError{
		msg:           msg,
		base:          e,
		wrappedErrors: all,
		statuscode:    e.statuscode,
		kind:          e.kind,
	}
}

// Err creates a new error by attaching additional errors to the current error.
// The new error maintains the original message, status code, and kind.
func (e *appError) Err(errs ...error) Error {
	all := append([]error{e}, errs...)
	return &appError{
		msg:           e.msg,
		base:          e,
		wrappedErrors: all,
		statuscode:    e.statuscode,
		kind:          e.kind,
	}
}

// SetStatusCode returns a shallow copy with an updated status code.
// If no kind has been set, the kind is derived from the status code.
// The original error remains unchanged.
func (e *appError) SetStatusCode(code int) Error {
	cp := *e
	cp.statuscode = code
	if cp.kind == KindUnknown {
		cp.kind = KindFromStatus(code)
	}
	return &cp
}

// StatusCode returns the current HTTP status code.
func (e *appError) StatusCode() int {
	return e.statuscode
}

// SetKind returns a shallow copy with an updated kind.
// The original error remains unchanged.
func (e *appError) SetKind(k Kind) Error {
	cp := *e
	cp.kind = k
	return &cp
}

// Kind returns the current error kind.
func (e *appError) Kind() Kind {
	return e.kind
}

// New creates a root-level appError with the given message.
// This is the entry point for creating new errors.
func New(msg string) Error {
	return &appError{
		msg: msg,
	}
}

// Is checks if the error is equal to the target error by checking
// both the base error and all wrapped errors.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.wrappedErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
