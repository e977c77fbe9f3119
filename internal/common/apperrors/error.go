// Package apperrors provides the error handling system used across the client.
// It implements the standard error interface while adding error chaining, an
// HTTP status code, and an error kind that classifies failures the way the
// booking service reports them.
package apperrors

// Kind classifies an error into one of the outcome categories the caller is
// expected to act on. The zero value means the error has not been classified.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindServer
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// KindFromStatus maps an HTTP status code to an error kind.
// Transport-level failures carry no status code and map to KindServer.
func KindFromStatus(status int) Kind {
	switch {
	case status == 400:
		return KindValidation
	case status == 401 || status == 403:
		return KindUnauthorized
	case status == 404:
		return KindNotFound
	case status == 409:
		return KindConflict
	case status >= 500 || status == 0:
		return KindServer
	default:
		return KindUnknown
	}
}

// Error defines the interface for application errors. It extends the standard
// error interface with methods for error wrapping, status code management,
// and kind classification. All methods return Error to support chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetStatusCode(int) Error               // sets HTTP status code for the error
	StatusCode() int                       // returns the current status code
	SetKind(Kind) Error                    // sets the error kind
	Kind() Kind                            // returns the error kind
	UnwrapAll() []error                    // returns all wrapped errors
}

// GetKind returns the kind of err if it is an apperrors.Error anywhere in its
// chain, or KindUnknown otherwise.
func GetKind(err error) Kind {
	for err != nil {
		if ae, ok := err.(Error); ok {
			return ae.Kind()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindUnknown
		}
		err = u.Unwrap()
	}
	return KindUnknown
}
