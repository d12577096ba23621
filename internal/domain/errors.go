package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable machine-readable error category exposed to clients.
type ErrorKind string

const (
	KindInvalidInput    ErrorKind = "invalid_input"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindRateLimited     ErrorKind = "rate_limited"
	KindUpstream        ErrorKind = "upstream_error"
	KindInternal        ErrorKind = "internal_error"
)

// Error carries an ErrorKind alongside a human-readable message. Wrapped
// causes are kept for diagnostics but never exposed in the message.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func InvalidInput(message string) *Error {
	return NewError(KindInvalidInput, message)
}

func Unauthenticated(message string) *Error {
	return NewError(KindUnauthenticated, message)
}

func Forbidden(message string) *Error {
	return NewError(KindForbidden, message)
}

func NotFoundError(message string) *Error {
	return NewError(KindNotFound, message)
}

func Conflict(message string) *Error {
	return NewError(KindConflict, message)
}

func RateLimited(message string) *Error {
	return NewError(KindRateLimited, message)
}

// UpstreamError wraps a failed external call (store, identity provider,
// completion service). The cause is captured for logs, not for clients.
func UpstreamError(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func InternalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: "unexpected internal error", Err: err}
}

// KindOf extracts the ErrorKind from err, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf extracts the client-facing message from err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "unexpected internal error"
}

// ErrNoRows is returned by repositories when a lookup matches nothing.
// Services translate it into a NotFound error with context.
var ErrNoRows = errors.New("no rows in result set")
