package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies adapter failures. The kind decides how the resolution
// layer reacts: unreachable failures degrade to fallback data on read paths,
// everything else surfaces to the caller.
type ErrorKind string

const (
	// KindUnreachable covers transport failures: network errors, timeouts,
	// and upstream 5xx responses.
	KindUnreachable ErrorKind = "unreachable"
	// KindNotFound means the upstream answered and knows nothing about the
	// requested id.
	KindNotFound ErrorKind = "not_found"
	// KindInvalidQuery means the request itself was rejected: malformed id,
	// bad credentials, or an operation the provider does not support.
	KindInvalidQuery ErrorKind = "invalid_query"
	// KindNormalization means the upstream payload arrived but could not be
	// converted into a valid record.
	KindNormalization ErrorKind = "normalization"
)

// Error is the typed failure every adapter returns. Provider names the
// adapter, Err carries the underlying cause when one exists.
type Error struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Provider, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a typed adapter error.
func NewError(providerName string, kind ErrorKind, message string, err error) *Error {
	return &Error{Provider: providerName, Kind: kind, Message: message, Err: err}
}

// KindOf extracts the error kind, or "" when err is not an adapter error.
func KindOf(err error) ErrorKind {
	if e, ok := asError(err); ok {
		return e.Kind
	}
	return ""
}

// IsUnreachable reports whether err is a transport-level adapter failure.
func IsUnreachable(err error) bool { return KindOf(err) == KindUnreachable }

// IsNotFound reports whether err is an upstream unknown-id answer.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidQuery reports whether err is an upstream request rejection.
func IsInvalidQuery(err error) bool { return KindOf(err) == KindInvalidQuery }

// IsNormalization reports whether err is a payload conversion failure.
func IsNormalization(err error) bool { return KindOf(err) == KindNormalization }

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
