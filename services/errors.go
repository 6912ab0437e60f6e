// Package services holds the storefront's business rules: registration and
// sessions, catalog maintenance and cart mutation. Handlers translate the
// typed errors returned here into HTTP responses.
package services

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
)

// Error carries a client-safe message alongside its kind and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func authError(msg string, cause error) error {
	return &Error{Kind: ErrAuth, Message: msg, Err: cause}
}

func notFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func upstreamError(msg string, cause error) error {
	return &Error{Kind: ErrUpstream, Message: msg, Err: cause}
}

// Message returns the client-safe message of err, or "" if err is not an *Error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
