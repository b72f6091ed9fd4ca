// Package errorutil provides error primitives shared by the module packages.
package errorutil

import (
	"errors"
	"fmt"
)

// Error is a constant sentinel error.
type Error string

func (s Error) Error() string { return string(s) }

// ErrInvalidArgument marks errors caused by bad caller input like flags or options.
const ErrInvalidArgument Error = "invalid argument"

type wrapperError struct {
	sentinel error
	msg      string
	cause    error
}

func (e *wrapperError) Error() string {
	switch {
	case e.cause != nil:
		return e.sentinel.Error() + ": " + e.cause.Error()
	default:
		return e.sentinel.Error() + ": " + e.msg
	}
}

func (e *wrapperError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.sentinel, e.cause}
	}
	return []error{e.sentinel}
}

// NewWrapperError ties an error to sentinel, so errors.Is(err, sentinel) holds.
//
// args[0] may be an error to wrap, or a message format followed by its arguments.
// Without args the sentinel itself is returned. An error already matching sentinel is
// returned as is.
func NewWrapperError(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		return &wrapperError{sentinel: sentinel, cause: v} //errtrace:skip
	case string:
		msg := v
		if len(args) > 1 {
			msg = fmt.Sprintf(v, args[1:]...)
		}
		return &wrapperError{sentinel: sentinel, msg: msg} //errtrace:skip
	default:
		return sentinel //errtrace:skip
	}
}

// NewInvalidArgumentError wraps args with [ErrInvalidArgument], see [NewWrapperError].
func NewInvalidArgumentError(args ...any) error {
	return NewWrapperError(ErrInvalidArgument, args...) //errtrace:skip
}
