package uri

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
)

// Error represents a URI error.
// See [errorutil.Error].
type Error = errorutil.Error

const (
	// ErrMalformedURI is matched by every [ParseError].
	ErrMalformedURI = grammar.ErrMalformedInput
	// ErrInvalidComponent is matched by every [ComponentError].
	ErrInvalidComponent Error = "invalid URI component"
	// ErrInvalidPort is matched by every [PortError].
	ErrInvalidPort Error = "invalid port"
)

// Component identifies a URI component.
type Component uint8

const (
	ComponentScheme Component = iota + 1
	ComponentUserInfo
	ComponentHost
	ComponentPort
	ComponentPath
	ComponentQuery
	ComponentFragment
)

var componentNames = [...]string{
	ComponentScheme:   "scheme",
	ComponentUserInfo: "userinfo",
	ComponentHost:     "host",
	ComponentPort:     "port",
	ComponentPath:     "path",
	ComponentQuery:    "query",
	ComponentFragment: "fragment",
}

func (c Component) String() string {
	if int(c) < len(componentNames) && componentNames[c] != "" {
		return componentNames[c]
	}
	return "component(" + strconv.Itoa(int(c)) + ")"
}

// ParseError is returned by [Parse] when the input is not a valid URI reference.
// It wraps the component level cause, which is a [*ComponentError] or a [*PortError].
type ParseError struct {
	Component Component
	Input     string
	Pos       int // byte offset of the failed component in Input
	Err       error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parse URI %q: %s at offset %d: %v", e.Input, e.Component, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{ErrMalformedURI, e.Err}
}

// ComponentError reports a value that violates a component grammar.
type ComponentError struct {
	Component Component
	Value     string
	Reason    string
}

func (e *ComponentError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s %q: %s", ErrInvalidComponent, e.Component, e.Value, e.Reason)
}

func (e *ComponentError) Unwrap() error { return ErrInvalidComponent }

// PortError reports a port number out of the 1-65535 range.
type PortError struct {
	Value int
}

func (e *PortError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %d: out of range [%d, %d]", ErrInvalidPort, e.Value, minPort, maxPort)
}

func (e *PortError) Unwrap() error { return ErrInvalidPort }

const (
	minPort = 1
	maxPort = 65535
)

func newComponentErr(c Component, v, reason string) error {
	return &ComponentError{Component: c, Value: v, Reason: reason} //errtrace:skip
}

func newCTLErr(c Component, v string) error {
	reason := fmt.Sprintf("control character at offset %d", grammar.IndexCTL(v))
	return newComponentErr(c, v, reason) //errtrace:skip
}
