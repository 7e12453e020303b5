// Package simerr defines the error kinds robot and arena operations
// raise across the RPC boundary: SimulationEnded, InvalidArgument,
// OrderViolation and ConfigError. These are never recovered inside the
// simulator itself; the transport layer turns them into a fault for the
// calling robot program.
package simerr

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	SimulationEnded Kind = iota
	InvalidArgument
	OrderViolation
	ConfigError
)

func (k Kind) String() string {
	switch k {
	case SimulationEnded:
		return "simulation ended"
	case InvalidArgument:
		return "invalid argument"
	case OrderViolation:
		return "order violation"
	case ConfigError:
		return "config error"
	default:
		return "unknown error"
	}
}

// Error pairs a Kind with the operation name and a human-readable
// message, the way a transport fault needs to be reported.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// New builds an *Error for op with the given kind and message.
func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// KindOf extracts the Kind from err, if it is (or wraps) a *simerr.Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
