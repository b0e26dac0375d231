package pjrt

import (
	"errors"
	"fmt"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// ErrorKind discriminates the situations pjrt can fail in. A single error
// type carries the kind rather than one Go error type per failure mode,
// matching the taxonomy the wrapped C ABI itself exposes: every failure
// arrives as one PJRT_Error plus a message string.
type ErrorKind int

const (
	// PluginLoadError: dlopen/dlsym failed, or the plugin reports an API
	// version other than the one this wrapper was built against.
	PluginLoadError ErrorKind = iota
	// PluginAPIError: the plugin returned a non-null PJRT_Error from an
	// otherwise well-formed call.
	PluginAPIError
	// InvalidArgument: the caller passed something the wrapper rejects
	// before ever reaching the plugin (no plugin path, device index out of
	// range, ...).
	InvalidArgument
	// StateError: an operation was attempted in the wrong lifecycle state
	// (closed executable, already-read Future, Context with open
	// dependents). Use of a moved-from handle panics instead.
	StateError
)

func (k ErrorKind) String() string {
	switch k {
	case PluginLoadError:
		return "PluginLoadError"
	case PluginAPIError:
		return "PluginAPIError"
	case InvalidArgument:
		return "InvalidArgument"
	case StateError:
		return "StateError"
	default:
		return "UnknownError"
	}
}

// Error is the one error type this package returns. Op identifies the
// operation that failed; Err is the underlying cause (often a
// *pjrtabi.CallError) and is reachable via errors.Unwrap/errors.As.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s failed. Error: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// wrapCall converts an error from pjrtabi into a *Error: a
// *pjrtabi.CallError gets the PluginAPIError kind, any other error (e.g.
// a dlopen/dlsym failure) the PluginLoadError kind. Returns nil when err
// is nil.
func wrapCall(op string, err error) error {
	if err == nil {
		return nil
	}
	var callErr *pjrtabi.CallError
	if errors.As(err, &callErr) {
		return newError(PluginAPIError, op, callErr)
	}
	return newError(PluginLoadError, op, err)
}

func invalidArgument(op, reason string) error {
	return newError(InvalidArgument, op, errors.New(reason))
}

func stateError(op, reason string) error {
	return newError(StateError, op, errors.New(reason))
}
