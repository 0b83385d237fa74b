package multiconn

import (
	"errors"
	"fmt"
)

// Category sentinels for errors.Is checks. The concrete error types below
// carry the backend/name context and match their sentinel through Is.
var (
	// ErrNotCompiledIn is reported when a config names a backend whose
	// support was excluded at build time.
	ErrNotCompiledIn = errors.New("backend support not compiled in")

	// ErrUnknownConnection is reported when no config was registered under
	// the requested name.
	ErrUnknownConnection = errors.New("unknown connection name")

	// ErrWrongBackend is reported when the name exists but was registered
	// under a different backend than the accessor asked for.
	ErrWrongBackend = errors.New("connection registered for a different backend")
)

// BuildError means a pool could not be constructed from a config. It is
// fatal to the whole NewRegistry call; no partial registry survives it.
type BuildError struct {
	Backend Backend
	Name    string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building %s pool for connection %q: %v", e.Backend, e.Name, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// UnknownConnectionError means a lookup by a name absent from the
// registry. Recoverable by fixing configuration; never retried here.
type UnknownConnectionError struct {
	Backend Backend // the backend the caller asked for
	Name    string
}

func (e *UnknownConnectionError) Error() string {
	return fmt.Sprintf("no %s connection named %q", e.Backend, e.Name)
}

func (e *UnknownConnectionError) Is(target error) bool { return target == ErrUnknownConnection }

// WrongBackendError means the name is registered, but under a different
// backend than the accessor requested. A caller logic error; surfaced,
// not retried.
type WrongBackendError struct {
	Backend    Backend // requested
	Registered Backend // what the name actually holds
	Name       string
}

func (e *WrongBackendError) Error() string {
	return fmt.Sprintf("connection %q is registered as %s, not %s", e.Name, e.Registered, e.Backend)
}

func (e *WrongBackendError) Is(target error) bool { return target == ErrWrongBackend }

// CheckoutError means the underlying pool could not produce a connection
// (exhaustion, broken connections, driver timeout). Whether to retry is
// the caller's call.
type CheckoutError struct {
	Backend Backend
	Name    string
	Err     error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("acquiring %s connection %q: %v", e.Backend, e.Name, e.Err)
}

func (e *CheckoutError) Unwrap() error { return e.Err }
