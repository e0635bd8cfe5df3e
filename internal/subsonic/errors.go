package subsonic

import (
	"errors"
	"fmt"
)

// Decode failure sentinels. Callers classify with errors.Is.
var (
	// ErrMissingField indicates a wire record lacks a field the entity requires
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch indicates a wire value's shape does not match its field
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrAmbiguousEnvelope indicates a reply populated more than one top-level slot
	ErrAmbiguousEnvelope = errors.New("ambiguous response envelope")
)

// DecodeError is a hard decode failure. It names the entity and the wire
// field that failed and unwraps to one of the sentinels above.
type DecodeError struct {
	Entity string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode %s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("decode %s: field %q: %v", e.Entity, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ServerError is a failed reply: the server answered, but with the
// envelope's error slot populated instead of a payload.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}
