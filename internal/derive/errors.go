package derive

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrorCode categorizes derivation failures.
type ErrorCode string

const (
	// ErrCodeUnsupportedKind indicates a type kind the deriver cannot
	// enumerate (floats, strings, slices, maps, channels, functions).
	ErrCodeUnsupportedKind ErrorCode = "UNSUPPORTED_KIND"

	// ErrCodeUnexportedField indicates a struct field reflection cannot set.
	ErrCodeUnexportedField ErrorCode = "UNEXPORTED_FIELD"

	// ErrCodeUnregisteredInterface indicates an interface with no variant
	// registration.
	ErrCodeUnregisteredInterface ErrorCode = "UNREGISTERED_INTERFACE"

	// ErrCodeCyclicType indicates a type that (transitively) contains
	// itself; such a shape would have no finite description.
	ErrCodeCyclicType ErrorCode = "CYCLIC_TYPE"

	// ErrCodeBadRegistration indicates a RegisterVariants call whose
	// arguments do not line up (non-interface target, non-implementing
	// variant).
	ErrCodeBadRegistration ErrorCode = "BAD_REGISTRATION"
)

// Error is a structured derivation error.
type Error struct {
	Code ErrorCode

	// Type is the Go type being derived when the failure occurred.
	Type reflect.Type

	// Field names the offending struct field, if any.
	Field string

	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (type=%s, field=%s)", e.Code, e.Message, e.Type, e.Field)
	}
	if e.Type != nil {
		return fmt.Sprintf("%s: %s (type=%s)", e.Code, e.Message, e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupported reports whether err is a derivation failure for an
// unsupported kind. Uses errors.As to handle wrapped errors.
func IsUnsupported(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == ErrCodeUnsupportedKind
}
