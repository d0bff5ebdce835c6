package listenable

import (
	"errors"
	"fmt"
)

// Kind identifies a class of problem raised by a Listenable.
type Kind string

// Policy-gated kinds. Their handling is decided by the shared Policy.
const (
	KindValidationInvalid      Kind = "validation-invalid"
	KindUndocumentedProperty   Kind = "undocumented-property"
	KindSameObjectReassignment Kind = "same-object-reassignment"
	KindListenerRemoveMismatch Kind = "listener-remove-mismatch"
)

// Always-fatal kinds. They are returned regardless of the configured mode.
const (
	KindMalformedSetInput            Kind = "malformed-set-input"
	KindResetMissingInitialState     Kind = "reset-missing-initial-state"
	KindResetMissingPropInitialState Kind = "reset-missing-prop-initial-state"
	KindDuplicateConfigAssignment    Kind = "duplicate-config-assignment"
	KindDispatchDepthExceeded        Kind = "dispatch-depth-exceeded"
)

var (
	ErrValidationInvalid            = errors.New("value rejected by validator")
	ErrUndocumentedProperty         = errors.New("property has no validator")
	ErrSameObjectReassignment       = errors.New("object re-set to the value already present")
	ErrListenerRemoveMismatch       = errors.New("listener removal did not match exactly one entry")
	ErrMalformedSetInput            = errors.New("malformed set input")
	ErrResetMissingInitialState     = errors.New("initial state was not provided")
	ErrResetMissingPropInitialState = errors.New("property has no initial state")
	ErrDuplicateConfigAssignment    = errors.New("config was set on multiple listenables")
	ErrDispatchDepthExceeded        = errors.New("listener dispatch depth exceeded")

	// ErrInvalidMode is returned when a Modes value holds an unknown mode.
	ErrInvalidMode = errors.New("invalid error mode")
)

var kindErrors = map[Kind]error{
	KindValidationInvalid:            ErrValidationInvalid,
	KindUndocumentedProperty:         ErrUndocumentedProperty,
	KindSameObjectReassignment:       ErrSameObjectReassignment,
	KindListenerRemoveMismatch:       ErrListenerRemoveMismatch,
	KindMalformedSetInput:            ErrMalformedSetInput,
	KindResetMissingInitialState:     ErrResetMissingInitialState,
	KindResetMissingPropInitialState: ErrResetMissingPropInitialState,
	KindDuplicateConfigAssignment:    ErrDuplicateConfigAssignment,
	KindDispatchDepthExceeded:        ErrDispatchDepthExceeded,
}

// Fatal reports whether problems of this kind always abort the operation.
func (k Kind) Fatal() bool {
	switch k {
	case KindValidationInvalid, KindUndocumentedProperty, KindSameObjectReassignment, KindListenerRemoveMismatch:
		return false
	default:
		return true
	}
}

// Error describes a problem raised by a Listenable operation.
// It unwraps to the sentinel error of its Kind.
type Error struct {
	Kind     Kind
	Property string // empty when the problem is not tied to a property
	Value    any
	Msg      string
}

func (e *Error) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("listenable: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("listenable: %s: property %q: %s", e.Kind, e.Property, e.Msg)
}

func (e *Error) Unwrap() error {
	return kindErrors[e.Kind]
}

func newError(kind Kind, prop string, value any, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Property: prop,
		Value:    value,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// IsKind reports whether err is a listenable *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of a listenable error, or "" for other errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
