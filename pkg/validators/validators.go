package validators

import (
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/listenkit/pkg/listenable"
)

// Any accepts every value.
func Any(any, *listenable.Listenable, string) bool { return true }

// Final accepts values only while l is being constructed, which makes the
// initial value of a property permanent.
func Final(_ any, l *listenable.Listenable, _ string) bool {
	return l != nil && !l.Initialized()
}

// Bool accepts bool values.
func Bool(v any, _ *listenable.Listenable, _ string) bool {
	_, ok := v.(bool)
	return ok
}

// String accepts any string, the empty one included.
func String(v any, _ *listenable.Listenable, _ string) bool {
	_, ok := v.(string)
	return ok
}

// NonEmptyString accepts strings with at least one byte.
func NonEmptyString(v any, _ *listenable.Listenable, _ string) bool {
	s, ok := v.(string)
	return ok && s != ""
}

// Number accepts any Go integer, unsigned or floating point value.
func Number(v any, _ *listenable.Listenable, _ string) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Integer accepts integer kinds and floats without a fractional part.
func Integer(v any, _ *listenable.Listenable, _ string) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == float64(int64(f))
	}
	return false
}

// ParsableInteger accepts strings holding a base-10 integer.
func ParsableInteger(v any, _ *listenable.Listenable, _ string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// ParsableFloat accepts strings holding a floating point number.
func ParsableFloat(v any, _ *listenable.Listenable, _ string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// Func accepts non-nil and typed nil funcs alike.
func Func(v any, _ *listenable.Listenable, _ string) bool {
	return kindOf(v) == reflect.Func
}

// Slice accepts slices of any element type. Arrays are rejected.
func Slice(v any, _ *listenable.Listenable, _ string) bool {
	return kindOf(v) == reflect.Slice
}

// Map accepts maps of any key and value type.
func Map(v any, _ *listenable.Listenable, _ string) bool {
	return kindOf(v) == reflect.Map
}

// NonNil rejects nil and typed nil pointers, maps, slices, funcs and chans.
func NonNil(v any, _ *listenable.Listenable, _ string) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// OneOf accepts values equal to one of values.
func OneOf(values ...any) listenable.Validator {
	values = slices.Clone(values)
	return func(v any, _ *listenable.Listenable, _ string) bool {
		for _, x := range values {
			if equal(x, v) {
				return true
			}
		}
		return false
	}
}

// OneOfType accepts values accepted by at least one of vs.
func OneOfType(vs ...listenable.Validator) listenable.Validator {
	vs = slices.Clone(vs)
	return func(v any, l *listenable.Listenable, prop string) bool {
		for _, check := range vs {
			if check != nil && check(v, l, prop) {
				return true
			}
		}
		return false
	}
}

// Not inverts v. A nil v counts as accepting everything, so Not(nil)
// rejects every value.
func Not(v listenable.Validator) listenable.Validator {
	return func(value any, l *listenable.Listenable, prop string) bool {
		return v != nil && !v(value, l, prop)
	}
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.ValueOf(v).Kind()
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}
