package listenable

import "reflect"

// same reports whether b is the value already held as a.
// Reference kinds compare by pointer, funcs are never the same,
// non-comparable values fall back to deep equality. Zero-size allocations
// share one address, so empty slices and pointers to zero-size values are
// only the same when both are nil.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Pointer:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		if va.Type().Elem().Size() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		if va.Cap() == 0 || vb.Cap() == 0 || va.Type().Elem().Size() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return false
	}

	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(a, b)
}

// composite reports whether v is a non-nil value with inner structure,
// the kind of value whose re-set is worth reporting.
func composite(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Chan:
		return !rv.IsNil()
	case reflect.Struct, reflect.Array:
		return true
	}
	return false
}
