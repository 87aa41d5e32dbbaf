package settled

import (
	"reflect"
	"unsafe"
)

// elemLayout returns the size of T and checks that T can live outside the
// Go heap: the garbage collector never scans an arena, so T must not
// contain pointers, and counts are derived by dividing by the size.
func elemLayout[T any]() (uintptr, error) {
	t := reflect.TypeFor[T]()
	if t.Size() == 0 {
		return 0, &ElementTypeError{Type: t, Reason: "zero-sized"}
	}
	if hasPointers(t) {
		return 0, &ElementTypeError{Type: t, Reason: "contains pointers"}
	}
	return t.Size(), nil
}

// hasPointers reports whether a value of type t holds any pointer the
// garbage collector would need to see.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointer, UnsafePointer, String, Slice, Map, Chan, Func, Interface.
		return true
	}
}

// slotAt returns the i-th slot of size bytes starting at base.
func slotAt[T any](base unsafe.Pointer, i int, size uintptr) *T {
	return (*T)(unsafe.Add(base, uintptr(i)*size))
}

func unsafeSlice[T any](p *T, n int) []T {
	return unsafe.Slice(p, n)
}
