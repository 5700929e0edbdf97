package native

import (
	"reflect"
	"sync"

	"github.com/ebitengine/purego"
)

// Callback converts a Go function into a C function pointer.
//
// The process can hold only a limited number of callbacks and they are never
// freed, so generated code converts each thunk once per contract.
func Callback(fn any) uintptr {
	return purego.NewCallback(fn)
}

// Callbacks converts fns in order, producing a vtable.
func Callbacks(fns ...any) []uintptr {
	vt := make([]uintptr, len(fns))
	for i, fn := range fns {
		vt[i] = Callback(fn)
	}
	return vt
}

type bindKey struct {
	typ reflect.Type
	fn  uintptr
}

var bound sync.Map

// Bind returns a Go function of type F that calls the C function pointer fn.
// Results are cached per (F, fn).
func Bind[F any](fn uintptr) F {
	key := bindKey{typ: reflect.TypeFor[F](), fn: fn}
	if v, ok := bound.Load(key); ok {
		return v.(F)
	}
	var f F
	purego.RegisterFunc(&f, fn)
	v, _ := bound.LoadOrStore(key, f)
	return v.(F)
}
