package native

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/nativeobjects/errors"
	"github.com/wippyai/nativeobjects/resource"
)

// NewObject builds a native object over impl with the given vtable.
//
// The vtable block is allocated with exactly len(vtable) slots and filled
// first, then the object block, then impl is registered in the handle table.
// A contract without methods has no vtable block and a nil vtable pointer.
// If any step fails everything allocated so far is released and the error is
// returned.
func NewObject(vtable []uintptr, impl any) (unsafe.Pointer, error) {
	if impl == nil {
		return nil, errors.InvalidInput(errors.PhaseRuntime, "cannot wrap a nil value")
	}
	a := currentAllocator()

	var vt unsafe.Pointer
	if n := len(vtable); n > 0 {
		var err error
		vt, err = a.Alloc(uintptr(n), PointerSize)
		if err != nil {
			return nil, err
		}
		copy(unsafe.Slice((*uintptr)(vt), n), vtable)
	}

	obj, err := a.Alloc(ObjectSlots, PointerSize)
	if err != nil {
		a.Free(vt)
		return nil, err
	}

	h, err := handles.Insert(impl)
	if err != nil {
		a.Free(obj)
		a.Free(vt)
		return nil, err
	}

	hdr := (*Header)(obj)
	hdr.VTable = vt
	hdr.Handle = uintptr(h)

	Logger().Debug("native object created",
		zap.Uintptr("object", uintptr(obj)),
		zap.Uint32("handle", uint32(h)),
		zap.Int("slots", len(vtable)))
	return obj, nil
}

// Resolve returns the Go value behind obj, or nil if its handle is not live.
func Resolve(obj unsafe.Pointer) any {
	v, _ := handles.Get(HandleOf(obj))
	return v
}

// Dispose releases the object *p points to and sets *p to nil.
// Disposing a nil pointer is a no-op, so repeated calls are safe.
func Dispose(p *unsafe.Pointer) {
	if p == nil || *p == nil {
		return
	}
	obj := *p
	*p = nil

	hdr := (*Header)(obj)
	h := resource.Handle(hdr.Handle)
	handles.Remove(h)

	a := currentAllocator()
	a.Free(hdr.VTable)
	a.Free(obj)

	Logger().Debug("native object disposed",
		zap.Uintptr("object", uintptr(obj)),
		zap.Uint32("handle", uint32(h)))
}
