package native

import (
	"unsafe"

	"github.com/wippyai/nativeobjects/resource"
)

// Object header slot indices.
const (
	ObjectSlots = 2
	VTableSlot  = 0
	HandleSlot  = 1
)

// PointerSize is the width of one slot.
const PointerSize = unsafe.Sizeof(uintptr(0))

// Header is the in-memory shape of a native object.
type Header struct {
	VTable unsafe.Pointer
	Handle uintptr
}

var _ = [1]struct{}{}[unsafe.Sizeof(Header{})-ObjectSlots*PointerSize]

// VTable returns the vtable pointer stored in slot 0.
func VTable(obj unsafe.Pointer) unsafe.Pointer {
	return (*Header)(obj).VTable
}

// HandleOf returns the handle stored in slot 1.
func HandleOf(obj unsafe.Pointer) resource.Handle {
	return resource.Handle((*Header)(obj).Handle)
}

// Slot returns the function pointer in vtable slot i.
func Slot(obj unsafe.Pointer, i int) uintptr {
	return *(*uintptr)(unsafe.Add(VTable(obj), uintptr(i)*PointerSize))
}
