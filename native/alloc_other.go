//go:build !(darwin || linux || freebsd)

package native

import (
	"unsafe"

	"github.com/wippyai/nativeobjects/errors"
)

type unsupportedAllocator struct{}

func (unsupportedAllocator) Alloc(count, size uintptr) (unsafe.Pointer, error) {
	return nil, errors.Unsupported(errors.PhaseRuntime, "no default native allocator on this platform; call SetAllocator")
}

func (unsupportedAllocator) Free(unsafe.Pointer) {}

func defaultAllocator() Allocator {
	return unsupportedAllocator{}
}
