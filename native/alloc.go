package native

import (
	"sync"
	"unsafe"
)

// Allocator hands out zeroed blocks of native memory.
type Allocator interface {
	// Alloc returns count*size zeroed bytes aligned for a pointer.
	Alloc(count, size uintptr) (unsafe.Pointer, error)
	// Free releases a block returned by Alloc. Free(nil) is a no-op.
	Free(p unsafe.Pointer)
}

var (
	allocMu   sync.RWMutex
	allocator Allocator
)

// SetAllocator replaces the allocator used for object and vtable blocks and
// returns the previous one. Objects must be disposed by the allocator that
// created them. A nil allocator restores the default.
func SetAllocator(a Allocator) Allocator {
	allocMu.Lock()
	defer allocMu.Unlock()
	prev := allocator
	if prev == nil {
		prev = defaultAllocator()
	}
	allocator = a
	return prev
}

func currentAllocator() Allocator {
	allocMu.RLock()
	a := allocator
	allocMu.RUnlock()
	if a == nil {
		return defaultAllocator()
	}
	return a
}
