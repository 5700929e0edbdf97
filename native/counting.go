package native

import (
	"sync"
	"unsafe"
)

// AllocStats summarizes a CountingAllocator.
type AllocStats struct {
	Allocs      int
	Frees       int
	DoubleFrees int
	Live        int
	LiveBytes   uintptr
}

// CountingAllocator wraps another allocator and tracks live blocks.
// It is meant for leak checks in tests.
type CountingAllocator struct {
	next  Allocator
	live  map[unsafe.Pointer]uintptr
	stats AllocStats
	mu    sync.Mutex
}

// NewCountingAllocator wraps next. A nil next wraps the default allocator.
func NewCountingAllocator(next Allocator) *CountingAllocator {
	if next == nil {
		next = defaultAllocator()
	}
	return &CountingAllocator{next: next, live: make(map[unsafe.Pointer]uintptr)}
}

// Alloc implements Allocator.
func (c *CountingAllocator) Alloc(count, size uintptr) (unsafe.Pointer, error) {
	p, err := c.next.Alloc(count, size)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.live[p] = count * size
	c.stats.Allocs++
	c.stats.Live++
	c.stats.LiveBytes += count * size
	c.mu.Unlock()
	return p, nil
}

// Free implements Allocator. Freeing an unknown block is counted and ignored.
func (c *CountingAllocator) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	c.mu.Lock()
	size, ok := c.live[p]
	if !ok {
		c.stats.DoubleFrees++
		c.mu.Unlock()
		return
	}
	delete(c.live, p)
	c.stats.Frees++
	c.stats.Live--
	c.stats.LiveBytes -= size
	c.mu.Unlock()
	c.next.Free(p)
}

// Stats returns a snapshot of the counters.
func (c *CountingAllocator) Stats() AllocStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// SizeOf returns the size of a live block.
func (c *CountingAllocator) SizeOf(p unsafe.Pointer) (uintptr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	size, ok := c.live[p]
	return size, ok
}
