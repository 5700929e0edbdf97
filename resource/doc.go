// Package resource provides the handle table that keeps wrapped Go values
// reachable while native code only holds a raw pointer.
//
// A native object stores a Handle, not a Go pointer: the garbage collector
// cannot see into native memory, so the table holds the strong reference and
// the handle is the opaque key native code carries around.
//
// # Handle Table
//
// The UnifiedTable maps integer handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle, err := table.Insert(myValue)
//
//	// Resolve the handle
//	value, ok := table.Get(handle)
//
//	// Release the strong reference
//	value, ok := table.Remove(handle)
//
// Handle 0 is never issued, so a zeroed header slot never resolves.
// Released handles are reused; resolving a released handle is caller misuse
// and may return a newer value.
//
// # Observers
//
// Register observers to track handle lifecycle events:
//
//	table.Subscribe(observer)
//
//	func (o *observer) OnHandleEvent(e resource.Event) {
//	    switch e.Type {
//	    case resource.EventCreated:
//	        log.Printf("handle %d created", e.Handle)
//	    case resource.EventReleased:
//	        log.Printf("handle %d released", e.Handle)
//	    }
//	}
//
// # Memory Management
//
// Values are not collected while their handle is live. Every Insert must be
// paired with a Remove, which generated bindings do when the native object is
// disposed.
package resource
