// Package native is the run-time support imported by generated bindings.
//
// A native object is a block of two pointer-width slots:
//
//	slot 0: pointer to the vtable block (one function pointer per method)
//	slot 1: opaque handle resolving to the wrapped Go value
//
// Vtable and object blocks live in the native heap (libc calloc/free, loaded
// with purego), so native code may keep them across calls and the Go garbage
// collector never moves or scans them. The Go value is kept alive by the
// process-wide handle table until the object is disposed.
//
// Thunks are converted to C function pointers with Callback and native
// function pointers are called through Bind. Both use the platform C calling
// convention, so a generated thunk and a generated invoker for the same
// contract always agree.
//
// Nothing here validates pointers handed in from native code. Calling a
// method on a disposed object or disposing while a call is in flight is
// undefined.
package native
