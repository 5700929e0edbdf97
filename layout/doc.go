// Package layout plans the native memory shape of a binding.
//
// A wrapped object is exposed to native code as a two-slot header:
//
//	offset 0             vtable pointer
//	offset PointerSize   indirection handle
//
// The vtable is a separate block of N pointer-width slots, one per method of
// the flattened contract, in flattening order. Slot i lives at offset
// i*PointerSize. The slot index is the single coordinate shared by the export
// thunks and the invoker accessors.
//
// Plan also validates that every signature can cross the boundary: scalars
// pass by value or pointer, records only by pointer, and records used by a
// contract are laid out with C rules so the emitter can generate matching Go
// structs.
package layout
