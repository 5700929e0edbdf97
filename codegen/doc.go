// Package codegen renders Go source for the two directions of a contract.
//
// Both emitters work from the same Signature, derived once per vtable slot:
//
//	EmitExports  native-callable thunks and the shared vtable (Go value -> native object)
//	EmitInvoker  a typed wrapper that calls through a native vtable (native object -> Go)
//	EmitDecls    the host interface and slot constants both sides index by
//	EmitRecords  Go structs for record types with compile-time layout checks
//
// A Go value wrapped as a native object and then re-wrapped as an invoker
// round-trips, because the thunk and the invoker agree on slot index,
// argument order and native types by construction.
//
// Direction mapping:
//
//	value   host T    native T
//	in      host T    native *T (callee copies)
//	out     result T  native *T (written after the call)
//	ref     host *T   native *T
//	by-ref  result *T native unsafe.Pointer
//	float   result T  native trailing *T, void return
//
// Output is unformatted; callers run it through a formatter.
package codegen
