// Package binding turns contracts into generated Go source.
//
// Generate runs the whole pipeline for one contract: flatten once, plan
// once, derive one signature per slot, then feed the same signatures to
// both emitters so the export side and the invoker side agree on every
// slot. The result is an Artifact whose Source is a formatted Go file
// exposing:
//
//	Wrap<Name>(impl) (*<Name>Object, error)    wrap a Go value for native code
//	Wrap<Name>Pointer(ptr) <Name>Invoker       wrap a native object for Go code
//	(*<Name>Object).Pointer / Close            raw pointer and idempotent disposal
//
// GenerateAll does the same for every contract in a registry concurrently,
// collecting all diagnostics, and emits record types shared by several
// contracts once.
package binding
