// Package contract models the interface contracts that bindings are generated from.
//
// A Contract is a named set of members, of which only methods occupy vtable
// slots, optionally extending base contracts. Method parameters carry a
// Direction that decides how they cross the native boundary:
//
//	Value  passed as-is
//	In     passed as a pointer, dereferenced before the call
//	Out    passed as a pointer, written after the call
//	Ref    passed as a live pointer, no copy
//
// # Types
//
// Parameter and return types use the WIT scalar vocabulary (bool, s8..u64,
// f32, f64, char) backed by go.bytecodealliance.org/wit values, plus named
// records built from those scalars. Records never cross the boundary by
// value; they must be passed In/Out/Ref or returned by reference.
//
// # Flattening
//
// Flatten orders every method of a contract and its bases into one slot
// sequence. Bases come first, most distant ancestor first, each contract
// visited once; within a contract, declaration order is kept:
//
//	base := contract.New("Base").
//		Declare(contract.NewMethod("B1", nil, contract.Void())).
//		Declare(contract.NewMethod("B2", nil, contract.Void()))
//	derived := contract.New("Derived", base).
//		Declare(contract.NewMethod("D1", nil, contract.Void()))
//
//	list, _ := contract.Flatten(derived, contract.FlattenOptions{})
//	// list.Names() == [B1 B2 D1]
//
// The slot index assigned here is the only coordinate the export and invoker
// sides share, so the order is part of the binary interface.
//
// # Registry
//
// Contracts are collected in a Registry, usually built from a YAML manifest
// with LoadManifest. The registry replaces any form of symbol scanning: it is
// assembled once, at generation time, and is the complete list of contracts
// bindings are produced for.
package contract
