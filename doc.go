// Package nativeobjects generates Go bindings that let Go values and native
// code share objects through a plain vtable.
//
// A contract is a named set of method signatures, optionally extending other
// contracts. From a contract the generator produces Go source offering both
// directions of the boundary:
//
//	Wrap<Name>(impl)        a Go value becomes a native object native code can call
//	Wrap<Name>Pointer(ptr)  a native object becomes a Go value Go code can call
//
// A native object is two pointer-width slots: a pointer to the vtable and an
// opaque handle that resolves to the wrapped Go value. Both sides use the
// platform C calling convention, so objects round-trip.
//
// # Architecture Overview
//
//	nativeobjects/
//	├── contract/          Contract model, manifest loader, interface flattening
//	├── layout/            Vtable slot and record layout planning
//	├── codegen/           Shared slot signatures, export and invoker emitters
//	├── binding/           Pipeline orchestration and file assembly
//	├── native/            Runtime used by generated code (allocator, header, callbacks)
//	├── resource/          Handle table keeping wrapped values alive
//	├── errors/            Structured diagnostics
//	├── cmd/nativeobjgen/  Command-line generator and inspector
//	└── examples/          Generated bindings with round-trip tests
//
// # Quick Start
//
// Describe contracts in a manifest:
//
//	namespace: calculator
//	contracts:
//	  - name: Calculator
//	    members:
//	      - name: Add
//	        params: [{name: a, type: s32}, {name: b, type: s32}]
//	        returns: {type: s32}
//
// and generate from a go:generate directive:
//
//	//go:generate go run github.com/wippyai/nativeobjects/cmd/nativeobjgen -manifest contracts.yaml -out .
//
// Then hand a Go value to native code, or call a native object:
//
//	obj, err := calculator.WrapCalculator(impl)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer obj.Close()
//
//	inv := calculator.WrapCalculatorPointer(obj.Pointer())
//	fmt.Println(inv.Add(2, 3)) // 5
//
// # Types
//
// Parameters and results use the WIT scalar names (bool, s8-s64, u8-u64,
// f32, f64, char) and records of those. Parameters pass by value or as
// in, out or ref pointers; results return by value or by reference. Records
// always cross by pointer.
//
// # Memory
//
// Objects live in the native heap and hold their Go value through the handle
// table until Close. Nothing checks pointers arriving from native code.
package nativeobjects
