// Package errors provides structured diagnostics for binding generation.
//
// Errors are categorized by Phase (which generation stage raised them) and
// Kind (error category). The Error type carries the offending contract path
// (contract, method, parameter), the Go and ABI type names involved, and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLayout, errors.KindUnsupportedType).
//		Path("Calculator", "Add", "p").
//		ABIType("Point").
//		Detail("records cross the boundary by pointer only").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DuplicateMethod(path, "Reset", "Left", "Right")
//	err := errors.UnsupportedMember(path, "property")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
