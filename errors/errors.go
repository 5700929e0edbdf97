package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which generation stage raised the error
type Phase string

const (
	PhaseLoad    Phase = "load"    // manifest parsing and registry assembly
	PhaseFlatten Phase = "flatten" // interface flattening
	PhaseLayout  Phase = "layout"  // slot and record layout planning
	PhaseEmit    Phase = "emit"    // thunk and invoker emission
	PhaseRuntime Phase = "runtime" // generated code at run time
)

// Kind categorizes the error
type Kind string

const (
	KindDuplicateMethod   Kind = "duplicate_method"
	KindDuplicateContract Kind = "duplicate_contract"
	KindUnsupportedMember Kind = "unsupported_member"
	KindUnsupportedType   Kind = "unsupported_type"
	KindCycle             Kind = "cycle"
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidData       Kind = "invalid_data"
	KindAllocation        Kind = "allocation"
	KindUnsupported       Kind = "unsupported"
)

// Error is the structured error type used throughout the generator
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	ABIType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ABIType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ABIType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", ABI type ")
			b.WriteString(e.ABIType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("ABI type ")
			b.WriteString(e.ABIType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ABIType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the contract path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ABIType sets the contract-level type name
func (b *Builder) ABIType(t string) *Builder {
	b.err.ABIType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common diagnostics

// DuplicateMethod reports a method name that appears twice in one flattened contract
func DuplicateMethod(path []string, method, first, second string) *Error {
	return &Error{
		Phase:  PhaseFlatten,
		Kind:   KindDuplicateMethod,
		Path:   path,
		Detail: fmt.Sprintf("method %q declared by both %s and %s", method, first, second),
		Value:  method,
	}
}

// DuplicateContract reports a contract name registered twice
func DuplicateContract(name string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindDuplicateContract,
		Path:   []string{name},
		Detail: fmt.Sprintf("contract %q already registered", name),
		Value:  name,
	}
}

// UnsupportedMember reports a non-method member on a contract
func UnsupportedMember(path []string, kind string) *Error {
	return &Error{
		Phase:  PhaseFlatten,
		Kind:   KindUnsupportedMember,
		Path:   path,
		Detail: fmt.Sprintf("%s members cannot occupy a vtable slot", kind),
		Value:  kind,
	}
}

// UnsupportedType reports a type that cannot cross the native boundary in its position
func UnsupportedType(phase Phase, path []string, abiType, detail string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnsupportedType,
		Path:    path,
		ABIType: abiType,
		Detail:  detail,
	}
}

// Cycle reports a contract that inherits from itself
func Cycle(chain []string) *Error {
	return &Error{
		Phase:  PhaseFlatten,
		Kind:   KindCycle,
		Path:   chain[:1],
		Detail: fmt.Sprintf("base contract cycle: %s", strings.Join(chain, " -> ")),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(count, size uintptr, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d x %d bytes", count, size),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a manifest parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// List collects diagnostics from several contracts.
type List []*Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d binding errors:", len(l)))
	for _, e := range l {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes the individual diagnostics to errors.Is/As.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}
