package codegen

import (
	"go/token"
	"regexp"
	"strconv"

	"github.com/wippyai/nativeobjects/contract"
	"github.com/wippyai/nativeobjects/errors"
	"github.com/wippyai/nativeobjects/layout"
)

// Param is one parameter as it appears in generated code.
type Param struct {
	Name      string
	Type      string
	Direction contract.Direction
}

// Native returns the parameter's type in the native signature.
func (p Param) Native() string {
	if p.Direction.ByPointer() {
		return "*" + p.Type
	}
	return p.Type
}

// Host returns the parameter's type in the host interface. Out parameters
// are results on the host side and have no host parameter type.
func (p Param) Host() string {
	if p.Direction == contract.DirRef {
		return "*" + p.Type
	}
	return p.Type
}

// Signature is the single native signature of one vtable slot. The export
// thunk is declared with it and the invoker binds the slot's function
// pointer to it, so the two can never disagree.
type Signature struct {
	Method *contract.Method
	Slot   layout.SlotLayout
	Params []Param
	// Result is the Go type of the result value, empty for void.
	Result string
	ByRef  bool
	// ResultOut moves a by-value result out of the return register into a
	// trailing pointer parameter named result. Native callbacks return
	// integer-class values only, so float results always take this path.
	ResultOut bool
}

// resultName names the primary result when a method also has Out parameters.
const resultName = "result"

// Names generated code declares alongside parameters. A parameter that
// would shadow one of them is renamed.
var reserved = map[string]bool{
	"self": true, "impl": true, "inv": true, "fn": true, resultName: true,
	"native": true, "unsafe": true, "sync": true,
}

var tempName = regexp.MustCompile(`^r[0-9]+$`)

// Methods every generated invoker declares itself.
var invokerMethods = map[string]bool{"Pointer": true}

// NewSignature derives the signature of slot s.
func NewSignature(l *layout.Layout, s layout.SlotLayout) (Signature, error) {
	m := s.Method
	if invokerMethods[m.Name] {
		return Signature{}, errors.New(errors.PhaseEmit, errors.KindInvalidData).
			Path(l.Contract, m.Name).
			GoType(l.Contract+"Invoker").
			Detail("method name collides with the invoker's own %s method", m.Name).
			Build()
	}
	sig := Signature{Method: m, Slot: s, ByRef: m.Return.ByRef}

	avoid := make(map[string]bool, len(reserved)+len(scalarGoTypes)+len(l.Records))
	for n := range reserved {
		avoid[n] = true
	}
	for _, gt := range scalarGoTypes {
		avoid[gt] = true
	}
	for _, r := range l.Records {
		avoid[r.Record.Name] = true
	}
	for _, n := range generatedNames(l) {
		avoid[n] = true
	}
	declared := make(map[string]bool, len(m.Params))
	for _, p := range m.Params {
		declared[p.Name] = true
	}

	used := make(map[string]bool, len(m.Params))
	for i, p := range m.Params {
		gt, ok := GoType(p.Type)
		if !ok {
			return Signature{}, errors.UnsupportedType(errors.PhaseEmit,
				[]string{l.Contract, m.Name, p.Name}, p.Type.Name, "no Go mapping")
		}
		name := paramName(p.Name, i, avoid, declared, used)
		used[name] = true
		sig.Params = append(sig.Params, Param{
			Name:      name,
			Type:      gt,
			Direction: p.Direction,
		})
	}

	if !m.Return.IsVoid() {
		gt, ok := GoType(*m.Return.Type)
		if !ok {
			return Signature{}, errors.UnsupportedType(errors.PhaseEmit,
				[]string{l.Contract, m.Name, "return"}, m.Return.Type.Name, "no Go mapping")
		}
		sig.Result = gt
		sig.ResultOut = !sig.ByRef && isFloat(gt)
	}
	return sig, nil
}

func isFloat(goType string) bool {
	return goType == "float32" || goType == "float64"
}

// generatedNames lists the package-level names a binding of l declares.
// Method bodies refer to several of them, so parameters must not shadow any.
func generatedNames(l *layout.Layout) []string {
	name := l.Contract
	names := []string{
		name,
		SlotsConst(name),
		name + "Object",
		name + "Invoker",
		"Wrap" + name,
		"Wrap" + name + "Pointer",
		lowerFirst(name) + "VTable",
	}
	for _, s := range l.Slots {
		names = append(names, SlotConst(name, s.Method.Name), thunkName(name, s.Method.Name))
	}
	return names
}

// paramName picks a Go name for parameter i that shadows nothing the
// generated body refers to and is unique within the method.
func paramName(name string, i int, avoid, declared, used map[string]bool) string {
	anonymous := name == ""
	base := name
	switch {
	case anonymous:
		base = "arg" + strconv.Itoa(i)
	case avoid[base] || tempName.MatchString(base):
		base += "Arg"
	}

	bad := func(n string) bool {
		return used[n] || avoid[n] || tempName.MatchString(n) || !token.IsIdentifier(n) ||
			(anonymous && declared[n])
	}
	cand := base
	for n := 2; bad(cand); n++ {
		cand = base + strconv.Itoa(n)
	}
	return cand
}

// Outs returns the Out parameters in declaration order.
func (s Signature) Outs() []Param {
	var outs []Param
	for _, p := range s.Params {
		if p.Direction == contract.DirOut {
			outs = append(outs, p)
		}
	}
	return outs
}

// NativeResult returns the result type of the native function, empty for
// void and for results passed back through a pointer.
func (s Signature) NativeResult() string {
	if s.ResultOut {
		return ""
	}
	if s.ByRef {
		return "unsafe.Pointer"
	}
	return s.Result
}

// FuncType returns the Go func type of the native function, self first.
func (s Signature) FuncType() string {
	args := make([]string, 0, len(s.Params)+1)
	args = append(args, "unsafe.Pointer")
	for _, p := range s.Params {
		args = append(args, p.Native())
	}
	if s.ResultOut {
		args = append(args, "*"+s.Result)
	}
	out := "func(" + join(args) + ")"
	if r := s.NativeResult(); r != "" {
		out += " " + r
	}
	return out
}

// HostResult returns the Go type of the primary host result, empty for void.
func (s Signature) HostResult() string {
	if s.Result == "" {
		return ""
	}
	if s.ByRef {
		return "*" + s.Result
	}
	return s.Result
}

// HostParams returns the host parameter list without parentheses.
func (s Signature) HostParams() string {
	var params []string
	for _, p := range s.Params {
		if p.Direction == contract.DirOut {
			continue
		}
		params = append(params, p.Name+" "+p.Host())
	}
	return join(params)
}

// HostResults returns the host result list, parenthesized when needed.
// Out parameters become named results after the primary result.
func (s Signature) HostResults() string {
	outs := s.Outs()
	if len(outs) == 0 {
		return s.HostResult()
	}
	var results []string
	if r := s.HostResult(); r != "" {
		results = append(results, resultName+" "+r)
	}
	for _, p := range outs {
		results = append(results, p.Name+" "+p.Type)
	}
	return "(" + join(results) + ")"
}

// HostMethod returns the method as declared in the host interface.
func (s Signature) HostMethod() string {
	out := s.Method.Name + "(" + s.HostParams() + ")"
	if r := s.HostResults(); r != "" {
		out += " " + r
	}
	return out
}

// Signatures derives the signature of every slot in l.
func Signatures(l *layout.Layout) ([]Signature, error) {
	sigs := make([]Signature, len(l.Slots))
	for i, s := range l.Slots {
		sig, err := NewSignature(l, s)
		if err != nil {
			return nil, err
		}
		sigs[i] = sig
	}
	return sigs, nil
}
