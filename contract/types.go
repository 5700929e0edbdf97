package contract

import (
	"fmt"
	"strings"
)

// Direction describes how a parameter crosses the native boundary.
type Direction uint8

const (
	DirValue Direction = iota
	DirIn
	DirOut
	DirRef
)

func (d Direction) String() string {
	switch d {
	case DirValue:
		return "value"
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirRef:
		return "ref"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// ByPointer reports whether the native argument is a pointer to the value.
func (d Direction) ByPointer() bool {
	return d != DirValue
}

// ParseDirection parses a manifest direction. The empty string means DirValue.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "value":
		return DirValue, nil
	case "in":
		return DirIn, nil
	case "out":
		return DirOut, nil
	case "ref":
		return DirRef, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MemberKind distinguishes the members a contract may declare.
type MemberKind uint8

const (
	MemberMethod MemberKind = iota
	MemberProperty
	MemberEvent
	MemberField
	MemberConstructor
	MemberStaticConstructor
)

var memberKindNames = [...]string{
	MemberMethod:            "method",
	MemberProperty:          "property",
	MemberEvent:             "event",
	MemberField:             "field",
	MemberConstructor:       "constructor",
	MemberStaticConstructor: "static-constructor",
}

func (k MemberKind) String() string {
	if int(k) < len(memberKindNames) {
		return memberKindNames[k]
	}
	return fmt.Sprintf("MemberKind(%d)", k)
}

// ParseMemberKind parses a manifest member kind. The empty string means MemberMethod.
func ParseMemberKind(s string) (MemberKind, error) {
	if s == "" {
		return MemberMethod, nil
	}
	for k, name := range memberKindNames {
		if strings.EqualFold(s, name) {
			return MemberKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown member kind %q", s)
}

// pseudo reports whether the member is constructor-like and never part of the slot sequence.
func (k MemberKind) pseudo() bool {
	return k == MemberConstructor || k == MemberStaticConstructor
}

// Parameter is one method parameter.
type Parameter struct {
	Name      string
	Type      Type
	Direction Direction
}

// Return describes a method result. A nil Type means void.
type Return struct {
	Type  *Type
	ByRef bool
}

// Void returns an empty result.
func Void() Return {
	return Return{}
}

// Returns returns a by-value result of type t.
func Returns(t Type) Return {
	return Return{Type: &t}
}

// ReturnsRef returns a by-reference result of type t.
func ReturnsRef(t Type) Return {
	return Return{Type: &t, ByRef: true}
}

// IsVoid reports whether the method returns nothing.
func (r Return) IsVoid() bool {
	return r.Type == nil
}

// Method is a method signature.
type Method struct {
	Name   string
	Params []Parameter
	Return Return
}

// NewMethod creates a method signature.
func NewMethod(name string, params []Parameter, ret Return) *Method {
	return &Method{Name: name, Params: params, Return: ret}
}

// Outs returns the Out parameters in declaration order.
func (m *Method) Outs() []Parameter {
	var outs []Parameter
	for _, p := range m.Params {
		if p.Direction == DirOut {
			outs = append(outs, p)
		}
	}
	return outs
}

func (m *Method) String() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Direction != DirValue {
			b.WriteString(p.Direction.String())
			b.WriteByte(' ')
		}
		if p.Name != "" {
			b.WriteString(p.Name)
			b.WriteString(": ")
		}
		b.WriteString(p.Type.Name)
	}
	b.WriteByte(')')
	if !m.Return.IsVoid() {
		b.WriteString(" -> ")
		if m.Return.ByRef {
			b.WriteString("ref ")
		}
		b.WriteString(m.Return.Type.Name)
	}
	return b.String()
}

// Member is one declared member of a contract.
type Member struct {
	Method *Method
	Name   string
	Kind   MemberKind
}

// Contract is a named interface contract.
type Contract struct {
	Name    string
	Bases   []*Contract
	Members []Member
}

// New creates a contract extending bases.
func New(name string, bases ...*Contract) *Contract {
	return &Contract{Name: name, Bases: bases}
}

// Declare appends a method member and returns c for chaining.
func (c *Contract) Declare(m *Method) *Contract {
	c.Members = append(c.Members, Member{Kind: MemberMethod, Name: m.Name, Method: m})
	return c
}

// DeclareMember appends a non-method member and returns c for chaining.
func (c *Contract) DeclareMember(kind MemberKind, name string) *Contract {
	c.Members = append(c.Members, Member{Kind: kind, Name: name})
	return c
}

// Methods returns the directly declared methods.
func (c *Contract) Methods() []*Method {
	var methods []*Method
	for _, m := range c.Members {
		if m.Kind == MemberMethod && m.Method != nil {
			methods = append(methods, m.Method)
		}
	}
	return methods
}
