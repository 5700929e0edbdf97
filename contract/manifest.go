package contract

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/nativeobjects/errors"
)

// DefaultNamespace is the Go package name used when a manifest does not set one.
const DefaultNamespace = "nativeobjects"

// Manifest is the YAML description of a set of contracts.
type Manifest struct {
	Namespace string         `yaml:"namespace,omitempty"`
	Records   []RecordSpec   `yaml:"records,omitempty"`
	Contracts []ContractSpec `yaml:"contracts"`
}

// RecordSpec declares a record type.
type RecordSpec struct {
	Name   string      `yaml:"name"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec declares a record field.
type FieldSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ContractSpec declares a contract.
type ContractSpec struct {
	Name    string       `yaml:"name"`
	Bases   []string     `yaml:"bases,omitempty"`
	Members []MemberSpec `yaml:"members"`
}

// MemberSpec declares a contract member. Kind defaults to "method".
type MemberSpec struct {
	Returns *ReturnSpec `yaml:"returns,omitempty"`
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind,omitempty"`
	Params  []ParamSpec `yaml:"params,omitempty"`
}

// ParamSpec declares a method parameter. Dir defaults to "value".
type ParamSpec struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type"`
	Dir  string `yaml:"dir,omitempty"`
}

// ReturnSpec declares a method result.
type ReturnSpec struct {
	Type  string `yaml:"type"`
	ByRef bool   `yaml:"byRef,omitempty"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "read manifest")
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.ParseFailed("manifest", err)
	}
	m.normalize()
	return &m, nil
}

func (m *Manifest) normalize() {
	if m.Namespace == "" {
		m.Namespace = DefaultNamespace
	}
}

// Registry resolves records, bases and types and returns the contracts in manifest order.
func (m *Manifest) Registry() (*Registry, error) {
	records, err := m.resolveRecords()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Contract, len(m.Contracts))
	reg := NewRegistry()
	for _, spec := range m.Contracts {
		c := New(spec.Name)
		if err := reg.Register(c); err != nil {
			return nil, err
		}
		byName[spec.Name] = c
	}

	for _, spec := range m.Contracts {
		c := byName[spec.Name]

		for _, baseName := range spec.Bases {
			base, ok := byName[baseName]
			if !ok {
				e := errors.NotFound(errors.PhaseLoad, "base contract", baseName)
				e.Path = []string{spec.Name}
				return nil, e
			}
			c.Bases = append(c.Bases, base)
		}

		for _, ms := range spec.Members {
			member, err := ms.build(spec.Name, records)
			if err != nil {
				return nil, err
			}
			c.Members = append(c.Members, member)
		}
	}

	return reg, nil
}

func (ms MemberSpec) build(owner string, records map[string]Type) (Member, error) {
	path := []string{owner, ms.Name}

	kind, err := ParseMemberKind(ms.Kind)
	if err != nil {
		return Member{}, errors.InvalidData(errors.PhaseLoad, path, err.Error())
	}
	if kind != MemberMethod {
		return Member{Kind: kind, Name: ms.Name}, nil
	}

	method := &Method{Name: ms.Name}
	for i, ps := range ms.Params {
		dir, err := ParseDirection(ps.Dir)
		if err != nil {
			return Member{}, errors.InvalidData(errors.PhaseLoad, path, err.Error())
		}
		t, err := lookupType(ps.Type, records)
		if err != nil {
			name := ps.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return Member{}, errors.UnsupportedType(errors.PhaseLoad, append(path, name), ps.Type, err.Error())
		}
		method.Params = append(method.Params, Parameter{Name: ps.Name, Type: t, Direction: dir})
	}

	if ms.Returns != nil && ms.Returns.Type != "" {
		t, err := lookupType(ms.Returns.Type, records)
		if err != nil {
			return Member{}, errors.UnsupportedType(errors.PhaseLoad, path, ms.Returns.Type, err.Error())
		}
		method.Return = Return{Type: &t, ByRef: ms.Returns.ByRef}
	} else if ms.Returns != nil && ms.Returns.ByRef {
		return Member{}, errors.InvalidData(errors.PhaseLoad, path, "byRef return without a type")
	}

	return Member{Kind: MemberMethod, Name: ms.Name, Method: method}, nil
}

func lookupType(name string, records map[string]Type) (Type, error) {
	if t, ok := Scalar(name); ok {
		return t, nil
	}
	if t, ok := records[name]; ok {
		return t, nil
	}
	return Type{}, fmt.Errorf("unknown type %q", name)
}

// resolveRecords builds record types in dependency order so fields may refer to later records.
func (m *Manifest) resolveRecords() (map[string]Type, error) {
	specs := make(map[string]RecordSpec, len(m.Records))
	for _, rs := range m.Records {
		if _, dup := specs[rs.Name]; dup {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{rs.Name}, "duplicate record")
		}
		if _, scalar := Scalar(rs.Name); scalar {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{rs.Name}, "record name shadows a scalar type")
		}
		specs[rs.Name] = rs
	}

	resolved := make(map[string]Type, len(specs))
	var stack []string

	var resolve func(name string) (Type, error)
	resolve = func(name string) (Type, error) {
		if t, ok := resolved[name]; ok {
			return t, nil
		}
		if t, ok := Scalar(name); ok {
			return t, nil
		}
		spec, ok := specs[name]
		if !ok {
			return Type{}, fmt.Errorf("unknown type %q", name)
		}
		if slices.Contains(stack, name) {
			return Type{}, errors.InvalidData(errors.PhaseLoad, []string{name}, "record contains itself by value")
		}

		stack = append(stack, name)
		defer func() { stack = stack[:len(stack)-1] }()

		fields := make([]Field, 0, len(spec.Fields))
		for _, fs := range spec.Fields {
			ft, err := resolve(fs.Type)
			if err != nil {
				return Type{}, err
			}
			fields = append(fields, Field{Name: fs.Name, Type: ft})
		}
		t := NewRecord(name, fields...)
		resolved[name] = t
		return t, nil
	}

	for _, rs := range m.Records {
		if _, err := resolve(rs.Name); err != nil {
			if _, ok := err.(*errors.Error); ok {
				return nil, err
			}
			return nil, errors.UnsupportedType(errors.PhaseLoad, []string{rs.Name}, rs.Name, err.Error())
		}
	}
	return resolved, nil
}
