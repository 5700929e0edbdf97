package contract

import (
	"go.bytecodealliance.org/wit"
)

// Type is a parameter or return type.
// Scalars carry a WIT primitive; records carry a *wit.TypeDef and the Record description.
type Type struct {
	WIT    wit.Type
	Record *Record
	Name   string
}

// Scalars.
var (
	Bool = Type{Name: "bool", WIT: wit.Bool{}}
	S8   = Type{Name: "s8", WIT: wit.S8{}}
	U8   = Type{Name: "u8", WIT: wit.U8{}}
	S16  = Type{Name: "s16", WIT: wit.S16{}}
	U16  = Type{Name: "u16", WIT: wit.U16{}}
	S32  = Type{Name: "s32", WIT: wit.S32{}}
	U32  = Type{Name: "u32", WIT: wit.U32{}}
	S64  = Type{Name: "s64", WIT: wit.S64{}}
	U64  = Type{Name: "u64", WIT: wit.U64{}}
	F32  = Type{Name: "f32", WIT: wit.F32{}}
	F64  = Type{Name: "f64", WIT: wit.F64{}}
	Char = Type{Name: "char", WIT: wit.Char{}}
)

var scalars = map[string]Type{
	"bool": Bool,
	"s8":   S8,
	"u8":   U8,
	"s16":  S16,
	"u16":  U16,
	"s32":  S32,
	"u32":  U32,
	"s64":  S64,
	"u64":  U64,
	"f32":  F32,
	"f64":  F64,
	"char": Char,
}

// Scalar looks up a scalar type by its WIT name.
func Scalar(name string) (Type, bool) {
	t, ok := scalars[name]
	return t, ok
}

// IsRecord reports whether t is a record type.
func (t Type) IsRecord() bool {
	return t.Record != nil
}

// Field is a record field.
type Field struct {
	Name string
	Type Type
}

// Record is a named aggregate of scalars and other records.
type Record struct {
	def    *wit.TypeDef
	Name   string
	Fields []Field
}

// NewRecord creates a record type from its fields.
func NewRecord(name string, fields ...Field) Type {
	r := &Record{Name: name, Fields: fields}
	return Type{Name: name, WIT: r.TypeDef(), Record: r}
}

// TypeDef returns the WIT form of the record, used for layout.
func (r *Record) TypeDef() *wit.TypeDef {
	if r.def != nil {
		return r.def
	}
	fields := make([]wit.Field, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = wit.Field{Name: f.Name, Type: f.Type.WIT}
	}
	name := r.Name
	r.def = &wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: fields}}
	return r.def
}
