package codegen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/nativeobjects/contract"
)

var scalarGoTypes = map[string]string{
	"bool": "bool",
	"s8":   "int8",
	"u8":   "uint8",
	"s16":  "int16",
	"u16":  "uint16",
	"s32":  "int32",
	"u32":  "uint32",
	"s64":  "int64",
	"u64":  "uint64",
	"f32":  "float32",
	"f64":  "float64",
	"char": "rune",
}

// GoType returns the Go spelling of t. Records map to a struct of the same name.
func GoType(t contract.Type) (string, bool) {
	if t.IsRecord() {
		return t.Record.Name, true
	}
	gt, ok := scalarGoTypes[t.Name]
	return gt, ok
}

// FieldName returns the exported Go name of a record field.
func FieldName(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

func thunkName(contractName, method string) string {
	return lowerFirst(contractName) + method + "Thunk"
}

// SlotConst returns the name of the constant holding a method's slot index.
func SlotConst(contractName, method string) string {
	return contractName + method + "Slot"
}

// SlotsConst returns the name of the constant holding a contract's slot count.
func SlotsConst(contractName string) string {
	return contractName + "Slots"
}

func join(parts []string) string {
	return strings.Join(parts, ", ")
}
