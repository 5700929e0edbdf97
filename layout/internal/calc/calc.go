package calc

import (
	"go.bytecodealliance.org/wit"
)

// Info is the native size and alignment of a type.
type Info struct {
	FieldOffs map[string]uintptr
	Size      uintptr
	Align     uintptr
}

type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

// Calculate returns the C layout of t. ok is false for types with no fixed native layout.
func (c *Calculator) Calculate(t wit.Type) (info Info, ok bool) {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}, true
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}, true
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}, true
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}, true
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}, false
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) (Info, bool) {
	if cached, ok := c.cache[t]; ok {
		return cached, true
	}

	var (
		info Info
		ok   bool
	)

	switch kind := t.Kind.(type) {
	case *wit.Record:
		info, ok = c.calculateRecord(kind)
	case wit.Type:
		info, ok = c.Calculate(kind)
	default:
		return Info{Size: 0, Align: 1}, false
	}

	if ok {
		c.cache[t] = info
	}
	return info, ok
}

func (c *Calculator) calculateRecord(r *wit.Record) (Info, bool) {
	if len(r.Fields) == 0 {
		return Info{Size: 0, Align: 1}, true
	}

	fieldOffs := make(map[string]uintptr)
	maxAlign := uintptr(1)
	offset := uintptr(0)

	for _, field := range r.Fields {
		fieldLayout, ok := c.Calculate(field.Type)
		if !ok {
			return Info{}, false
		}

		offset = AlignTo(offset, fieldLayout.Align)
		fieldOffs[field.Name] = offset

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		offset += fieldLayout.Size
	}

	totalSize := AlignTo(offset, maxAlign)

	return Info{
		Size:      totalSize,
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}, true
}

func AlignTo(offset, align uintptr) uintptr {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
