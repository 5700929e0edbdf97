package layout

import (
	"go/token"
	"strconv"
	"unsafe"

	"github.com/wippyai/nativeobjects/contract"
	"github.com/wippyai/nativeobjects/errors"
	"github.com/wippyai/nativeobjects/layout/internal/calc"
)

// Convention identifies the native calling convention shared by every thunk and invoker.
type Convention string

// ConventionC is the platform C convention (System V on unix amd64, AAPCS64 on arm64,
// the Windows x64 convention on windows). It is the only convention bindings use.
const ConventionC Convention = "c"

// Object header slot indices.
const (
	ObjectSlots = 2
	VTableSlot  = 0
	HandleSlot  = 1
)

// ObjectLayout is the shape of the native object header.
type ObjectLayout struct {
	Slots        int
	Size         uintptr
	VTableOffset uintptr
	HandleOffset uintptr
}

// VTableLayout is the shape of the vtable block.
type VTableLayout struct {
	Slots int
	Size  uintptr
}

// SlotLayout places one method in the vtable.
type SlotLayout struct {
	Method *contract.Method
	Owner  string
	Index  int
	Offset uintptr
}

// RecordLayout is the native layout of a record type.
type RecordLayout struct {
	Record  *contract.Record
	Offsets []uintptr
	Size    uintptr
	Align   uintptr
}

// Layout is the complete memory plan for one contract.
type Layout struct {
	Contract    string
	Convention  Convention
	Slots       []SlotLayout
	Records     []RecordLayout
	Object      ObjectLayout
	VTable      VTableLayout
	PointerSize uintptr
}

// Options configures planning.
type Options struct {
	// PointerSize is the target pointer width in bytes. Zero means the host width.
	PointerSize uintptr
}

// Plan computes the layout for a flattened contract and validates that every
// signature can cross the native boundary.
func Plan(list *contract.FlattenedList, opts Options) (*Layout, error) {
	if list == nil || list.Contract == nil {
		return nil, errors.InvalidInput(errors.PhaseLayout, "nil flattened list")
	}

	ptr := opts.PointerSize
	if ptr == 0 {
		ptr = unsafe.Sizeof(uintptr(0))
	}
	if ptr != 4 && ptr != 8 {
		return nil, errors.InvalidInput(errors.PhaseLayout, "pointer size must be 4 or 8")
	}

	p := &planner{
		calc:  calc.NewCalculator(),
		seen:  make(map[*contract.Record]bool),
		names: make(map[string]*contract.Record),
	}

	l := &Layout{
		Contract:    list.Contract.Name,
		Convention:  ConventionC,
		PointerSize: ptr,
		Object: ObjectLayout{
			Slots:        ObjectSlots,
			Size:         ObjectSlots * ptr,
			VTableOffset: VTableSlot * ptr,
			HandleOffset: HandleSlot * ptr,
		},
		VTable: VTableLayout{
			Slots: list.Len(),
			Size:  uintptr(list.Len()) * ptr,
		},
		Slots: make([]SlotLayout, 0, list.Len()),
	}

	for _, s := range list.Slots {
		if err := p.checkMethod(s.Owner.Name, s.Method); err != nil {
			return nil, err
		}
		l.Slots = append(l.Slots, SlotLayout{
			Index:  s.Index,
			Offset: uintptr(s.Index) * ptr,
			Method: s.Method,
			Owner:  s.Owner.Name,
		})
	}

	l.Records = p.records
	return l, nil
}

// SlotOf returns the slot of the named method.
func (l *Layout) SlotOf(method string) (SlotLayout, bool) {
	for _, s := range l.Slots {
		if s.Method.Name == method {
			return s, true
		}
	}
	return SlotLayout{}, false
}

type planner struct {
	calc    *calc.Calculator
	seen    map[*contract.Record]bool
	names   map[string]*contract.Record
	records []RecordLayout
}

func (p *planner) checkMethod(owner string, m *contract.Method) error {
	for i, param := range m.Params {
		path := []string{owner, m.Name, paramLabel(param, i)}
		if err := p.checkType(path, param.Type); err != nil {
			return err
		}
		if param.Type.IsRecord() && param.Direction == contract.DirValue {
			return errors.UnsupportedType(errors.PhaseLayout, path, param.Type.Name,
				"records cross the boundary by pointer only; use in, out or ref")
		}
	}

	if m.Return.IsVoid() {
		if m.Return.ByRef {
			return errors.InvalidData(errors.PhaseLayout, []string{owner, m.Name}, "void result cannot be returned by reference")
		}
		return nil
	}

	path := []string{owner, m.Name, "return"}
	if err := p.checkType(path, *m.Return.Type); err != nil {
		return err
	}
	if m.Return.Type.IsRecord() && !m.Return.ByRef {
		return errors.UnsupportedType(errors.PhaseLayout, path, m.Return.Type.Name,
			"records are returned by reference only")
	}
	return nil
}

func (p *planner) checkType(path []string, t contract.Type) error {
	if _, ok := p.calc.Calculate(t.WIT); !ok {
		return errors.UnsupportedType(errors.PhaseLayout, path, t.Name, "no fixed native layout")
	}
	if t.IsRecord() {
		return p.addRecord(path, t.Record)
	}
	return nil
}

// addRecord registers r and the records it contains, dependencies first.
func (p *planner) addRecord(path []string, r *contract.Record) error {
	if p.seen[r] {
		return nil
	}
	if other, ok := p.names[r.Name]; ok && other != r {
		return errors.New(errors.PhaseLayout, errors.KindInvalidData).
			Path(path...).
			ABIType(r.Name).
			Detail("two different records named %q", r.Name).
			Build()
	}
	if !token.IsIdentifier(r.Name) {
		return errors.InvalidData(errors.PhaseLayout, path, "record name is not a Go identifier")
	}
	p.seen[r] = true
	p.names[r.Name] = r

	fields := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if !token.IsIdentifier(f.Name) || fields[f.Name] {
			return errors.New(errors.PhaseLayout, errors.KindInvalidData).
				Path(r.Name, f.Name).
				Detail("record field names must be unique Go identifiers").
				Build()
		}
		fields[f.Name] = true
		if f.Type.IsRecord() {
			if err := p.addRecord(path, f.Type.Record); err != nil {
				return err
			}
		}
	}

	info, _ := p.calc.Calculate(r.TypeDef())
	offsets := make([]uintptr, len(r.Fields))
	for i, f := range r.Fields {
		offsets[i] = info.FieldOffs[f.Name]
	}
	p.records = append(p.records, RecordLayout{
		Record:  r,
		Offsets: offsets,
		Size:    info.Size,
		Align:   info.Align,
	})
	return nil
}

func paramLabel(p contract.Parameter, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return "#" + strconv.Itoa(i)
}
