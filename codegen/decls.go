package codegen

import (
	"github.com/wippyai/nativeobjects/errors"
	"github.com/wippyai/nativeobjects/layout"
)

// EmitDecls renders the host interface and the slot constants of a contract.
func EmitDecls(l *layout.Layout, sigs []Signature) string {
	var w writer
	name := l.Contract

	w.line("// %s is the Go side of the %s contract, in vtable order.", name, name)
	w.line("type %s interface {", name)
	for _, sig := range sigs {
		if sig.Slot.Owner != name {
			w.line("// %s is inherited from %s.", sig.Method.Name, sig.Slot.Owner)
		}
		w.line("%s", sig.HostMethod())
	}
	w.line("}")
	w.blank()

	w.line("// Vtable slots of %s.", name)
	w.line("const (")
	w.line("%s = %d", SlotsConst(name), len(sigs))
	if len(sigs) > 0 {
		w.blank()
	}
	for _, sig := range sigs {
		w.line("%s = %d", SlotConst(name, sig.Method.Name), sig.Slot.Index)
	}
	w.line(")")
	return w.String()
}

// EmitRecords renders a Go struct per record, each with compile-time
// assertions that Go lays it out exactly as planned.
func EmitRecords(records []layout.RecordLayout) (string, error) {
	var w writer
	for _, r := range records {
		seen := make(map[string]string, len(r.Record.Fields))
		w.line("// %s mirrors the native layout of the %s record.", r.Record.Name, r.Record.Name)
		w.line("type %s struct {", r.Record.Name)
		for _, f := range r.Record.Fields {
			fn := FieldName(f.Name)
			if prev, ok := seen[fn]; ok {
				return "", errors.New(errors.PhaseEmit, errors.KindInvalidData).
					Path(r.Record.Name, f.Name).
					GoType(r.Record.Name+"."+fn).
					Detail("field collides with %q as Go field %s", prev, fn).
					Build()
			}
			seen[fn] = f.Name
			gt, ok := GoType(f.Type)
			if !ok {
				return "", errors.UnsupportedType(errors.PhaseEmit,
					[]string{r.Record.Name, f.Name}, f.Type.Name, "no Go mapping")
			}
			w.line("%s %s", fn, gt)
		}
		w.line("}")
		w.blank()

		w.line("var (")
		w.line("_ = [1]struct{}{}[unsafe.Sizeof(%s{})-%d]", r.Record.Name, r.Size)
		w.line("_ = [1]struct{}{}[unsafe.Alignof(%s{})-%d]", r.Record.Name, r.Align)
		for i, f := range r.Record.Fields {
			w.line("_ = [1]struct{}{}[unsafe.Offsetof(%s{}.%s)-%d]", r.Record.Name, FieldName(f.Name), r.Offsets[i])
		}
		w.line(")")
		w.blank()
	}
	return w.String(), nil
}
