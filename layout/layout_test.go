package layout

import (
	"errors"
	"testing"

	"github.com/wippyai/nativeobjects/contract"
	nerrors "github.com/wippyai/nativeobjects/errors"
)

func flatten(t *testing.T, c *contract.Contract) *contract.FlattenedList {
	t.Helper()
	list, err := contract.Flatten(c, contract.FlattenOptions{})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	return list
}

func TestPlan_Shape(t *testing.T) {
	base := contract.New("Base").
		Declare(contract.NewMethod("B1", nil, contract.Void())).
		Declare(contract.NewMethod("B2", nil, contract.Returns(contract.S32)))
	derived := contract.New("Derived", base).
		Declare(contract.NewMethod("D1", []contract.Parameter{{Name: "v", Type: contract.F64}}, contract.Void()))

	for _, ptr := range []uintptr{4, 8} {
		l, err := Plan(flatten(t, derived), Options{PointerSize: ptr})
		if err != nil {
			t.Fatalf("Plan: %v", err)
		}

		if l.Object.Slots != 2 || l.Object.Size != 2*ptr {
			t.Errorf("ptr %d: object = %+v", ptr, l.Object)
		}
		if l.Object.VTableOffset != 0 || l.Object.HandleOffset != ptr {
			t.Errorf("ptr %d: offsets = %d/%d", ptr, l.Object.VTableOffset, l.Object.HandleOffset)
		}
		if l.VTable.Slots != 3 || l.VTable.Size != 3*ptr {
			t.Errorf("ptr %d: vtable = %+v", ptr, l.VTable)
		}
		for i, s := range l.Slots {
			if s.Index != i || s.Offset != uintptr(i)*ptr {
				t.Errorf("ptr %d: slot %d = %+v", ptr, i, s)
			}
		}
		if l.Convention != ConventionC {
			t.Errorf("Convention = %q", l.Convention)
		}
	}
}

func TestPlan_SlotOf(t *testing.T) {
	c := contract.New("Calc").
		Declare(contract.NewMethod("Add", nil, contract.Returns(contract.S32))).
		Declare(contract.NewMethod("Sub", nil, contract.Returns(contract.S32)))

	l, err := Plan(flatten(t, c), Options{})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	s, ok := l.SlotOf("Sub")
	if !ok || s.Index != 1 {
		t.Errorf("SlotOf(Sub) = %+v, %v", s, ok)
	}
	if _, ok := l.SlotOf("Mul"); ok {
		t.Error("SlotOf(Mul) should not exist")
	}
}

func TestPlan_Records(t *testing.T) {
	point := contract.NewRecord("Point",
		contract.Field{Name: "x", Type: contract.S32},
		contract.Field{Name: "y", Type: contract.S32})
	rect := contract.NewRecord("Rect",
		contract.Field{Name: "tag", Type: contract.U8},
		contract.Field{Name: "origin", Type: point},
		contract.Field{Name: "scale", Type: contract.F64})

	c := contract.New("Shapes").
		Declare(contract.NewMethod("Bounds", []contract.Parameter{{Name: "r", Type: rect, Direction: contract.DirOut}}, contract.Void())).
		Declare(contract.NewMethod("Origin", nil, contract.ReturnsRef(point)))

	l, err := Plan(flatten(t, c), Options{})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(l.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(l.Records))
	}
	if l.Records[0].Record.Name != "Point" || l.Records[1].Record.Name != "Rect" {
		t.Errorf("records not dependency ordered: %s, %s", l.Records[0].Record.Name, l.Records[1].Record.Name)
	}
	r := l.Records[1]
	if r.Size != 24 || r.Align != 8 {
		t.Errorf("Rect size/align = %d/%d, want 24/8", r.Size, r.Align)
	}
	if r.Offsets[0] != 0 || r.Offsets[1] != 4 || r.Offsets[2] != 16 {
		t.Errorf("Rect offsets = %v", r.Offsets)
	}
}

func TestPlan_Rejects(t *testing.T) {
	point := contract.NewRecord("Point", contract.Field{Name: "x", Type: contract.S32})

	tests := []struct {
		method *contract.Method
		kind   nerrors.Kind
		name   string
	}{
		{
			name:   "record by value",
			method: contract.NewMethod("Move", []contract.Parameter{{Name: "p", Type: point}}, contract.Void()),
			kind:   nerrors.KindUnsupportedType,
		},
		{
			name:   "record returned by value",
			method: contract.NewMethod("Get", nil, contract.Returns(point)),
			kind:   nerrors.KindUnsupportedType,
		},
		{
			name:   "byRef void",
			method: contract.NewMethod("Nop", nil, contract.Return{ByRef: true}),
			kind:   nerrors.KindInvalidData,
		},
		{
			name: "bad field name",
			method: contract.NewMethod("Set", []contract.Parameter{{
				Name:      "v",
				Type:      contract.NewRecord("Bad", contract.Field{Name: "not valid", Type: contract.U8}),
				Direction: contract.DirIn,
			}}, contract.Void()),
			kind: nerrors.KindInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contract.New("C").Declare(tt.method)
			_, err := Plan(flatten(t, c), Options{})
			var e *nerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("err = %v, want *errors.Error", err)
			}
			if e.Kind != tt.kind || e.Phase != nerrors.PhaseLayout {
				t.Errorf("got %v/%v, want layout/%v", e.Phase, e.Kind, tt.kind)
			}
		})
	}
}

func TestPlan_SameNameDifferentRecords(t *testing.T) {
	a := contract.NewRecord("Pair", contract.Field{Name: "a", Type: contract.S32})
	b := contract.NewRecord("Pair", contract.Field{Name: "b", Type: contract.S64})
	c := contract.New("C").
		Declare(contract.NewMethod("A", []contract.Parameter{{Name: "p", Type: a, Direction: contract.DirRef}}, contract.Void())).
		Declare(contract.NewMethod("B", []contract.Parameter{{Name: "p", Type: b, Direction: contract.DirRef}}, contract.Void()))

	if _, err := Plan(flatten(t, c), Options{}); err == nil {
		t.Fatal("expected error for two records sharing a name")
	}
}

func TestPlan_BadPointerSize(t *testing.T) {
	c := contract.New("C")
	if _, err := Plan(flatten(t, c), Options{PointerSize: 2}); err == nil {
		t.Fatal("expected error")
	}
}
