package contract

import (
	"errors"
	"slices"
	"testing"

	nerrors "github.com/wippyai/nativeobjects/errors"
)

func voidMethod(name string) *Method {
	return NewMethod(name, nil, Void())
}

func TestFlatten_BaseMethodsFirst(t *testing.T) {
	base := New("B").Declare(voidMethod("B1")).Declare(voidMethod("B2"))
	derived := New("D", base).Declare(voidMethod("D1"))

	list, err := Flatten(derived, FlattenOptions{})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	want := []string{"B1", "B2", "D1"}
	if got := list.Names(); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i, s := range list.Slots {
		if s.Index != i {
			t.Errorf("slot %d has index %d", i, s.Index)
		}
	}
	if list.Slots[0].Owner != base || list.Slots[2].Owner != derived {
		t.Error("slot owners not recorded")
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	a := New("A").Declare(voidMethod("A1"))
	b := New("B", a).Declare(voidMethod("B1")).Declare(voidMethod("B2"))
	c := New("C", a).Declare(voidMethod("C1"))
	d := New("D", b, c).Declare(voidMethod("D1"))

	first, err := Flatten(d, FlattenOptions{})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Flatten(d, FlattenOptions{})
		if err != nil {
			t.Fatalf("Flatten: %v", err)
		}
		if !slices.Equal(first.Names(), again.Names()) {
			t.Fatalf("run %d: %v != %v", i, again.Names(), first.Names())
		}
	}
}

func TestFlatten_SharedAncestorOnce(t *testing.T) {
	a := New("A").Declare(voidMethod("A1"))
	b := New("B", a).Declare(voidMethod("B1"))
	c := New("C", a).Declare(voidMethod("C1"))
	d := New("D", b, c).Declare(voidMethod("D1"))

	list, err := Flatten(d, FlattenOptions{})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := []string{"A1", "B1", "C1", "D1"}
	if got := list.Names(); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestFlatten_Errors(t *testing.T) {
	tests := []struct {
		build func() *Contract
		kind  nerrors.Kind
		name  string
	}{
		{
			name: "diamond collision",
			build: func() *Contract {
				left := New("Left").Declare(voidMethod("Reset"))
				right := New("Right").Declare(voidMethod("Reset"))
				return New("Both", left, right)
			},
			kind: nerrors.KindDuplicateMethod,
		},
		{
			name: "own method shadows base",
			build: func() *Contract {
				base := New("Base").Declare(voidMethod("Close"))
				return New("Derived", base).Declare(voidMethod("Close"))
			},
			kind: nerrors.KindDuplicateMethod,
		},
		{
			name: "property member",
			build: func() *Contract {
				return New("Counter").
					Declare(voidMethod("Inc")).
					DeclareMember(MemberProperty, "Value")
			},
			kind: nerrors.KindUnsupportedMember,
		},
		{
			name: "cycle",
			build: func() *Contract {
				a := New("A")
				b := New("B", a)
				a.Bases = []*Contract{b}
				return a
			},
			kind: nerrors.KindCycle,
		},
		{
			name: "unexported method name",
			build: func() *Contract {
				return New("Lower").Declare(voidMethod("add"))
			},
			kind: nerrors.KindInvalidData,
		},
		{
			name: "duplicate parameter",
			build: func() *Contract {
				return New("Dup").Declare(NewMethod("Set", []Parameter{
					{Name: "v", Type: S32},
					{Name: "v", Type: S32},
				}, Void()))
			},
			kind: nerrors.KindInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(tt.build(), FlattenOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			var e *nerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("error %v is not *errors.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", e.Kind, tt.kind, err)
			}
		})
	}
}

func TestFlatten_SkipUnsupported(t *testing.T) {
	c := New("Counter").
		DeclareMember(MemberStaticConstructor, ".cctor").
		Declare(voidMethod("Inc")).
		DeclareMember(MemberEvent, "Changed").
		Declare(voidMethod("Reset"))

	list, err := Flatten(c, FlattenOptions{SkipUnsupported: true})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := []string{"Inc", "Reset"}
	if got := list.Names(); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestFlatten_ConstructorsExcluded(t *testing.T) {
	c := New("Widget").
		DeclareMember(MemberConstructor, ".ctor").
		Declare(voidMethod("Draw"))

	list, err := Flatten(c, FlattenOptions{})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if list.Len() != 1 {
		t.Fatalf("Len = %d, want 1", list.Len())
	}
}

func TestMethodString(t *testing.T) {
	m := NewMethod("TryGet", []Parameter{
		{Name: "key", Type: S32},
		{Name: "value", Type: S32, Direction: DirOut},
	}, Returns(Bool))

	if got, want := m.String(), "TryGet(key: s32, out value: s32) -> bool"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if outs := m.Outs(); len(outs) != 1 || outs[0].Name != "value" {
		t.Errorf("Outs() = %v", outs)
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{"": DirValue, "value": DirValue, "in": DirIn, "OUT": DirOut, "ref": DirRef}
	for in, want := range tests {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDirection("inout"); err == nil {
		t.Error("expected error for inout")
	}
}
