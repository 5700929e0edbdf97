package contract

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.bytecodealliance.org/wit"

	nerrors "github.com/wippyai/nativeobjects/errors"
)

const sampleManifest = `
namespace: shapes
records:
  - name: Rect
    fields:
      - {name: origin, type: Point}
      - {name: w, type: s32}
      - {name: h, type: s32}
  - name: Point
    fields:
      - {name: x, type: s32}
      - {name: y, type: s32}
contracts:
  - name: Shape
    bases: [Named]
    members:
      - name: Area
        returns: {type: f64}
      - name: Bounds
        params:
          - {name: out, type: Rect, dir: out}
      - name: Origin
        returns: {type: Point, byRef: true}
  - name: Named
    members:
      - name: ID
        returns: {type: u32}
      - name: ".cctor"
        kind: static-constructor
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Namespace != "shapes" {
		t.Errorf("Namespace = %q", m.Namespace)
	}

	reg, err := m.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}

	shape, ok := reg.Lookup("Shape")
	if !ok {
		t.Fatal("Shape not registered")
	}
	if len(shape.Bases) != 1 || shape.Bases[0].Name != "Named" {
		t.Fatalf("Shape bases = %v", shape.Bases)
	}

	list, err := Flatten(shape, FlattenOptions{})
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := []string{"ID", "Area", "Bounds", "Origin"}
	if got := list.Names(); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	bounds := list.Slots[2].Method
	if bounds.Params[0].Direction != DirOut {
		t.Errorf("Bounds param direction = %v", bounds.Params[0].Direction)
	}
	rect := bounds.Params[0].Type
	if !rect.IsRecord() || len(rect.Record.Fields) != 3 {
		t.Fatalf("Rect not resolved: %+v", rect)
	}
	if !rect.Record.Fields[0].Type.IsRecord() {
		t.Error("Rect.origin should resolve to the Point record declared later")
	}
	if _, ok := rect.WIT.(*wit.TypeDef); !ok {
		t.Errorf("record WIT = %T, want *wit.TypeDef", rect.WIT)
	}

	origin := list.Slots[3].Method
	if !origin.Return.ByRef || origin.Return.Type.Name != "Point" {
		t.Errorf("Origin return = %+v", origin.Return)
	}
}

func TestParseManifest_DefaultNamespace(t *testing.T) {
	m, err := ParseManifest([]byte("contracts: []\n"))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Namespace != DefaultNamespace {
		t.Errorf("Namespace = %q, want %q", m.Namespace, DefaultNamespace)
	}
}

func TestParseManifest_UnknownKey(t *testing.T) {
	_, err := ParseManifest([]byte("contracts: []\nextra: 1\n"))
	if !errors.Is(err, &nerrors.Error{Phase: nerrors.PhaseLoad, Kind: nerrors.KindInvalidData}) {
		t.Fatalf("err = %v, want load/invalid_data", err)
	}
}

func TestManifestRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		kind nerrors.Kind
	}{
		{
			name: "unknown base",
			yaml: "contracts:\n  - name: A\n    bases: [Missing]\n",
			kind: nerrors.KindNotFound,
		},
		{
			name: "duplicate contract",
			yaml: "contracts:\n  - name: A\n  - name: A\n",
			kind: nerrors.KindDuplicateContract,
		},
		{
			name: "unknown type",
			yaml: "contracts:\n  - name: A\n    members:\n      - name: M\n        params: [{name: s, type: string}]\n",
			kind: nerrors.KindUnsupportedType,
		},
		{
			name: "bad direction",
			yaml: "contracts:\n  - name: A\n    members:\n      - name: M\n        params: [{name: s, type: s32, dir: inout}]\n",
			kind: nerrors.KindInvalidData,
		},
		{
			name: "recursive record",
			yaml: "records:\n  - name: Node\n    fields: [{name: next, type: Node}]\ncontracts: []\n",
			kind: nerrors.KindInvalidData,
		},
		{
			name: "byRef void",
			yaml: "contracts:\n  - name: A\n    members:\n      - name: M\n        returns: {byRef: true}\n",
			kind: nerrors.KindInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseManifest: %v", err)
			}
			_, err = m.Registry()
			var e *nerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("err = %v, want *errors.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", e.Kind, tt.kind, err)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Contracts) != 2 || len(m.Records) != 2 {
		t.Errorf("contracts=%d records=%d", len(m.Contracts), len(m.Records))
	}

	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	a, b := New("A"), New("B")
	reg.MustRegister(a, b)

	if err := reg.Register(New("A")); err == nil {
		t.Error("expected duplicate error")
	}
	if err := reg.Register(New("")); err == nil {
		t.Error("expected error for unnamed contract")
	}

	got := reg.Contracts()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Contracts() = %v", got)
	}
	got[0] = nil
	if reg.Contracts()[0] != a {
		t.Error("Contracts() must return a copy")
	}
}
