package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testManifest = `
namespace: shapes
records:
  - name: Size
    fields: [{name: w, type: f64}, {name: h, type: f64}]
contracts:
  - name: Shape
    members:
      - name: Area
        returns: {type: f64}
  - name: Box
    bases: [Shape]
    members:
      - name: Resize
        params: [{name: s, type: Size, dir: in}]
      - name: Label
        kind: property
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_All(t *testing.T) {
	out := t.TempDir()
	var stdout bytes.Buffer

	err := run(context.Background(), config{manifest: writeManifest(t), out: out, lenient: true}, &stdout)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"shape.g.go", "box.g.go", "records.g.go"} {
		src, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !strings.Contains(string(src), "package shapes") {
			t.Errorf("%s has wrong package", name)
		}
	}
	if !strings.Contains(stdout.String(), "wrote ") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_StrictRejectsProperty(t *testing.T) {
	err := run(context.Background(), config{manifest: writeManifest(t), out: t.TempDir()}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "Label") {
		t.Fatalf("expected error naming the property, got %v", err)
	}
}

func TestRun_SingleContract(t *testing.T) {
	out := t.TempDir()
	cfg := config{manifest: writeManifest(t), out: out, contractName: "Shape", namespace: "geo"}

	if err := run(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "shape.g.go" {
		t.Fatalf("unexpected output %v", entries)
	}
	src, _ := os.ReadFile(filepath.Join(out, "shape.g.go"))
	if !strings.Contains(string(src), "package geo") {
		t.Error("namespace flag not applied")
	}

	cfg.contractName = "Missing"
	if err := run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown contract")
	}
}

func TestRun_List(t *testing.T) {
	var stdout bytes.Buffer
	cfg := config{manifest: writeManifest(t), list: true, lenient: true}

	if err := run(context.Background(), cfg, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := stdout.String()
	for _, want := range []string{
		"Package: shapes",
		"Box (2 slots)",
		"0  Area() -> f64  [Shape]",
		"1  Resize(in s: Size)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}
