package codegen

import (
	"fmt"
	"strings"
)

type writer struct {
	strings.Builder
}

func (w *writer) printf(format string, args ...any) {
	fmt.Fprintf(&w.Builder, format, args...)
}

func (w *writer) line(format string, args ...any) {
	w.printf(format, args...)
	w.WriteByte('\n')
}

func (w *writer) blank() {
	w.WriteByte('\n')
}
