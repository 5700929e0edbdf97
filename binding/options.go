package binding

import (
	"go/token"

	"github.com/wippyai/nativeobjects/contract"
	"github.com/wippyai/nativeobjects/errors"
)

// DefaultRuntimeImport is the import path of the runtime generated code uses.
const DefaultRuntimeImport = "github.com/wippyai/nativeobjects/native"

// Options configures generation.
type Options struct {
	// Namespace is the Go package name of the generated files.
	Namespace string
	// RuntimeImport is the import path of the native runtime package.
	RuntimeImport string
	// Lenient skips non-method members instead of rejecting the contract.
	Lenient bool

	omitRecords bool
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = contract.DefaultNamespace
	}
	if o.RuntimeImport == "" {
		o.RuntimeImport = DefaultRuntimeImport
	}
	return o
}

func (o Options) validate() error {
	if !token.IsIdentifier(o.Namespace) || o.Namespace == "_" {
		return errors.New(errors.PhaseEmit, errors.KindInvalidInput).
			Value(o.Namespace).
			Detail("namespace %q is not a Go package name", o.Namespace).
			Build()
	}
	return nil
}
