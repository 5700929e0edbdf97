package codegen

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/nativeobjects/contract"
	"github.com/wippyai/nativeobjects/layout"
)

// Exports is the rendered Go-to-native direction of a contract.
type Exports struct {
	// Thunks names the native-callable functions in slot order.
	Thunks []string
	// VTable names the lazily converted, shared vtable.
	VTable string
	// Object names the wrapper type owning one native object.
	Object string
	Source string
}

// EmitExports renders one thunk per slot, the shared vtable and the
// wrap-instance entry point.
func EmitExports(l *layout.Layout, sigs []Signature) *Exports {
	name := l.Contract
	ex := &Exports{
		VTable: lowerFirst(name) + "VTable",
		Object: name + "Object",
	}

	var w writer
	for _, sig := range sigs {
		thunk := thunkName(name, sig.Method.Name)
		ex.Thunks = append(ex.Thunks, thunk)
		emitThunk(&w, name, thunk, sig)
		w.blank()
	}

	w.line("// %s converts the %s thunks once; every object shares the result.", ex.VTable, name)
	w.line("var %s = sync.OnceValue(func() []uintptr {", ex.VTable)
	w.line("return native.Callbacks(")
	for _, t := range ex.Thunks {
		w.line("%s,", t)
	}
	w.line(")")
	w.line("})")
	w.blank()

	w.line("// %s is a Go %s exposed to native code.", ex.Object, name)
	w.line("type %s struct {", ex.Object)
	w.line("ptr unsafe.Pointer")
	w.line("}")
	w.blank()

	w.line("// Wrap%s exposes impl to native code as a vtable object.", name)
	w.line("// The object holds impl until Close is called.")
	w.line("func Wrap%s(impl %s) (*%s, error) {", name, name, ex.Object)
	w.line("ptr, err := native.NewObject(%s(), impl)", ex.VTable)
	w.line("if err != nil {")
	w.line("return nil, err")
	w.line("}")
	w.line("return &%s{ptr: ptr}, nil", ex.Object)
	w.line("}")
	w.blank()

	w.line("// Pointer returns the native object pointer, nil once closed.")
	w.line("func (o *%s) Pointer() unsafe.Pointer {", ex.Object)
	w.line("return o.ptr")
	w.line("}")
	w.blank()

	w.line("// Close releases the native object and the reference to the Go value.")
	w.line("// Calling Close more than once is a no-op.")
	w.line("func (o *%s) Close() error {", ex.Object)
	w.line("native.Dispose(&o.ptr)")
	w.line("return nil")
	w.line("}")

	ex.Source = w.String()
	Logger().Debug("emitted exports",
		zap.String("contract", name),
		zap.Strings("thunks", ex.Thunks))
	return ex
}

func emitThunk(w *writer, contractName, thunk string, sig Signature) {
	params := []string{"self unsafe.Pointer"}
	var args []string
	for _, p := range sig.Params {
		params = append(params, p.Name+" "+p.Native())
		switch p.Direction {
		case contract.DirIn:
			args = append(args, "*"+p.Name)
		case contract.DirOut:
		default:
			args = append(args, p.Name)
		}
	}
	if sig.ResultOut {
		params = append(params, resultName+" *"+sig.Result)
	}

	head := "func " + thunk + "(" + join(params) + ")"
	if r := sig.NativeResult(); r != "" {
		head += " " + r
	}
	w.line("%s {", head)
	w.line("impl := native.Resolve(self).(%s)", contractName)

	call := "impl." + sig.Method.Name + "(" + join(args) + ")"
	outs := sig.Outs()

	var temps []string
	if sig.Result != "" {
		temps = append(temps, "r0")
	}
	for range outs {
		temps = append(temps, "r"+strconv.Itoa(len(temps)))
	}

	switch {
	case len(temps) == 0:
		w.line("%s", call)
	case len(outs) == 0:
		emitReturn(w, sig, call)
	default:
		w.line("%s := %s", join(temps), call)
		first := 0
		if sig.Result != "" {
			first = 1
		}
		for i, p := range outs {
			w.line("*%s = %s", p.Name, temps[first+i])
		}
		if sig.Result != "" {
			emitReturn(w, sig, "r0")
		}
	}
	w.line("}")
}

// emitReturn hands the primary result back to the native caller.
func emitReturn(w *writer, sig Signature, expr string) {
	switch {
	case sig.ResultOut:
		w.line("*%s = %s", resultName, expr)
	case sig.ByRef:
		w.line("return unsafe.Pointer(%s)", expr)
	default:
		w.line("return %s", expr)
	}
}
