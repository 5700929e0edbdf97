package codegen

import (
	"go.uber.org/zap"

	"github.com/wippyai/nativeobjects/contract"
	"github.com/wippyai/nativeobjects/layout"
)

// Invoker is the rendered native-to-Go direction of a contract.
type Invoker struct {
	// Type names the generated invoker struct.
	Type   string
	Source string
}

// EmitInvoker renders a typed wrapper whose methods call through the vtable
// of a native object, plus the wrap-pointer entry point.
func EmitInvoker(l *layout.Layout, sigs []Signature) *Invoker {
	name := l.Contract
	inv := &Invoker{Type: name + "Invoker"}

	var w writer
	w.line("// %s calls a native %s object through its vtable.", inv.Type, name)
	w.line("type %s struct {", inv.Type)
	w.line("ptr unsafe.Pointer")
	w.line("}")
	w.blank()

	w.line("// Wrap%sPointer wraps a native object laid out as a %s.", name, name)
	w.line("// The object must stay alive while the invoker is used.")
	w.line("func Wrap%sPointer(ptr unsafe.Pointer) %s {", name, inv.Type)
	w.line("return %s{ptr: ptr}", inv.Type)
	w.line("}")
	w.blank()

	w.line("// Pointer returns the wrapped native object pointer.")
	w.line("func (inv %s) Pointer() unsafe.Pointer {", inv.Type)
	w.line("return inv.ptr")
	w.line("}")
	w.blank()

	for _, sig := range sigs {
		emitInvokerMethod(&w, name, inv.Type, sig)
		w.blank()
	}

	w.line("var _ %s = %s{}", name, inv.Type)

	inv.Source = w.String()
	Logger().Debug("emitted invoker",
		zap.String("contract", name),
		zap.Int("methods", len(sigs)))
	return inv
}

func emitInvokerMethod(w *writer, contractName, typeName string, sig Signature) {
	args := []string{"inv.ptr"}
	for _, p := range sig.Params {
		switch p.Direction {
		case contract.DirIn, contract.DirOut:
			args = append(args, "&"+p.Name)
		default:
			args = append(args, p.Name)
		}
	}
	if sig.ResultOut {
		args = append(args, "&"+resultName)
	}

	w.line("func (inv %s) %s {", typeName, sig.HostMethod())
	w.line("fn := native.Bind[%s](native.Slot(inv.ptr, %s))",
		sig.FuncType(), SlotConst(contractName, sig.Method.Name))

	call := "fn(" + join(args) + ")"
	if sig.ByRef {
		call = "(" + sig.HostResult() + ")(" + call + ")"
	}

	switch {
	case len(sig.Outs()) > 0:
		if sig.Result != "" && !sig.ResultOut {
			w.line("%s = %s", resultName, call)
		} else {
			w.line("%s", call)
		}
		w.line("return")
	case sig.ResultOut:
		w.line("var %s %s", resultName, sig.Result)
		w.line("%s", call)
		w.line("return %s", resultName)
	case sig.Result != "":
		w.line("return %s", call)
	default:
		w.line("%s", call)
	}
	w.line("}")
}
