package native

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/nativeobjects/resource"
)

var handles = newHandles()

func newHandles() *resource.UnifiedTable {
	t := resource.NewTable()
	t.Subscribe(handleLogger{})
	return t
}

// Handles returns the process-wide table holding every wrapped Go value.
func Handles() *resource.UnifiedTable {
	return handles
}

type handleLogger struct{}

func (handleLogger) OnHandleEvent(e resource.Event) {
	if ce := Logger().Check(zap.DebugLevel, "handle "+e.Type.String()); ce != nil {
		ce.Write(
			zap.Uint32("handle", uint32(e.Handle)),
			zap.String("type", typeName(e.Value)))
	}
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
