//go:build darwin || linux || freebsd

package native

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/wippyai/nativeobjects/errors"
)

var (
	libcOnce sync.Once
	libcErr  error

	libc     uintptr
	callocFn func(count, size uintptr) unsafe.Pointer
	freeFn   func(p unsafe.Pointer)
)

func libcPath() string {
	switch runtime.GOOS {
	case "darwin":
		return "/usr/lib/libSystem.B.dylib"
	case "freebsd":
		return "libc.so.7"
	default:
		return "libc.so.6"
	}
}

func ensureLibc() error {
	libcOnce.Do(func() {
		var err error
		libc, err = purego.Dlopen(libcPath(), purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			libcErr = errors.Wrap(errors.PhaseRuntime, errors.KindUnsupported, err, "load libc")
			return
		}
		purego.RegisterLibFunc(&callocFn, libc, "calloc")
		purego.RegisterLibFunc(&freeFn, libc, "free")
		Logger().Debug("loaded libc allocator", zap.String("path", libcPath()))
	})
	return libcErr
}

// LibcAllocator allocates with libc calloc and free.
type LibcAllocator struct{}

// Alloc implements Allocator.
func (LibcAllocator) Alloc(count, size uintptr) (unsafe.Pointer, error) {
	if err := ensureLibc(); err != nil {
		return nil, err
	}
	p := callocFn(count, size)
	if p == nil {
		return nil, errors.AllocationFailed(count, size, nil)
	}
	return p, nil
}

// Free implements Allocator.
func (LibcAllocator) Free(p unsafe.Pointer) {
	if p == nil || ensureLibc() != nil {
		return
	}
	freeFn(p)
}

func defaultAllocator() Allocator {
	return LibcAllocator{}
}
