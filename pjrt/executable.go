package pjrt

import (
	"unsafe"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// Executable is a transient, queryable view onto a LoadedExecutable's
// compiled program shape. It does not own execution; LoadedExecutable owns
// the PJRT_LoadedExecutable and runs the program.
type Executable struct {
	ctx    *Context
	handle unsafe.Pointer
	closed bool
}

func newExecutable(ctx *Context, handle unsafe.Pointer) *Executable {
	ctx.acquire()
	return &Executable{ctx: ctx, handle: handle}
}

// NumOutputs reports how many output buffers a call to Execute produces.
func (e *Executable) NumOutputs() (int, error) {
	n, err := pjrtabi.ExecutableNumOutputs(e.ctx.api, e.handle)
	if err != nil {
		return 0, wrapCall("Executable.NumOutputs", err)
	}
	return n, nil
}

// OutputDimensions reports the shape of each output buffer, in output order.
func (e *Executable) OutputDimensions() ([][]int64, error) {
	dims, err := pjrtabi.ExecutableOutputDimensions(e.ctx.api, e.handle)
	if err != nil {
		return nil, wrapCall("Executable.OutputDimensions", err)
	}
	return dims, nil
}

// Close destroys the executable view, logging (never returning) any failure.
func (e *Executable) Close() {
	if err := e.Destroy(); err != nil {
		e.ctx.log.Error("executable close failed", map[string]any{"error": err.Error()})
	}
}

// Destroy destroys the executable view and reports failure to the caller.
func (e *Executable) Destroy() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.ctx.release()
	if err := pjrtabi.ExecutableDestroy(e.ctx.api, e.handle); err != nil {
		return wrapCall("Executable.Destroy", err)
	}
	return nil
}
