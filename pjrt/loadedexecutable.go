package pjrt

import (
	"unsafe"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// LoadedExecutable is a compiled, device-loaded program ready to run.
// It owns the PJRT_LoadedExecutable handle and the derived Executable view
// used to pre-fetch output shape metadata: the constructor eagerly queries
// GetExecutable once, so NumOutputs()/OutputDimensions() never need to
// touch the plugin again.
type LoadedExecutable struct {
	ctx              *Context
	handle           unsafe.Pointer
	executable       *Executable
	numOutputs       int
	outputDimensions [][]int64
	closed           bool
}

func newLoadedExecutable(ctx *Context, handle unsafe.Pointer) (*LoadedExecutable, error) {
	executableHandle, err := pjrtabi.LoadedExecutableGetExecutable(ctx.api, handle)
	if err != nil {
		return nil, wrapCall("LoadedExecutable.GetExecutable", err)
	}
	executable := newExecutable(ctx, executableHandle)

	numOutputs, err := executable.NumOutputs()
	if err != nil {
		executable.Close()
		return nil, err
	}
	outputDims, err := executable.OutputDimensions()
	if err != nil {
		executable.Close()
		return nil, err
	}

	ctx.acquire()
	return &LoadedExecutable{
		ctx:              ctx,
		handle:           handle,
		executable:       executable,
		numOutputs:       numOutputs,
		outputDimensions: outputDims,
	}, nil
}

// NumOutputs reports how many output buffers Execute produces.
func (l *LoadedExecutable) NumOutputs() int { return l.numOutputs }

// OutputDimensions reports the shape of each output buffer.
func (l *LoadedExecutable) OutputDimensions() [][]int64 { return l.outputDimensions }

// Execute runs the program on a single device with the given input
// buffers and returns a Future resolving to the output buffers once the
// device reports completion. Multi-device launches are not supported.
func (l *LoadedExecutable) Execute(device *DeviceView, args []*Buffer) (*Future[[]*Buffer], error) {
	if l.closed {
		return nil, stateError("LoadedExecutable.Execute", "executable already closed")
	}

	argHandles := make([]unsafe.Pointer, len(args))
	for i, a := range args {
		argHandles[i] = a.rawHandle()
	}

	outputHandles, eventHandle, err := pjrtabi.LoadedExecutableExecute(l.ctx.api, l.handle, device.rawHandle(), argHandles, l.numOutputs)
	if err != nil {
		return nil, wrapCall("LoadedExecutable.Execute", err)
	}

	return newFuture(l.ctx, eventHandle, func() ([]*Buffer, error) {
		outputs := make([]*Buffer, len(outputHandles))
		for i, h := range outputHandles {
			var dims []int64
			if i < len(l.outputDimensions) {
				dims = l.outputDimensions[i]
			}
			outputs[i] = newBuffer(l.ctx, h, dims)
		}
		return outputs, nil
	}), nil
}

// Close destroys the loaded executable (and its Executable view), logging
// but never returning a failure.
func (l *LoadedExecutable) Close() {
	if err := l.Destroy(); err != nil {
		l.ctx.log.Error("loaded executable close failed", map[string]any{"error": err.Error()})
	}
}

// Destroy destroys the loaded executable and reports failure to the caller.
func (l *LoadedExecutable) Destroy() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.executable.Close()
	l.ctx.release()
	if err := pjrtabi.LoadedExecutableDestroy(l.ctx.api, l.handle); err != nil {
		return wrapCall("LoadedExecutable.Destroy", err)
	}
	return nil
}
