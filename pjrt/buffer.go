package pjrt

import (
	"unsafe"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// Buffer is a move-only, exclusively-owned on-device buffer handle.
// Close and Destroy are a destructor/explicit-destroy pair: Close never
// fails loudly, Destroy surfaces the error.
type Buffer struct {
	ctx        *Context
	handle     unsafe.Pointer
	dimensions []int64
	moved      bool
	closed     bool
}

func newBuffer(ctx *Context, handle unsafe.Pointer, dims []int64) *Buffer {
	ctx.acquire()
	return &Buffer{ctx: ctx, handle: handle, dimensions: dims}
}

// Dimensions returns the buffer's shape as reported when it was created.
func (b *Buffer) Dimensions() []int64 {
	b.checkLive("Buffer.Dimensions")
	return b.dimensions
}

func (b *Buffer) checkLive(op string) {
	if b.moved {
		panic("pjrt: " + op + " called on a moved-from Buffer")
	}
	if b.closed {
		panic("pjrt: " + op + " called on a closed Buffer")
	}
}

// Take transfers ownership out of b; using b afterward panics.
func (b *Buffer) Take() *Buffer {
	b.checkLive("Buffer.Take")
	moved := &Buffer{ctx: b.ctx, handle: b.handle, dimensions: b.dimensions}
	b.moved = true
	b.handle = nil
	return moved
}

// rawHandle exposes the underlying buffer pointer for LoadedExecutable.Execute's argument list.
func (b *Buffer) rawHandle() unsafe.Pointer {
	b.checkLive("Buffer handle access")
	return b.handle
}

// Close destroys the device buffer, logging (never returning) any failure.
func (b *Buffer) Close() {
	if err := b.Destroy(); err != nil {
		b.ctx.log.Error("buffer close failed", map[string]any{"error": err.Error()})
	}
}

// Destroy destroys the device buffer and reports failure to the caller.
func (b *Buffer) Destroy() error {
	if b.moved || b.closed {
		return nil
	}
	b.closed = true
	b.ctx.release()
	if err := pjrtabi.BufferDestroy(b.ctx.api, b.handle); err != nil {
		return wrapCall("Buffer.Destroy", err)
	}
	return nil
}

// ToHost transfers the buffer's contents to a freshly allocated host
// slice of T, using a query-then-fetch two-call pattern: a
// null-destination probe for the byte size, then the real transfer, then
// an async wait for the transfer's completion event.
func ToHost[T Scalar](b *Buffer) (*Future[[]T], error) {
	b.checkLive("ToHost")

	requiredBytes, err := pjrtabi.RequiredHostBytes(b.ctx.api, b.handle)
	if err != nil {
		return nil, wrapCall("Buffer.ToHost", err)
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 || requiredBytes%elemSize != 0 {
		return nil, invalidArgument("Buffer.ToHost", "required byte count is not a multiple of the element size")
	}
	n := requiredBytes / elemSize
	host := make([]T, n)

	var dst unsafe.Pointer
	if n > 0 {
		dst = unsafe.Pointer(&host[0])
	}
	eventHandle, err := pjrtabi.BufferToHostBuffer(b.ctx.api, b.handle, dst, requiredBytes)
	if err != nil {
		return nil, wrapCall("Buffer.ToHost", err)
	}

	return newFuture(b.ctx, eventHandle, func() ([]T, error) {
		return host, nil
	}), nil
}
