package pjrt

import (
	"io"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pjrtgo/pjrtgo/internal/pjrtlog"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	return &Context{
		traceID:  "test",
		log:      pjrtlog.New("test").WithOutput(io.Discard),
		refcount: 1,
	}
}

func TestBufferTakeTransfersHandleAndDimensions(t *testing.T) {
	ctx := newTestContext(t)
	var sentinel int
	b := newBuffer(ctx, unsafe.Pointer(&sentinel), []int64{2, 3})

	moved := b.Take()
	assert.Equal(t, []int64{2, 3}, moved.Dimensions())
	assert.Equal(t, unsafe.Pointer(&sentinel), moved.rawHandle())
}

func TestBufferUseAfterTakePanics(t *testing.T) {
	ctx := newTestContext(t)
	var sentinel int
	b := newBuffer(ctx, unsafe.Pointer(&sentinel), []int64{1})
	_ = b.Take()

	assert.Panics(t, func() { b.Dimensions() })
	assert.Panics(t, func() { b.rawHandle() })
}

func TestBufferDestroyAfterTakeIsNoop(t *testing.T) {
	ctx := newTestContext(t)
	var sentinel int
	b := newBuffer(ctx, unsafe.Pointer(&sentinel), []int64{1})
	_ = b.Take()

	require.NoError(t, b.Destroy())
}
