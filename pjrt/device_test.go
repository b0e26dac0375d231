package pjrt

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestDeviceViewTakeTransfersHandle(t *testing.T) {
	var sentinel int
	handle := unsafe.Pointer(&sentinel)
	d := newDeviceView(nil, handle)

	moved := d.Take()
	assert.Equal(t, handle, moved.rawHandle())
}

func TestDeviceViewUseAfterTakePanics(t *testing.T) {
	var sentinel int
	d := newDeviceView(nil, unsafe.Pointer(&sentinel))
	_ = d.Take()

	assert.Panics(t, func() { _, _ = d.Description() })
	assert.Panics(t, func() { d.rawHandle() })
}

func TestDeviceViewDoubleTakePanics(t *testing.T) {
	var sentinel int
	d := newDeviceView(nil, unsafe.Pointer(&sentinel))
	_ = d.Take()

	assert.Panics(t, func() { d.Take() })
}
