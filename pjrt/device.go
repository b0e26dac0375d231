package pjrt

import (
	"unsafe"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// DeviceView is a non-owning reference to a device the Client reported.
// PJRT_Client owns the underlying device; DeviceView never destroys it.
// It is move-only: once moved (via Take), the source is left unusable.
type DeviceView struct {
	ctx    *Context
	handle unsafe.Pointer
	moved  bool
}

func newDeviceView(ctx *Context, handle unsafe.Pointer) DeviceView {
	return DeviceView{ctx: ctx, handle: handle}
}

// Take transfers ownership of the view out of d, the Go analog of a C++
// move constructor. Using d after Take panics, matching the "moved-from
// object is unusable" discipline move-only handles rely on.
func (d *DeviceView) Take() DeviceView {
	if d.moved {
		panic("pjrt: DeviceView used after being moved")
	}
	moved := DeviceView{ctx: d.ctx, handle: d.handle}
	d.moved = true
	d.handle = nil
	return moved
}

func (d *DeviceView) checkLive(op string) {
	if d.moved {
		panic("pjrt: " + op + " called on a moved-from DeviceView")
	}
}

// Description returns the plugin's human-readable device description.
func (d *DeviceView) Description() (string, error) {
	d.checkLive("DeviceView.Description")
	desc, err := pjrtabi.DeviceDescription(d.ctx.api, d.handle)
	if err != nil {
		return "", wrapCall("DeviceView.Description", err)
	}
	return desc, nil
}

func (d *DeviceView) rawHandle() unsafe.Pointer {
	d.checkLive("DeviceView handle access")
	return d.handle
}
