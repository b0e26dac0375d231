package pjrt

import (
	"unsafe"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// Client owns a PJRT_Client and is the entry point for compiling programs,
// enumerating devices, and transferring host data onto them. It must be
// closed before its Context.
type Client struct {
	ctx    *Context
	handle unsafe.Pointer
	closed bool
}

// NewClient creates a PJRT client against ctx's loaded plugin.
func NewClient(ctx *Context) (*Client, error) {
	handle, err := pjrtabi.ClientCreate(ctx.api)
	if err != nil {
		return nil, wrapCall("NewClient", err)
	}
	ctx.acquire()
	return &Client{ctx: ctx, handle: handle}, nil
}

// PlatformName returns the plugin's reported platform name ("cpu", "cuda", ...).
func (c *Client) PlatformName() (string, error) {
	name, err := pjrtabi.ClientPlatformName(c.ctx.api, c.handle)
	if err != nil {
		return "", wrapCall("Client.PlatformName", err)
	}
	return name, nil
}

// NumDevices reports how many addressable devices the client has.
func (c *Client) NumDevices() (int, error) {
	devices, err := pjrtabi.ClientAddressableDevices(c.ctx.api, c.handle)
	if err != nil {
		return 0, wrapCall("Client.NumDevices", err)
	}
	return len(devices), nil
}

// GetDevice returns a non-owning view onto the deviceNumber'th addressable device.
func (c *Client) GetDevice(deviceNumber int) (DeviceView, error) {
	devices, err := pjrtabi.ClientAddressableDevices(c.ctx.api, c.handle)
	if err != nil {
		return DeviceView{}, wrapCall("Client.GetDevice", err)
	}
	if len(devices) == 0 {
		return DeviceView{}, invalidArgument("Client.GetDevice", "no addressable devices found")
	}
	if deviceNumber < 0 || deviceNumber >= len(devices) {
		return DeviceView{}, invalidArgument("Client.GetDevice", "device number is out of range")
	}
	return newDeviceView(c.ctx, devices[deviceNumber]), nil
}

// GetFirstDevice is shorthand for GetDevice(0), matching the demos' usage.
func (c *Client) GetFirstDevice() (DeviceView, error) {
	return c.GetDevice(0)
}

// CompileFromStableHloString compiles a StableHLO MLIR text program. The
// wire format appends a null terminator and reports the code size
// excluding it, matching the plugin's expected encoding (see DESIGN.md).
func (c *Client) CompileFromStableHloString(program string) (*LoadedExecutable, error) {
	buf := make([]byte, len(program)+1)
	copy(buf, program)
	// buf[len(program)] is already the zero byte.

	executableHandle, err := pjrtabi.ClientCompile(c.ctx.api, c.handle, buf, len(program), defaultCompileOptions)
	if err != nil {
		return nil, wrapCall("Client.CompileFromStableHloString", err)
	}
	return newLoadedExecutable(c.ctx, executableHandle)
}

// TransferToDevice starts an asynchronous host-to-device transfer of data
// (shaped as dims; pass nil/empty for a scalar) onto device, returning a
// Future resolving to the allocated Buffer once the transfer completes.
// data must stay alive and unmodified until the future resolves: the
// plugin may read it asynchronously (kImmutableUntilTransferCompletes).
func TransferToDevice[T Scalar](c *Client, data []T, dims []int64, device *DeviceView) (*Future[*Buffer], error) {
	pjrtType, _ := bufferType[T]()

	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = unsafe.Pointer(&data[0])
	}

	bufferHandle, doneEvent, err := pjrtabi.ClientBufferFromHostBuffer(c.ctx.api, c.handle, dataPtr, len(data), pjrtType, dims, device.rawHandle())
	if err != nil {
		return nil, wrapCall("TransferToDevice", err)
	}

	resultDims := append([]int64(nil), dims...)
	return newFuture(c.ctx, doneEvent, func() (*Buffer, error) {
		return newBuffer(c.ctx, bufferHandle, resultDims), nil
	}), nil
}

// Close destroys the client, logging (never returning) any failure.
func (c *Client) Close() {
	if err := c.Destroy(); err != nil {
		c.ctx.log.Error("client close failed", map[string]any{"error": err.Error()})
	}
}

// Destroy destroys the client and reports failure to the caller.
func (c *Client) Destroy() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.ctx.release()
	if err := pjrtabi.ClientDestroy(c.ctx.api, c.handle); err != nil {
		return wrapCall("Client.Destroy", err)
	}
	return nil
}
