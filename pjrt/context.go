package pjrt

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/pjrtgo/pjrtgo/internal/pjrtlog"
	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// PJRTAPIMajorVersion and PJRTAPIMinorVersion are the versions this wrapper
// was written against. Context.APIVersion lets callers compare against the
// version the loaded plugin actually reports.
const (
	PJRTAPIMajorVersion = 0
	PJRTAPIMinorVersion = 54
)

const pluginPathEnvVar = "PJRT_PLUGIN_PATH"

// Context is the root of the object graph. Every Client, DeviceView,
// Buffer, Executable, LoadedExecutable, and Event holds a borrowed
// (non-owning) reference back to its Context. Clients, Buffers,
// Executables, and LoadedExecutables must be closed before the Context
// itself is closed; refcount counts those open handles at runtime since Go
// has no C++-style destructor-ordering guarantees. DeviceView and Event
// have no Close and are not counted.
type Context struct {
	libHandle unsafe.Pointer
	api       *pjrtabi.Api
	traceID   string
	log       *pjrtlog.Logger
	refcount  int32
	closed    bool
}

// ContextOption configures NewContext. Functional options stand in for
// constructor-argument + On*-setter style configuration where Go has no
// constructor overloading.
type ContextOption func(*contextConfig)

type contextConfig struct {
	pluginPath string
}

// WithPluginPath overrides plugin path resolution (constructor argument >
// --plugin-path flag > PJRT_PLUGIN_PATH env, see cmd/pjrtctl).
func WithPluginPath(path string) ContextOption {
	return func(c *contextConfig) { c.pluginPath = path }
}

// NewContext loads the PJRT plugin and initializes it. Plugin path
// resolution order: the WithPluginPath option, a bound "plugin-path" viper
// key (cobra flag), then the PJRT_PLUGIN_PATH environment variable.
func NewContext(opts ...ContextOption) (*Context, error) {
	cfg := contextConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	path := cfg.pluginPath
	if path == "" {
		path = viper.GetString("plugin-path")
	}
	if path == "" {
		path = os.Getenv(pluginPathEnvVar)
	}
	if path == "" {
		return nil, invalidArgument("NewContext", "no plugin path given: set WithPluginPath, --plugin-path, or "+pluginPathEnvVar)
	}

	traceID := uuid.NewString()
	log := pjrtlog.New(traceID)

	libHandle, api, err := pjrtabi.LoadPlugin(path)
	if err != nil {
		return nil, wrapCall("NewContext", err)
	}

	major, minor := api.APIVersion()
	log.Info("pjrt plugin loaded", map[string]any{
		"plugin_path":   path,
		"api_major":     major,
		"api_minor":     minor,
		"wrapper_major": PJRTAPIMajorVersion,
		"wrapper_minor": PJRTAPIMinorVersion,
	})

	if major != PJRTAPIMajorVersion || minor != PJRTAPIMinorVersion {
		_ = pjrtabi.ClosePlugin(libHandle)
		return nil, newError(PluginLoadError, "NewContext", fmt.Errorf(
			"plugin %s reports PJRT API version %d.%d, wrapper was built against %d.%d",
			path, major, minor, PJRTAPIMajorVersion, PJRTAPIMinorVersion))
	}

	return &Context{
		libHandle: libHandle,
		api:       api,
		traceID:   traceID,
		log:       log,
	}, nil
}

// APIVersion returns the major/minor version the loaded plugin reports.
func (c *Context) APIVersion() (major, minor int) {
	return c.api.APIVersion()
}

// TraceID identifies this Context in log output.
func (c *Context) TraceID() string { return c.traceID }

func (c *Context) acquire() {
	atomic.AddInt32(&c.refcount, 1)
}

func (c *Context) release() {
	atomic.AddInt32(&c.refcount, -1)
}

// Close unloads the plugin. It never returns an error or panics; failures
// are logged. Callers that must observe the failure should use Destroy.
func (c *Context) Close() {
	if err := c.Destroy(); err != nil {
		c.log.Error("context close failed", map[string]any{"error": err.Error()})
	}
}

// Destroy unloads the plugin and reports failure. Calling it while any
// Client/DeviceView/Buffer/Executable/LoadedExecutable/Event borrowed from
// this Context is still open is a programming error.
func (c *Context) Destroy() error {
	if c.closed {
		return nil
	}
	if rc := atomic.LoadInt32(&c.refcount); rc != 0 {
		return stateError("Context.Destroy", fmt.Sprintf("%d dependent handle(s) still open", rc))
	}
	c.closed = true
	if err := pjrtabi.ClosePlugin(c.libHandle); err != nil {
		return wrapCall("Context.Destroy", err)
	}
	return nil
}
