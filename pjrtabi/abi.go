// Package pjrtabi is the cgo boundary to the PJRT C plugin ABI.
//
// Every exported function here takes and returns plain Go values
// (unsafe.Pointer for opaque PJRT handles, Go slices/strings for data) so
// that the pjrt package above it never needs to import "C" itself. All
// struct-size-versioned args structs and the PJRT_Api function table live
// in this one file's cgo preamble, the way c_bindings.go keeps the whole
// ABI surface in a single translation unit.
package pjrtabi

/*
#include <stdint.h>
#include <stddef.h>
#include <stdlib.h>
#include <string.h>
#include <dlfcn.h>

// ---- Opaque handle types -------------------------------------------------

typedef struct PJRT_Error PJRT_Error;
typedef struct PJRT_Client PJRT_Client;
typedef struct PJRT_Device PJRT_Device;
typedef struct PJRT_DeviceDescription PJRT_DeviceDescription;
typedef struct PJRT_Buffer PJRT_Buffer;
typedef struct PJRT_Executable PJRT_Executable;
typedef struct PJRT_LoadedExecutable PJRT_LoadedExecutable;
typedef struct PJRT_Event PJRT_Event;

// ---- Element type enum ----------------------------------------------------

typedef enum {
  PJRT_Buffer_Type_INVALID = 0,
  PJRT_Buffer_Type_S8 = 1,
  PJRT_Buffer_Type_S16 = 2,
  PJRT_Buffer_Type_S32 = 3,
  PJRT_Buffer_Type_S64 = 4,
  PJRT_Buffer_Type_U8 = 5,
  PJRT_Buffer_Type_U16 = 6,
  PJRT_Buffer_Type_U32 = 7,
  PJRT_Buffer_Type_U64 = 8,
  PJRT_Buffer_Type_F32 = 9,
  PJRT_Buffer_Type_F64 = 10
} PJRT_Buffer_Type;

// Host buffer semantics: the only one this wrapper ever requests.
#define PJRT_HostBufferSemantics_kImmutableUntilTransferCompletes 0

// ---- Args structs -----------------------------------------------------

typedef struct {
  size_t struct_size;
  void* extension_start;
  int major_version;
  int minor_version;
} PJRT_Api_Version;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Error* error;
  const char* message;
  size_t message_size;
} PJRT_Error_Message_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Error* error;
} PJRT_Error_Destroy_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
} PJRT_Plugin_Initialize_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  const char* const* create_options_unused; // no distributed KV store; always null
  size_t num_options;
  void* kv_get_callback;
  void* kv_get_user_arg;
  void* kv_put_callback;
  void* kv_put_user_arg;
  void* kv_try_get_callback;
  void* kv_try_get_user_arg;
  PJRT_Client* client;
} PJRT_Client_Create_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Client* client;
} PJRT_Client_Destroy_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Client* client;
  const char* platform_name;
  size_t platform_name_size;
} PJRT_Client_PlatformName_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Client* client;
  PJRT_Device* const* addressable_devices;
  size_t num_addressable_devices;
} PJRT_Client_AddressableDevices_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  char* code;
  size_t code_size;
  const char* format;
  size_t format_size;
} PJRT_Program;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Client* client;
  const PJRT_Program* program;
  const char* compile_options;
  size_t compile_options_size;
  PJRT_LoadedExecutable* executable;
} PJRT_Client_Compile_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Client* client;
  const void* data;
  PJRT_Buffer_Type type;
  const int64_t* dims;
  size_t num_dims;
  const int64_t* byte_strides;
  size_t num_byte_strides;
  int host_buffer_semantics;
  PJRT_Device* device;
  PJRT_Buffer* buffer;
  PJRT_Event* done_with_host_buffer;
} PJRT_Client_BufferFromHostBuffer_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Device* device;
  PJRT_DeviceDescription* device_description;
} PJRT_Device_GetDescription_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_DeviceDescription* device_description;
  const char* to_string;
  size_t to_string_size;
} PJRT_DeviceDescription_ToString_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Buffer* buffer;
} PJRT_Buffer_Destroy_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Buffer* src;
  void* host_layout;
  void* dst;
  int64_t dst_size;
  PJRT_Event* event;
} PJRT_Buffer_ToHostBuffer_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Buffer* buffer;
  const int64_t* dims;
  size_t num_dims;
} PJRT_Buffer_Dimensions_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Executable* executable;
} PJRT_Executable_Destroy_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Executable* executable;
  size_t num_outputs;
} PJRT_Executable_NumOutputs_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Executable* executable;
  size_t num_outputs;
  const size_t* dim_sizes;
  const int64_t* dims;
} PJRT_Executable_OutputDimensions_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_LoadedExecutable* loaded_executable;
  PJRT_Executable* executable;
} PJRT_LoadedExecutable_GetExecutable_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_LoadedExecutable* executable;
} PJRT_LoadedExecutable_Destroy_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  int64_t launch_id;
  size_t num_send_ops;
  void* send_callbacks;
  size_t num_recv_ops;
  void* recv_callbacks;
  const int64_t* non_donatable_input_indices;
  size_t num_non_donatable_input_indices;
  void* context;
} PJRT_ExecuteOptions;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_LoadedExecutable* executable;
  PJRT_ExecuteOptions* options;
  PJRT_Buffer* const* const* argument_lists;
  size_t num_devices;
  size_t num_args;
  PJRT_Buffer** const* output_lists;
  PJRT_Event** device_complete_events;
  PJRT_Device* execute_device;
} PJRT_LoadedExecutable_Execute_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Event* event;
} PJRT_Event_Await_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Event* event;
} PJRT_Event_Error_Args;

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Event* event;
} PJRT_Event_Destroy_Args;

typedef void (*PJRT_Event_OnReadyCallback)(PJRT_Error* error, void* user_arg);

typedef struct {
  size_t struct_size;
  void* extension_start;
  PJRT_Event* event;
  PJRT_Event_OnReadyCallback callback;
  void* user_arg;
} PJRT_Event_OnReady_Args;

// ---- The function table ---------------------------------------------------

typedef struct PJRT_Api {
  size_t struct_size;
  void* extension_start;
  PJRT_Api_Version pjrt_api_version;

  PJRT_Error* (*PJRT_Error_Destroy)(PJRT_Error_Destroy_Args* args);
  PJRT_Error* (*PJRT_Error_Message)(PJRT_Error_Message_Args* args);

  PJRT_Error* (*PJRT_Plugin_Initialize)(PJRT_Plugin_Initialize_Args* args);

  PJRT_Error* (*PJRT_Client_Create)(PJRT_Client_Create_Args* args);
  PJRT_Error* (*PJRT_Client_Destroy)(PJRT_Client_Destroy_Args* args);
  PJRT_Error* (*PJRT_Client_PlatformName)(PJRT_Client_PlatformName_Args* args);
  PJRT_Error* (*PJRT_Client_Compile)(PJRT_Client_Compile_Args* args);
  PJRT_Error* (*PJRT_Client_AddressableDevices)(PJRT_Client_AddressableDevices_Args* args);
  PJRT_Error* (*PJRT_Client_BufferFromHostBuffer)(PJRT_Client_BufferFromHostBuffer_Args* args);

  PJRT_Error* (*PJRT_Device_GetDescription)(PJRT_Device_GetDescription_Args* args);
  PJRT_Error* (*PJRT_DeviceDescription_ToString)(PJRT_DeviceDescription_ToString_Args* args);

  PJRT_Error* (*PJRT_Buffer_Destroy)(PJRT_Buffer_Destroy_Args* args);
  PJRT_Error* (*PJRT_Buffer_ToHostBuffer)(PJRT_Buffer_ToHostBuffer_Args* args);
  PJRT_Error* (*PJRT_Buffer_Dimensions)(PJRT_Buffer_Dimensions_Args* args);

  PJRT_Error* (*PJRT_Executable_Destroy)(PJRT_Executable_Destroy_Args* args);
  PJRT_Error* (*PJRT_Executable_NumOutputs)(PJRT_Executable_NumOutputs_Args* args);
  PJRT_Error* (*PJRT_Executable_OutputDimensions)(PJRT_Executable_OutputDimensions_Args* args);

  PJRT_Error* (*PJRT_LoadedExecutable_GetExecutable)(PJRT_LoadedExecutable_GetExecutable_Args* args);
  PJRT_Error* (*PJRT_LoadedExecutable_Destroy)(PJRT_LoadedExecutable_Destroy_Args* args);
  PJRT_Error* (*PJRT_LoadedExecutable_Execute)(PJRT_LoadedExecutable_Execute_Args* args);

  PJRT_Error* (*PJRT_Event_Await)(PJRT_Event_Await_Args* args);
  PJRT_Error* (*PJRT_Event_Error)(PJRT_Event_Error_Args* args);
  PJRT_Error* (*PJRT_Event_Destroy)(PJRT_Event_Destroy_Args* args);
  PJRT_Error* (*PJRT_Event_OnReady)(PJRT_Event_OnReady_Args* args);
} PJRT_Api;

typedef const PJRT_Api* (*GetPjrtApi_Func)(void);

// Forward declaration for the Go-exported on-ready trampoline.
extern void go_pjrt_event_on_ready(PJRT_Error* error, void* user_arg);

static const PJRT_Api* call_get_pjrt_api(void* sym) {
  GetPjrtApi_Func fn = (GetPjrtApi_Func)sym;
  return fn();
}

static PJRT_Error* call_on_ready(const PJRT_Api* api, PJRT_Event* event, void* user_arg) {
  PJRT_Event_OnReady_Args args;
  memset(&args, 0, sizeof(args));
  args.struct_size = sizeof(args);
  args.event = event;
  args.callback = (PJRT_Event_OnReadyCallback)go_pjrt_event_on_ready;
  args.user_arg = user_arg;
  return api->PJRT_Event_OnReady(&args);
}
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"sync/atomic"
	"unsafe"
)

// activeCallbackBridges counts cgo.Handles created by EventOnReady that
// have not yet been deleted. It should return to zero once every
// registered callback has either failed registration or fired, whether
// or not the caller ever reads the resulting Future.
var activeCallbackBridges int64

// ActiveCallbackBridges reports the number of outstanding callback
// bridge handles, for leak regression tests.
func ActiveCallbackBridges() int64 {
	return atomic.LoadInt64(&activeCallbackBridges)
}

// newCallbackBridge registers v (a callback closure) behind a cgo.Handle
// and tracks it in activeCallbackBridges. The caller must eventually call
// releaseCallbackBridge on the returned handle exactly once. Takes any
// rather than a C-typed func so it can be exercised without a cgo
// preamble of its own, e.g. from a pure-Go test.
func newCallbackBridge(v any) cgo.Handle {
	atomic.AddInt64(&activeCallbackBridges, 1)
	return cgo.NewHandle(v)
}

func releaseCallbackBridge(h cgo.Handle) {
	h.Delete()
	atomic.AddInt64(&activeCallbackBridges, -1)
}

// Api is an opaque handle to the resolved PJRT_Api function table.
// Callers outside this package never dereference it; every operation is
// exposed as a Go function taking *Api plus plain Go values.
type Api struct {
	ptr *C.PJRT_Api
}

// APIVersion returns the major/minor version the plugin reports.
func (a *Api) APIVersion() (major, minor int) {
	return int(a.ptr.pjrt_api_version.major_version), int(a.ptr.pjrt_api_version.minor_version)
}

// CallError is the error type returned by every pjrtabi function for a
// non-null PJRT_Error*: the plugin's message plus the operation that
// produced it. The pjrt package wraps this further with a taxonomy kind.
type CallError struct {
	Op      string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed. Error: %s", e.Op, e.Message)
}

// errorFromC extracts the message from a non-null PJRT_Error*, destroys it,
// and returns a *CallError. Safe to call with a nil error (returns nil).
// Every operation in this file funnels error conversion through here.
func errorFromC(api *Api, op string, cErr *C.PJRT_Error) error {
	if cErr == nil {
		return nil
	}
	var msgArgs C.PJRT_Error_Message_Args
	msgArgs.struct_size = C.size_t(unsafe.Sizeof(msgArgs))
	msgArgs.error = cErr
	api.ptr.PJRT_Error_Message(&msgArgs)
	message := C.GoStringN(msgArgs.message, C.int(msgArgs.message_size))

	var destroyArgs C.PJRT_Error_Destroy_Args
	destroyArgs.struct_size = C.size_t(unsafe.Sizeof(destroyArgs))
	destroyArgs.error = cErr
	api.ptr.PJRT_Error_Destroy(&destroyArgs)

	return &CallError{Op: op, Message: message}
}

// LoadPlugin opens the shared library at path with RTLD_LAZY|RTLD_GLOBAL,
// resolves GetPjrtApi, calls it, and runs PJRT_Plugin_Initialize. It
// returns the opened library handle (for later Close) and the resolved Api.
func LoadPlugin(path string) (libHandle unsafe.Pointer, api *Api, err error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	C.dlerror() // clear any pending error
	handle := C.dlopen(cPath, C.RTLD_LAZY|C.RTLD_GLOBAL)
	if dlErr := C.dlerror(); dlErr != nil {
		return nil, nil, fmt.Errorf("loading PJRT plugin %q: %s", path, C.GoString(dlErr))
	}
	if handle == nil {
		return nil, nil, fmt.Errorf("dlopen(%q) succeeded but returned a null handle", path)
	}

	cSym := C.CString("GetPjrtApi")
	defer C.free(unsafe.Pointer(cSym))
	sym := C.dlsym(handle, cSym)
	if dlErr := C.dlerror(); dlErr != nil {
		C.dlclose(handle)
		return nil, nil, fmt.Errorf("resolving GetPjrtApi in %q: %s", path, C.GoString(dlErr))
	}
	if sym == nil {
		C.dlclose(handle)
		return nil, nil, fmt.Errorf("GetPjrtApi symbol found in %q but the pointer is null", path)
	}

	rawAPI := C.call_get_pjrt_api(sym)
	if rawAPI == nil {
		C.dlclose(handle)
		return nil, nil, fmt.Errorf("GetPjrtApi() in %q returned a null PJRT_Api pointer", path)
	}

	api = &Api{ptr: rawAPI}

	var initArgs C.PJRT_Plugin_Initialize_Args
	initArgs.struct_size = C.size_t(unsafe.Sizeof(initArgs))
	if cErr := api.ptr.PJRT_Plugin_Initialize(&initArgs); cErr != nil {
		initErr := errorFromC(api, "PJRT_Plugin_Initialize", cErr)
		C.dlclose(handle)
		return nil, nil, initErr
	}

	return unsafe.Pointer(handle), api, nil
}

// ClosePlugin closes a library handle returned by LoadPlugin.
func ClosePlugin(libHandle unsafe.Pointer) error {
	if libHandle == nil {
		return nil
	}
	if rc := C.dlclose(libHandle); rc != 0 {
		if dlErr := C.dlerror(); dlErr != nil {
			return fmt.Errorf("closing PJRT plugin: %s", C.GoString(dlErr))
		}
		return fmt.Errorf("dlclose returned non-zero status %d", int(rc))
	}
	return nil
}

// ---- Client -----------------------------------------------------------

// ClientCreate calls PJRT_Client_Create with every distributed-KV-store
// callback slot left null: single-host orchestration only.
func ClientCreate(api *Api) (client unsafe.Pointer, err error) {
	var args C.PJRT_Client_Create_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	if cErr := api.ptr.PJRT_Client_Create(&args); cErr != nil {
		return nil, errorFromC(api, "PJRT_Client_Create", cErr)
	}
	if args.client == nil {
		return nil, &CallError{Op: "PJRT_Client_Create", Message: "reported success but returned a null client"}
	}
	return unsafe.Pointer(args.client), nil
}

func ClientDestroy(api *Api, client unsafe.Pointer) error {
	if client == nil {
		return nil
	}
	var args C.PJRT_Client_Destroy_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.client = (*C.PJRT_Client)(client)
	if cErr := api.ptr.PJRT_Client_Destroy(&args); cErr != nil {
		return errorFromC(api, "PJRT_Client_Destroy", cErr)
	}
	return nil
}

func ClientPlatformName(api *Api, client unsafe.Pointer) (string, error) {
	var args C.PJRT_Client_PlatformName_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.client = (*C.PJRT_Client)(client)
	if cErr := api.ptr.PJRT_Client_PlatformName(&args); cErr != nil {
		return "", errorFromC(api, "PJRT_Client_PlatformName", cErr)
	}
	return C.GoStringN(args.platform_name, C.int(args.platform_name_size)), nil
}

func ClientAddressableDevices(api *Api, client unsafe.Pointer) ([]unsafe.Pointer, error) {
	var args C.PJRT_Client_AddressableDevices_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.client = (*C.PJRT_Client)(client)
	if cErr := api.ptr.PJRT_Client_AddressableDevices(&args); cErr != nil {
		return nil, errorFromC(api, "PJRT_Client_AddressableDevices", cErr)
	}
	n := int(args.num_addressable_devices)
	if n == 0 {
		return nil, nil
	}
	raw := unsafe.Slice(args.addressable_devices, n)
	out := make([]unsafe.Pointer, n)
	for i, d := range raw {
		out[i] = unsafe.Pointer(d)
	}
	return out, nil
}

// ClientCompile sends program as StableHLO MLIR text plus an opaque
// pre-serialized compile-options blob. The caller is responsible for
// null-terminating program and reporting codeSize excluding the
// terminator.
func ClientCompile(api *Api, client unsafe.Pointer, programNulTerminated []byte, codeSize int, compileOptions []byte) (loadedExecutable unsafe.Pointer, err error) {
	format := "mlir"
	cFormat := C.CString(format)
	defer C.free(unsafe.Pointer(cFormat))

	var program C.PJRT_Program
	program.struct_size = C.size_t(unsafe.Sizeof(program))
	program.code = (*C.char)(unsafe.Pointer(&programNulTerminated[0]))
	program.code_size = C.size_t(codeSize)
	program.format = cFormat
	program.format_size = C.size_t(len(format))

	var args C.PJRT_Client_Compile_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.client = (*C.PJRT_Client)(client)
	args.program = &program
	if len(compileOptions) > 0 {
		args.compile_options = (*C.char)(unsafe.Pointer(&compileOptions[0]))
	}
	args.compile_options_size = C.size_t(len(compileOptions))

	if cErr := api.ptr.PJRT_Client_Compile(&args); cErr != nil {
		return nil, errorFromC(api, "PJRT_Client_Compile", cErr)
	}
	if args.executable == nil {
		return nil, &CallError{Op: "PJRT_Client_Compile", Message: "reported success but returned a null executable"}
	}
	return unsafe.Pointer(args.executable), nil
}

// BufferType mirrors PJRT_Buffer_Type; exported so the pjrt package's
// generic TypeMap can produce values without importing cgo.
type BufferType int32

const (
	BufferTypeInvalid BufferType = iota
	BufferTypeS8
	BufferTypeS16
	BufferTypeS32
	BufferTypeS64
	BufferTypeU8
	BufferTypeU16
	BufferTypeU32
	BufferTypeU64
	BufferTypeF32
	BufferTypeF64
)

// ClientBufferFromHostBuffer starts an async host-to-device transfer.
// data must remain valid until the returned event resolves: the plugin
// treats it as immutable until the transfer completes.
func ClientBufferFromHostBuffer(api *Api, client unsafe.Pointer, data unsafe.Pointer, dataLen int, bufType BufferType, dims []int64, device unsafe.Pointer) (buffer unsafe.Pointer, doneEvent unsafe.Pointer, err error) {
	var args C.PJRT_Client_BufferFromHostBuffer_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.client = (*C.PJRT_Client)(client)
	if dataLen > 0 {
		args.data = data
	}
	args.type_ = C.PJRT_Buffer_Type(bufType)
	if len(dims) > 0 {
		args.dims = (*C.int64_t)(unsafe.Pointer(&dims[0]))
	}
	args.num_dims = C.size_t(len(dims))
	args.host_buffer_semantics = C.PJRT_HostBufferSemantics_kImmutableUntilTransferCompletes
	args.device = (*C.PJRT_Device)(device)

	if cErr := api.ptr.PJRT_Client_BufferFromHostBuffer(&args); cErr != nil {
		return nil, nil, errorFromC(api, "PJRT_Client_BufferFromHostBuffer", cErr)
	}
	if args.buffer == nil {
		return nil, nil, &CallError{Op: "PJRT_Client_BufferFromHostBuffer", Message: "reported success but returned a null buffer"}
	}
	return unsafe.Pointer(args.buffer), unsafe.Pointer(args.done_with_host_buffer), nil
}

// ---- Device -------------------------------------------------------------

func DeviceDescription(api *Api, device unsafe.Pointer) (string, error) {
	var descArgs C.PJRT_Device_GetDescription_Args
	descArgs.struct_size = C.size_t(unsafe.Sizeof(descArgs))
	descArgs.device = (*C.PJRT_Device)(device)
	if cErr := api.ptr.PJRT_Device_GetDescription(&descArgs); cErr != nil {
		return "", errorFromC(api, "PJRT_Device_GetDescription", cErr)
	}

	var toStringArgs C.PJRT_DeviceDescription_ToString_Args
	toStringArgs.struct_size = C.size_t(unsafe.Sizeof(toStringArgs))
	toStringArgs.device_description = descArgs.device_description
	if cErr := api.ptr.PJRT_DeviceDescription_ToString(&toStringArgs); cErr != nil {
		return "", errorFromC(api, "PJRT_DeviceDescription_ToString", cErr)
	}
	return C.GoStringN(toStringArgs.to_string, C.int(toStringArgs.to_string_size)), nil
}

// ---- Buffer ---------------------------------------------------------------

func BufferDestroy(api *Api, buffer unsafe.Pointer) error {
	if buffer == nil {
		return nil
	}
	var args C.PJRT_Buffer_Destroy_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.buffer = (*C.PJRT_Buffer)(buffer)
	if cErr := api.ptr.PJRT_Buffer_Destroy(&args); cErr != nil {
		return errorFromC(api, "PJRT_Buffer_Destroy", cErr)
	}
	return nil
}

// BufferDimensions returns a buffer's shape via the same query-then-fetch
// two-call pattern used for toHost sizing.
func BufferDimensions(api *Api, buffer unsafe.Pointer) ([]int64, error) {
	var probe C.PJRT_Buffer_Dimensions_Args
	probe.struct_size = C.size_t(unsafe.Sizeof(probe))
	probe.buffer = (*C.PJRT_Buffer)(buffer)
	if cErr := api.ptr.PJRT_Buffer_Dimensions(&probe); cErr != nil {
		return nil, errorFromC(api, "PJRT_Buffer_Dimensions", cErr)
	}
	rank := int(probe.num_dims)
	if rank == 0 {
		return []int64{}, nil
	}
	dims := make([]int64, rank)
	var fetch C.PJRT_Buffer_Dimensions_Args
	fetch.struct_size = C.size_t(unsafe.Sizeof(fetch))
	fetch.buffer = (*C.PJRT_Buffer)(buffer)
	fetch.dims = (*C.int64_t)(unsafe.Pointer(&dims[0]))
	fetch.num_dims = C.size_t(rank)
	if cErr := api.ptr.PJRT_Buffer_Dimensions(&fetch); cErr != nil {
		return nil, errorFromC(api, "PJRT_Buffer_Dimensions", cErr)
	}
	return dims, nil
}

// BufferToHostBuffer runs a two-call query-then-fetch pattern: a
// null-destination probe for the required byte size, then the real
// transfer into dst. Returns the event to wait on.
func BufferToHostBuffer(api *Api, buffer unsafe.Pointer, dst unsafe.Pointer, dstSize int) (event unsafe.Pointer, err error) {
	var probe C.PJRT_Buffer_ToHostBuffer_Args
	probe.struct_size = C.size_t(unsafe.Sizeof(probe))
	probe.src = (*C.PJRT_Buffer)(buffer)
	if cErr := api.ptr.PJRT_Buffer_ToHostBuffer(&probe); cErr != nil {
		return nil, errorFromC(api, "PJRT_Buffer_ToHostBuffer", cErr)
	}

	var args C.PJRT_Buffer_ToHostBuffer_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.src = (*C.PJRT_Buffer)(buffer)
	args.dst = dst
	args.dst_size = C.int64_t(dstSize)
	if cErr := api.ptr.PJRT_Buffer_ToHostBuffer(&args); cErr != nil {
		return nil, errorFromC(api, "PJRT_Buffer_ToHostBuffer", cErr)
	}
	return unsafe.Pointer(args.event), nil
}

// RequiredHostBytes runs only the size-query half of BufferToHostBuffer.
func RequiredHostBytes(api *Api, buffer unsafe.Pointer) (int, error) {
	var probe C.PJRT_Buffer_ToHostBuffer_Args
	probe.struct_size = C.size_t(unsafe.Sizeof(probe))
	probe.src = (*C.PJRT_Buffer)(buffer)
	if cErr := api.ptr.PJRT_Buffer_ToHostBuffer(&probe); cErr != nil {
		return 0, errorFromC(api, "PJRT_Buffer_ToHostBuffer", cErr)
	}
	return int(probe.dst_size), nil
}

// ---- Executable -----------------------------------------------------------

func ExecutableDestroy(api *Api, executable unsafe.Pointer) error {
	if executable == nil {
		return nil
	}
	var args C.PJRT_Executable_Destroy_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.executable = (*C.PJRT_Executable)(executable)
	if cErr := api.ptr.PJRT_Executable_Destroy(&args); cErr != nil {
		return errorFromC(api, "PJRT_Executable_Destroy", cErr)
	}
	return nil
}

func ExecutableNumOutputs(api *Api, executable unsafe.Pointer) (int, error) {
	var args C.PJRT_Executable_NumOutputs_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.executable = (*C.PJRT_Executable)(executable)
	if cErr := api.ptr.PJRT_Executable_NumOutputs(&args); cErr != nil {
		return 0, errorFromC(api, "PJRT_Executable_NumOutputs", cErr)
	}
	return int(args.num_outputs), nil
}

// ExecutableOutputDimensions reads the flat dims array plus per-output
// dim_sizes array and slices the flat sequence accordingly.
func ExecutableOutputDimensions(api *Api, executable unsafe.Pointer) ([][]int64, error) {
	var args C.PJRT_Executable_OutputDimensions_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.executable = (*C.PJRT_Executable)(executable)
	if cErr := api.ptr.PJRT_Executable_OutputDimensions(&args); cErr != nil {
		return nil, errorFromC(api, "PJRT_Executable_OutputDimensions", cErr)
	}
	numOutputs := int(args.num_outputs)
	if numOutputs == 0 {
		return nil, nil
	}
	dimSizes := unsafe.Slice(args.dim_sizes, numOutputs)
	total := 0
	for _, s := range dimSizes {
		total += int(s)
	}
	var flat []int64
	if total > 0 {
		flat = unsafe.Slice((*int64)(unsafe.Pointer(args.dims)), total)
	}
	result := make([][]int64, numOutputs)
	offset := 0
	for i, s := range dimSizes {
		n := int(s)
		dims := make([]int64, n)
		copy(dims, flat[offset:offset+n])
		result[i] = dims
		offset += n
	}
	return result, nil
}

// ---- LoadedExecutable -------------------------------------------------

func LoadedExecutableGetExecutable(api *Api, loadedExecutable unsafe.Pointer) (unsafe.Pointer, error) {
	var args C.PJRT_LoadedExecutable_GetExecutable_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.loaded_executable = (*C.PJRT_LoadedExecutable)(loadedExecutable)
	if cErr := api.ptr.PJRT_LoadedExecutable_GetExecutable(&args); cErr != nil {
		return nil, errorFromC(api, "PJRT_LoadedExecutable_GetExecutable", cErr)
	}
	if args.executable == nil {
		return nil, &CallError{Op: "PJRT_LoadedExecutable_GetExecutable", Message: "reported success but returned a null executable"}
	}
	return unsafe.Pointer(args.executable), nil
}

func LoadedExecutableDestroy(api *Api, loadedExecutable unsafe.Pointer) error {
	if loadedExecutable == nil {
		return nil
	}
	var args C.PJRT_LoadedExecutable_Destroy_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.executable = (*C.PJRT_LoadedExecutable)(loadedExecutable)
	if cErr := api.ptr.PJRT_LoadedExecutable_Destroy(&args); cErr != nil {
		return errorFromC(api, "PJRT_LoadedExecutable_Destroy", cErr)
	}
	return nil
}

// LoadedExecutableExecute runs one device's worth of execution
// (num_devices = 1) and returns the raw output buffer handles plus the
// single device-completion event.
func LoadedExecutableExecute(api *Api, loadedExecutable unsafe.Pointer, device unsafe.Pointer, args []unsafe.Pointer, numOutputs int) (outputs []unsafe.Pointer, event unsafe.Pointer, err error) {
	var execOptions C.PJRT_ExecuteOptions
	execOptions.struct_size = C.size_t(unsafe.Sizeof(execOptions))

	// Single-device execution only: num_devices is always 1. The two- and
	// three-star nesting below mirrors argument_lists'/output_lists'
	// "array of per-device arrays" shape collapsed to one device.
	cArgBuffers := make([]*C.PJRT_Buffer, len(args))
	for i, a := range args {
		cArgBuffers[i] = (*C.PJRT_Buffer)(a)
	}
	var argListForDevice0 **C.PJRT_Buffer
	if len(cArgBuffers) > 0 {
		argListForDevice0 = &cArgBuffers[0]
	}
	argumentListsForAllDevices := [1]**C.PJRT_Buffer{argListForDevice0}

	cOutputBuffers := make([]*C.PJRT_Buffer, numOutputs)
	var outputListForDevice0 **C.PJRT_Buffer
	if numOutputs > 0 {
		outputListForDevice0 = &cOutputBuffers[0]
	}
	outputListsForAllDevices := [1]**C.PJRT_Buffer{outputListForDevice0}

	deviceCompleteEvents := [1]*C.PJRT_Event{nil}

	var execArgs C.PJRT_LoadedExecutable_Execute_Args
	execArgs.struct_size = C.size_t(unsafe.Sizeof(execArgs))
	execArgs.executable = (*C.PJRT_LoadedExecutable)(loadedExecutable)
	execArgs.options = &execOptions
	execArgs.num_devices = 1
	execArgs.num_args = C.size_t(len(args))
	execArgs.execute_device = (*C.PJRT_Device)(device)
	execArgs.argument_lists = &argumentListsForAllDevices[0]
	execArgs.output_lists = &outputListsForAllDevices[0]
	execArgs.device_complete_events = &deviceCompleteEvents[0]

	if cErr := api.ptr.PJRT_LoadedExecutable_Execute(&execArgs); cErr != nil {
		return nil, nil, errorFromC(api, "PJRT_LoadedExecutable_Execute", cErr)
	}

	outputs = make([]unsafe.Pointer, numOutputs)
	for i := 0; i < numOutputs; i++ {
		outputs[i] = unsafe.Pointer(cOutputBuffers[i])
	}
	return outputs, unsafe.Pointer(deviceCompleteEvents[0]), nil
}

// ---- Event ------------------------------------------------------------

// EventWait runs the synchronous wait sequence: Await, then check
// Event_Error for a completion-status error, then destroy unconditionally.
func EventWait(api *Api, event unsafe.Pointer) error {
	if event == nil {
		return nil
	}
	cEvent := (*C.PJRT_Event)(event)

	var awaitArgs C.PJRT_Event_Await_Args
	awaitArgs.struct_size = C.size_t(unsafe.Sizeof(awaitArgs))
	awaitArgs.event = cEvent
	if cErr := api.ptr.PJRT_Event_Await(&awaitArgs); cErr != nil {
		awaitErr := errorFromC(api, "PJRT_Event_Await", cErr)
		destroyEvent(api, cEvent)
		return awaitErr
	}

	var statusArgs C.PJRT_Event_Error_Args
	statusArgs.struct_size = C.size_t(unsafe.Sizeof(statusArgs))
	statusArgs.event = cEvent
	statusErr := api.ptr.PJRT_Event_Error(&statusArgs)
	destroyEvent(api, cEvent)
	if statusErr != nil {
		return errorFromC(api, "PJRT_Event_Error", statusErr)
	}
	return nil
}

func destroyEvent(api *Api, event *C.PJRT_Event) {
	var args C.PJRT_Event_Destroy_Args
	args.struct_size = C.size_t(unsafe.Sizeof(args))
	args.event = event
	api.ptr.PJRT_Event_Destroy(&args) // the returned error, if any, is ignored: never returned or logged
}

// EventOnReady registers done to run when event resolves. done receives
// either nil (success) or the converted completion error. Registration
// failure deallocates the bridge handle immediately and is returned here.
func EventOnReady(api *Api, event unsafe.Pointer, done func(error)) error {
	cb := func(cErr *C.PJRT_Error) {
		done(errorFromC(api, "PJRT_Event_OnReady", cErr))
	}
	h := newCallbackBridge(cb)

	cErr := C.call_on_ready(api.ptr, (*C.PJRT_Event)(event), unsafe.Pointer(h))
	if cErr != nil {
		releaseCallbackBridge(h)
		return errorFromC(api, "PJRT_Event_OnReady", cErr)
	}
	return nil
}

//export go_pjrt_event_on_ready
func go_pjrt_event_on_ready(cErr *C.PJRT_Error, userArg unsafe.Pointer) {
	if userArg == nil {
		panic("pjrtabi: PJRT_Event_OnReady callback invoked with a null user_arg")
	}
	h := cgo.Handle(uintptr(userArg))
	v := h.Value()
	releaseCallbackBridge(h)
	cb := v.(func(*C.PJRT_Error))
	cb(cErr)
}
