package pjrt

import (
	"unsafe"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// Scalar is the closed set of host element types this wrapper can move to
// and from device buffers. Deliberately exact (no ~) rather than
// approximate element types: bufferType dispatches on the concrete type,
// and a named type sharing one of these underlying types would otherwise
// compile against Scalar but panic in bufferType at runtime.
type Scalar interface {
	float32 | float64 | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64
}

// bufferType returns the PJRT_Buffer_Type code for T, and byteSize its
// width in bytes. Every caller that needs a PJRT_Buffer_Type for a Scalar
// goes through this single choke point rather than re-deriving it.
func bufferType[T Scalar]() (pjrtabi.BufferType, int) {
	var zero T
	switch any(zero).(type) {
	case float32:
		return pjrtabi.BufferTypeF32, int(unsafe.Sizeof(zero))
	case float64:
		return pjrtabi.BufferTypeF64, int(unsafe.Sizeof(zero))
	case int8:
		return pjrtabi.BufferTypeS8, int(unsafe.Sizeof(zero))
	case uint8:
		return pjrtabi.BufferTypeU8, int(unsafe.Sizeof(zero))
	case int16:
		return pjrtabi.BufferTypeS16, int(unsafe.Sizeof(zero))
	case uint16:
		return pjrtabi.BufferTypeU16, int(unsafe.Sizeof(zero))
	case int32:
		return pjrtabi.BufferTypeS32, int(unsafe.Sizeof(zero))
	case uint32:
		return pjrtabi.BufferTypeU32, int(unsafe.Sizeof(zero))
	case int64:
		return pjrtabi.BufferTypeS64, int(unsafe.Sizeof(zero))
	case uint64:
		return pjrtabi.BufferTypeU64, int(unsafe.Sizeof(zero))
	default:
		// unreachable: Scalar is the exact type set this switch handles.
		panic("pjrt: unhandled Scalar type")
	}
}
