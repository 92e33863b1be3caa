package gdev

import (
	"fmt"
	"unsafe"
)

// DeviceType identifies the graphics API that owns a native device.
type DeviceType int

const (
	// DeviceTypeUnknown is the zero value; no backend serves it.
	DeviceTypeUnknown DeviceType = iota
	// DeviceTypeD3D9 selects the Direct3D 9 backend.
	DeviceTypeD3D9
	// DeviceTypeD3D11 selects the Direct3D 11 backend.
	DeviceTypeD3D11
	// DeviceTypeD3D12 is recognized but has no backend yet.
	DeviceTypeD3D12
	// DeviceTypeOpenGL is recognized but has no backend yet.
	DeviceTypeOpenGL
	// DeviceTypeVulkan selects the Vulkan stand-in backend.
	DeviceTypeVulkan
)

// String returns a human-readable name for the device type.
func (t DeviceType) String() string {
	switch t {
	case DeviceTypeD3D9:
		return "D3D9"
	case DeviceTypeD3D11:
		return "D3D11"
	case DeviceTypeD3D12:
		return "D3D12"
	case DeviceTypeOpenGL:
		return "OpenGL"
	case DeviceTypeVulkan:
		return "Vulkan"
	case DeviceTypeUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// BufferKind is the logical role of a GPU buffer. It partitions the staging
// buffer cache; it does not describe storage layout.
type BufferKind int

const (
	// BufferIndex is an index buffer.
	BufferIndex BufferKind = iota
	// BufferVertex is a vertex buffer.
	BufferVertex
	// BufferConstant is a constant (uniform) buffer.
	BufferConstant
	// BufferCompute is a compute storage buffer.
	BufferCompute

	// NumBufferKinds is the number of buffer kinds, usable as an array size.
	NumBufferKinds = int(BufferCompute) + 1
)

// String returns a human-readable name for the buffer kind.
func (k BufferKind) String() string {
	switch k {
	case BufferIndex:
		return "Index"
	case BufferVertex:
		return "Vertex"
	case BufferConstant:
		return "Constant"
	case BufferCompute:
		return "Compute"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// IsValid reports whether k names one of the declared buffer kinds.
func (k BufferKind) IsValid() bool {
	return k >= BufferIndex && int(k) < NumBufferKinds
}

// Device is the per-backend resource-transfer engine.
//
// All resource arguments are opaque native handles supplied by the host's
// graphics-API bindings (an ID3D11Texture2D*, IDirect3DTexture9*, and so
// on). Device never frees them; it only moves bytes in and out.
//
// Operations must be serialized by the caller and invoked from the thread
// that owns the graphics context. See the package documentation.
type Device interface {
	// DevicePtr returns the native device pointer the Device was created
	// with.
	DevicePtr() unsafe.Pointer

	// Type returns the backend tag.
	Type() DeviceType

	// Sync blocks until the GPU has retired all previously submitted work.
	// It is a spin-wait with no timeout: a hung GPU hangs the caller.
	Sync()

	// ReadTexture copies len(dst) bytes out of the texture into dst.
	// width, height and format must describe the texture; dst should hold
	// width*height texels. On failure the contents of dst are unspecified.
	ReadTexture(dst []byte, src unsafe.Pointer, width, height int, format TextureFormat) error

	// WriteTexture copies len(src) bytes from src into the texture. On
	// failure the contents of the texture are unspecified.
	WriteTexture(dst unsafe.Pointer, width, height int, format TextureFormat, src []byte) error

	// ReadBuffer copies len(dst) bytes out of the buffer into dst. A
	// zero-length dst is a no-op success.
	ReadBuffer(dst []byte, src unsafe.Pointer, kind BufferKind) error

	// WriteBuffer copies len(src) bytes from src into the buffer. A
	// zero-length src is a no-op success.
	WriteBuffer(dst unsafe.Pointer, src []byte, kind BufferKind) error

	// Close releases the staging resources and the synchronization query
	// owned by the engine. The Device must not be used afterwards.
	Close()
}
