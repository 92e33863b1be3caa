// Package d3d11 implements the Direct3D 11 resource-transfer backend.
//
// The engine is written against the Driver interface, which abstracts the
// handful of ID3D11Device / ID3D11DeviceContext calls the transfer paths
// need. On Windows a Driver backed by the live device is installed
// automatically when the backend registers itself; on other platforms (or
// for testing) the host can supply its own Driver via New.
package d3d11

import (
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gdev"
)

// CPUAccess is the CPU access capability of a resource, as reported by its
// D3D11 description.
type CPUAccess uint32

const (
	// CPUAccessRead means the resource can be mapped for CPU reads.
	CPUAccessRead CPUAccess = 1 << iota
	// CPUAccessWrite means the resource can be mapped for CPU writes.
	CPUAccessWrite
)

// TextureDesc is the subset of D3D11_TEXTURE2D_DESC the engine consumes.
type TextureDesc struct {
	Width     int
	Height    int
	Format    Format
	CPUAccess CPUAccess
}

// BufferDesc is the subset of D3D11_BUFFER_DESC the engine consumes.
type BufferDesc struct {
	Size      int
	CPUAccess CPUAccess
}

// Mapped is the result of mapping a resource: the base pointer of the CPU
// view and the row pitch the driver chose. The pitch may exceed
// width*texelSize.
type Mapped struct {
	Ptr      unsafe.Pointer
	RowPitch int
}

// Driver abstracts the native device calls behind the transfer engine. All
// resource arguments are the opaque handles the host passes through the
// gdev.Device surface; handles returned by the CreateStaging* calls are
// owned by the engine and released through Release.
//
// Map with gputypes.MapModeWrite maps for write-discard: prior contents of
// the resource are invalidated.
type Driver interface {
	TextureDesc(tex unsafe.Pointer) (TextureDesc, error)
	BufferDesc(buf unsafe.Pointer) (BufferDesc, error)

	CreateStagingTexture(width, height int, format Format) (unsafe.Pointer, error)
	CreateStagingBuffer(kind gdev.BufferKind, size int) (unsafe.Pointer, error)

	Map(res unsafe.Pointer, mode gputypes.MapMode) (Mapped, error)
	Unmap(res unsafe.Pointer)

	// CopyResource schedules a GPU-side copy from src into dst. The copy
	// is asynchronous relative to the CPU; call Sync before mapping dst.
	CopyResource(dst, src unsafe.Pointer)

	// UpdateTexture uploads rows rows of rowPitch-sized rows from data
	// into the texture without an explicit staging map
	// (ID3D11DeviceContext::UpdateSubresource).
	UpdateTexture(tex unsafe.Pointer, width, rows int, data []byte, rowPitch int)

	// UpdateBuffer uploads len(data) bytes into the buffer without an
	// explicit staging map.
	UpdateBuffer(buf unsafe.Pointer, data []byte)

	CreateEventQuery() (unsafe.Pointer, error)
	EndQuery(q unsafe.Pointer)
	QueryDone(q unsafe.Pointer) bool

	Release(res unsafe.Pointer)

	// Close releases driver-held native references (the immediate
	// context on Windows). Called once from Device.Close.
	Close()
}
