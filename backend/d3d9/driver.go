// Package d3d9 implements the Direct3D 9 resource-transfer backend.
//
// D3D9 textures are never CPU-mappable directly, so every transfer goes
// through a system memory staging surface: reads copy the texture's level 0
// surface into staging with GetRenderTargetData and lock that; writes fill
// staging under a lock and push it back with UpdateSurface. Buffer
// transfers are not supported on this backend and always report
// gdev.ErrNotAvailable.
//
// Like the other backends the engine is written against a small Driver
// interface; the live-device implementation registers itself on Windows.
package d3d9

import (
	"unsafe"

	"github.com/gogpu/gputypes"
)

// SurfaceDesc is the subset of D3DSURFACE_DESC the engine consumes.
type SurfaceDesc struct {
	Width  int
	Height int
	Format Format
}

// Locked is the result of locking a surface: the base pointer of the CPU
// view and the pitch the driver chose. The pitch may exceed
// width*texelSize.
type Locked struct {
	Ptr   unsafe.Pointer
	Pitch int
}

// Driver abstracts the native device calls behind the transfer engine.
// Texture arguments are the opaque IDirect3DTexture9 handles the host
// passes through the gdev.Device surface. Surfaces returned by
// TextureSurface and CreateStagingSurface are owned by the caller and
// released through Release.
type Driver interface {
	// TextureSurface returns mip level 0 of the texture and its
	// description.
	TextureSurface(tex unsafe.Pointer) (unsafe.Pointer, SurfaceDesc, error)

	// CreateStagingSurface creates an offscreen system memory surface.
	CreateStagingSurface(width, height int, format Format) (unsafe.Pointer, error)

	// CopyToStaging copies the GPU surface src into the system memory
	// surface dst. The copy retires on the GPU timeline; call Sync
	// before locking dst.
	CopyToStaging(dst, src unsafe.Pointer) error

	// UploadSurface copies the system memory surface src into the GPU
	// surface dst.
	UploadSurface(dst, src unsafe.Pointer) error

	// Lock maps a system memory surface. gputypes.MapModeRead locks
	// read-only.
	Lock(surface unsafe.Pointer, mode gputypes.MapMode) (Locked, error)
	Unlock(surface unsafe.Pointer)

	CreateEventQuery() (unsafe.Pointer, error)
	IssueQuery(q unsafe.Pointer)
	QueryDone(q unsafe.Pointer) bool

	Release(res unsafe.Pointer)

	Close()
}
