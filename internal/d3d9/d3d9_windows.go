// Package d3d9 contains the Direct3D 9 COM bindings used by the transfer
// backend. The device is always supplied by the host, so only the surface,
// query and transfer methods are bound; there is no device creation entry
// point.
package d3d9

import (
	"fmt"
	"syscall"
	"unsafe"
)

type SURFACE_DESC struct {
	Format             uint32
	Type               uint32
	Usage              uint32
	Pool               uint32
	MultiSampleType    uint32
	MultiSampleQuality uint32
	Width              uint32
	Height             uint32
}

type LOCKED_RECT struct {
	Pitch int32
	PBits uintptr
}

type Device struct {
	Vtbl *struct {
		_IUnknownVTbl
		TestCooperativeLevel        uintptr
		GetAvailableTextureMem      uintptr
		EvictManagedResources       uintptr
		GetDirect3D                 uintptr
		GetDeviceCaps               uintptr
		GetDisplayMode              uintptr
		GetCreationParameters       uintptr
		SetCursorProperties         uintptr
		SetCursorPosition           uintptr
		ShowCursor                  uintptr
		CreateAdditionalSwapChain   uintptr
		GetSwapChain                uintptr
		GetNumberOfSwapChains       uintptr
		Reset                       uintptr
		Present                     uintptr
		GetBackBuffer               uintptr
		GetRasterStatus             uintptr
		SetDialogBoxMode            uintptr
		SetGammaRamp                uintptr
		GetGammaRamp                uintptr
		CreateTexture               uintptr
		CreateVolumeTexture         uintptr
		CreateCubeTexture           uintptr
		CreateVertexBuffer          uintptr
		CreateIndexBuffer           uintptr
		CreateRenderTarget          uintptr
		CreateDepthStencilSurface   uintptr
		UpdateSurface               uintptr
		UpdateTexture               uintptr
		GetRenderTargetData         uintptr
		GetFrontBufferData          uintptr
		StretchRect                 uintptr
		ColorFill                   uintptr
		CreateOffscreenPlainSurface uintptr
		_                           [81]uintptr
		CreateQuery                 uintptr
	}
}

type Texture struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice            uintptr
		SetPrivateData       uintptr
		GetPrivateData       uintptr
		FreePrivateData      uintptr
		SetPriority          uintptr
		GetPriority          uintptr
		PreLoad              uintptr
		GetType              uintptr
		SetLOD               uintptr
		GetLOD               uintptr
		GetLevelCount        uintptr
		SetAutoGenFilterType uintptr
		GetAutoGenFilterType uintptr
		GenerateMipSubLevels uintptr
		GetLevelDesc         uintptr
		GetSurfaceLevel      uintptr
	}
}

type Surface struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice       uintptr
		SetPrivateData  uintptr
		GetPrivateData  uintptr
		FreePrivateData uintptr
		SetPriority     uintptr
		GetPriority     uintptr
		PreLoad         uintptr
		GetType         uintptr
		GetContainer    uintptr
		GetDesc         uintptr
		LockRect        uintptr
		UnlockRect      uintptr
		GetDC           uintptr
		ReleaseDC       uintptr
	}
}

type Query struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice   uintptr
		GetType     uintptr
		GetDataSize uintptr
		Issue       uintptr
		GetData     uintptr
	}
}

type _IUnknownVTbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type ErrorCode struct {
	Name string
	Code uint32
}

func (e ErrorCode) Error() string {
	return fmt.Sprintf("%s: %#x", e.Name, e.Code)
}

const (
	S_FALSE = 1

	POOL_SYSTEMMEM = 2

	LOCK_READONLY = 0x10

	ISSUE_END     = 1
	GETDATA_FLUSH = 1

	QUERYTYPE_EVENT = 8
)

func (d *Device) CreateOffscreenPlainSurface(width, height, format, pool uint32) (*Surface, error) {
	var surf *Surface
	r, _, _ := syscall.Syscall9(
		d.Vtbl.CreateOffscreenPlainSurface,
		7,
		uintptr(unsafe.Pointer(d)),
		uintptr(width),
		uintptr(height),
		uintptr(format),
		uintptr(pool),
		uintptr(unsafe.Pointer(&surf)),
		0, // pSharedHandle
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateOffscreenPlainSurface", Code: uint32(r)}
	}
	return surf, nil
}

// GetRenderTargetData copies a GPU surface into a system memory surface of
// the same dimensions and format.
func (d *Device) GetRenderTargetData(src, dst *Surface) error {
	r, _, _ := syscall.Syscall(
		d.Vtbl.GetRenderTargetData,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(src)),
		uintptr(unsafe.Pointer(dst)),
	)
	if r != 0 {
		return ErrorCode{Name: "DeviceGetRenderTargetData", Code: uint32(r)}
	}
	return nil
}

// UpdateSurface copies a whole system memory surface into a GPU surface of
// the same dimensions and format.
func (d *Device) UpdateSurface(src, dst *Surface) error {
	r, _, _ := syscall.Syscall6(
		d.Vtbl.UpdateSurface,
		5,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(src)),
		0, // pSourceRect
		uintptr(unsafe.Pointer(dst)),
		0, // pDestPoint
		0,
	)
	if r != 0 {
		return ErrorCode{Name: "DeviceUpdateSurface", Code: uint32(r)}
	}
	return nil
}

func (d *Device) CreateQuery(queryType uint32) (*Query, error) {
	var query *Query
	r, _, _ := syscall.Syscall(
		d.Vtbl.CreateQuery,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(queryType),
		uintptr(unsafe.Pointer(&query)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateQuery", Code: uint32(r)}
	}
	return query, nil
}

// GetSurfaceLevel returns a mip level of the texture as a surface. The
// surface is AddRef'd; the caller must release it.
func (t *Texture) GetSurfaceLevel(level uint32) (*Surface, error) {
	var surf *Surface
	r, _, _ := syscall.Syscall(
		t.Vtbl.GetSurfaceLevel,
		3,
		uintptr(unsafe.Pointer(t)),
		uintptr(level),
		uintptr(unsafe.Pointer(&surf)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "TextureGetSurfaceLevel", Code: uint32(r)}
	}
	return surf, nil
}

func (s *Surface) GetDesc() (SURFACE_DESC, error) {
	var desc SURFACE_DESC
	r, _, _ := syscall.Syscall(
		s.Vtbl.GetDesc,
		2,
		uintptr(unsafe.Pointer(s)),
		uintptr(unsafe.Pointer(&desc)),
		0,
	)
	if r != 0 {
		return desc, ErrorCode{Name: "SurfaceGetDesc", Code: uint32(r)}
	}
	return desc, nil
}

func (s *Surface) LockRect(flags uint32) (LOCKED_RECT, error) {
	var locked LOCKED_RECT
	r, _, _ := syscall.Syscall6(
		s.Vtbl.LockRect,
		4,
		uintptr(unsafe.Pointer(s)),
		uintptr(unsafe.Pointer(&locked)),
		0, // pRect
		uintptr(flags),
		0, 0,
	)
	if r != 0 {
		return locked, ErrorCode{Name: "SurfaceLockRect", Code: uint32(r)}
	}
	return locked, nil
}

func (s *Surface) UnlockRect() {
	syscall.Syscall(
		s.Vtbl.UnlockRect,
		1,
		uintptr(unsafe.Pointer(s)),
		0,
		0,
	)
}

func (q *Query) Issue(flags uint32) {
	syscall.Syscall(
		q.Vtbl.Issue,
		2,
		uintptr(unsafe.Pointer(q)),
		uintptr(flags),
		0,
	)
}

// GetData polls an event query, flushing the command stream. It returns
// true once the GPU has retired the query.
func (q *Query) GetData() bool {
	r, _, _ := syscall.Syscall6(
		q.Vtbl.GetData,
		4,
		uintptr(unsafe.Pointer(q)),
		0, // pData
		0, // dwSize
		GETDATA_FLUSH,
		0, 0,
	)
	return r != S_FALSE
}

func IUnknownRelease(obj unsafe.Pointer, releaseMethod uintptr) {
	syscall.Syscall(
		releaseMethod,
		1,
		uintptr(obj),
		0,
		0,
	)
}
