package d3d9

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gdev"
	d3d "github.com/gogpu/gdev/internal/d3d9"
)

func init() {
	gdev.Register(gdev.DeviceTypeD3D9, func(devicePtr unsafe.Pointer) (gdev.Device, error) {
		return New(devicePtr, newSystemDriver(devicePtr))
	})
}

// systemDriver is the Driver backed by a live IDirect3DDevice9.
type systemDriver struct {
	dev *d3d.Device
}

func newSystemDriver(devicePtr unsafe.Pointer) *systemDriver {
	return &systemDriver{dev: (*d3d.Device)(devicePtr)}
}

func (s *systemDriver) TextureSurface(tex unsafe.Pointer) (unsafe.Pointer, SurfaceDesc, error) {
	surf, err := (*d3d.Texture)(tex).GetSurfaceLevel(0)
	if err != nil {
		return nil, SurfaceDesc{}, err
	}
	desc, err := surf.GetDesc()
	if err != nil {
		s.Release(unsafe.Pointer(surf))
		return nil, SurfaceDesc{}, err
	}
	return unsafe.Pointer(surf), SurfaceDesc{
		Width:  int(desc.Width),
		Height: int(desc.Height),
		Format: Format(desc.Format),
	}, nil
}

func (s *systemDriver) CreateStagingSurface(width, height int, format Format) (unsafe.Pointer, error) {
	surf, err := s.dev.CreateOffscreenPlainSurface(uint32(width), uint32(height), uint32(format), d3d.POOL_SYSTEMMEM)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(surf), nil
}

func (s *systemDriver) CopyToStaging(dst, src unsafe.Pointer) error {
	return s.dev.GetRenderTargetData((*d3d.Surface)(src), (*d3d.Surface)(dst))
}

func (s *systemDriver) UploadSurface(dst, src unsafe.Pointer) error {
	return s.dev.UpdateSurface((*d3d.Surface)(src), (*d3d.Surface)(dst))
}

func (s *systemDriver) Lock(surface unsafe.Pointer, mode gputypes.MapMode) (Locked, error) {
	var flags uint32
	if mode == gputypes.MapModeRead {
		flags = d3d.LOCK_READONLY
	}
	l, err := (*d3d.Surface)(surface).LockRect(flags)
	if err != nil {
		return Locked{}, err
	}
	return Locked{
		Ptr:   unsafe.Pointer(l.PBits),
		Pitch: int(l.Pitch),
	}, nil
}

func (s *systemDriver) Unlock(surface unsafe.Pointer) {
	(*d3d.Surface)(surface).UnlockRect()
}

func (s *systemDriver) CreateEventQuery() (unsafe.Pointer, error) {
	q, err := s.dev.CreateQuery(d3d.QUERYTYPE_EVENT)
	if err != nil {
		return nil, fmt.Errorf("d3d9: create event query: %w", err)
	}
	return unsafe.Pointer(q), nil
}

func (s *systemDriver) IssueQuery(q unsafe.Pointer) {
	(*d3d.Query)(q).Issue(d3d.ISSUE_END)
}

func (s *systemDriver) QueryDone(q unsafe.Pointer) bool {
	return (*d3d.Query)(q).GetData()
}

func (s *systemDriver) Release(res unsafe.Pointer) {
	r := (*d3d.Surface)(res)
	d3d.IUnknownRelease(res, r.Vtbl.Release)
}

func (s *systemDriver) Close() {}
