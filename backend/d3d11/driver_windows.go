package d3d11

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gdev"
	d3d "github.com/gogpu/gdev/internal/d3d11"
)

func init() {
	gdev.Register(gdev.DeviceTypeD3D11, func(devicePtr unsafe.Pointer) (gdev.Device, error) {
		return New(devicePtr, newSystemDriver(devicePtr))
	})
}

// systemDriver is the Driver backed by a live ID3D11Device. All transfer
// work goes through the device's immediate context, which is grabbed once
// at construction and released by Close.
type systemDriver struct {
	dev *d3d.Device
	ctx *d3d.DeviceContext
}

func newSystemDriver(devicePtr unsafe.Pointer) *systemDriver {
	dev := (*d3d.Device)(devicePtr)
	return &systemDriver{
		dev: dev,
		ctx: dev.GetImmediateContext(),
	}
}

func (s *systemDriver) TextureDesc(tex unsafe.Pointer) (TextureDesc, error) {
	desc := (*d3d.Texture2D)(tex).GetDesc()
	return TextureDesc{
		Width:     int(desc.Width),
		Height:    int(desc.Height),
		Format:    Format(desc.Format),
		CPUAccess: cpuAccess(desc.CPUAccessFlags),
	}, nil
}

func (s *systemDriver) BufferDesc(buf unsafe.Pointer) (BufferDesc, error) {
	desc := (*d3d.Buffer)(buf).GetDesc()
	return BufferDesc{
		Size:      int(desc.ByteWidth),
		CPUAccess: cpuAccess(desc.CPUAccessFlags),
	}, nil
}

func cpuAccess(flags uint32) CPUAccess {
	var a CPUAccess
	if flags&d3d.CPU_ACCESS_READ != 0 {
		a |= CPUAccessRead
	}
	if flags&d3d.CPU_ACCESS_WRITE != 0 {
		a |= CPUAccessWrite
	}
	return a
}

func (s *systemDriver) CreateStagingTexture(width, height int, format Format) (unsafe.Pointer, error) {
	tex, err := s.dev.CreateTexture2D(&d3d.TEXTURE2D_DESC{
		Width:     uint32(width),
		Height:    uint32(height),
		MipLevels: 1,
		ArraySize: 1,
		Format:    uint32(format),
		SampleDesc: d3d.SAMPLE_DESC{
			Count: 1,
		},
		Usage:          d3d.USAGE_STAGING,
		CPUAccessFlags: d3d.CPU_ACCESS_READ | d3d.CPU_ACCESS_WRITE,
	})
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(tex), nil
}

func (s *systemDriver) CreateStagingBuffer(_ gdev.BufferKind, size int) (unsafe.Pointer, error) {
	// Staging usage forbids bind flags, so the buffer kind does not
	// surface in the description.
	buf, err := s.dev.CreateBuffer(&d3d.BUFFER_DESC{
		ByteWidth:      uint32(size),
		Usage:          d3d.USAGE_STAGING,
		CPUAccessFlags: d3d.CPU_ACCESS_READ | d3d.CPU_ACCESS_WRITE,
	})
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(buf), nil
}

func (s *systemDriver) Map(res unsafe.Pointer, mode gputypes.MapMode) (Mapped, error) {
	mapType := uint32(d3d.MAP_READ)
	if mode == gputypes.MapModeWrite {
		mapType = d3d.MAP_WRITE_DISCARD
	}
	m, err := s.ctx.Map((*d3d.Resource)(res), 0, mapType, 0)
	if err != nil {
		return Mapped{}, err
	}
	return Mapped{
		Ptr:      unsafe.Pointer(m.PData),
		RowPitch: int(m.RowPitch),
	}, nil
}

func (s *systemDriver) Unmap(res unsafe.Pointer) {
	s.ctx.Unmap((*d3d.Resource)(res), 0)
}

func (s *systemDriver) CopyResource(dst, src unsafe.Pointer) {
	s.ctx.CopyResource((*d3d.Resource)(dst), (*d3d.Resource)(src))
}

func (s *systemDriver) UpdateTexture(tex unsafe.Pointer, width, rows int, data []byte, rowPitch int) {
	box := d3d.BOX{
		Right:  uint32(width),
		Bottom: uint32(rows),
		Back:   1,
	}
	s.ctx.UpdateSubresource((*d3d.Resource)(tex), &box, uint32(rowPitch), 0, data)
}

func (s *systemDriver) UpdateBuffer(buf unsafe.Pointer, data []byte) {
	box := d3d.BOX{
		Right:  uint32(len(data)),
		Bottom: 1,
		Back:   1,
	}
	s.ctx.UpdateSubresource((*d3d.Resource)(buf), &box, uint32(len(data)), 0, data)
}

func (s *systemDriver) CreateEventQuery() (unsafe.Pointer, error) {
	q, err := s.dev.CreateQuery(&d3d.QUERY_DESC{Query: d3d.QUERY_EVENT})
	if err != nil {
		return nil, fmt.Errorf("d3d11: create event query: %w", err)
	}
	return unsafe.Pointer(q), nil
}

func (s *systemDriver) EndQuery(q unsafe.Pointer) {
	s.ctx.End((*d3d.Query)(q))
}

func (s *systemDriver) QueryDone(q unsafe.Pointer) bool {
	return s.ctx.GetData((*d3d.Query)(q))
}

func (s *systemDriver) Release(res unsafe.Pointer) {
	r := (*d3d.Resource)(res)
	d3d.IUnknownRelease(res, r.Vtbl.Release)
}

func (s *systemDriver) Close() {
	if s.ctx != nil {
		d3d.IUnknownRelease(unsafe.Pointer(s.ctx), s.ctx.Vtbl.Release)
		s.ctx = nil
	}
}
