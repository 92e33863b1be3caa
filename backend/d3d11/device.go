package d3d11

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gdev"
	"github.com/gogpu/gdev/internal/blit"
	"github.com/gogpu/gdev/internal/staging"
)

// syncPollInterval is the sleep between event query polls in Sync.
const syncPollInterval = 100 * time.Microsecond

// Device is the Direct3D 11 transfer engine.
type Device struct {
	drv       Driver
	devicePtr unsafe.Pointer
	textures  *staging.TextureCache
	buffers   *staging.BufferPool
	query     unsafe.Pointer
}

var _ gdev.Device = (*Device)(nil)

// New creates a transfer engine on top of drv. devicePtr is only echoed
// back through DevicePtr; all native calls go through the driver.
func New(devicePtr unsafe.Pointer, drv Driver) (*Device, error) {
	if drv == nil {
		return nil, fmt.Errorf("%w: nil driver", gdev.ErrInvalidParameter)
	}

	q, err := drv.CreateEventQuery()
	if err != nil {
		return nil, fmt.Errorf("d3d11: create event query: %w", gdev.ErrUnknown)
	}

	return &Device{
		drv:       drv,
		devicePtr: devicePtr,
		textures:  staging.NewTextureCache(drv.Release),
		buffers:   staging.NewBufferPool(gdev.NumBufferKinds, drv.Release),
		query:     q,
	}, nil
}

// DevicePtr returns the native ID3D11Device pointer.
func (d *Device) DevicePtr() unsafe.Pointer { return d.devicePtr }

// Type returns gdev.DeviceTypeD3D11.
func (d *Device) Type() gdev.DeviceType { return gdev.DeviceTypeD3D11 }

// Sync ends the event query and spin-waits until the GPU has retired all
// previously submitted work. No timeout: a hung GPU hangs the caller.
func (d *Device) Sync() {
	d.drv.EndQuery(d.query)
	for !d.drv.QueryDone(d.query) {
		time.Sleep(syncPollInterval)
	}
}

// Close releases the staging resources, the event query and the driver's
// native references.
func (d *Device) Close() {
	d.textures.Clear()
	d.buffers.Clear()
	if d.query != nil {
		d.drv.Release(d.query)
		d.query = nil
	}
	d.drv.Close()
}

// ReadTexture implements gdev.Device.
func (d *Device) ReadTexture(dst []byte, src unsafe.Pointer, width, height int, format gdev.TextureFormat) error {
	if len(dst) == 0 || src == nil {
		return fmt.Errorf("d3d11: readTexture: %w: nil destination or source", gdev.ErrInvalidParameter)
	}
	texel := format.TexelSize()
	if texel == 0 || width <= 0 || height <= 0 {
		return fmt.Errorf("d3d11: readTexture: %w: format %v, %dx%d", gdev.ErrInvalidParameter, format, width, height)
	}

	desc, err := d.drv.TextureDesc(src)
	if err != nil {
		gdev.Logger().Warn("d3d11: readTexture: texture desc failed", "err", err)
		return fmt.Errorf("d3d11: readTexture: %w", gdev.ErrUnknown)
	}

	if desc.CPUAccess&CPUAccessRead != 0 {
		// Read the texture data directly.
		return d.readMapped(dst, src, width, height, texel)
	}

	// Copy into a staging texture and read from that instead.
	st, err := d.stagingTexture(width, height, format)
	if err != nil {
		return err
	}
	d.drv.CopyResource(st, src)
	// Map does not wait for completion of the copy above; synchronize
	// manually.
	d.Sync()
	return d.readMapped(dst, st, width, height, texel)
}

// readMapped maps tex for read and performs the pitch-aware copy into dst.
func (d *Device) readMapped(dst []byte, tex unsafe.Pointer, width, height, texel int) error {
	m, err := d.drv.Map(tex, gputypes.MapModeRead)
	if err != nil {
		gdev.Logger().Warn("d3d11: readTexture: Map failed", "err", err)
		return fmt.Errorf("d3d11: readTexture: map: %w", gdev.ErrUnknown)
	}
	defer d.drv.Unmap(tex)

	dstPitch := width * texel
	src := unsafe.Slice((*byte)(m.Ptr), blit.Span(m.RowPitch, dstPitch, height))
	blit.CopyRows(dst, dstPitch, src, m.RowPitch, height)
	return nil
}

// WriteTexture implements gdev.Device.
func (d *Device) WriteTexture(dst unsafe.Pointer, width, height int, format gdev.TextureFormat, src []byte) error {
	if dst == nil || len(src) == 0 {
		return fmt.Errorf("d3d11: writeTexture: %w: nil destination or source", gdev.ErrInvalidParameter)
	}
	texel := format.TexelSize()
	if texel == 0 || width <= 0 || height <= 0 {
		return fmt.Errorf("d3d11: writeTexture: %w: format %v, %dx%d", gdev.ErrInvalidParameter, format, width, height)
	}

	desc, err := d.drv.TextureDesc(dst)
	if err != nil {
		gdev.Logger().Warn("d3d11: writeTexture: texture desc failed", "err", err)
		return fmt.Errorf("d3d11: writeTexture: %w", gdev.ErrUnknown)
	}

	srcPitch := width * texel
	if desc.CPUAccess&CPUAccessWrite != 0 {
		m, err := d.drv.Map(dst, gputypes.MapModeWrite)
		if err != nil {
			gdev.Logger().Warn("d3d11: writeTexture: Map failed", "err", err)
			return fmt.Errorf("d3d11: writeTexture: map: %w", gdev.ErrUnknown)
		}
		defer d.drv.Unmap(dst)

		mapped := unsafe.Slice((*byte)(m.Ptr), blit.Span(m.RowPitch, srcPitch, height))
		blit.CopyRows(mapped, m.RowPitch, src, srcPitch, height)
		return nil
	}

	// Not mappable: upload straight from CPU memory.
	rows := (len(src)/texel + width - 1) / width
	d.drv.UpdateTexture(dst, width, rows, src, srcPitch)
	return nil
}

// ReadBuffer implements gdev.Device.
func (d *Device) ReadBuffer(dst []byte, src unsafe.Pointer, kind gdev.BufferKind) error {
	if len(dst) == 0 {
		return nil
	}
	if src == nil || !kind.IsValid() {
		return fmt.Errorf("d3d11: readBuffer: %w", gdev.ErrInvalidParameter)
	}

	desc, err := d.drv.BufferDesc(src)
	if err != nil {
		gdev.Logger().Warn("d3d11: readBuffer: buffer desc failed", "err", err)
		return fmt.Errorf("d3d11: readBuffer: %w", gdev.ErrUnknown)
	}

	if desc.CPUAccess&CPUAccessRead != 0 {
		// Read the buffer data directly.
		return d.readBufferMapped(dst, src)
	}

	// Copy into a staging buffer and read from that instead.
	st, err := d.stagingBuffer(kind, len(dst))
	if err != nil {
		return err
	}
	d.drv.CopyResource(st, src)
	d.Sync()
	return d.readBufferMapped(dst, st)
}

func (d *Device) readBufferMapped(dst []byte, buf unsafe.Pointer) error {
	m, err := d.drv.Map(buf, gputypes.MapModeRead)
	if err != nil {
		gdev.Logger().Warn("d3d11: readBuffer: Map failed", "err", err)
		return fmt.Errorf("d3d11: readBuffer: map: %w", gdev.ErrUnknown)
	}
	defer d.drv.Unmap(buf)

	copy(dst, unsafe.Slice((*byte)(m.Ptr), len(dst)))
	return nil
}

// WriteBuffer implements gdev.Device.
func (d *Device) WriteBuffer(dst unsafe.Pointer, src []byte, kind gdev.BufferKind) error {
	if len(src) == 0 {
		return nil
	}
	if dst == nil || !kind.IsValid() {
		return fmt.Errorf("d3d11: writeBuffer: %w", gdev.ErrInvalidParameter)
	}

	desc, err := d.drv.BufferDesc(dst)
	if err != nil {
		gdev.Logger().Warn("d3d11: writeBuffer: buffer desc failed", "err", err)
		return fmt.Errorf("d3d11: writeBuffer: %w", gdev.ErrUnknown)
	}

	if desc.CPUAccess&CPUAccessWrite != 0 {
		m, err := d.drv.Map(dst, gputypes.MapModeWrite)
		if err != nil {
			gdev.Logger().Warn("d3d11: writeBuffer: Map failed", "err", err)
			return fmt.Errorf("d3d11: writeBuffer: map: %w", gdev.ErrUnknown)
		}
		defer d.drv.Unmap(dst)

		copy(unsafe.Slice((*byte)(m.Ptr), len(src)), src)
		return nil
	}

	d.drv.UpdateBuffer(dst, src)
	return nil
}

// stagingTexture returns the cached staging texture for the given shape,
// creating it on a miss.
func (d *Device) stagingTexture(width, height int, format gdev.TextureFormat) (unsafe.Pointer, error) {
	native := nativeFormat(format)
	if native == FormatUnknown {
		// Not mappable and not representable as a staging texture.
		return nil, fmt.Errorf("d3d11: %w: no staging format for %v", gdev.ErrInaccessibleFromCPU, format)
	}

	key := staging.TextureKey(width, height, uint32(native))
	return d.textures.GetOrCreate(key, func() (staging.Handle, error) {
		h, err := d.drv.CreateStagingTexture(width, height, native)
		if err != nil {
			gdev.Logger().Warn("d3d11: staging texture creation failed",
				"width", width, "height", height, "format", format.String(), "err", err)
			return nil, fmt.Errorf("d3d11: create staging texture: %w", gdev.ErrOutOfMemory)
		}
		gdev.Logger().Debug("d3d11: staging texture created",
			"width", width, "height", height, "format", format.String())
		return h, nil
	})
}

// stagingBuffer returns the staging buffer slot for kind, grown to cover at
// least size bytes.
func (d *Device) stagingBuffer(kind gdev.BufferKind, size int) (unsafe.Pointer, error) {
	return d.buffers.GetOrGrow(int(kind), size, func(alloc int) (staging.Handle, error) {
		h, err := d.drv.CreateStagingBuffer(kind, alloc)
		if err != nil {
			gdev.Logger().Warn("d3d11: staging buffer creation failed",
				"kind", kind.String(), "size", alloc, "err", err)
			return nil, fmt.Errorf("d3d11: create staging buffer: %w", gdev.ErrOutOfMemory)
		}
		gdev.Logger().Debug("d3d11: staging buffer created", "kind", kind.String(), "size", alloc)
		return h, nil
	})
}
