package d3d9

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

// Device is the Direct3D 9 transfer engine.
type Device struct {
	drv       Driver
	devicePtr unsafe.Pointer
	surfaces  *staging.TextureCache
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
		return nil, fmt.Errorf("d3d9: create event query: %w", gdev.ErrUnknown)
	}

	return &Device{
		drv:       drv,
		devicePtr: devicePtr,
		surfaces:  staging.NewTextureCache(drv.Release),
		query:     q,
	}, nil
}

// DevicePtr returns the native IDirect3DDevice9 pointer.
func (d *Device) DevicePtr() unsafe.Pointer { return d.devicePtr }

// Type returns gdev.DeviceTypeD3D9.
func (d *Device) Type() gdev.DeviceType { return gdev.DeviceTypeD3D9 }

// Sync issues the event query and spin-waits until the GPU has retired all
// previously submitted work.
func (d *Device) Sync() {
	d.drv.IssueQuery(d.query)
	for !d.drv.QueryDone(d.query) {
		time.Sleep(syncPollInterval)
	}
}

// Close releases the staging surfaces, the event query and the driver's
// native references.
func (d *Device) Close() {
	d.surfaces.Clear()
	if d.query != nil {
		d.drv.Release(d.query)
		d.query = nil
	}
	d.drv.Close()
}

// ReadTexture implements gdev.Device. The texture is copied into a system
// memory staging surface and read from there; RGBAu8 data is converted
// from the BGRA order D3D9 stores it in.
func (d *Device) ReadTexture(dst []byte, src unsafe.Pointer, width, height int, format gdev.TextureFormat) error {
	if len(dst) == 0 || src == nil {
		return fmt.Errorf("d3d9: readTexture: %w: nil destination or source", gdev.ErrInvalidParameter)
	}
	texel := format.TexelSize()
	if texel == 0 || width <= 0 || height <= 0 {
		return fmt.Errorf("d3d9: readTexture: %w: format %v, %dx%d", gdev.ErrInvalidParameter, format, width, height)
	}

	surf, _, err := d.drv.TextureSurface(src)
	if err != nil {
		gdev.Logger().Warn("d3d9: readTexture: surface level failed", "err", err)
		return fmt.Errorf("d3d9: readTexture: %w", gdev.ErrUnknown)
	}
	defer d.drv.Release(surf)

	st, err := d.stagingSurface(width, height, format)
	if err != nil {
		return err
	}

	if err := d.drv.CopyToStaging(st, surf); err != nil {
		gdev.Logger().Warn("d3d9: readTexture: copy to staging failed", "err", err)
		return fmt.Errorf("d3d9: readTexture: %w", gdev.ErrUnknown)
	}
	// The copy retires on the GPU timeline; wait before locking.
	d.Sync()

	l, err := d.drv.Lock(st, gputypes.MapModeRead)
	if err != nil {
		gdev.Logger().Warn("d3d9: readTexture: lock failed", "err", err)
		return fmt.Errorf("d3d9: readTexture: lock: %w", gdev.ErrUnknown)
	}

	dstPitch := width * texel
	mapped := unsafe.Slice((*byte)(l.Ptr), blit.Span(l.Pitch, dstPitch, height))
	blit.CopyRows(dst, dstPitch, mapped, l.Pitch, height)
	d.drv.Unlock(st)

	if format == gdev.RGBAu8 {
		blit.SwapRB8(dst)
	}
	return nil
}

// WriteTexture implements gdev.Device. The data is written into a system
// memory staging surface under a lock and pushed to the texture with a
// whole-surface upload. RGBAu8 data is converted to the BGRA order D3D9
// expects without touching src.
func (d *Device) WriteTexture(dst unsafe.Pointer, width, height int, format gdev.TextureFormat, src []byte) error {
	if dst == nil || len(src) == 0 {
		return fmt.Errorf("d3d9: writeTexture: %w: nil destination or source", gdev.ErrInvalidParameter)
	}
	texel := format.TexelSize()
	if texel == 0 || width <= 0 || height <= 0 {
		return fmt.Errorf("d3d9: writeTexture: %w: format %v, %dx%d", gdev.ErrInvalidParameter, format, width, height)
	}

	surf, _, err := d.drv.TextureSurface(dst)
	if err != nil {
		gdev.Logger().Warn("d3d9: writeTexture: surface level failed", "err", err)
		return fmt.Errorf("d3d9: writeTexture: %w", gdev.ErrUnknown)
	}
	defer d.drv.Release(surf)

	st, err := d.stagingSurface(width, height, format)
	if err != nil {
		return err
	}

	l, err := d.drv.Lock(st, gputypes.MapModeWrite)
	if err != nil {
		gdev.Logger().Warn("d3d9: writeTexture: lock failed", "err", err)
		return fmt.Errorf("d3d9: writeTexture: lock: %w", gdev.ErrUnknown)
	}

	srcPitch := width * texel
	mapped := unsafe.Slice((*byte)(l.Ptr), blit.Span(l.Pitch, srcPitch, height))
	if format == gdev.RGBAu8 {
		blit.CopyRowsSwapRB8(mapped, l.Pitch, src, srcPitch, height)
	} else {
		blit.CopyRows(mapped, l.Pitch, src, srcPitch, height)
	}
	d.drv.Unlock(st)

	if err := d.drv.UploadSurface(surf, st); err != nil {
		gdev.Logger().Warn("d3d9: writeTexture: upload failed", "err", err)
		return fmt.Errorf("d3d9: writeTexture: %w", gdev.ErrUnknown)
	}
	return nil
}

// ReadBuffer implements gdev.Device. Buffer transfers are not supported on
// Direct3D 9.
func (d *Device) ReadBuffer([]byte, unsafe.Pointer, gdev.BufferKind) error {
	return fmt.Errorf("d3d9: readBuffer: %w", gdev.ErrNotAvailable)
}

// WriteBuffer implements gdev.Device. Buffer transfers are not supported
// on Direct3D 9.
func (d *Device) WriteBuffer(unsafe.Pointer, []byte, gdev.BufferKind) error {
	return fmt.Errorf("d3d9: writeBuffer: %w", gdev.ErrNotAvailable)
}

// stagingSurface returns the cached staging surface for the given shape,
// creating it on a miss.
func (d *Device) stagingSurface(width, height int, format gdev.TextureFormat) (unsafe.Pointer, error) {
	native := nativeFormat(format)
	if native == FormatUnknown {
		// D3D9 textures are only reachable through staging surfaces, so
		// a format with no native representation cannot be transferred.
		return nil, fmt.Errorf("d3d9: %w: no staging format for %v", gdev.ErrInaccessibleFromCPU, format)
	}

	key := staging.TextureKey(width, height, uint32(native))
	return d.surfaces.GetOrCreate(key, func() (staging.Handle, error) {
		h, err := d.drv.CreateStagingSurface(width, height, native)
		if err != nil {
			gdev.Logger().Warn("d3d9: staging surface creation failed",
				"width", width, "height", height, "format", format.String(), "err", err)
			return nil, fmt.Errorf("d3d9: create staging surface: %w", gdev.ErrOutOfMemory)
		}
		gdev.Logger().Debug("d3d9: staging surface created",
			"width", width, "height", height, "format", format.String())
		return h, nil
	})
}
