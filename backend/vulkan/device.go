// Package vulkan is the placeholder Vulkan resource-transfer backend.
//
// The backend registers itself so hosts that hand over a VkDevice get a
// working facade, but no transfer paths are implemented yet: every read
// and write reports gdev.ErrNotAvailable and Sync is a no-op. The staging
// and synchronization machinery needed for a real implementation lives in
// the internal packages shared with the Direct3D backends.
package vulkan

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gdev"
)

func init() {
	gdev.Register(gdev.DeviceTypeVulkan, func(devicePtr unsafe.Pointer) (gdev.Device, error) {
		return New(devicePtr), nil
	})
}

// Device is the Vulkan transfer engine placeholder.
type Device struct {
	devicePtr unsafe.Pointer
}

var _ gdev.Device = (*Device)(nil)

// New creates a placeholder engine that remembers devicePtr.
func New(devicePtr unsafe.Pointer) *Device {
	return &Device{devicePtr: devicePtr}
}

// DevicePtr returns the native VkDevice pointer.
func (d *Device) DevicePtr() unsafe.Pointer { return d.devicePtr }

// Type returns gdev.DeviceTypeVulkan.
func (d *Device) Type() gdev.DeviceType { return gdev.DeviceTypeVulkan }

// Sync is a no-op.
func (d *Device) Sync() {}

// Close is a no-op.
func (d *Device) Close() {}

// ReadTexture implements gdev.Device. Not implemented on Vulkan.
func (d *Device) ReadTexture([]byte, unsafe.Pointer, int, int, gdev.TextureFormat) error {
	return fmt.Errorf("vulkan: readTexture: %w", gdev.ErrNotAvailable)
}

// WriteTexture implements gdev.Device. Not implemented on Vulkan.
func (d *Device) WriteTexture(unsafe.Pointer, int, int, gdev.TextureFormat, []byte) error {
	return fmt.Errorf("vulkan: writeTexture: %w", gdev.ErrNotAvailable)
}

// ReadBuffer implements gdev.Device. Not implemented on Vulkan.
func (d *Device) ReadBuffer([]byte, unsafe.Pointer, gdev.BufferKind) error {
	return fmt.Errorf("vulkan: readBuffer: %w", gdev.ErrNotAvailable)
}

// WriteBuffer implements gdev.Device. Not implemented on Vulkan.
func (d *Device) WriteBuffer(unsafe.Pointer, []byte, gdev.BufferKind) error {
	return fmt.Errorf("vulkan: writeBuffer: %w", gdev.ErrNotAvailable)
}
