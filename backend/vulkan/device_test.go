package vulkan

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/gogpu/gdev"
)

func TestRegistered(t *testing.T) {
	if !gdev.Registered(gdev.DeviceTypeVulkan) {
		t.Fatal("vulkan backend did not register itself")
	}
}

func TestDeviceIdentity(t *testing.T) {
	var native int
	ptr := unsafe.Pointer(&native)

	dev := New(ptr)
	if dev.Type() != gdev.DeviceTypeVulkan {
		t.Errorf("Type() = %v", dev.Type())
	}
	if dev.DevicePtr() != ptr {
		t.Error("DevicePtr does not round-trip")
	}

	// Lifecycle ops are no-ops but must not panic.
	dev.Sync()
	dev.Close()
}

func TestTransfersNotAvailable(t *testing.T) {
	var native int
	dev := New(unsafe.Pointer(&native))

	var dummy int
	ptr := unsafe.Pointer(&dummy)
	data := make([]byte, 16)

	// Every transfer reports ErrNotAvailable deterministically, empty
	// transfers included.
	if err := dev.ReadTexture(data, ptr, 2, 2, gdev.RGBAu8); !errors.Is(err, gdev.ErrNotAvailable) {
		t.Errorf("ReadTexture = %v, want ErrNotAvailable", err)
	}
	if err := dev.WriteTexture(ptr, 2, 2, gdev.RGBAu8, data); !errors.Is(err, gdev.ErrNotAvailable) {
		t.Errorf("WriteTexture = %v, want ErrNotAvailable", err)
	}
	if err := dev.ReadBuffer(data, ptr, gdev.BufferVertex); !errors.Is(err, gdev.ErrNotAvailable) {
		t.Errorf("ReadBuffer = %v, want ErrNotAvailable", err)
	}
	if err := dev.WriteBuffer(ptr, data, gdev.BufferVertex); !errors.Is(err, gdev.ErrNotAvailable) {
		t.Errorf("WriteBuffer = %v, want ErrNotAvailable", err)
	}
	if err := dev.ReadBuffer(nil, ptr, gdev.BufferVertex); !errors.Is(err, gdev.ErrNotAvailable) {
		t.Errorf("zero-length ReadBuffer = %v, want ErrNotAvailable", err)
	}
}

func TestCreateThroughFacade(t *testing.T) {
	var native int
	dev, err := gdev.CreateDevice(gdev.DeviceTypeVulkan, unsafe.Pointer(&native))
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	t.Cleanup(gdev.ReleaseDevice)

	if dev.Type() != gdev.DeviceTypeVulkan {
		t.Errorf("Type() = %v", dev.Type())
	}
	if gdev.GetDevice() != dev {
		t.Error("GetDevice did not return the created device")
	}
}
