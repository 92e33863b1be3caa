package gdev

import (
	"errors"
	"testing"
	"unsafe"
)

// fakeDevice is a minimal Device used to exercise the registry and facade.
type fakeDevice struct {
	devicePtr unsafe.Pointer
	closed    bool
	syncs     int
}

func (d *fakeDevice) DevicePtr() unsafe.Pointer { return d.devicePtr }
func (d *fakeDevice) Type() DeviceType          { return DeviceTypeOpenGL }
func (d *fakeDevice) Sync()                     { d.syncs++ }
func (d *fakeDevice) Close()                    { d.closed = true }

func (d *fakeDevice) ReadTexture([]byte, unsafe.Pointer, int, int, TextureFormat) error {
	return nil
}
func (d *fakeDevice) WriteTexture(unsafe.Pointer, int, int, TextureFormat, []byte) error {
	return nil
}
func (d *fakeDevice) ReadBuffer([]byte, unsafe.Pointer, BufferKind) error  { return nil }
func (d *fakeDevice) WriteBuffer(unsafe.Pointer, []byte, BufferKind) error { return nil }

// registerFake installs a fakeDevice factory for DeviceTypeOpenGL, which no
// real backend claims.
func registerFake(t *testing.T) {
	t.Helper()
	Register(DeviceTypeOpenGL, func(devicePtr unsafe.Pointer) (Device, error) {
		return &fakeDevice{devicePtr: devicePtr}, nil
	})
	t.Cleanup(func() {
		ReleaseDevice()
		registryMu.Lock()
		delete(factories, DeviceTypeOpenGL)
		registryMu.Unlock()
	})
}

func TestCreateDeviceNilPointer(t *testing.T) {
	registerFake(t)

	_, err := CreateDevice(DeviceTypeOpenGL, nil)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("CreateDevice(nil) = %v, want ErrInvalidParameter", err)
	}
	if GetDevice() != nil {
		t.Error("failed CreateDevice left an active device")
	}
}

func TestCreateDeviceUnregistered(t *testing.T) {
	var dummy int
	_, err := CreateDevice(DeviceTypeD3D12, unsafe.Pointer(&dummy))
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("CreateDevice(D3D12) = %v, want ErrNotAvailable", err)
	}
}

func TestCreateGetRelease(t *testing.T) {
	registerFake(t)

	var dummy int
	ptr := unsafe.Pointer(&dummy)

	dev, err := CreateDevice(DeviceTypeOpenGL, ptr)
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	if dev.DevicePtr() != ptr {
		t.Error("DevicePtr does not round-trip")
	}
	if GetDevice() != dev {
		t.Error("GetDevice did not return the created device")
	}

	ReleaseDevice()
	if GetDevice() != nil {
		t.Error("device still active after ReleaseDevice")
	}
	if !dev.(*fakeDevice).closed {
		t.Error("ReleaseDevice did not close the device")
	}

	// A second release is a no-op.
	ReleaseDevice()
}

func TestCreateDeviceReplacesActive(t *testing.T) {
	registerFake(t)

	var a, b int
	first, err := CreateDevice(DeviceTypeOpenGL, unsafe.Pointer(&a))
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	second, err := CreateDevice(DeviceTypeOpenGL, unsafe.Pointer(&b))
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	if !first.(*fakeDevice).closed {
		t.Error("replaced device was not closed")
	}
	if GetDevice() != second {
		t.Error("GetDevice did not return the replacement device")
	}
}

func TestRegistered(t *testing.T) {
	if Registered(DeviceTypeOpenGL) {
		t.Fatal("DeviceTypeOpenGL registered before test setup")
	}
	registerFake(t)
	if !Registered(DeviceTypeOpenGL) {
		t.Error("Registered(DeviceTypeOpenGL) = false after Register")
	}
}

func TestFacadeNoDevice(t *testing.T) {
	if GetDevice() != nil {
		t.Skip("another test left a device active")
	}

	var dummy int
	ptr := unsafe.Pointer(&dummy)
	buf := make([]byte, 4)

	if err := Sync(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Sync() = %v, want ErrNoDevice", err)
	}
	if err := ReadTexture(buf, ptr, 1, 1, RGBAu8); !errors.Is(err, ErrNoDevice) {
		t.Errorf("ReadTexture() = %v, want ErrNoDevice", err)
	}
	if err := WriteTexture(ptr, 1, 1, RGBAu8, buf); !errors.Is(err, ErrNoDevice) {
		t.Errorf("WriteTexture() = %v, want ErrNoDevice", err)
	}
	if err := ReadBuffer(buf, ptr, BufferVertex); !errors.Is(err, ErrNoDevice) {
		t.Errorf("ReadBuffer() = %v, want ErrNoDevice", err)
	}
	if err := WriteBuffer(ptr, buf, BufferVertex); !errors.Is(err, ErrNoDevice) {
		t.Errorf("WriteBuffer() = %v, want ErrNoDevice", err)
	}
}

func TestFacadeForwards(t *testing.T) {
	registerFake(t)

	var dummy int
	dev, err := CreateDevice(DeviceTypeOpenGL, unsafe.Pointer(&dummy))
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	if err := Sync(); err != nil {
		t.Errorf("Sync() = %v", err)
	}
	if dev.(*fakeDevice).syncs != 1 {
		t.Errorf("syncs = %d, want 1", dev.(*fakeDevice).syncs)
	}
}
