package gdev

import (
	"fmt"
	"sync"
	"unsafe"
)

// Factory creates a backend Device for a native device pointer. The pointer
// has already been checked for nil by CreateDevice.
type Factory func(devicePtr unsafe.Pointer) (Device, error)

// registry holds registered backend factories.
var (
	registryMu sync.RWMutex
	factories  = make(map[DeviceType]Factory)
)

// Register registers a backend factory for a device type. It is typically
// called from init() functions in backend packages; a later registration for
// the same type replaces the earlier one.
func Register(t DeviceType, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[t] = f
}

// Registered reports whether a backend serves the given device type.
func Registered(t DeviceType) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[t]
	return ok
}

// active is the process-wide device. The facade follows the single owner
// thread model of the underlying graphics APIs: CreateDevice, GetDevice and
// ReleaseDevice are not safe for concurrent use with each other.
var active Device

// CreateDevice creates the process-wide Device for a native device pointer
// and makes it current. A previously active device is closed first.
//
// It fails with ErrInvalidParameter if devicePtr is nil and with
// ErrNotAvailable if no backend is registered for t (the backend package
// must be linked in, usually via a blank import).
func CreateDevice(t DeviceType, devicePtr unsafe.Pointer) (Device, error) {
	if devicePtr == nil {
		return nil, fmt.Errorf("%w: nil device pointer", ErrInvalidParameter)
	}

	registryMu.RLock()
	factory, ok := factories[t]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no backend for %v", ErrNotAvailable, t)
	}

	dev, err := factory(devicePtr)
	if err != nil {
		return nil, fmt.Errorf("gdev: create %v device: %w", t, err)
	}

	if active != nil {
		active.Close()
	}
	active = dev

	Logger().Info("gdev: device created", "type", t.String())
	return dev, nil
}

// GetDevice returns the current Device, or nil if none is active.
func GetDevice() Device {
	return active
}

// ReleaseDevice closes the current Device, releasing its staging resources
// and synchronization query. It is a no-op if no device is active.
func ReleaseDevice() {
	if active == nil {
		return
	}
	t := active.Type()
	active.Close()
	active = nil
	Logger().Info("gdev: device released", "type", t.String())
}
