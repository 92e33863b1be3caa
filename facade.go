package gdev

import (
	"fmt"
	"unsafe"
)

// Package-level transfer helpers operating on the active device. They exist
// for hosts that drive everything through the facade instead of holding the
// Device returned by CreateDevice. Each fails with ErrNoDevice when no
// device is active.

// Sync blocks until the active device's GPU has retired all submitted work.
func Sync() error {
	if active == nil {
		return fmt.Errorf("gdev: sync: %w", ErrNoDevice)
	}
	active.Sync()
	return nil
}

// ReadTexture reads from a texture of the active device. See
// Device.ReadTexture.
func ReadTexture(dst []byte, src unsafe.Pointer, width, height int, format TextureFormat) error {
	if active == nil {
		return fmt.Errorf("gdev: readTexture: %w", ErrNoDevice)
	}
	return active.ReadTexture(dst, src, width, height, format)
}

// WriteTexture writes to a texture of the active device. See
// Device.WriteTexture.
func WriteTexture(dst unsafe.Pointer, width, height int, format TextureFormat, src []byte) error {
	if active == nil {
		return fmt.Errorf("gdev: writeTexture: %w", ErrNoDevice)
	}
	return active.WriteTexture(dst, width, height, format, src)
}

// ReadBuffer reads from a buffer of the active device. See
// Device.ReadBuffer.
func ReadBuffer(dst []byte, src unsafe.Pointer, kind BufferKind) error {
	if active == nil {
		return fmt.Errorf("gdev: readBuffer: %w", ErrNoDevice)
	}
	return active.ReadBuffer(dst, src, kind)
}

// WriteBuffer writes to a buffer of the active device. See
// Device.WriteBuffer.
func WriteBuffer(dst unsafe.Pointer, src []byte, kind BufferKind) error {
	if active == nil {
		return fmt.Errorf("gdev: writeBuffer: %w", ErrNoDevice)
	}
	return active.WriteBuffer(dst, src, kind)
}
