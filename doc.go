// Package gdev moves bytes between CPU memory and GPU-resident textures and
// buffers without exposing which graphics backend is active.
//
// # Overview
//
// gdev is a thin hardware-abstraction layer for host applications that own a
// native graphics device (Direct3D 9, Direct3D 11, or Vulkan) and need
// byte-exact CPU reads and writes of GPU resources. The host hands gdev its
// native device pointer and opaque resource handles; gdev hides the
// backend-specific mapping, staging-resource and synchronization mechanics
// required to make the transfer correct.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gdev"
//	    _ "github.com/gogpu/gdev/backend/d3d11" // register the backend
//	)
//
//	dev, err := gdev.CreateDevice(gdev.DeviceTypeD3D11, nativeDevicePtr)
//	if err != nil {
//	    // backend missing or bad device pointer
//	}
//	defer gdev.ReleaseDevice()
//
//	pixels := make([]byte, w*h*gdev.RGBAu8.TexelSize())
//	if err := dev.ReadTexture(pixels, textureHandle, w, h, gdev.RGBAu8); err != nil {
//	    // ...
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Device, DeviceType, TextureFormat, BufferKind, the error
//     taxonomy and the create/get/release device facade
//   - Backends: backend/d3d11, backend/d3d9, backend/vulkan, registered at
//     init time and selected by DeviceType
//   - Internal: blit (pitch-aware copies, channel reordering), staging
//     (staging-resource cache policy), d3d11/d3d9 (Windows COM bindings)
//
// # Threading
//
// All transfer operations must be invoked from the thread that owns the
// graphics context, the usual constraint of the underlying APIs. gdev adds
// no internal locking around transfers; Sync is a blocking spin-wait on the
// calling thread with no timeout.
//
// # Resource Ownership
//
// gdev never allocates or frees the host's primary textures and buffers. It
// owns only its internal staging resources, which are released when the
// device is closed.
package gdev
