// Package staging implements the cache policy for the CPU-visible staging
// resources the backends shadow GPU resources with.
//
// Two policies exist, matching the two resource shapes:
//
//   - Textures: a map keyed by (width, height, native format). When the map
//     would exceed MaxTextures entries it is cleared wholesale before the
//     new entry is created - a simple bound on memory, not an LRU.
//   - Buffers: one slot per buffer kind, grown by doubling from a 1 MiB
//     floor whenever a larger size is requested. Slots never shrink and are
//     never evicted by count.
//
// The cache owns its handles: entries are released through the release
// callback on eviction and on Clear. Neither type is safe for concurrent
// use; callers serialize all transfer operations against a device.
package staging

import "unsafe"

// Handle is an opaque native resource handle owned by the cache.
type Handle = unsafe.Pointer

const (
	// MaxTextures is the entry count at which the texture cache is
	// cleared wholesale before the next insert.
	MaxTextures = 32

	// MinBufferSize is the floor for staging buffer allocations (1 MiB).
	MinBufferSize = 1 << 20
)

// ReleaseFunc releases a native resource handle.
type ReleaseFunc func(Handle)

// TextureKey builds the lookup key for a staging texture: width, height and
// the backend-native format packed into disjoint ranges.
func TextureKey(width, height int, nativeFormat uint32) uint64 {
	return uint64(uint32(width)) | uint64(uint32(height))<<16 | uint64(nativeFormat)<<32
}

// TextureCache is the staging texture pool of one backend engine.
type TextureCache struct {
	entries map[uint64]Handle
	release ReleaseFunc
}

// NewTextureCache creates an empty cache that releases evicted handles
// through release.
func NewTextureCache(release ReleaseFunc) *TextureCache {
	return &TextureCache{
		entries: make(map[uint64]Handle),
		release: release,
	}
}

// GetOrCreate returns the cached staging texture for key, creating and
// inserting one via create on a miss. If the cache already holds
// MaxTextures entries it is cleared first, so the new entry never pushes
// the cache over the bound.
func (c *TextureCache) GetOrCreate(key uint64, create func() (Handle, error)) (Handle, error) {
	if len(c.entries) >= MaxTextures {
		c.Clear()
	}
	if h, ok := c.entries[key]; ok {
		return h, nil
	}

	h, err := create()
	if err != nil {
		return nil, err
	}
	c.entries[key] = h
	return h, nil
}

// Len returns the number of cached staging textures.
func (c *TextureCache) Len() int { return len(c.entries) }

// Clear releases every cached staging texture.
func (c *TextureCache) Clear() {
	for k, h := range c.entries {
		c.release(h)
		delete(c.entries, k)
	}
}

// bufferSlot is one owned staging buffer and its allocated capacity.
type bufferSlot struct {
	handle Handle
	size   int
}

// BufferPool holds one staging buffer slot per buffer kind.
type BufferPool struct {
	slots   []bufferSlot
	release ReleaseFunc
}

// NewBufferPool creates a pool with kinds empty slots.
func NewBufferPool(kinds int, release ReleaseFunc) *BufferPool {
	return &BufferPool{
		slots:   make([]bufferSlot, kinds),
		release: release,
	}
}

// GrowSize returns the allocation size for a request: MinBufferSize doubled
// until it covers required.
func GrowSize(required int) int {
	size := MinBufferSize
	for size < required {
		size *= 2
	}
	return size
}

// GetOrGrow returns the staging buffer for kind, reallocating it via create
// when the current slot is smaller than required. The old buffer is
// released before the replacement is created. A slot that already covers
// required is returned as is.
func (p *BufferPool) GetOrGrow(kind, required int, create func(size int) (Handle, error)) (Handle, error) {
	slot := &p.slots[kind]
	size := GrowSize(required)
	if slot.handle != nil && size <= slot.size {
		return slot.handle, nil
	}

	if slot.handle != nil {
		p.release(slot.handle)
		slot.handle = nil
		slot.size = 0
	}

	h, err := create(size)
	if err != nil {
		return nil, err
	}
	slot.handle = h
	slot.size = size
	return h, nil
}

// Clear releases every allocated slot.
func (p *BufferPool) Clear() {
	for i := range p.slots {
		if p.slots[i].handle != nil {
			p.release(p.slots[i].handle)
			p.slots[i] = bufferSlot{}
		}
	}
}
