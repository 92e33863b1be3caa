package gdev

import "errors"

// The error taxonomy shared by all backends. Operations return nil on
// success; failures wrap one of these sentinels, so callers dispatch with
// errors.Is. There are no retries and no partial-success semantics: a failed
// read leaves the destination slice unspecified, a failed write leaves the
// destination resource unspecified.
var (
	// ErrUnknown is returned when a backend call failed unexpectedly
	// (map, copy or query failure).
	ErrUnknown = errors.New("gdev: unknown device error")

	// ErrNotAvailable is returned when the operation is unsupported by
	// the active backend. It is deterministic: an unsupported operation
	// never silently succeeds.
	ErrNotAvailable = errors.New("gdev: operation not available")

	// ErrInvalidParameter is returned for nil or malformed arguments.
	ErrInvalidParameter = errors.New("gdev: invalid parameter")

	// ErrOutOfMemory is returned when a staging resource cannot be
	// allocated.
	ErrOutOfMemory = errors.New("gdev: out of memory")

	// ErrInaccessibleFromCPU is returned when a resource can be neither
	// mapped nor shadowed through a staging copy.
	ErrInaccessibleFromCPU = errors.New("gdev: resource inaccessible from CPU")

	// ErrNoDevice is returned by facade operations before CreateDevice
	// or after ReleaseDevice.
	ErrNoDevice = errors.New("gdev: no active device")
)
