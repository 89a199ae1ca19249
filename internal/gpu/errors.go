package gpu

import "errors"

// Errors returned by the gpu package.
var (
	// ErrNoAdapter is returned when a backend exposes no usable adapter.
	ErrNoAdapter = errors.New("gpu: no adapter available")

	// ErrBackendUnavailable is returned when the requested backend is not
	// compiled in or not registered.
	ErrBackendUnavailable = errors.New("gpu: backend unavailable")

	// ErrNoHalAccess is returned when a device provider does not expose
	// its HAL device and queue.
	ErrNoHalAccess = errors.New("gpu: provider does not expose HAL device")

	// ErrDeviceClosed is returned when a closed Device is used.
	ErrDeviceClosed = errors.New("gpu: device closed")

	// ErrIndexOutOfRange is returned by Pool.Readback for a bad index.
	ErrIndexOutOfRange = errors.New("gpu: buffer index out of range")

	// ErrPoolDestroyed is returned when a destroyed Pool is used.
	ErrPoolDestroyed = errors.New("gpu: pool destroyed")

	// ErrInvalidDimensions is returned for a zero-sized pool.
	ErrInvalidDimensions = errors.New("gpu: invalid buffer dimensions")

	// ErrTooManyBuffers is returned when a pool would exceed MaxBuffers.
	ErrTooManyBuffers = errors.New("gpu: too many buffers")
)
