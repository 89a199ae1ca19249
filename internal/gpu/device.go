package gpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// autoOrder is the backend probe order for "auto". The software
// rasterizer is last so a real GPU always wins when one is present.
var autoOrder = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
	gputypes.BackendEmpty,
}

// BackendsFor maps a backend name to the HAL backends to try, in order.
func BackendsFor(name string) ([]gputypes.Backend, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return autoOrder, nil
	case "vulkan":
		return []gputypes.Backend{gputypes.BackendVulkan}, nil
	case "metal":
		return []gputypes.Backend{gputypes.BackendMetal}, nil
	case "dx12":
		return []gputypes.Backend{gputypes.BackendDX12}, nil
	case "gl":
		return []gputypes.Backend{gputypes.BackendGL}, nil
	case "software":
		return []gputypes.Backend{gputypes.BackendEmpty}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBackendUnavailable, name)
	}
}

// Device is an open HAL device with its queue.
//
// A Device opened with Open owns its instance and device. A Device from
// Shared borrows them from a window and Close leaves them alone.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     gputypes.AdapterInfo
	external bool
	closed   bool

	// Set for the software rasterizer, which packs copied rows tightly.
	tightRows bool
}

// Open opens the first usable adapter of the named backend.
// name is one of auto, vulkan, metal, dx12, gl or software.
func Open(name string) (*Device, error) {
	order, err := BackendsFor(name)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, kind := range order {
		d, err := openBackend(kind)
		if err == nil {
			slogger().Info("gpu device opened",
				"backend", kind, "adapter", d.info.Name, "type", d.info.DeviceType)
			return d, nil
		}
		slogger().Debug("backend skipped", "backend", kind, "err", err)
		errs = append(errs, fmt.Errorf("%v: %w", kind, err))
	}
	return nil, errors.Join(errs...)
}

func openBackend(kind gputypes.Backend) (*Device, error) {
	backend, ok := hal.GetBackend(kind)
	if !ok {
		return nil, ErrBackendUnavailable
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	selected := selectAdapter(instance.EnumerateAdapters(nil))
	if selected == nil {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     selected.Info,

		tightRows: kind == gputypes.BackendEmpty,
	}, nil
}

// selectAdapter prefers a discrete or integrated GPU and falls back to the
// first adapter. It returns nil for an empty list.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

// Shared borrows the HAL device and queue of provider, typically a gogpu
// window's GPU context provider. The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func Shared(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalAccess)
	}

	d := &Device{device: device, queue: queue, external: true}
	type infoProvider interface {
		AdapterInfo() gpucontext.AdapterInfo
	}
	if ip, ok := provider.(infoProvider); ok {
		info := ip.AdapterInfo()
		d.info = gputypes.AdapterInfo{Name: info.Name, DeviceType: deviceType(info.Type)}
	}
	slogger().Info("gpu device shared with window", "adapter", d.info.Name)
	return d, nil
}

func deviceType(t gpucontext.AdapterType) gputypes.DeviceType {
	switch t {
	case gpucontext.AdapterTypeDiscrete:
		return gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		return gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		return gputypes.DeviceTypeCPU
	default:
		return gputypes.DeviceTypeOther
	}
}

// Info returns the adapter description. It is empty for a shared device
// whose provider does not report one.
func (d *Device) Info() gputypes.AdapterInfo { return d.info }

// External reports whether the device is borrowed.
func (d *Device) External() bool { return d.external }

// WaitIdle blocks until all submitted work has finished.
func (d *Device) WaitIdle() error {
	if d.closed {
		return ErrDeviceClosed
	}
	return d.device.WaitIdle()
}

// Close releases the device and instance if they are owned.
// Close is idempotent.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.external {
		return
	}
	if d.device != nil {
		_ = d.device.WaitIdle()
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
	}
	d.device, d.queue, d.instance = nil, nil, nil
}
