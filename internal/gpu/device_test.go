package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/software"
)

func TestBackendsFor(t *testing.T) {
	tests := []struct {
		name string
		want gputypes.Backend
		n    int
	}{
		{"auto", gputypes.BackendVulkan, len(autoOrder)},
		{"", gputypes.BackendVulkan, len(autoOrder)},
		{"vulkan", gputypes.BackendVulkan, 1},
		{"Metal", gputypes.BackendMetal, 1},
		{"dx12", gputypes.BackendDX12, 1},
		{"gl", gputypes.BackendGL, 1},
		{"software", gputypes.BackendEmpty, 1},
	}
	for _, tt := range tests {
		got, err := BackendsFor(tt.name)
		if err != nil {
			t.Fatalf("BackendsFor(%q) = %v", tt.name, err)
		}
		if len(got) != tt.n || got[0] != tt.want {
			t.Errorf("BackendsFor(%q) = %v", tt.name, got)
		}
	}

	if _, err := BackendsFor("glide"); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("BackendsFor(glide) error = %v, want ErrBackendUnavailable", err)
	}
	if autoOrder[len(autoOrder)-1] != gputypes.BackendEmpty {
		t.Error("software backend must be probed last")
	}
}

func TestSelectAdapter(t *testing.T) {
	if selectAdapter(nil) != nil {
		t.Error("selectAdapter(nil) should return nil")
	}

	adapters := []hal.ExposedAdapter{
		{Info: gputypes.AdapterInfo{Name: "cpu", DeviceType: gputypes.DeviceTypeCPU}},
		{Info: gputypes.AdapterInfo{Name: "virtual", DeviceType: gputypes.DeviceTypeVirtualGPU}},
		{Info: gputypes.AdapterInfo{Name: "igpu", DeviceType: gputypes.DeviceTypeIntegratedGPU}},
		{Info: gputypes.AdapterInfo{Name: "dgpu", DeviceType: gputypes.DeviceTypeDiscreteGPU}},
	}
	if got := selectAdapter(adapters); got.Info.Name != "igpu" {
		t.Errorf("selectAdapter() = %q, want first hardware adapter igpu", got.Info.Name)
	}
	if got := selectAdapter(adapters[:2]); got.Info.Name != "cpu" {
		t.Errorf("selectAdapter() = %q, want fallback to first adapter", got.Info.Name)
	}
}

func TestOpenSoftware(t *testing.T) {
	d, err := Open("software")
	if err != nil {
		t.Fatalf("Open(software) = %v", err)
	}
	defer d.Close()

	if d.External() {
		t.Error("opened device should not be external")
	}
	if !d.tightRows {
		t.Error("software device should pack rows tightly")
	}
	if d.Info().DeviceType != gputypes.DeviceTypeCPU {
		t.Errorf("DeviceType = %v, want CPU", d.Info().DeviceType)
	}
	if err := d.WaitIdle(); err != nil {
		t.Errorf("WaitIdle() = %v", err)
	}

	d.Close()
	d.Close()
	if err := d.WaitIdle(); !errors.Is(err, ErrDeviceClosed) {
		t.Errorf("WaitIdle after Close = %v, want ErrDeviceClosed", err)
	}
}

func TestOpenUnregisteredBackend(t *testing.T) {
	// Only the software backend is linked into this test binary.
	if _, err := Open("dx12"); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Open(dx12) error = %v, want ErrBackendUnavailable", err)
	}
}

type halProvider struct {
	device any
	queue  any
	info   gpucontext.AdapterInfo
}

func (p halProvider) HalDevice() any                      { return p.device }
func (p halProvider) HalQueue() any                       { return p.queue }
func (p halProvider) AdapterInfo() gpucontext.AdapterInfo { return p.info }

func TestShared(t *testing.T) {
	owner, err := Open("software")
	if err != nil {
		t.Fatal(err)
	}
	defer owner.Close()

	d, err := Shared(halProvider{
		device: owner.device,
		queue:  owner.queue,
		info:   gpucontext.AdapterInfo{Name: "window gpu", Type: gpucontext.AdapterTypeDiscrete},
	})
	if err != nil {
		t.Fatalf("Shared() = %v", err)
	}
	if !d.External() {
		t.Error("shared device should be external")
	}
	if d.Info().Name != "window gpu" || d.Info().DeviceType != gputypes.DeviceTypeDiscreteGPU {
		t.Errorf("Info() = %+v", d.Info())
	}

	d.Close()
	if owner.device == nil {
		t.Error("closing a shared device must not release the owner's device")
	}
}

func TestSharedErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider any
	}{
		{"nil", nil},
		{"no hal methods", struct{}{}},
		{"wrong device type", halProvider{device: "device", queue: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Shared(tt.provider); !errors.Is(err, ErrNoHalAccess) {
				t.Errorf("Shared() error = %v, want ErrNoHalAccess", err)
			}
		})
	}
}

func TestDeviceType(t *testing.T) {
	tests := map[gpucontext.AdapterType]gputypes.DeviceType{
		gpucontext.AdapterTypeDiscrete:   gputypes.DeviceTypeDiscreteGPU,
		gpucontext.AdapterTypeIntegrated: gputypes.DeviceTypeIntegratedGPU,
		gpucontext.AdapterTypeSoftware:   gputypes.DeviceTypeCPU,
		gpucontext.AdapterTypeUnknown:    gputypes.DeviceTypeOther,
	}
	for in, want := range tests {
		if got := deviceType(in); got != want {
			t.Errorf("deviceType(%v) = %v, want %v", in, got, want)
		}
	}
}
