package gpu

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// BufferUsage is the usage every pool texture is created with.
const BufferUsage = gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst

// MaxBuffers is the largest buffer count a Pool accepts.
const MaxBuffers = 1 << 20

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// PoolOption configures a Pool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	budgetBytes uint64
	progress    func(index, count int) error
}

// WithBudget records the VRAM budget the pool was sized for, reported by
// Pool.Stats. It defaults to the pool's own size.
func WithBudget(bytes uint64) PoolOption {
	return func(o *poolOptions) {
		o.budgetBytes = bytes
	}
}

// WithProgress sets a callback invoked before each buffer is allocated.
// A non-nil error from fn aborts NewPool.
func WithProgress(fn func(index, count int) error) PoolOption {
	return func(o *poolOptions) {
		o.progress = fn
	}
}

// Pool is a fixed array of uninitialized RGBA8 textures on one device.
//
// Pool is safe for concurrent use. It implements vram.Pool.
type Pool struct {
	mu sync.Mutex

	dev      *Device
	width    uint32
	height   uint32
	textures []hal.Texture

	// Last usage each texture was transitioned to; zero means never used.
	usage []gputypes.TextureUsage

	// Staging buffer shared by all readbacks, created on first use.
	staging hal.Buffer
	pitch   uint32

	mem       *memoryTracker
	destroyed bool
}

// NewPool allocates count textures of width x height on dev. The pool
// takes ownership of dev and closes it in Destroy.
//
// No texture is written after creation. On failure every texture created
// so far is destroyed and dev is left open.
func NewPool(dev *Device, width, height uint32, count uint64, opts ...PoolOption) (*Pool, error) {
	if dev == nil || dev.closed {
		return nil, ErrDeviceClosed
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if count > MaxBuffers {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyBuffers, count, MaxBuffers)
	}

	bufferBytes := uint64(width) * uint64(height) * 4
	o := poolOptions{budgetBytes: bufferBytes * count}
	for _, opt := range opts {
		opt(&o)
	}

	n := int(count)
	p := &Pool{
		dev:    dev,
		width:  width,
		height: height,
		pitch:  rowPitch(width, dev.tightRows),
		mem:    newMemoryTracker(o.budgetBytes, bufferBytes),
	}

	for i := range n {
		if o.progress != nil {
			if err := o.progress(i, n); err != nil {
				p.destroyTextures()
				return nil, fmt.Errorf("gpu: allocation stopped at buffer %d of %d: %w", i, n, err)
			}
		}
		slogger().Info("now initializing buffer", "buffer", i, "count", n)

		tex, err := dev.device.CreateTexture(&hal.TextureDescriptor{
			Label:         fmt.Sprintf("vram_buffer_%d", i),
			Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatRGBA8Unorm,
			Usage:         BufferUsage,
		})
		if err != nil {
			p.destroyTextures()
			return nil, fmt.Errorf("gpu: create buffer %d of %d: %w", i, n, err)
		}
		p.textures = append(p.textures, tex)
		p.usage = append(p.usage, 0)
		p.mem.alloc()
	}

	slogger().Debug("buffer pool ready", "stats", p.mem.stats(), "row_pitch", p.pitch)
	return p, nil
}

// rowPitch returns the staging row stride. The software rasterizer copies
// rows tightly packed and ignores BytesPerRow.
func rowPitch(width uint32, tight bool) uint32 {
	bytesPerRow := width * 4
	if tight {
		return bytesPerRow
	}
	return (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// Len returns the number of buffers.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.textures)
}

// Size returns the buffer dimensions.
func (p *Pool) Size() (width, height int) {
	return int(p.width), int(p.height)
}

// Stats returns the pool's memory accounting.
func (p *Pool) Stats() MemoryStats {
	return p.mem.stats()
}

// Device returns the device the pool allocates on.
func (p *Pool) Device() *Device { return p.dev }

// SetLogger sets the logger for the gpu package.
func (p *Pool) SetLogger(l *slog.Logger) {
	SetLogger(l)
}

// Readback copies buffer i into a new image. The call blocks until the
// copy has completed on the GPU.
func (p *Pool) Readback(i int) (*image.RGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.destroyed {
		return nil, ErrPoolDestroyed
	}
	if i < 0 || i >= len(p.textures) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(p.textures))
	}
	if err := p.ensureStaging(); err != nil {
		return nil, err
	}
	if err := p.copyToStaging(i); err != nil {
		return nil, err
	}
	return p.readStaging()
}

func (p *Pool) stagingSize() uint64 {
	return uint64(p.pitch) * uint64(p.height)
}

func (p *Pool) ensureStaging() error {
	if p.staging != nil {
		return nil
	}
	buf, err := p.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "vram_readback_staging",
		Size:  p.stagingSize(),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	p.staging = buf
	slogger().Debug("staging buffer created", "bytes", p.stagingSize(), "row_pitch", p.pitch)
	return nil
}

// copyToStaging records and submits one texture-to-buffer copy, then waits
// for the device to go idle.
func (p *Pool) copyToStaging(i int) error {
	device := p.dev.device
	tex := p.textures[i]

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "vram_readback"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("vram_readback"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	if p.usage[i] != gputypes.TextureUsageCopySrc {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex,
			Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
			Usage: hal.TextureUsageTransition{
				OldUsage: p.usage[i],
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
	}

	encoder.CopyTextureToBuffer(tex, p.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  p.pitch,
			RowsPerImage: p.height,
		},
		TextureBase: hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		Size:        hal.Extent3D{Width: p.width, Height: p.height, DepthOrArrayLayers: 1},
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmd)

	if _, err := p.dev.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("gpu: submit readback: %w", err)
	}
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("gpu: wait for readback: %w", err)
	}
	p.usage[i] = gputypes.TextureUsageCopySrc
	return nil
}

// readStaging maps the staging buffer and strips the row padding.
func (p *Pool) readStaging() (*image.RGBA, error) {
	size := p.stagingSize()
	mapping, err := p.dev.device.MapBuffer(p.staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("gpu: map staging buffer: %w", err)
	}
	if !mapping.IsCoherent {
		slogger().Debug("staging mapping is not coherent")
	}

	data := unsafe.Slice((*byte)(mapping.Ptr), size)
	w, h := int(p.width), int(p.height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rowBytes := w * 4
	pitch := int(p.pitch)
	for y := range h {
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], data[y*pitch:y*pitch+rowBytes])
	}

	if err := p.dev.device.UnmapBuffer(p.staging); err != nil {
		return nil, fmt.Errorf("gpu: unmap staging buffer: %w", err)
	}
	return img, nil
}

// Destroy releases every texture, the staging buffer and the device.
// Destroy is idempotent.
func (p *Pool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.destroyed {
		return
	}
	p.destroyed = true
	if err := p.dev.device.WaitIdle(); err != nil {
		slogger().Warn("wait idle before destroy", "err", err)
	}
	p.destroyTextures()
	if p.staging != nil {
		p.dev.device.DestroyBuffer(p.staging)
		p.staging = nil
	}
	p.dev.Close()
	slogger().Info("buffer pool destroyed")
}

func (p *Pool) destroyTextures() {
	for _, tex := range p.textures {
		if tex != nil {
			p.dev.device.DestroyTexture(tex)
		}
	}
	p.textures = nil
	p.usage = nil
	p.mem.reset()
}
