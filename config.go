package vram

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Usage is the one-line synopsis printed with every UsageError.
const Usage = "Usage: vram [-v|--verbose] WIDTH HEIGHT MEGABYTES"

// BytesPerPixel is the size of one RGBA8 texel.
const BytesPerPixel = 4

// Environment variables read by LoadEnv.
const (
	EnvBackend     = "VRAM_BACKEND"
	EnvFrameFormat = "VRAM_FRAME_FORMAT"
	EnvOutputDir   = "VRAM_OUTPUT_DIR"
)

// Backend names accepted in VRAM_BACKEND.
const (
	BackendAuto     = "auto"
	BackendVulkan   = "vulkan"
	BackendMetal    = "metal"
	BackendDX12     = "dx12"
	BackendGL       = "gl"
	BackendSoftware = "software"
)

var backendNames = []string{
	BackendAuto, BackendVulkan, BackendMetal, BackendDX12, BackendGL, BackendSoftware,
}

// FrameFormat selects the encoder used for saved frames.
type FrameFormat int

const (
	// FormatBMP writes an uncompressed Windows bitmap. Files keep the .png
	// name for compatibility with earlier dumps.
	FormatBMP FrameFormat = iota

	// FormatPNG writes a PNG, matching the file extension.
	FormatPNG
)

// String returns the lower-case format name.
func (f FrameFormat) String() string {
	switch f {
	case FormatBMP:
		return "bmp"
	case FormatPNG:
		return "png"
	default:
		return "FrameFormat(" + strconv.Itoa(int(f)) + ")"
	}
}

// Config is the immutable run configuration.
type Config struct {
	// Width and Height are the buffer and window dimensions in pixels.
	Width  uint32
	Height uint32

	// Megabytes is the VRAM budget to fill with buffers.
	Megabytes uint32

	// Verbose prints the buffer count and per-buffer progress.
	Verbose bool

	// Backend is the HAL backend name, BackendAuto by default.
	Backend string

	// FrameFormat is the encoder for saved frames.
	FrameFormat FrameFormat

	// OutputDir is where saved frames are written.
	OutputDir string
}

// DefaultConfig returns a Config with the environment-controlled fields set
// to their defaults and zero dimensions.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendAuto,
		FrameFormat: FormatBMP,
		OutputDir:   ".",
	}
}

// BufferCount returns how many buffers of the configured size fit the budget.
func (c Config) BufferCount() uint64 {
	return BufferCount(c.Megabytes, c.Width, c.Height)
}

// BufferSize returns the size of one buffer in bytes.
func (c Config) BufferSize() uint64 {
	return uint64(c.Width) * uint64(c.Height) * BytesPerPixel
}

// BufferCount computes floor(megabytes*1024*1024 / (width*height*4)).
// The arithmetic is done in 64 bits so no 32-bit input overflows.
// Zero width or height yields zero buffers.
func BufferCount(megabytes, width, height uint32) uint64 {
	per := uint64(width) * uint64(height) * BytesPerPixel
	if per == 0 {
		return 0
	}
	return uint64(megabytes) * 1024 * 1024 / per
}

// ParseArgs parses the command-line arguments, without the program name.
//
// Accepted forms:
//
//	WIDTH HEIGHT MEGABYTES
//	-v|--verbose WIDTH HEIGHT MEGABYTES
//
// Every numeric token must be an unsigned decimal integer with nothing
// trailing it. Width and height must be positive. Any other input returns a
// *UsageError. Environment fields keep their defaults, see LoadEnv.
func ParseArgs(args []string) (Config, error) {
	cfg := DefaultConfig()

	switch len(args) {
	case 3:
	case 4:
		if args[0] != "-v" && args[0] != "--verbose" {
			return Config{}, usageErrorf("unknown flag %q", args[0])
		}
		cfg.Verbose = true
		args = args[1:]
	default:
		return Config{}, usageErrorf("expected 3 or 4 arguments, got %d", len(args))
	}

	var err error
	if cfg.Width, err = parseUint("WIDTH", args[0]); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = parseUint("HEIGHT", args[1]); err != nil {
		return Config{}, err
	}
	if cfg.Megabytes, err = parseUint("MEGABYTES", args[2]); err != nil {
		return Config{}, err
	}

	if cfg.Width == 0 || cfg.Height == 0 {
		return Config{}, usageErrorf("WIDTH and HEIGHT must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// parseUint accepts only ASCII digits so signs, spaces and trailing
// characters are all rejected.
func parseUint(name, s string) (uint32, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, usageErrorf("%s must be an unsigned integer, got %q", name, s)
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, usageErrorf("%s out of range: %q", name, s)
	}
	return uint32(v), nil
}

// LoadEnv overlays the environment settings on cfg. getenv is usually
// os.Getenv; empty values keep the current setting.
func LoadEnv(cfg Config, getenv func(string) string) (Config, error) {
	if v := strings.ToLower(strings.TrimSpace(getenv(EnvBackend))); v != "" {
		if !validBackend(v) {
			return cfg, usageErrorf("%s=%q, want one of %s", EnvBackend, v, strings.Join(backendNames, ", "))
		}
		cfg.Backend = v
	}

	switch v := strings.ToLower(strings.TrimSpace(getenv(EnvFrameFormat))); v {
	case "":
	case "bmp":
		cfg.FrameFormat = FormatBMP
	case "png":
		cfg.FrameFormat = FormatPNG
	default:
		return cfg, usageErrorf("%s=%q, want bmp or png", EnvFrameFormat, v)
	}

	if v := strings.TrimSpace(getenv(EnvOutputDir)); v != "" {
		cfg.OutputDir = filepath.Clean(v)
	}
	return cfg, nil
}

func validBackend(name string) bool {
	for _, b := range backendNames {
		if b == name {
			return true
		}
	}
	return false
}
