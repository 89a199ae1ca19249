// Package vram is a viewer for uninitialized GPU memory.
//
// # Overview
//
// vram allocates as many GPU textures as fit a megabyte budget, never writes
// to them, and lets the user page through them in a window. On many drivers
// freshly allocated video memory still holds whatever the previous owner left
// behind (the "palinopsia bug"), so the window shows fragments of other
// programs' frames, desktop compositing buffers or browser tabs.
//
// # Quick Start
//
//	vram 1920 1080 512      # 64 full-HD buffers
//	vram -v 800 600 64      # verbose: prints the buffer count and progress
//
// Keys: Right/Left move by one buffer, Up/Down by ten, Space saves the current
// frame as frame_<index>.png, Escape or q quits.
//
// # Architecture
//
// The package is organized into:
//   - Public API: Config, ParseArgs, BufferCount, Cursor, Session, Action
//   - internal/gpu: wgpu HAL device, texture pool and staging readback
//   - integration/window: gogpu window, key mapping and frame presentation
//   - cmd/vram: the command-line entry point
//
// The root package has no GPU dependencies. A Session drives any Pool.
//
// # Configuration
//
// Positional arguments select the buffer size and budget. Environment
// variables tune the rest, see LoadEnv:
//
//	VRAM_BACKEND       auto, vulkan, metal, dx12, gl or software
//	VRAM_FRAME_FORMAT  bmp (default) or png
//	VRAM_OUTPUT_DIR    directory for saved frames (default ".")
package vram

// Version information
const (
	// Version is the current version of the tool
	Version = "0.1.0"
)
