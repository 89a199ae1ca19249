// Package gpu allocates and reads back the buffer pool of the vram viewer.
//
// It talks to the GPU through the gogpu/wgpu HAL directly. A Device is
// either opened from a registered backend (Vulkan, Metal, DX12, GLES or the
// software rasterizer) or borrowed from a running gogpu window, in which
// case the pool shares the window's device and queue.
//
// # Buffers
//
// Every buffer is an RGBA8 2D texture created without any initial data.
// The HAL does not clear new textures on native backends, so their contents
// are whatever the driver hands out. The software backend zero-fills.
//
// # Readback
//
// Pool.Readback copies one texture into a MapRead staging buffer with rows
// padded to 256 bytes, waits for the queue to go idle, maps the buffer and
// strips the padding:
//
//	texture -> CopyTextureToBuffer -> staging (aligned rows) -> image.RGBA
//
// # Logging
//
// The package logs through log/slog and is silent by default. Pool.SetLogger
// is called by vram.NewSession so that vram.SetLogger reaches this package.
package gpu
