// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window shows the vram buffer pool in a gogpu window.
//
// The data flow for each frame is:
//
//	GPU buffer -> Readback (CPU) -> ComposeFrame (window size) -> texture -> window
//
// # Architecture
//
// Viewer owns the session and is driven by two gogpu callbacks:
//
//   - OnKeyPress maps keys to vram actions and queues them
//   - OnDraw allocates the pool on the first frame, drains the queue
//     into the session and presents the current buffer
//
// Key events may arrive on a different goroutine than draw callbacks, so
// the queue is the only state they share.
//
// # Keys
//
//	Right / Left    next / previous buffer
//	Up / Down       ten buffers forward / back
//	Space           save the displayed frame
//	Escape / Q      quit
//
// # Presenter
//
// Presenter uploads composed frames through gpucontext interfaces only,
// so tests can drive it without a window. Its texture is created lazily
// and recreated on resize. The replaced texture is destroyed once the new
// one exists.
package window
