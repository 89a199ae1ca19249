// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/vram"
)

// ActionForKey maps a key press to a session action. Modifiers are
// ignored. Unbound keys map to vram.ActionNone.
func ActionForKey(key gpucontext.Key) vram.Action {
	switch key {
	case gpucontext.KeyEscape, gpucontext.KeyQ:
		return vram.ActionQuit
	case gpucontext.KeyRight:
		return vram.ActionNext
	case gpucontext.KeyLeft:
		return vram.ActionPrev
	case gpucontext.KeyUp:
		return vram.ActionForward10
	case gpucontext.KeyDown:
		return vram.ActionBack10
	case gpucontext.KeySpace:
		return vram.ActionSave
	default:
		return vram.ActionNone
	}
}

// actionQueue hands actions from the event goroutine to the draw callback
// in arrival order.
type actionQueue struct {
	mu      sync.Mutex
	pending []vram.Action
}

func (q *actionQueue) push(a vram.Action) {
	q.mu.Lock()
	q.pending = append(q.pending, a)
	q.mu.Unlock()
}

// drain returns the queued actions and empties the queue.
func (q *actionQueue) drain() []vram.Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}
