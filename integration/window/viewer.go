// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/vram"
)

// PoolFactory allocates the buffer pool. It is called once, from the first
// draw callback, when the window's GPU context exists.
type PoolFactory func() (vram.Pool, error)

// Viewer connects a vram.Session to window callbacks.
//
// HandleKey may be called from any goroutine. Frame and Close must be
// called from the draw goroutine.
type Viewer struct {
	cfg       vram.Config
	newPool   PoolFactory
	quit      func()
	actions   actionQueue
	session   *vram.Session
	presenter *Presenter
	err       error
	closed    bool
}

// NewViewer returns a viewer that allocates its pool with newPool and
// calls quit when the session stops or initialization fails.
func NewViewer(cfg vram.Config, newPool PoolFactory, quit func()) *Viewer {
	if quit == nil {
		quit = func() {}
	}
	return &Viewer{
		cfg:       cfg,
		newPool:   newPool,
		quit:      quit,
		presenter: NewPresenter(),
	}
}

// HandleKey queues the action bound to key. Unbound keys queue
// vram.ActionNone, which only reports the displayed buffer.
func (v *Viewer) HandleKey(key gpucontext.Key, _ gpucontext.Modifiers) {
	v.actions.push(ActionForKey(key))
}

// Frame runs one iteration of the interaction loop for a window of
// width x height: allocate the pool if needed, apply queued actions in
// order, then present the current buffer.
//
// Initialization failures are returned and also kept for Err. Save
// failures are logged and do not stop the loop.
func (v *Viewer) Frame(dc gpucontext.TextureDrawer, width, height int) error {
	if v.err != nil {
		return v.err
	}
	if v.closed {
		return vram.ErrSessionStopped
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	if v.session == nil {
		if err := v.start(); err != nil {
			v.err = err
			v.quit()
			return err
		}
	}

	for _, a := range v.actions.drain() {
		err := v.session.Handle(a, width, height)
		if errors.Is(err, vram.ErrSessionStopped) {
			break
		}
		if err != nil {
			vram.Logger().Warn("action failed", "action", a, "err", err)
		}
	}
	if !v.session.Running() {
		v.quit()
		return nil
	}

	frame, changed, err := v.session.Frame(width, height)
	if err != nil {
		vram.Logger().Warn("frame readback failed", "buffer", v.session.Cursor().Index(), "err", err)
		return err
	}
	if err := v.presenter.Present(dc, frame, changed); err != nil {
		vram.Logger().Warn("present failed", "err", err)
		return err
	}
	return nil
}

func (v *Viewer) start() error {
	if v.newPool == nil {
		return &vram.InitError{Stage: "buffer pool", Err: errors.New("no pool factory")}
	}
	pool, err := v.newPool()
	if err != nil {
		return &vram.InitError{Stage: "buffer pool", Err: err}
	}
	session, err := vram.NewSession(v.cfg, pool)
	if err != nil {
		pool.Destroy()
		if errors.Is(err, vram.ErrNoBuffers) {
			return err
		}
		return &vram.InitError{Stage: "session", Err: err}
	}
	v.session = session

	w, h := pool.Size()
	vram.Logger().Info("buffer pool allocated", "buffers", pool.Len(), "width", w, "height", h)
	return nil
}

// Session returns the running session, or nil before the first frame.
func (v *Viewer) Session() *vram.Session { return v.session }

// Err returns the initialization error, if any.
func (v *Viewer) Err() error { return v.err }

// Close releases the presenter textures and the pool. Close is idempotent.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.presenter.Close()
	if v.session != nil {
		v.session.Close()
	}
}

// String describes the viewer state for logging.
func (v *Viewer) String() string {
	if v.session == nil {
		return "viewer[not started]"
	}
	c := v.session.Cursor()
	return fmt.Sprintf("viewer[%s, buffer %d/%d]", v.session.State(), c.Index(), c.Count())
}
