package vram

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Pool is a fixed set of equally sized GPU buffers.
//
// The GPU implementation lives in internal/gpu; tests use in-memory pools.
type Pool interface {
	// Len returns the number of buffers. It never changes.
	Len() int

	// Size returns the buffer dimensions in pixels.
	Size() (width, height int)

	// Readback copies buffer i to host memory. It blocks until the GPU
	// has finished the copy.
	Readback(i int) (*image.RGBA, error)

	// Destroy releases every buffer. The pool must not be used afterwards.
	Destroy()
}

// State is the interaction loop state.
type State int

const (
	// StateRunning accepts actions and renders frames.
	StateRunning State = iota
	// StateStopped is terminal.
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// Session owns the buffer pool and the cursor for the life of the window.
//
// Session is NOT safe for concurrent use. The window drives it from its draw
// callback only.
type Session struct {
	cfg    Config
	pool   Pool
	cursor Cursor
	state  State
	closed bool

	// Composed frame cache, keyed by buffer index and window size.
	frame      *image.RGBA
	frameIndex int
}

// NewSession wraps pool. It returns ErrNoBuffers for an empty pool.
func NewSession(cfg Config, pool Pool) (*Session, error) {
	if pool == nil {
		return nil, errors.New("vram: nil pool")
	}
	if pool.Len() == 0 {
		return nil, ErrNoBuffers
	}
	propagateLogger(pool, Logger())
	return &Session{
		cfg:        cfg,
		pool:       pool,
		cursor:     NewCursor(pool.Len()),
		frameIndex: -1,
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// Cursor returns a copy of the current cursor.
func (s *Session) Cursor() Cursor { return s.cursor }

// State returns the loop state.
func (s *Session) State() State { return s.state }

// Running reports whether the session still accepts actions.
func (s *Session) Running() bool { return s.state == StateRunning }

// Stop moves the session to StateStopped. It is idempotent.
func (s *Session) Stop() {
	s.state = StateStopped
}

// Handle applies one action. width and height are the current window size,
// used by ActionSave. Every action except ActionQuit ends by logging the
// displayed buffer, ActionNone included. Unknown actions are ignored.
func (s *Session) Handle(a Action, width, height int) error {
	if s.state == StateStopped {
		return ErrSessionStopped
	}

	switch a {
	case ActionQuit:
		s.Stop()
		Logger().Info("quit requested")
		return nil
	case ActionNext, ActionPrev, ActionForward10, ActionBack10:
		s.cursor.Move(a.Delta())
	case ActionSave:
		if _, err := s.Save(width, height); err != nil {
			return err
		}
	case ActionNone:
	default:
		return nil
	}

	Logger().Info("now displaying buffer", "buffer", s.cursor.Index(), "count", s.cursor.Count())
	return nil
}

// Frame returns the current buffer composed at width x height. changed is
// false when the previous frame is still valid, so the caller can skip
// uploading it again.
func (s *Session) Frame(width, height int) (frame *image.RGBA, changed bool, err error) {
	idx := s.cursor.Index()
	if s.frame != nil && s.frameIndex == idx && s.frame.Bounds().Dx() == width && s.frame.Bounds().Dy() == height {
		return s.frame, false, nil
	}
	frame, err = s.compose(idx, width, height)
	if err != nil {
		return nil, false, err
	}
	s.frame = frame
	s.frameIndex = idx
	return frame, true, nil
}

// Save reads the current buffer back from the GPU, composes it at the window
// size and writes it to the output directory. It returns the written path.
func (s *Session) Save(width, height int) (string, error) {
	idx := s.cursor.Index()
	Logger().Log(context.Background(), LevelNotice, "saving frame", "buffer", idx)

	frame, err := s.compose(idx, width, height)
	if err != nil {
		return "", err
	}

	path, err := WriteFrame(s.cfg.OutputDir, idx, frame, s.cfg.FrameFormat)
	if err != nil {
		return "", err
	}
	Logger().Info("frame saved", "path", path, "format", s.cfg.FrameFormat, "width", width, "height", height)
	return path, nil
}

func (s *Session) compose(idx, width, height int) (*image.RGBA, error) {
	if s.closed {
		return nil, ErrSessionStopped
	}
	src, err := s.pool.Readback(idx)
	if err != nil {
		return nil, fmt.Errorf("vram: read back buffer %d: %w", idx, err)
	}
	return ComposeFrame(src, width, height)
}

// Close stops the session and destroys the pool. Close is idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.Stop()
	s.closed = true
	s.frame = nil
	s.pool.Destroy()
}
