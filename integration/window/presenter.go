// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
)

// Errors returned by Presenter.
var (
	// ErrNilDrawer is returned when Present gets no draw context.
	ErrNilDrawer = errors.New("window: nil texture drawer")

	// ErrNoTextureCreator is returned when the draw context cannot create
	// textures.
	ErrNoTextureCreator = errors.New("window: draw context has no texture creator")

	// ErrInvalidDimensions is returned for an empty frame.
	ErrInvalidDimensions = errors.New("window: invalid frame dimensions")

	// ErrPresenterClosed is returned when Present is called after Close.
	ErrPresenterClosed = errors.New("window: presenter is closed")
)

// textureDestroyer is implemented by textures that hold GPU resources.
type textureDestroyer interface {
	Destroy()
}

// Presenter draws composed frames into a window through one texture.
//
// Presenter is NOT safe for concurrent use.
type Presenter struct {
	texture    gpucontext.Texture
	oldTexture gpucontext.Texture // replaced on resize, destroyed after the next upload
	width      int
	height     int
	uploads    int
	closed     bool
}

// NewPresenter returns a presenter with no texture.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Present uploads frame if changed is true or the texture does not exist
// yet, then draws the texture at the window origin.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, frame *image.RGBA, changed bool) error {
	if p.closed {
		return ErrPresenterClosed
	}
	if dc == nil {
		return ErrNilDrawer
	}
	if frame == nil || frame.Bounds().Empty() {
		return ErrInvalidDimensions
	}

	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	if p.texture != nil && (w != p.width || h != p.height) {
		destroyTexture(p.oldTexture)
		p.oldTexture = p.texture
		p.texture = nil
	}

	switch {
	case p.texture == nil:
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(w, h, frame.Pix)
		if err != nil {
			return fmt.Errorf("window: NewTextureFromRGBA failed: %w", err)
		}
		p.texture = tex
		p.width, p.height = w, h
		p.uploads++

		destroyTexture(p.oldTexture)
		p.oldTexture = nil

	case changed:
		updater, ok := p.texture.(gpucontext.TextureUpdater)
		if !ok {
			return fmt.Errorf("window: texture %T cannot be updated", p.texture)
		}
		if err := updater.UpdateData(frame.Pix); err != nil {
			return fmt.Errorf("window: texture update failed: %w", err)
		}
		p.uploads++
	}

	return dc.DrawTexture(p.texture, 0, 0)
}

// Uploads returns how many times frame data was sent to the GPU.
func (p *Presenter) Uploads() int { return p.uploads }

// Size returns the current texture size, or 0, 0 before the first Present.
func (p *Presenter) Size() (width, height int) {
	if p.texture == nil {
		return 0, 0
	}
	return p.width, p.height
}

// Close destroys the textures. Close is idempotent.
func (p *Presenter) Close() {
	if p.closed {
		return
	}
	p.closed = true
	destroyTexture(p.oldTexture)
	destroyTexture(p.texture)
	p.oldTexture, p.texture = nil, nil
}

func destroyTexture(tex gpucontext.Texture) {
	if tex == nil {
		return
	}
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}
