// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
	"github.com/gogpu/glenda/backend/software"
)

// Presentation errors.
var (
	// ErrClosed is returned by Present after Close.
	ErrClosed = errors.New("present: presenter is closed")

	// ErrNoCreator is returned when the drawer has no texture creator.
	ErrNoCreator = errors.New("present: drawer has no texture creator")

	// ErrNilTarget is returned when Present is given no target.
	ErrNilTarget = errors.New("present: nil target")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithPosition draws the frame with its top-left corner at (x, y) pixels.
func WithPosition(x, y float32) Option {
	return func(p *Presenter) {
		p.x, p.y = x, y
	}
}

// Presenter owns the GPU texture mirroring a software target.
type Presenter struct {
	x, y    float32
	texture gpucontext.Texture
	uploads int
	closed  bool
}

// New creates a Presenter. No texture exists until the first Present.
func New(opts ...Option) *Presenter {
	p := &Presenter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present uploads target and draws it with dc.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, target *software.Target) error {
	if p.closed {
		return ErrClosed
	}
	if target == nil {
		return ErrNilTarget
	}
	if err := p.upload(dc, target); err != nil {
		return err
	}
	return dc.DrawTexture(p.texture, p.x, p.y)
}

func (p *Presenter) upload(dc gpucontext.TextureDrawer, target *software.Target) error {
	w, h := target.Width(), target.Height()
	data := backend.TightPixels(target.Image())

	if p.texture != nil && p.texture.Width() == w && p.texture.Height() == h {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(data); err != nil {
				return fmt.Errorf("present: update texture: %w", err)
			}
			p.uploads++
			return nil
		}
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrNoCreator
	}
	tex, err := creator.NewTextureFromRGBA(w, h, data)
	if err != nil {
		return fmt.Errorf("present: create %dx%d texture: %w", w, h, err)
	}
	// Software targets hold premultiplied pixels.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}
	p.release()
	p.texture = tex
	p.uploads++
	glenda.Logger().Debug("present: texture created", "width", w, "height", h)
	return nil
}

// Uploads reports how many times pixel data has been sent to the GPU.
func (p *Presenter) Uploads() int { return p.uploads }

// Texture returns the current GPU texture, or nil before the first Present.
func (p *Presenter) Texture() gpucontext.Texture { return p.texture }

func (p *Presenter) release() {
	if p.texture == nil {
		return
	}
	if d, ok := p.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.texture = nil
}

// Close destroys the GPU texture. It is safe to call more than once.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.release()
	return nil
}
