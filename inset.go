// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"errors"
	"fmt"
	"image"
)

// Inset draws an outer renderer over the full viewport and an inner
// renderer inside it, shrunk by a fixed border on every side.
type Inset struct {
	viewport Viewport
	inset    int
	outer    Renderer
	inner    Renderer
}

// NewInset creates an inset of px pixels and lays both children out in a
// zero viewport. A nil child is replaced by NullRenderer.
func NewInset(px int, outer, inner Renderer) (*Inset, error) {
	if err := validateInset(px); err != nil {
		return nil, err
	}
	in := &Inset{inset: px, outer: orNull(outer), inner: orNull(inner)}
	in.update()
	return in, nil
}

func validateInset(px int) error {
	if px < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInset, px)
	}
	return nil
}

// innerViewport shrinks v by px on every side. If the border does not fit
// the result keeps its position and has zero size.
func innerViewport(v Viewport, px int) Viewport {
	inner := Viewport{
		Pos:  v.Pos.Add(image.Pt(px, px)),
		Size: v.Size.Sub(image.Pt(2*px, 2*px)),
	}
	if inner.Size.X < 0 || inner.Size.Y < 0 {
		inner.Size = image.Point{}
	}
	return inner
}

func (in *Inset) update() {
	inner := innerViewport(in.viewport, in.inset)
	Logger().Debug("glenda: inset layout", "inset", in.inset, "outer", in.viewport, "inner", inner)
	in.outer.SetViewport(in.viewport)
	in.inner.SetViewport(inner)
}

// SetViewport implements Renderer.
func (in *Inset) SetViewport(v Viewport) {
	in.viewport = v
	in.update()
}

// Render draws the outer child, then the inner child.
func (in *Inset) Render() {
	in.outer.Render()
	in.inner.Render()
}

// Viewport returns the viewport last passed to SetViewport.
func (in *Inset) Viewport() Viewport { return in.viewport }

// Inset returns the border width in pixels.
func (in *Inset) Inset() int { return in.inset }

// SetInset changes the border width and lays out both children again.
func (in *Inset) SetInset(px int) error {
	if err := validateInset(px); err != nil {
		return err
	}
	in.inset = px
	in.update()
	return nil
}

// Outer returns the outer child.
func (in *Inset) Outer() Renderer { return in.outer }

// Inner returns the inner child.
func (in *Inset) Inner() Renderer { return in.inner }

// ReplaceOuter installs r as the outer child and returns the previous one.
// The caller owns the returned renderer.
func (in *Inset) ReplaceOuter(r Renderer) Renderer {
	old := in.outer
	in.outer = orNull(r)
	in.outer.SetViewport(in.viewport)
	return old
}

// ReplaceInner installs r as the inner child and returns the previous one.
// The caller owns the returned renderer.
func (in *Inset) ReplaceInner(r Renderer) Renderer {
	old := in.inner
	in.inner = orNull(r)
	in.inner.SetViewport(innerViewport(in.viewport, in.inset))
	return old
}

// Close closes both children. Closing twice is a no-op.
func (in *Inset) Close() error {
	err := errors.Join(closeRenderer(in.outer), closeRenderer(in.inner))
	in.outer, in.inner = NullRenderer{}, NullRenderer{}
	return err
}

var _ Renderer = (*Inset)(nil)
