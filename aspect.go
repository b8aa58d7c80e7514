// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"fmt"
	"image"
	"math"
)

// FixedAspectRatio gives its child the largest centered sub-viewport with
// a fixed width/height ratio. Bars are left on the sides (pillarbox) or
// above and below (letterbox).
type FixedAspectRatio struct {
	viewport Viewport
	aspect   float64
	child    Renderer
}

// NewFixedAspectRatio creates the operator for aspect = width/height and
// lays the child out in a zero viewport. A nil child is replaced by
// NullRenderer.
func NewFixedAspectRatio(aspect float64, child Renderer) (*FixedAspectRatio, error) {
	if err := validateAspect(aspect); err != nil {
		return nil, err
	}
	f := &FixedAspectRatio{aspect: aspect, child: orNull(child)}
	f.update()
	return f, nil
}

func validateAspect(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAspectRatio, a)
	}
	return nil
}

// fitAspect returns the largest viewport of the given aspect ratio that is
// centered in v. Sizes truncate toward zero, after products within rounding
// error of an integer are snapped to it, so aspect == w/h yields v itself.
func fitAspect(v Viewport, aspect float64) Viewport {
	var size image.Point
	if w := int(snap(float64(v.Size.Y) * aspect)); w <= v.Size.X {
		size = image.Pt(w, v.Size.Y)
	} else {
		size = image.Pt(v.Size.X, int(snap(float64(v.Size.X)/aspect)))
	}
	return Viewport{
		Pos:  v.Pos.Add(v.Size.Sub(size).Div(2)),
		Size: size,
	}
}

// snap rounds x to the nearest integer when it is within floating point
// error of it.
func snap(x float64) float64 {
	if r := math.Round(x); math.Abs(x-r) < 1e-9*math.Max(1, r) {
		return r
	}
	return x
}

func (f *FixedAspectRatio) update() {
	sub := fitAspect(f.viewport, f.aspect)
	Logger().Debug("glenda: aspect layout", "aspect", f.aspect, "viewport", f.viewport, "child", sub)
	f.child.SetViewport(sub)
}

// SetViewport implements Renderer.
func (f *FixedAspectRatio) SetViewport(v Viewport) {
	f.viewport = v
	f.update()
}

// Render draws the child.
func (f *FixedAspectRatio) Render() {
	f.child.Render()
}

// Viewport returns the viewport last passed to SetViewport.
func (f *FixedAspectRatio) Viewport() Viewport { return f.viewport }

// AspectRatio returns the width/height ratio.
func (f *FixedAspectRatio) AspectRatio() float64 { return f.aspect }

// SetAspectRatio changes the ratio and lays out the child again.
func (f *FixedAspectRatio) SetAspectRatio(aspect float64) error {
	if err := validateAspect(aspect); err != nil {
		return err
	}
	f.aspect = aspect
	f.update()
	return nil
}

// Child returns the child renderer.
func (f *FixedAspectRatio) Child() Renderer { return f.child }

// ReplaceChild installs r as the child and returns the previous one.
// The caller owns the returned renderer.
func (f *FixedAspectRatio) ReplaceChild(r Renderer) Renderer {
	old := f.child
	f.child = orNull(r)
	f.update()
	return old
}

// Close closes the child. Closing twice is a no-op.
func (f *FixedAspectRatio) Close() error {
	err := closeRenderer(f.child)
	f.child = NullRenderer{}
	return err
}

var _ Renderer = (*FixedAspectRatio)(nil)
