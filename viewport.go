// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"fmt"
	"image"
)

// Clipper is the part of a graphics backend a Viewport applies itself to.
type Clipper interface {
	// SetViewportRect maps normalized device coordinates to the rectangle.
	SetViewportRect(x, y, width, height int)

	// SetScissorRect sets the scissor rectangle.
	SetScissorRect(x, y, width, height int)

	// EnableScissorClip turns on scissor testing so draws outside the
	// scissor rectangle are discarded.
	EnableScissorClip()
}

// Viewport is a rectangle in framebuffer pixels.
//
// Pos is the top-left corner. Size is width and height and is expected
// to be non-negative; layout operators never hand a negative size to a
// child.
type Viewport struct {
	Pos  image.Point
	Size image.Point
}

// NewViewport returns the viewport at (x, y) with the given size.
func NewViewport(x, y, width, height int) Viewport {
	return Viewport{Pos: image.Pt(x, y), Size: image.Pt(width, height)}
}

// ViewportFromSize returns a viewport of the given size anchored at the origin.
func ViewportFromSize(width, height int) Viewport {
	return Viewport{Size: image.Pt(width, height)}
}

// ViewportFromRect converts a rectangle. The rectangle is canonicalized first.
func ViewportFromRect(r image.Rectangle) Viewport {
	r = r.Canon()
	return Viewport{Pos: r.Min, Size: r.Size()}
}

// ViewportFromArray converts an {x, y, width, height} array.
func ViewportFromArray(a [4]int) Viewport {
	return NewViewport(a[0], a[1], a[2], a[3])
}

// Rect returns the viewport as a rectangle.
func (v Viewport) Rect() image.Rectangle {
	return image.Rectangle{Min: v.Pos, Max: v.Pos.Add(v.Size)}
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.Size.X <= 0 || v.Size.Y <= 0
}

// Center returns the center point, rounded toward the origin.
func (v Viewport) Center() image.Point {
	return v.Pos.Add(v.Size.Div(2))
}

// Contains reports whether o lies entirely inside v.
// An empty o is contained when its position lies inside or on the border of v.
func (v Viewport) Contains(o Viewport) bool {
	if o.Empty() {
		r := v.Rect()
		return o.Pos.X >= r.Min.X && o.Pos.X <= r.Max.X &&
			o.Pos.Y >= r.Min.Y && o.Pos.Y <= r.Max.Y
	}
	return o.Rect().In(v.Rect())
}

// Apply makes v the active drawing region of c: the viewport transform
// and the scissor rectangle are both set to v, and scissor clipping is
// enabled.
func (v Viewport) Apply(c Clipper) {
	c.SetViewportRect(v.Pos.X, v.Pos.Y, v.Size.X, v.Size.Y)
	c.SetScissorRect(v.Pos.X, v.Pos.Y, v.Size.X, v.Size.Y)
	c.EnableScissorClip()
}

// String returns a string representation of the viewport.
func (v Viewport) String() string {
	return fmt.Sprintf("Viewport(%d,%d %dx%d)", v.Pos.X, v.Pos.Y, v.Size.X, v.Size.Y)
}
