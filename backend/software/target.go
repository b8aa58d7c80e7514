// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// Target is a CPU-backed framebuffer using *image.RGBA.
// Pixels are premultiplied RGBA8 with the origin at the top-left.
type Target struct {
	img *image.RGBA
}

// NewTarget creates a transparent framebuffer.
func NewTarget(width, height int) *Target {
	return &Target{
		img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
	}
}

// NewTargetFromImage wraps an existing *image.RGBA as a target.
// The image is used directly without copying.
func NewTargetFromImage(img *image.RGBA) *Target {
	return &Target{img: img}
}

// Width returns the target width in pixels.
func (t *Target) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *Target) Height() int {
	return t.img.Bounds().Dy()
}

// Bounds returns the framebuffer rectangle.
func (t *Target) Bounds() image.Rectangle {
	return t.img.Bounds()
}

// Format returns the pixel format (RGBA8).
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *Target) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *Target) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *Target) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with c, ignoring viewport and scissor.
func (t *Target) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	b := t.img.Bounds()
	if b.Empty() {
		return
	}
	first := t.img.Pix[t.img.PixOffset(b.Min.X, b.Min.Y):]
	row := first[:b.Dx()*4]
	row[0], row[1], row[2], row[3] = rgba.R, rgba.G, rgba.B, rgba.A
	// Double the filled prefix until the row is full.
	for n := 4; n < len(row); n *= 2 {
		copy(row[n:], row[:n])
	}
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		copy(t.img.Pix[t.img.PixOffset(b.Min.X, y):], row)
	}
}

// PixelAt returns the premultiplied color at (x, y).
// Points outside the target are transparent.
func (t *Target) PixelAt(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// Resize replaces the framebuffer with a transparent one of the new size.
// The contents are not preserved.
func (t *Target) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}
