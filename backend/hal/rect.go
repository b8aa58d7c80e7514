// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"image"

	"github.com/gogpu/glenda/backend"
)

// passRects returns the viewport and scissor rectangles to set on a render
// pass with a target of the given size. Render passes reject viewports
// that leave the target, so the viewport is clipped to it and fix maps
// clip coordinates of the requested viewport onto the clipped one. ok is
// false when nothing would be drawn.
func passRects(viewport, scissor image.Rectangle, scissorOn bool, target image.Point) (vp, sc image.Rectangle, fix backend.Mat4, ok bool) {
	bounds := image.Rectangle{Max: target}
	vp = viewport.Intersect(bounds)
	if viewport.Empty() || vp.Empty() {
		return image.Rectangle{}, image.Rectangle{}, backend.Mat4{}, false
	}
	sc = bounds
	if scissorOn {
		sc = scissor.Intersect(bounds)
	}
	if sc.Empty() {
		return image.Rectangle{}, image.Rectangle{}, backend.Mat4{}, false
	}
	return vp, sc, clipFix(viewport, vp), true
}

// clipFix returns the clip space transform that makes geometry drawn into
// the sub-rectangle c land where it would in the full viewport v.
// Framebuffer y grows downwards while clip space y grows upwards.
func clipFix(v, c image.Rectangle) backend.Mat4 {
	if v == c {
		return backend.Identity()
	}
	vw, vh := float32(v.Dx()), float32(v.Dy())
	cw, ch := float32(c.Dx()), float32(c.Dy())
	sx, sy := vw/cw, vh/ch
	tx := (2*float32(v.Min.X-c.Min.X) + vw - cw) / cw
	ty := (ch - vh - 2*float32(v.Min.Y-c.Min.Y)) / ch
	return backend.Translate(tx, ty, 0).Mul(backend.Scale(sx, sy, 1))
}

// spirvWords converts little-endian SPIR-V bytes to 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
