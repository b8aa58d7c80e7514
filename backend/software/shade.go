// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"math"

	"github.com/gogpu/gputypes"
)

// shader writes the fragment at (x, y) with interpolated texture
// coordinates (u, v).
type shader func(x, y int, u, v float64)

// rgba is a premultiplied color with components in [0, 1].
type rgba [4]float64

func clamp01(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func toRGBA(c [4]float32) rgba {
	return rgba{clamp01(float64(c[0])), clamp01(float64(c[1])), clamp01(float64(c[2])), clamp01(float64(c[3]))}
}

// blend composites src over the framebuffer pixel at (x, y).
func (b *Backend) blend(x, y int, src rgba) {
	img := b.target.img
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	inv := 1 - src[3]
	for k := range 4 {
		d := float64(p[k]) / 255
		p[k] = uint8(math.Round(clamp01(src[k]+d*inv) * 255))
	}
}

func (b *Backend) solidShader(c [4]float32) shader {
	src := toRGBA(c)
	return func(x, y int, _, _ float64) {
		b.blend(x, y, src)
	}
}

func (b *Backend) textureShader(t *texture, tint [4]float32) shader {
	mul := toRGBA(tint)
	filter := t.opts.MagFilter
	// One sampler state per draw: minify when the texture is wider than
	// the viewport it is drawn into.
	if t.Width() > b.viewport.Dx() {
		filter = t.opts.MinFilter
	}
	sample := nearest
	if filter == gputypes.FilterModeLinear {
		sample = bilinear
	}
	repeat := t.opts.AddressMode == gputypes.AddressModeRepeat
	return func(x, y int, u, v float64) {
		c := sample(t.img, u, v, repeat)
		for k := range 4 {
			c[k] *= mul[k]
		}
		b.blend(x, y, c)
	}
}

// address maps texel index i into [0, n).
func address(i, n int, repeat bool) int {
	if repeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	return min(max(i, 0), n-1)
}

func texel(img *image.RGBA, x, y int, repeat bool) rgba {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	c := img.RGBAAt(address(x, w, repeat), address(y, h, repeat))
	return rgba{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255}
}

func floorInt(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Floor(math.Max(math.Min(f, 1<<30), -1<<30)))
}

func nearest(img *image.RGBA, u, v float64, repeat bool) rgba {
	w, h := float64(img.Rect.Dx()), float64(img.Rect.Dy())
	return texel(img, floorInt(u*w), floorInt(v*h), repeat)
}

func bilinear(img *image.RGBA, u, v float64, repeat bool) rgba {
	tx := u*float64(img.Rect.Dx()) - 0.5
	ty := v*float64(img.Rect.Dy()) - 0.5
	x0, y0 := floorInt(tx), floorInt(ty)
	fx, fy := tx-float64(x0), ty-float64(y0)

	c00 := texel(img, x0, y0, repeat)
	c10 := texel(img, x0+1, y0, repeat)
	c01 := texel(img, x0, y0+1, repeat)
	c11 := texel(img, x0+1, y0+1, repeat)
	var out rgba
	for k := range 4 {
		top := c00[k]*(1-fx) + c10[k]*fx
		bottom := c01[k]*(1-fx) + c11[k]*fx
		out[k] = top*(1-fy) + bottom*fy
	}
	return out
}
