// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import (
	"image"
	"image/color"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend/software"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// newSoftware returns a software backend and a viewport covering it.
func newSoftware(w, h int) (*software.Backend, glenda.Viewport) {
	return software.New(w, h), glenda.ViewportFromSize(w, h)
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
