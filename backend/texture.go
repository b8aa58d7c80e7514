// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// TextureOptions control sampling of a texture.
type TextureOptions struct {
	Label     string
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	// AddressMode applies to both U and V.
	AddressMode gputypes.AddressMode
}

// DefaultTextureOptions returns linear filtering with clamp-to-edge addressing.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		MinFilter:   gputypes.FilterModeLinear,
		MagFilter:   gputypes.FilterModeLinear,
		AddressMode: gputypes.AddressModeClampToEdge,
	}
}

// PixelArtTextureOptions returns nearest filtering with clamp-to-edge
// addressing, suitable for tilesets.
func PixelArtTextureOptions() TextureOptions {
	return TextureOptions{
		MinFilter:   gputypes.FilterModeNearest,
		MagFilter:   gputypes.FilterModeNearest,
		AddressMode: gputypes.AddressModeClampToEdge,
	}
}

// ValidateImage returns ErrInvalidTexture for nil or empty images.
func ValidateImage(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidTexture)
	}
	if b := img.Bounds(); b.Empty() {
		return fmt.Errorf("%w: empty bounds %v", ErrInvalidTexture, b)
	}
	return nil
}

// TightPixels returns the pixels of img row by row with no padding, starting
// at the bounds origin. It returns img.Pix when no copy is needed.
func TightPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	rowBytes := b.Dx() * 4
	if img.Stride == rowBytes && b.Min == (image.Point{}) && len(img.Pix) == rowBytes*b.Dy() {
		return img.Pix
	}
	out := make([]byte, 0, rowBytes*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[off:off+rowBytes]...)
	}
	return out
}
