// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

// ImageTexture is a texture uploaded from an image for display in a
// viewport: linear filtering, clamped to the edge.
type ImageTexture struct {
	tex  backend.Texture
	size image.Point
}

// NewImageTexture uploads img. Any image type is accepted; non-RGBA
// images are converted first.
func NewImageTexture(b backend.Backend, img image.Image) (*ImageTexture, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	if img == nil {
		return nil, ErrNilImage
	}
	return uploadImage(b, ToRGBA(img))
}

// NewImageTextureScaled uploads img resampled to size with Catmull-Rom
// filtering.
func NewImageTextureScaled(b backend.Backend, img image.Image, size image.Point) (*ImageTexture, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	if img == nil {
		return nil, ErrNilImage
	}
	return uploadImage(b, ScaleRGBA(img, size))
}

func uploadImage(b backend.Backend, rgba *image.RGBA) (*ImageTexture, error) {
	opts := backend.DefaultTextureOptions()
	opts.Label = "glenda-image"
	tex, err := b.CreateTexture(rgba, opts)
	if err != nil {
		return nil, fmt.Errorf("renderers: upload image: %w", err)
	}
	return &ImageTexture{tex: tex, size: rgba.Bounds().Size()}, nil
}

// ToRGBA returns img as an *image.RGBA anchored at the origin, converting
// if needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// ScaleRGBA resamples img to size with Catmull-Rom filtering.
func ScaleRGBA(img image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Size returns the image size in pixels.
func (t *ImageTexture) Size() image.Point {
	return t.size
}

// Texture returns the backend texture. It stays owned by t.
func (t *ImageTexture) Texture() backend.Texture {
	return t.tex
}

// Close destroys the texture. It is safe to call twice.
func (t *ImageTexture) Close() error {
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
	return nil
}

// Image draws an owned ImageTexture into a quad of its viewport. By
// default the quad covers the whole viewport.
type Image struct {
	leaf
	texture *ImageTexture
	quad    [8]float32
}

// NewImage creates an image renderer with no texture, laid out in v.
func NewImage(b backend.Backend, v glenda.Viewport) (*Image, error) {
	l, err := newLeaf(b, backend.TexturedProgram(), quadVertices(fullscreenCorners, cornerUVs), backend.PositionUVLayout())
	if err != nil {
		return nil, err
	}
	l.viewport = v
	return &Image{leaf: l, quad: fullscreenCorners}, nil
}

// ReplaceTexture installs t and returns the previous texture, or nil.
// The Image owns t from now on; the caller owns the returned texture.
func (i *Image) ReplaceTexture(t *ImageTexture) *ImageTexture {
	old := i.texture
	i.texture = t
	return old
}

// Texture returns the current texture, or nil.
func (i *Image) Texture() *ImageTexture {
	return i.texture
}

// SetRenderQuad sets the four corners (top-left, top-right, bottom-right,
// bottom-left) of the drawn quad in normalized device coordinates of the
// viewport, as x, y pairs.
func (i *Image) SetRenderQuad(vertices []float32) error {
	if len(vertices) != 8 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuad, len(vertices))
	}
	if i.closed {
		return ErrClosed
	}
	var quad [8]float32
	copy(quad[:], vertices)
	if err := i.b.UpdateVertexBuffer(i.vertices, quadVertices(quad, cornerUVs)); err != nil {
		return fmt.Errorf("renderers: update render quad: %w", err)
	}
	i.quad = quad
	return nil
}

// ResetRenderQuad restores the quad covering the whole viewport.
func (i *Image) ResetRenderQuad() error {
	return i.SetRenderQuad(fullscreenCorners[:])
}

// RenderQuad returns the current quad corners.
func (i *Image) RenderQuad() [8]float32 {
	return i.quad
}

// Render draws the texture if one is set.
func (i *Image) Render() {
	if i.texture == nil || i.texture.tex == nil {
		return
	}
	i.draw(i.texture.tex, backend.DefaultUniforms())
}

// Close releases the program, the vertices and the owned texture.
func (i *Image) Close() error {
	if i.texture != nil {
		_ = i.texture.Close()
		i.texture = nil
	}
	return i.close()
}

var _ glenda.Renderer = (*Image)(nil)
