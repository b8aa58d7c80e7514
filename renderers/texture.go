// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import (
	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

// Texture stretches a borrowed texture over its viewport.
type Texture struct {
	leaf
	texture backend.Texture
}

// NewTexture creates a texture renderer with no texture set.
func NewTexture(b backend.Backend) (*Texture, error) {
	l, err := newLeaf(b, backend.TexturedProgram(), quadVertices(fullscreenCorners, cornerUVs), backend.PositionUVLayout())
	if err != nil {
		return nil, err
	}
	return &Texture{leaf: l}, nil
}

// SetTexture sets the texture to draw, or nil to draw nothing.
// The texture is borrowed: it is never destroyed by the renderer and must
// outlive its use here.
func (t *Texture) SetTexture(tex backend.Texture) {
	t.texture = tex
}

// Texture returns the current texture, or nil.
func (t *Texture) Texture() backend.Texture {
	return t.texture
}

// Render draws the texture if one is set.
func (t *Texture) Render() {
	if t.texture == nil {
		return
	}
	t.draw(t.texture, backend.DefaultUniforms())
}

// Close releases the program and vertices. The texture is left alone.
func (t *Texture) Close() error {
	t.texture = nil
	return t.close()
}

var _ glenda.Renderer = (*Texture)(nil)
