// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import (
	"image/color"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

// MonoColor fills its viewport with a single color.
type MonoColor struct {
	leaf
	color color.Color
}

// NewMonoColor creates a solid fill renderer.
func NewMonoColor(b backend.Backend, c color.Color) (*MonoColor, error) {
	l, err := newLeaf(b, backend.SolidProgram(), quadPositions(fullscreenCorners), backend.PositionLayout())
	if err != nil {
		return nil, err
	}
	return &MonoColor{leaf: l, color: c}, nil
}

// SetColor changes the fill color.
func (m *MonoColor) SetColor(c color.Color) {
	m.color = c
}

// Color returns the fill color.
func (m *MonoColor) Color() color.Color {
	return m.color
}

// Render fills the viewport.
func (m *MonoColor) Render() {
	u := backend.DefaultUniforms()
	u.Color = backend.ColorFloats(m.color)
	m.draw(nil, u)
}

// Close releases the program and vertices.
func (m *MonoColor) Close() error {
	return m.close()
}

var _ glenda.Renderer = (*MonoColor)(nil)
