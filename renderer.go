// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import "io"

// Renderer is anything that can be laid out into a viewport and drawn.
//
// SetViewport is the layout pass. Calling it twice with the same value has
// the same effect as calling it once. Render is the draw pass; it must not
// change any viewport.
type Renderer interface {
	SetViewport(v Viewport)
	Render()
}

// NullRenderer accepts any viewport and draws nothing.
// It is the identity element for composition: a composite with a
// NullRenderer child draws exactly what its other children draw.
type NullRenderer struct{}

// SetViewport implements Renderer.
func (NullRenderer) SetViewport(Viewport) {}

// Render implements Renderer.
func (NullRenderer) Render() {}

var _ Renderer = NullRenderer{}

// orNull substitutes NullRenderer for a nil child.
func orNull(r Renderer) Renderer {
	if r == nil {
		return NullRenderer{}
	}
	return r
}

// closeRenderer closes r if it owns resources.
func closeRenderer(r Renderer) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
