// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import (
	"fmt"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

// leaf holds the state shared by every leaf renderer: the backend, the
// current viewport and the program and vertices the renderer owns.
type leaf struct {
	b        backend.Backend
	viewport glenda.Viewport
	program  backend.Program
	vertices backend.VertexBuffer
	closed   bool
}

func newLeaf(b backend.Backend, prog backend.ProgramDescriptor, data []float32, layout backend.VertexLayout) (leaf, error) {
	if b == nil {
		return leaf{}, ErrNilBackend
	}
	p, err := b.CreateProgram(prog)
	if err != nil {
		return leaf{}, fmt.Errorf("renderers: create %s program: %w", prog.Kind, err)
	}
	vb, err := b.CreateVertexBuffer(data, layout)
	if err != nil {
		p.Destroy()
		return leaf{}, fmt.Errorf("renderers: create vertices: %w", err)
	}
	glenda.Logger().Debug("renderers: leaf created", "program", prog.Label, "vertices", vb.Len())
	return leaf{b: b, program: p, vertices: vb}, nil
}

// SetViewport implements glenda.Renderer.
func (l *leaf) SetViewport(v glenda.Viewport) {
	l.viewport = v
}

// Viewport returns the viewport last passed to SetViewport.
func (l *leaf) Viewport() glenda.Viewport {
	return l.viewport
}

// draw applies the viewport and draws every vertex.
func (l *leaf) draw(tex backend.Texture, u backend.Uniforms) {
	if l.closed {
		return
	}
	l.viewport.Apply(l.b)
	l.b.Draw(backend.DrawCall{
		Program:  l.program,
		Vertices: l.vertices,
		Texture:  tex,
		Count:    l.vertices.Len(),
		Uniforms: u,
	})
}

// close destroys the program and vertices. It is safe to call twice.
func (l *leaf) close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.vertices.Destroy()
	l.program.Destroy()
	return nil
}
