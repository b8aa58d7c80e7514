// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"image"

	"github.com/gogpu/glenda"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrClosed is returned when resources are created on a closed backend.
	ErrClosed = errors.New("backend: closed")

	// ErrForeignResource is returned when a resource created by one backend
	// is passed to another.
	ErrForeignResource = errors.New("backend: resource belongs to another backend")

	// ErrInvalidVertexData is returned when vertex data does not fill a
	// whole number of vertices.
	ErrInvalidVertexData = errors.New("backend: invalid vertex data")

	// ErrInvalidTexture is returned for nil or empty texture images.
	ErrInvalidTexture = errors.New("backend: invalid texture image")

	// ErrUnsupportedProgram is returned when a backend cannot build a program.
	ErrUnsupportedProgram = errors.New("backend: unsupported program")
)

// Backend is the narrow graphics interface renderers draw through.
//
// Viewport and scissor state set through the embedded glenda.Clipper
// applies to every following Draw until changed. A viewport may extend
// past the target; what falls outside is clipped. Resources returned by
// a backend may only be used with that backend and must be released with
// Destroy before the backend is closed.
//
// Backends are not safe for concurrent use.
type Backend interface {
	glenda.Clipper

	// Name returns the backend identifier (e.g., "software", "gl").
	Name() string

	// CreateProgram compiles a shader program.
	CreateProgram(desc ProgramDescriptor) (Program, error)

	// CreateVertexBuffer uploads vertex data described by layout.
	CreateVertexBuffer(data []float32, layout VertexLayout) (VertexBuffer, error)

	// UpdateVertexBuffer replaces the contents of buf. The vertex count
	// may change; the layout may not.
	UpdateVertexBuffer(buf VertexBuffer, data []float32) error

	// CreateTexture uploads img as a 2D texture.
	CreateTexture(img *image.RGBA, opts TextureOptions) (Texture, error)

	// Draw issues a triangle-list draw call. Failures are logged, not
	// returned, so a broken renderer cannot stop the frame.
	Draw(call DrawCall)

	// Close releases backend-owned state. The backend must not be used
	// after Close.
	Close() error
}

// Program is a compiled shader program.
type Program interface {
	Kind() ProgramKind
	Destroy()
}

// VertexBuffer holds vertex data on the backend.
type VertexBuffer interface {
	// Len returns the number of vertices.
	Len() int
	Layout() VertexLayout
	Destroy()
}

// Texture is a 2D RGBA texture.
type Texture interface {
	Width() int
	Height() int
	Destroy()
}

// DrawCall describes one draw of Count vertices starting at First,
// assembled as a triangle list.
type DrawCall struct {
	Program  Program
	Vertices VertexBuffer
	// Texture is sampled by ProgramTextured and ignored otherwise.
	Texture  Texture
	First    int
	Count    int
	Uniforms Uniforms
}

// Label returns a short description used in log output.
func (c DrawCall) Label() string {
	if c.Program == nil {
		return "<nil program>"
	}
	return c.Program.Kind().String()
}
