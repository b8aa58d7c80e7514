// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

func init() {
	backend.Register(backend.NameSoftware, func(width, height int) (backend.Backend, error) {
		return New(width, height), nil
	})
}

func slogger() *slog.Logger { return glenda.Logger() }

// Option configures a Backend during creation.
type Option func(*options)

type options struct {
	target *Target
	clear  color.Color
}

// WithTarget draws into an existing target instead of allocating one.
// The width and height passed to New are ignored.
func WithTarget(t *Target) Option {
	return func(o *options) {
		o.target = t
	}
}

// WithClearColor fills the new target with c.
func WithClearColor(c color.Color) Option {
	return func(o *options) {
		o.clear = c
	}
}

// Stats counts work done since creation or the last ResetStats.
type Stats struct {
	DrawCalls int
	Triangles int
	Fragments int
}

// Backend is a CPU implementation of backend.Backend.
//
// Backend is NOT safe for concurrent use.
type Backend struct {
	target         *Target
	viewport       image.Rectangle
	scissor        image.Rectangle
	scissorEnabled bool
	closed         bool
	stats          Stats
}

// New creates a software backend with a width x height target. The
// viewport initially covers the whole target and scissor clipping is off.
func New(width, height int, opts ...Option) *Backend {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	t := o.target
	if t == nil {
		t = NewTarget(width, height)
	}
	if o.clear != nil {
		t.Clear(o.clear)
	}
	return &Backend{
		target:   t,
		viewport: t.Bounds(),
		scissor:  t.Bounds(),
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.NameSoftware }

// Target returns the framebuffer.
func (b *Backend) Target() *Target { return b.target }

// Stats returns draw counters.
func (b *Backend) Stats() Stats { return b.stats }

// ResetStats zeroes the draw counters.
func (b *Backend) ResetStats() { b.stats = Stats{} }

// Resize replaces the target with a transparent one of the new size and
// resets the viewport to cover it.
func (b *Backend) Resize(width, height int) {
	b.target.Resize(width, height)
	b.viewport = b.target.Bounds()
	b.scissor = b.target.Bounds()
	b.scissorEnabled = false
}

// SetViewportRect implements glenda.Clipper.
func (b *Backend) SetViewportRect(x, y, width, height int) {
	b.viewport = image.Rect(x, y, x+width, y+height)
}

// SetScissorRect implements glenda.Clipper.
func (b *Backend) SetScissorRect(x, y, width, height int) {
	b.scissor = image.Rect(x, y, x+width, y+height)
}

// EnableScissorClip implements glenda.Clipper.
func (b *Backend) EnableScissorClip() { b.scissorEnabled = true }

// DisableScissorClip turns scissor testing off.
func (b *Backend) DisableScissorClip() { b.scissorEnabled = false }

// ViewportRect returns the current viewport rectangle.
func (b *Backend) ViewportRect() image.Rectangle { return b.viewport }

// ScissorRect returns the scissor rectangle and whether it is enabled.
func (b *Backend) ScissorRect() (image.Rectangle, bool) { return b.scissor, b.scissorEnabled }

// clipRect is the region fragments may be written to.
func (b *Backend) clipRect() image.Rectangle {
	r := b.viewport.Intersect(b.target.Bounds())
	if b.scissorEnabled {
		r = r.Intersect(b.scissor)
	}
	return r
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	b.closed = true
	return nil
}

type program struct {
	owner     *Backend
	kind      backend.ProgramKind
	destroyed bool
}

func (p *program) Kind() backend.ProgramKind { return p.kind }
func (p *program) Destroy()                  { p.destroyed = true }

type vertexBuffer struct {
	owner     *Backend
	layout    backend.VertexLayout
	data      []float32
	n         int
	destroyed bool
}

func (v *vertexBuffer) Len() int                     { return v.n }
func (v *vertexBuffer) Layout() backend.VertexLayout { return v.layout }
func (v *vertexBuffer) Destroy() {
	v.destroyed = true
	v.data = nil
}

type texture struct {
	owner     *Backend
	img       *image.RGBA
	opts      backend.TextureOptions
	destroyed bool
}

func (t *texture) Width() int  { return t.img.Bounds().Dx() }
func (t *texture) Height() int { return t.img.Bounds().Dy() }
func (t *texture) Destroy() {
	t.destroyed = true
}

// CreateProgram implements backend.Backend. Shader sources are ignored;
// the kind selects the built-in CPU fragment stage.
func (b *Backend) CreateProgram(desc backend.ProgramDescriptor) (backend.Program, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	switch desc.Kind {
	case backend.ProgramSolid, backend.ProgramTextured:
	default:
		return nil, fmt.Errorf("%w: kind %v", backend.ErrUnsupportedProgram, desc.Kind)
	}
	slogger().Debug("software: program created", "label", desc.Label, "kind", desc.Kind)
	return &program{owner: b, kind: desc.Kind}, nil
}

// CreateVertexBuffer implements backend.Backend. The data is copied.
func (b *Backend) CreateVertexBuffer(data []float32, layout backend.VertexLayout) (backend.VertexBuffer, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if _, ok := layout.Attribute(backend.LocationPosition); !ok {
		return nil, fmt.Errorf("%w: no position attribute", backend.ErrInvalidVertexData)
	}
	n, err := layout.VertexCount(data)
	if err != nil {
		return nil, err
	}
	return &vertexBuffer{owner: b, layout: layout, data: append([]float32(nil), data...), n: n}, nil
}

// UpdateVertexBuffer implements backend.Backend.
func (b *Backend) UpdateVertexBuffer(buf backend.VertexBuffer, data []float32) error {
	vb, ok := buf.(*vertexBuffer)
	if !ok || vb.owner != b {
		return backend.ErrForeignResource
	}
	n, err := vb.layout.VertexCount(data)
	if err != nil {
		return err
	}
	vb.data = append(vb.data[:0], data...)
	vb.n = n
	return nil
}

// CreateTexture implements backend.Backend. The pixels are copied.
func (b *Backend) CreateTexture(img *image.RGBA, opts backend.TextureOptions) (backend.Texture, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if err := backend.ValidateImage(img); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	cp := &image.RGBA{
		Pix:    append([]byte(nil), backend.TightPixels(img)...),
		Stride: bounds.Dx() * 4,
		Rect:   image.Rect(0, 0, bounds.Dx(), bounds.Dy()),
	}
	slogger().Debug("software: texture created", "label", opts.Label, "width", bounds.Dx(), "height", bounds.Dy())
	return &texture{owner: b, img: cp, opts: opts}, nil
}

var _ backend.Backend = (*Backend)(nil)
