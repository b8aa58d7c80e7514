// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

func init() {
	backend.Register(backend.NameRecording, func(int, int) (backend.Backend, error) {
		return New(), nil
	})
}

// Backend records backend calls.
//
// Backend is NOT safe for concurrent use.
type Backend struct {
	commands []Command
	next     ResourceID
	closed   bool
}

// New creates an empty recording backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.NameRecording }

// Commands returns a copy of the recorded commands.
func (b *Backend) Commands() []Command {
	return slices.Clone(b.commands)
}

// Len returns the number of recorded commands.
func (b *Backend) Len() int { return len(b.commands) }

// Count returns the number of recorded commands of type t.
func (b *Backend) Count(t CommandType) int {
	n := 0
	for _, c := range b.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Draws returns the recorded draw commands in order.
func (b *Backend) Draws() []DrawCommand {
	var draws []DrawCommand
	for _, c := range b.commands {
		if d, ok := c.(DrawCommand); ok {
			draws = append(draws, d)
		}
	}
	return draws
}

// Reset discards recorded commands. Resource IDs keep counting, so
// resources created before Reset stay distinguishable.
func (b *Backend) Reset() {
	b.commands = b.commands[:0]
}

func (b *Backend) record(c Command) {
	b.commands = append(b.commands, c)
}

func (b *Backend) alloc() ResourceID {
	id := b.next
	b.next++
	return id
}

// SetViewportRect implements glenda.Clipper.
func (b *Backend) SetViewportRect(x, y, width, height int) {
	b.record(SetViewportCommand{Rect: image.Rect(x, y, x+width, y+height)})
}

// SetScissorRect implements glenda.Clipper.
func (b *Backend) SetScissorRect(x, y, width, height int) {
	b.record(SetScissorCommand{Rect: image.Rect(x, y, x+width, y+height)})
}

// EnableScissorClip implements glenda.Clipper.
func (b *Backend) EnableScissorClip() {
	b.record(EnableScissorCommand{})
}

// resource is embedded by every recorded resource.
type resource struct {
	owner     *Backend
	id        ResourceID
	destroyed bool
}

// ID returns the resource identifier used in commands.
func (r *resource) ID() ResourceID { return r.id }

func (r *resource) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.owner.record(DestroyCommand{ID: r.id})
}

type program struct {
	resource
	kind backend.ProgramKind
}

func (p *program) Kind() backend.ProgramKind { return p.kind }

type vertexBuffer struct {
	resource
	layout backend.VertexLayout
	n      int
}

func (v *vertexBuffer) Len() int                     { return v.n }
func (v *vertexBuffer) Layout() backend.VertexLayout { return v.layout }

type texture struct {
	resource
	width, height int
}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }

// CreateProgram implements backend.Backend.
func (b *Backend) CreateProgram(desc backend.ProgramDescriptor) (backend.Program, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	p := &program{resource: resource{owner: b, id: b.alloc()}, kind: desc.Kind}
	b.record(CreateProgramCommand{ID: p.id, Desc: desc})
	return p, nil
}

// CreateVertexBuffer implements backend.Backend.
func (b *Backend) CreateVertexBuffer(data []float32, layout backend.VertexLayout) (backend.VertexBuffer, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	n, err := layout.VertexCount(data)
	if err != nil {
		return nil, err
	}
	v := &vertexBuffer{resource: resource{owner: b, id: b.alloc()}, layout: layout, n: n}
	b.record(CreateVertexBufferCommand{ID: v.id, Data: slices.Clone(data), Layout: layout})
	return v, nil
}

// UpdateVertexBuffer implements backend.Backend.
func (b *Backend) UpdateVertexBuffer(buf backend.VertexBuffer, data []float32) error {
	v, ok := buf.(*vertexBuffer)
	if !ok || v.owner != b {
		return backend.ErrForeignResource
	}
	n, err := v.layout.VertexCount(data)
	if err != nil {
		return err
	}
	v.n = n
	b.record(UpdateVertexBufferCommand{ID: v.id, Data: slices.Clone(data)})
	return nil
}

// CreateTexture implements backend.Backend.
func (b *Backend) CreateTexture(img *image.RGBA, opts backend.TextureOptions) (backend.Texture, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if err := backend.ValidateImage(img); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	cp := &image.RGBA{
		Pix:    slices.Clone(backend.TightPixels(img)),
		Stride: bounds.Dx() * 4,
		Rect:   image.Rect(0, 0, bounds.Dx(), bounds.Dy()),
	}
	t := &texture{resource: resource{owner: b, id: b.alloc()}, width: bounds.Dx(), height: bounds.Dy()}
	b.record(CreateTextureCommand{ID: t.id, Image: cp, Options: opts})
	return t, nil
}

// idOf returns the ID of a resource created by b.
func (b *Backend) idOf(r any) (ResourceID, bool) {
	switch r := r.(type) {
	case *program:
		return r.id, r.owner == b
	case *vertexBuffer:
		return r.id, r.owner == b
	case *texture:
		return r.id, r.owner == b
	}
	return InvalidID, false
}

// Draw implements backend.Backend. Calls with foreign resources are
// logged and dropped.
func (b *Backend) Draw(call backend.DrawCall) {
	prog, okP := b.idOf(call.Program)
	verts, okV := b.idOf(call.Vertices)
	if !okP || !okV {
		glenda.Logger().Warn("recording: draw skipped", "program", call.Label(), "err", backend.ErrForeignResource)
		return
	}
	tex := InvalidID
	if call.Texture != nil {
		id, ok := b.idOf(call.Texture)
		if !ok {
			glenda.Logger().Warn("recording: draw skipped", "program", call.Label(), "err", backend.ErrForeignResource)
			return
		}
		tex = id
	}
	b.record(DrawCommand{
		Program:  prog,
		Vertices: verts,
		Texture:  tex,
		First:    call.First,
		Count:    call.Count,
		Uniforms: call.Uniforms,
	})
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	b.closed = true
	return nil
}

// Playback replays the recorded commands to dst. Resources are created in
// dst as they were created here; resources still alive at the end of the
// recording are destroyed before Playback returns.
func (b *Backend) Playback(dst backend.Backend) error {
	programs := make(map[ResourceID]backend.Program)
	buffers := make(map[ResourceID]backend.VertexBuffer)
	textures := make(map[ResourceID]backend.Texture)
	defer func() {
		for _, p := range programs {
			p.Destroy()
		}
		for _, v := range buffers {
			v.Destroy()
		}
		for _, t := range textures {
			t.Destroy()
		}
	}()

	for i, c := range b.commands {
		switch c := c.(type) {
		case SetViewportCommand:
			dst.SetViewportRect(c.Rect.Min.X, c.Rect.Min.Y, c.Rect.Dx(), c.Rect.Dy())
		case SetScissorCommand:
			dst.SetScissorRect(c.Rect.Min.X, c.Rect.Min.Y, c.Rect.Dx(), c.Rect.Dy())
		case EnableScissorCommand:
			dst.EnableScissorClip()
		case CreateProgramCommand:
			p, err := dst.CreateProgram(c.Desc)
			if err != nil {
				return fmt.Errorf("recording: command %d (%v): %w", i, c.Type(), err)
			}
			programs[c.ID] = p
		case CreateVertexBufferCommand:
			v, err := dst.CreateVertexBuffer(c.Data, c.Layout)
			if err != nil {
				return fmt.Errorf("recording: command %d (%v): %w", i, c.Type(), err)
			}
			buffers[c.ID] = v
		case UpdateVertexBufferCommand:
			if err := dst.UpdateVertexBuffer(buffers[c.ID], c.Data); err != nil {
				return fmt.Errorf("recording: command %d (%v): %w", i, c.Type(), err)
			}
		case CreateTextureCommand:
			t, err := dst.CreateTexture(c.Image, c.Options)
			if err != nil {
				return fmt.Errorf("recording: command %d (%v): %w", i, c.Type(), err)
			}
			textures[c.ID] = t
		case DestroyCommand:
			if p, ok := programs[c.ID]; ok {
				p.Destroy()
				delete(programs, c.ID)
			}
			if v, ok := buffers[c.ID]; ok {
				v.Destroy()
				delete(buffers, c.ID)
			}
			if t, ok := textures[c.ID]; ok {
				t.Destroy()
				delete(textures, c.ID)
			}
		case DrawCommand:
			call := backend.DrawCall{
				Program:  programs[c.Program],
				Vertices: buffers[c.Vertices],
				First:    c.First,
				Count:    c.Count,
				Uniforms: c.Uniforms,
			}
			if c.Texture.IsValid() {
				call.Texture = textures[c.Texture]
			}
			dst.Draw(call)
		}
	}
	return nil
}

var _ backend.Backend = (*Backend)(nil)
