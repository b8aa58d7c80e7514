// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package hal

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glenda/backend"
)

var errDestroyed = errors.New("resource destroyed")

// Draw implements backend.Backend.
func (b *Backend) Draw(call backend.DrawCall) {
	if err := b.draw(call); err != nil {
		b.stats.Skipped++
		slogger().Warn("hal: draw skipped", "program", call.Label(), "err", err)
	}
}

func (b *Backend) draw(call backend.DrawCall) error {
	if b.closed {
		return backend.ErrClosed
	}
	if b.pass == nil {
		return ErrNoFrame
	}
	prog, ok := call.Program.(*program)
	if !ok || prog.owner != b {
		return fmt.Errorf("program: %w", backend.ErrForeignResource)
	}
	vb, ok := call.Vertices.(*vertexBuffer)
	if !ok || vb.owner != b {
		return fmt.Errorf("vertices: %w", backend.ErrForeignResource)
	}
	if prog.destroyed || vb.destroyed {
		return errDestroyed
	}
	if vb.layout.Stride != prog.layout.Stride {
		return fmt.Errorf("%w: stride %d, program expects %d", backend.ErrInvalidVertexData, vb.layout.Stride, prog.layout.Stride)
	}
	var tex *texture
	if prog.kind == backend.ProgramTextured {
		if tex, ok = call.Texture.(*texture); !ok || tex.owner != b {
			return fmt.Errorf("texture: %w", backend.ErrForeignResource)
		}
		if tex.destroyed {
			return errDestroyed
		}
	}
	if call.First < 0 || call.Count < 0 || call.First+call.Count > vb.n {
		return fmt.Errorf("vertex range [%d, %d) outside buffer of %d", call.First, call.First+call.Count, vb.n)
	}
	if call.Count < 3 {
		return nil
	}

	vp, sc, fix, ok := passRects(b.viewport, b.scissor, b.scissorEnabled, b.target)
	if !ok {
		slogger().Debug("hal: draw clipped", "viewport", b.viewport, "target", b.target)
		return nil
	}
	u := call.Uniforms
	u.Transform = fix.Mul(u.Transform)

	group, err := b.uniformGroup(prog, tex, u)
	if err != nil {
		return err
	}

	rp := b.pass
	rp.SetViewport(float32(vp.Min.X), float32(vp.Min.Y), float32(vp.Dx()), float32(vp.Dy()), 0, 1)
	rp.SetScissorRect(uint32(sc.Min.X), uint32(sc.Min.Y), uint32(sc.Dx()), uint32(sc.Dy()))
	rp.SetPipeline(prog.pipeline)
	rp.SetBindGroup(0, group, nil)
	rp.SetVertexBuffer(0, vb.buf, 0)
	rp.Draw(uint32(call.Count), 1, uint32(call.First), 0)
	b.stats.DrawCalls++
	return nil
}

// uniformGroup uploads u into a new uniform buffer and binds it with the
// texture, if any. Both live until the end of the frame.
func (b *Backend) uniformGroup(prog *program, tex *texture, u backend.Uniforms) (hal.BindGroup, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glenda_uniforms",
		Size:  backend.UniformsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	if err := b.queue.WriteBuffer(buf, 0, u.Bytes()); err != nil {
		b.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write uniforms: %w", err)
	}

	entries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{
			Buffer: buf.NativeHandle(), Offset: 0, Size: backend.UniformsSize,
		}},
	}
	if tex != nil {
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: tex.view.NativeHandle(),
			}},
			gputypes.BindGroupEntry{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: tex.sampler.NativeHandle(),
			}},
		)
	}
	group, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "glenda_bind",
		Layout:  prog.groupLay,
		Entries: entries,
	})
	if err != nil {
		b.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	b.frame = append(b.frame, frameResource{buf: buf, group: group})
	return group, nil
}
