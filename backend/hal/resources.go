// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package hal

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glenda/backend"
)

type program struct {
	owner     *Backend
	kind      backend.ProgramKind
	layout    backend.VertexLayout
	shader    hal.ShaderModule
	groupLay  hal.BindGroupLayout
	pipeLay   hal.PipelineLayout
	pipeline  hal.RenderPipeline
	destroyed bool
}

func (p *program) Kind() backend.ProgramKind { return p.kind }

// Destroy releases the pipeline objects in reverse creation order.
func (p *program) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	d := p.owner.device
	if p.pipeline != nil {
		d.DestroyRenderPipeline(p.pipeline)
	}
	if p.pipeLay != nil {
		d.DestroyPipelineLayout(p.pipeLay)
	}
	if p.groupLay != nil {
		d.DestroyBindGroupLayout(p.groupLay)
	}
	if p.shader != nil {
		d.DestroyShaderModule(p.shader)
	}
}

type vertexBuffer struct {
	owner     *Backend
	buf       hal.Buffer
	capacity  uint64
	layout    backend.VertexLayout
	n         int
	destroyed bool
}

func (v *vertexBuffer) Len() int                     { return v.n }
func (v *vertexBuffer) Layout() backend.VertexLayout { return v.layout }

func (v *vertexBuffer) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.owner.device.DestroyBuffer(v.buf)
}

type texture struct {
	owner         *Backend
	tex           hal.Texture
	view          hal.TextureView
	sampler       hal.Sampler
	width, height int
	destroyed     bool
}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }

func (t *texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	d := t.owner.device
	d.DestroySampler(t.sampler)
	d.DestroyTextureView(t.view)
	d.DestroyTexture(t.tex)
}

// programLayout returns the vertex layout a program kind is built for.
func programLayout(kind backend.ProgramKind) backend.VertexLayout {
	if kind == backend.ProgramTextured {
		return backend.PositionUVLayout()
	}
	return backend.PositionLayout()
}

// bindGroupEntries returns binding 0 for the uniforms, plus the texture
// and its sampler at bindings 1 and 2 for textured programs.
func bindGroupEntries(kind backend.ProgramKind) []gputypes.BindGroupLayoutEntry {
	entries := []gputypes.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}}
	if kind == backend.ProgramTextured {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	return entries
}

// vertexBufferLayout converts a backend layout to the pipeline form.
func vertexBufferLayout(l backend.VertexLayout) []gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(a.Location),
		}
	}
	return []gputypes.VertexBufferLayout{{
		ArrayStride: uint64(l.Stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}}
}

func (b *Backend) shaderSource(desc backend.ProgramDescriptor) (hal.ShaderSource, error) {
	if !b.spirv {
		return hal.ShaderSource{WGSL: desc.WGSL}, nil
	}
	spirv, err := naga.Compile(desc.WGSL)
	if err != nil {
		return hal.ShaderSource{}, fmt.Errorf("compile %s: %w", desc.Label, err)
	}
	return hal.ShaderSource{SPIRV: spirvWords(spirv)}, nil
}

// CreateProgram implements backend.Backend. The pipeline blends
// premultiplied colors over the target.
func (b *Backend) CreateProgram(desc backend.ProgramDescriptor) (backend.Program, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if desc.WGSL == "" {
		return nil, fmt.Errorf("%w: %q has no WGSL source", backend.ErrUnsupportedProgram, desc.Label)
	}
	src, err := b.shaderSource(desc)
	if err != nil {
		return nil, fmt.Errorf("hal: %w", err)
	}

	p := &program{owner: b, kind: desc.Kind, layout: programLayout(desc.Kind)}
	fail := func(what string, err error) (backend.Program, error) {
		p.Destroy()
		return nil, fmt.Errorf("hal: create %s for %s: %w", what, desc.Label, err)
	}

	if p.shader, err = b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: src,
	}); err != nil {
		return fail("shader", err)
	}
	if p.groupLay, err = b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label + "_bind_layout",
		Entries: bindGroupEntries(desc.Kind),
	}); err != nil {
		return fail("bind group layout", err)
	}
	if p.pipeLay, err = b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.groupLay},
	}); err != nil {
		return fail("pipeline layout", err)
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	if p.pipeline, err = b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label + "_pipeline",
		Layout: p.pipeLay,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexBufferLayout(p.layout),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    b.format,
				Blend:     &premulBlend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}); err != nil {
		return fail("render pipeline", err)
	}
	slogger().Debug("hal: program created", "label", desc.Label, "kind", desc.Kind)
	return p, nil
}

// floatBytes packs vertex data little-endian. The result is never empty
// so zero-vertex buffers stay valid.
func floatBytes(data []float32) []byte {
	out := make([]byte, max(4*len(data), 4))
	for i, f := range data {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
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
	bytes := floatBytes(data)
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glenda_vertices",
		Size:  uint64(len(bytes)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("hal: create vertex buffer: %w", err)
	}
	if err := b.queue.WriteBuffer(buf, 0, bytes); err != nil {
		b.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("hal: write vertex buffer: %w", err)
	}
	return &vertexBuffer{owner: b, buf: buf, capacity: uint64(len(bytes)), layout: layout, n: n}, nil
}

// UpdateVertexBuffer implements backend.Backend. The buffer is reallocated
// when the data outgrows it.
func (b *Backend) UpdateVertexBuffer(buf backend.VertexBuffer, data []float32) error {
	v, ok := buf.(*vertexBuffer)
	if !ok || v.owner != b {
		return backend.ErrForeignResource
	}
	n, err := v.layout.VertexCount(data)
	if err != nil {
		return err
	}
	bytes := floatBytes(data)
	if uint64(len(bytes)) > v.capacity {
		grown, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "glenda_vertices",
			Size:  uint64(len(bytes)),
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("hal: grow vertex buffer: %w", err)
		}
		b.device.DestroyBuffer(v.buf)
		v.buf = grown
		v.capacity = uint64(len(bytes))
	}
	if err := b.queue.WriteBuffer(v.buf, 0, bytes); err != nil {
		return fmt.Errorf("hal: write vertex buffer: %w", err)
	}
	v.n = n
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
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	label := opts.Label
	if label == "" {
		label = "glenda_texture"
	}
	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}

	t := &texture{owner: b, width: w, height: h}
	var err error
	if t.tex, err = b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}); err != nil {
		return nil, fmt.Errorf("hal: create texture: %w", err)
	}
	if t.view, err = b.device.CreateTextureView(t.tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	}); err != nil {
		b.device.DestroyTexture(t.tex)
		return nil, fmt.Errorf("hal: create texture view: %w", err)
	}
	if t.sampler, err = b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: opts.AddressMode,
		AddressModeV: opts.AddressMode,
		AddressModeW: opts.AddressMode,
		MagFilter:    opts.MagFilter,
		MinFilter:    opts.MinFilter,
		MipmapFilter: gputypes.FilterModeNearest,
	}); err != nil {
		b.device.DestroyTextureView(t.view)
		b.device.DestroyTexture(t.tex)
		return nil, fmt.Errorf("hal: create sampler: %w", err)
	}

	if err := b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		backend.TightPixels(img),
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(w * 4), RowsPerImage: uint32(h)},
		&size,
	); err != nil {
		t.Destroy()
		return nil, fmt.Errorf("hal: upload texture: %w", err)
	}
	return t, nil
}
