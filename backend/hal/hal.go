// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package hal

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

// Errors returned by the HAL backend.
var (
	// ErrNilDevice is returned by New without a device or queue.
	ErrNilDevice = errors.New("hal: nil device or queue")

	// ErrNoFrame is logged when Draw is called outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("hal: draw outside a frame")

	// ErrFrameActive is returned by BeginFrame while a frame is open.
	ErrFrameActive = errors.New("hal: frame already active")
)

func slogger() *slog.Logger { return glenda.Logger() }

// Option configures a Backend.
type Option func(*Backend)

// WithFormat sets the color format of the render target. The default is
// gputypes.TextureFormatBGRA8Unorm, the usual surface format.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(b *Backend) {
		b.format = f
	}
}

// WithSPIRV compiles WGSL programs to SPIR-V with naga before handing them
// to the device, for drivers that do not accept WGSL.
func WithSPIRV() Option {
	return func(b *Backend) {
		b.spirv = true
	}
}

// Stats counts work done by the backend.
type Stats struct {
	DrawCalls int
	// Skipped counts draws dropped because of invalid calls or state.
	Skipped int
}

// Backend draws into a render pass owned by the host.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	spirv  bool

	pass   hal.RenderPassEncoder
	target image.Point
	frame  []frameResource

	viewport       image.Rectangle
	scissor        image.Rectangle
	scissorEnabled bool

	stats  Stats
	closed bool
}

// frameResource is a per-draw uniform buffer and its bind group.
type frameResource struct {
	buf   hal.Buffer
	group hal.BindGroup
}

// New creates a backend drawing with device and queue.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	b := &Backend{
		device: device,
		queue:  queue,
		format: gputypes.TextureFormatBGRA8Unorm,
	}
	for _, opt := range opts {
		opt(b)
	}
	slogger().Debug("hal: backend created", "format", b.format, "spirv", b.spirv)
	return b, nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameHAL }

// Format returns the render target color format.
func (b *Backend) Format() gputypes.TextureFormat { return b.format }

// Stats returns draw counters.
func (b *Backend) Stats() Stats { return b.stats }

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

// DisableScissorClip turns scissor clipping off.
func (b *Backend) DisableScissorClip() { b.scissorEnabled = false }

// BeginFrame directs following draws to pass, whose color attachment is
// width x height pixels. The viewport and scissor reset to the full target.
func (b *Backend) BeginFrame(pass hal.RenderPassEncoder, width, height int) error {
	if b.closed {
		return backend.ErrClosed
	}
	if b.pass != nil {
		return ErrFrameActive
	}
	b.pass = pass
	b.target = image.Pt(width, height)
	b.viewport = image.Rect(0, 0, width, height)
	b.scissor = b.viewport
	b.scissorEnabled = false
	return nil
}

// EndFrame stops recording into the pass and releases the per-draw
// resources of the frame. Call it once the command buffer holding the
// pass has completed.
func (b *Backend) EndFrame() {
	b.pass = nil
	b.releaseFrame()
}

func (b *Backend) releaseFrame() {
	for _, r := range b.frame {
		b.device.DestroyBindGroup(r.group)
		b.device.DestroyBuffer(r.buf)
	}
	b.frame = b.frame[:0]
}

// Frame encodes one render pass into view, clearing it to clear, calls
// render to draw, then submits and waits for the GPU.
func (b *Backend) Frame(view hal.TextureView, width, height int, clear gputypes.Color, render func()) error {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "glenda_encoder",
	})
	if err != nil {
		return fmt.Errorf("hal: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("glenda_frame"); err != nil {
		return fmt.Errorf("hal: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "glenda_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	})
	if err := b.BeginFrame(rp, width, height); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return err
	}
	defer b.EndFrame()

	render()
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("hal: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	if _, err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("hal: submit: %w", err)
	}
	// Per-draw uniform buffers are destroyed by EndFrame.
	if err := b.device.WaitIdle(); err != nil {
		return fmt.Errorf("hal: wait for GPU: %w", err)
	}
	return nil
}

// Close implements backend.Backend. Resources created by the backend must
// be destroyed by their owners; the device stays with the host.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.releaseFrame()
	b.pass = nil
	b.closed = true
	return nil
}

var _ backend.Backend = (*Backend)(nil)
