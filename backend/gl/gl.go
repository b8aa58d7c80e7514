// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogl

package gl

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

// ErrCompile is returned when a shader fails to compile or link.
var ErrCompile = errors.New("gl: shader compile failed")

var errDestroyed = errors.New("resource destroyed")

func slogger() *slog.Logger { return glenda.Logger() }

// Backend draws with the current OpenGL context.
type Backend struct {
	fb             image.Point
	viewport       image.Rectangle
	scissor        image.Rectangle
	scissorEnabled bool
	closed         bool
}

// New loads the OpenGL function pointers of the current context and
// returns a backend drawing into a framebuffer of the given size.
func New(width, height int) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl: init: %w", err)
	}
	slogger().Info("gl: context ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	return &Backend{fb: image.Pt(width, height)}, nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameGL }

// SetFramebufferSize records the framebuffer size used to flip viewports.
func (b *Backend) SetFramebufferSize(width, height int) {
	b.fb = image.Pt(width, height)
}

// Clear clears the whole framebuffer to the premultiplied color c.
func (b *Backend) Clear(c [4]float32) {
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if b.scissorEnabled {
		gl.Enable(gl.SCISSOR_TEST)
	}
}

// SetViewportRect implements glenda.Clipper.
func (b *Backend) SetViewportRect(x, y, width, height int) {
	b.viewport = image.Rect(x, y, x+width, y+height)
	gl.Viewport(int32(x), int32(flipY(y, height, b.fb.Y)), int32(width), int32(height))
}

// SetScissorRect implements glenda.Clipper.
func (b *Backend) SetScissorRect(x, y, width, height int) {
	b.scissor = image.Rect(x, y, x+width, y+height)
	gl.Scissor(int32(x), int32(flipY(y, height, b.fb.Y)), int32(width), int32(height))
}

// EnableScissorClip implements glenda.Clipper.
func (b *Backend) EnableScissorClip() {
	b.scissorEnabled = true
	gl.Enable(gl.SCISSOR_TEST)
}

// DisableScissorClip turns scissor clipping off.
func (b *Backend) DisableScissorClip() {
	b.scissorEnabled = false
	gl.Disable(gl.SCISSOR_TEST)
}

// Close implements backend.Backend. The context stays with the host.
func (b *Backend) Close() error {
	b.closed = true
	return nil
}

type program struct {
	owner     *Backend
	kind      backend.ProgramKind
	id        uint32
	uniforms  map[string]int32
	destroyed bool
}

func (p *program) Kind() backend.ProgramKind { return p.kind }

func (p *program) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	gl.DeleteProgram(p.id)
}

// location returns the cached location of a uniform, or -1.
func (p *program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(cString(name)))
	p.uniforms[name] = loc
	return loc
}

func compileShader(src string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(cString(src))
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// CreateProgram implements backend.Backend.
func (b *Backend) CreateProgram(desc backend.ProgramDescriptor) (backend.Program, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if desc.GLSLVertex == "" || desc.GLSLFragment == "" {
		return nil, fmt.Errorf("%w: %q has no GLSL source", backend.ErrUnsupportedProgram, desc.Label)
	}
	vs, err := compileShader(desc.GLSLVertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("gl: %s vertex: %w", desc.Label, err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(desc.GLSLFragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("gl: %s fragment: %w", desc.Label, err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.BindAttribLocation(id, backend.LocationPosition, gl.Str("a_pos\x00"))
	gl.BindAttribLocation(id, backend.LocationUV, gl.Str("a_uv\x00"))
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("gl: link %s: %w: %s", desc.Label, ErrCompile, strings.TrimRight(log, "\x00"))
	}
	slogger().Debug("gl: program created", "label", desc.Label, "kind", desc.Kind)
	return &program{owner: b, kind: desc.Kind, id: id, uniforms: make(map[string]int32)}, nil
}

type vertexBuffer struct {
	owner     *Backend
	vao, vbo  uint32
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
	gl.DeleteBuffers(1, &v.vbo)
	gl.DeleteVertexArrays(1, &v.vao)
}

func upload(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.DYNAMIC_DRAW)
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
	v := &vertexBuffer{owner: b, layout: layout, n: n}
	gl.GenVertexArrays(1, &v.vao)
	gl.BindVertexArray(v.vao)
	gl.GenBuffers(1, &v.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	upload(data)
	for _, a := range layout.Attributes {
		loc := uint32(a.Location)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, int32(backend.Components(a.Format)), gl.FLOAT, false, int32(layout.Stride), uintptr(a.Offset))
	}
	gl.BindVertexArray(0)
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
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	upload(data)
	v.n = n
	return nil
}

type texture struct {
	owner         *Backend
	id            uint32
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
	gl.DeleteTextures(1, &t.id)
}

func filter(f gputypes.FilterMode) int32 {
	if f == gputypes.FilterModeLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(m gputypes.AddressMode) int32 {
	if m == gputypes.AddressModeRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

// CreateTexture implements backend.Backend. Row 0 of img is uploaded
// first, so V = 0 samples the top of the image.
func (b *Backend) CreateTexture(img *image.RGBA, opts backend.TextureOptions) (backend.Texture, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if err := backend.ValidateImage(img); err != nil {
		return nil, err
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	t := &texture{owner: b, width: w, height: h}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(opts.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(opts.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(opts.AddressMode))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(opts.AddressMode))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	pix := backend.TightPixels(img)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// Draw implements backend.Backend.
func (b *Backend) Draw(call backend.DrawCall) {
	if err := b.draw(call); err != nil {
		slogger().Warn("gl: draw skipped", "program", call.Label(), "err", err)
	}
}

func (b *Backend) draw(call backend.DrawCall) error {
	if b.closed {
		return backend.ErrClosed
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
	if call.First < 0 || call.Count < 0 || call.First+call.Count > vb.n {
		return fmt.Errorf("vertex range [%d, %d) outside buffer of %d", call.First, call.First+call.Count, vb.n)
	}

	gl.UseProgram(prog.id)
	u := call.Uniforms
	gl.UniformMatrix4fv(prog.location("u_transform"), 1, false, &u.Transform[0])
	gl.Uniform4f(prog.location("u_color"), u.Color[0], u.Color[1], u.Color[2], u.Color[3])
	gl.Uniform2f(prog.location("u_scale"), u.Scale[0], u.Scale[1])
	gl.Uniform2f(prog.location("u_offset"), u.Offset[0], u.Offset[1])

	if prog.kind == backend.ProgramTextured {
		tex, ok := call.Texture.(*texture)
		if !ok || tex.owner != b {
			return fmt.Errorf("texture: %w", backend.ErrForeignResource)
		}
		if tex.destroyed {
			return errDestroyed
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.Uniform1i(prog.location("u_texture"), 0)
	}

	gl.BindVertexArray(vb.vao)
	gl.DrawArrays(gl.TRIANGLES, int32(call.First), int32(call.Count))
	gl.BindVertexArray(0)
	return nil
}

var _ backend.Backend = (*Backend)(nil)
