// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
	"github.com/gogpu/glenda/backend/software"
)

var quad = []float32{
	-1, 1, 0, 0,
	1, 1, 1, 0,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, -1, 1, 1,
	-1, -1, 0, 1,
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		c    CommandType
		want string
	}{
		{CmdSetViewport, "SetViewport"},
		{CmdCreateTexture, "CreateTexture"},
		{CmdDraw, "Draw"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRecordsApplyAndDraw(t *testing.T) {
	b := New()
	glenda.NewViewport(1, 2, 3, 4).Apply(b)

	prog, _ := b.CreateProgram(backend.SolidProgram())
	vb, err := b.CreateVertexBuffer(quad, backend.PositionUVLayout())
	if err != nil {
		t.Fatalf("CreateVertexBuffer() error = %v", err)
	}
	b.Draw(backend.DrawCall{Program: prog, Vertices: vb, Count: 6, Uniforms: backend.DefaultUniforms()})
	vb.Destroy()
	vb.Destroy()

	want := []CommandType{
		CmdSetViewport, CmdSetScissor, CmdEnableScissor,
		CmdCreateProgram, CmdCreateVertexBuffer, CmdDraw, CmdDestroy,
	}
	cmds := b.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("recorded %d commands, want %d: %v", len(cmds), len(want), cmds)
	}
	for i, c := range cmds {
		if c.Type() != want[i] {
			t.Errorf("command[%d] = %v, want %v", i, c.Type(), want[i])
		}
	}
	if got := cmds[0].(SetViewportCommand).Rect; got != image.Rect(1, 2, 4, 6) {
		t.Errorf("viewport rect = %v, want (1,2)-(4,6)", got)
	}
	d := b.Draws()[0]
	if d.Texture.IsValid() || d.Count != 6 || d.Program == d.Vertices {
		t.Errorf("draw = %+v", d)
	}
	if b.Count(CmdDestroy) != 1 {
		t.Errorf("Count(Destroy) = %d, want 1", b.Count(CmdDestroy))
	}
}

func TestRecordingCopiesData(t *testing.T) {
	b := New()
	data := []float32{0, 0, 1, 0, 0, 1}
	if _, err := b.CreateVertexBuffer(data, backend.PositionLayout()); err != nil {
		t.Fatalf("CreateVertexBuffer() error = %v", err)
	}
	data[0] = 42
	if got := b.Commands()[0].(CreateVertexBufferCommand).Data[0]; got != 0 {
		t.Errorf("recorded data aliased caller slice: %v", got)
	}
}

func TestForeignResourcesRejected(t *testing.T) {
	a, b := New(), New()
	prog, _ := a.CreateProgram(backend.SolidProgram())
	vb, _ := a.CreateVertexBuffer(quad, backend.PositionUVLayout())

	b.Draw(backend.DrawCall{Program: prog, Vertices: vb, Count: 6})
	if b.Len() != 0 {
		t.Errorf("foreign draw recorded: %v", b.Commands())
	}
	if err := b.UpdateVertexBuffer(vb, quad); !errors.Is(err, backend.ErrForeignResource) {
		t.Errorf("UpdateVertexBuffer(foreign) = %v, want ErrForeignResource", err)
	}
}

func TestResetKeepsIDs(t *testing.T) {
	b := New()
	p1, _ := b.CreateProgram(backend.SolidProgram())
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len() = %d after Reset", b.Len())
	}
	p2, _ := b.CreateProgram(backend.SolidProgram())
	if p1.(*program).ID() == p2.(*program).ID() {
		t.Error("IDs reused after Reset")
	}
}

func TestPlaybackMatchesDirectRendering(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	draw := func(b backend.Backend) {
		glenda.NewViewport(2, 2, 4, 4).Apply(b)
		prog, _ := b.CreateProgram(backend.TexturedProgram())
		vb, _ := b.CreateVertexBuffer(quad, backend.PositionUVLayout())
		tex, _ := b.CreateTexture(img, backend.PixelArtTextureOptions())
		b.Draw(backend.DrawCall{Program: prog, Vertices: vb, Texture: tex, Count: 6, Uniforms: backend.DefaultUniforms()})
		tex.Destroy()
		vb.Destroy()
		prog.Destroy()
	}

	direct := software.New(8, 8)
	draw(direct)

	rec := New()
	draw(rec)
	replayed := software.New(8, 8)
	if err := rec.Playback(replayed); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}

	a, b := direct.Target().Image(), replayed.Target().Image()
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel byte %d = %d, want %d", i, b.Pix[i], a.Pix[i])
		}
	}
	if replayed.Stats().Fragments != 16 {
		t.Errorf("replayed fragments = %d, want 16", replayed.Stats().Fragments)
	}
}

func TestPlaybackPropagatesErrors(t *testing.T) {
	rec := New()
	if _, err := rec.CreateProgram(backend.ProgramDescriptor{Kind: 42}); err != nil {
		t.Fatalf("recording CreateProgram() error = %v", err)
	}
	if err := rec.Playback(software.New(1, 1)); !errors.Is(err, backend.ErrUnsupportedProgram) {
		t.Errorf("Playback() error = %v, want ErrUnsupportedProgram", err)
	}
}

func TestClosed(t *testing.T) {
	b := New()
	_ = b.Close()
	if _, err := b.CreateProgram(backend.SolidProgram()); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("CreateProgram after Close = %v, want ErrClosed", err)
	}
}
