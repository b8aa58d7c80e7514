// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
	"github.com/gogpu/glenda/internal/imagecache"
)

// DefaultFontSize is the text size in pixels used when none is given.
const DefaultFontSize = 16

// TextKey identifies a rasterized string in a text cache.
type TextKey struct {
	Text  string
	Size  float64
	Color color.RGBA64
	font  *opentype.Font
}

var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
	goRegularErr  error

	sharedTextCache = imagecache.New[TextKey](imagecache.DefaultSize)
)

func defaultFont() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

type textConfig struct {
	size  float64
	color color.Color
	font  *opentype.Font
	cache *imagecache.Cache[TextKey]
}

// TextOption configures a Text renderer.
type TextOption func(*textConfig)

// WithFontSize sets the text size in pixels.
func WithFontSize(px float64) TextOption {
	return func(c *textConfig) {
		if px > 0 {
			c.size = px
		}
	}
}

// WithTextColor sets the text color.
func WithTextColor(col color.Color) TextOption {
	return func(c *textConfig) {
		c.color = col
	}
}

// WithFont replaces the default Go Regular font.
func WithFont(f *opentype.Font) TextOption {
	return func(c *textConfig) {
		c.font = f
	}
}

// WithTextCache sets the cache of rasterized strings. Text renderers share
// a package-level cache by default.
func WithTextCache(cache *imagecache.Cache[TextKey]) TextOption {
	return func(c *textConfig) {
		c.cache = cache
	}
}

// Text draws a single line of text at its natural pixel size, anchored at
// the top-left corner of the viewport. Text that does not fit is clipped
// by the viewport.
type Text struct {
	leaf
	text  string
	size  float64
	color color.Color
	font  *opentype.Font
	face  font.Face
	cache *imagecache.Cache[TextKey]

	tex     backend.Texture
	texSize image.Point
	dirty   bool
}

// NewText creates a text renderer showing s.
func NewText(b backend.Backend, s string, opts ...TextOption) (*Text, error) {
	cfg := textConfig{size: DefaultFontSize, color: color.White, cache: sharedTextCache}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.font == nil {
		f, err := defaultFont()
		if err != nil {
			return nil, fmt.Errorf("renderers: parse default font: %w", err)
		}
		cfg.font = f
	}
	face, err := newFace(cfg.font, cfg.size)
	if err != nil {
		return nil, err
	}
	unit := [8]float32{0, 0, 1, 0, 1, -1, 0, -1}
	l, err := newLeaf(b, backend.TexturedProgram(), quadVertices(unit, cornerUVs), backend.PositionUVLayout())
	if err != nil {
		_ = face.Close()
		return nil, err
	}
	return &Text{
		leaf:  l,
		text:  s,
		size:  cfg.size,
		color: cfg.color,
		font:  cfg.font,
		face:  face,
		cache: cfg.cache,
		dirty: true,
	}, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("renderers: create font face: %w", err)
	}
	return face, nil
}

// SetText changes the displayed string.
func (t *Text) SetText(s string) {
	if s != t.text {
		t.text = s
		t.dirty = true
	}
}

// Text returns the displayed string.
func (t *Text) Text() string {
	return t.text
}

// SetColor changes the text color.
func (t *Text) SetColor(c color.Color) {
	t.color = c
	t.dirty = true
}

// Color returns the text color.
func (t *Text) Color() color.Color {
	return t.color
}

// SetFontSize changes the text size in pixels. Non-positive sizes are ignored.
func (t *Text) SetFontSize(px float64) error {
	if px <= 0 || px == t.size {
		return nil
	}
	if t.closed {
		return ErrClosed
	}
	face, err := newFace(t.font, px)
	if err != nil {
		return err
	}
	_ = t.face.Close()
	t.face = face
	t.size = px
	t.dirty = true
	return nil
}

// FontSize returns the text size in pixels.
func (t *Text) FontSize() float64 {
	return t.size
}

// Size returns the pixel size of the rendered string.
func (t *Text) Size() image.Point {
	if t.text == "" || t.face == nil {
		return image.Point{}
	}
	m := t.face.Metrics()
	return image.Pt(font.MeasureString(t.face, t.text).Ceil(), (m.Ascent + m.Descent).Ceil())
}

func (t *Text) key() TextKey {
	r, g, b, a := t.color.RGBA()
	return TextKey{
		Text:  t.text,
		Size:  t.size,
		Color: color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)},
		font:  t.font,
	}
}

// rasterize draws the string into a new image sized to fit it.
func (t *Text) rasterize() (*image.RGBA, error) {
	size := t.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("renderers: text %q has no extent", t.text)
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(t.color),
		Face: t.face,
		Dot:  fixed.Point26_6{Y: t.face.Metrics().Ascent},
	}
	d.DrawString(t.text)
	return dst, nil
}

// refresh uploads the current string when it changed.
func (t *Text) refresh() error {
	if !t.dirty {
		return nil
	}
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
		t.texSize = image.Point{}
	}
	t.dirty = false
	if t.text == "" {
		return nil
	}
	img, err := t.cache.Get(t.key(), t.rasterize)
	if err != nil {
		return err
	}
	opts := backend.DefaultTextureOptions()
	opts.Label = "glenda-text"
	tex, err := t.b.CreateTexture(img, opts)
	if err != nil {
		return fmt.Errorf("renderers: upload text: %w", err)
	}
	t.tex = tex
	t.texSize = img.Bounds().Size()
	return nil
}

// Render draws the string if it is not empty.
func (t *Text) Render() {
	if t.closed {
		return
	}
	if err := t.refresh(); err != nil {
		glenda.Logger().Warn("renderers: text skipped", "text", t.text, "err", err)
		return
	}
	vs := t.viewport.Size
	if t.tex == nil || vs.X <= 0 || vs.Y <= 0 {
		return
	}
	u := backend.DefaultUniforms()
	u.Scale = [2]float32{
		2 * float32(t.texSize.X) / float32(vs.X),
		2 * float32(t.texSize.Y) / float32(vs.Y),
	}
	u.Offset = [2]float32{-1, 1}
	t.draw(t.tex, u)
}

// Close releases the program, the vertices, the texture and the font face.
func (t *Text) Close() error {
	if t.closed {
		return nil
	}
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
	err := t.face.Close()
	if cerr := t.close(); cerr != nil {
		return cerr
	}
	return err
}

var _ glenda.Renderer = (*Text)(nil)
