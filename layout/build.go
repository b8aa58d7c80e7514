// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
	"github.com/gogpu/glenda/internal/imagecache"
	"github.com/gogpu/glenda/renderers"
)

// imageKey identifies a decoded image at a target size. A zero size means
// the natural size.
type imageKey struct {
	path string
	size image.Point
}

// BuildOption configures a Builder.
type BuildOption func(*Builder)

// WithBaseDir resolves relative paths against dir instead of the
// directory the description was loaded from.
func WithBaseDir(dir string) BuildOption {
	return func(bl *Builder) {
		bl.dir = dir
	}
}

// WithImageCacheSize sets how many decoded images the builder keeps.
func WithImageCacheSize(n int) BuildOption {
	return func(bl *Builder) {
		bl.images = imagecache.New[imageKey](n)
	}
}

// Builder turns descriptions into renderer trees on one backend.
// Decoded images are cached across builds, so rebuilding a reloaded
// description only decodes files it has not seen.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	backend backend.Backend
	dir     string
	images  *imagecache.Cache[imageKey]
}

// NewBuilder creates a Builder drawing with b.
func NewBuilder(b backend.Backend, opts ...BuildOption) *Builder {
	bl := &Builder{backend: b}
	for _, opt := range opts {
		opt(bl)
	}
	if bl.images == nil {
		bl.images = imagecache.New[imageKey](imagecache.DefaultSize)
	}
	return bl
}

// Build is shorthand for NewBuilder(b).Build(cfg).
func Build(b backend.Backend, cfg *Config) (*Tree, error) {
	return NewBuilder(b).Build(cfg)
}

// Build creates the renderers cfg describes. On error everything created
// so far is released.
func (bl *Builder) Build(cfg *Config) (*Tree, error) {
	if bl.backend == nil {
		return nil, renderers.ErrNilBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dir := bl.dir
	if dir == "" {
		dir = cfg.dir
	}

	t := &Tree{}
	if cfg.Background != "" {
		c, _ := ParseColor(cfg.Background)
		bg, err := renderers.NewMonoColor(bl.backend, c)
		if err != nil {
			return nil, err
		}
		t.background = bg
	}
	root, err := bl.node(t, &cfg.Root, dir)
	if err != nil {
		_ = t.Close()
		return nil, err
	}
	t.root = root
	glenda.Logger().Debug("layout: tree built", "root", cfg.Root.Type, "textures", len(t.textures))
	return t, nil
}

func (bl *Builder) node(t *Tree, n *Node, dir string) (glenda.Renderer, error) {
	b := bl.backend
	switch n.Type {
	case TypeHSplit, TypeVSplit, TypeInset:
		first, err := bl.node(t, &n.Children[0], dir)
		if err != nil {
			return nil, err
		}
		second, err := bl.node(t, &n.Children[1], dir)
		if err != nil {
			closeRenderer(first)
			return nil, err
		}
		var r glenda.Renderer
		switch n.Type {
		case TypeHSplit, TypeVSplit:
			p, _ := glenda.ParseSplitPoint(n.splitAt())
			if n.Type == TypeHSplit {
				r, err = glenda.NewHSplit(p, first, second)
			} else {
				r, err = glenda.NewVSplit(p, first, second)
			}
		default:
			r, err = glenda.NewInset(n.Inset, first, second)
		}
		if err != nil {
			closeRenderer(first)
			closeRenderer(second)
			return nil, err
		}
		return r, nil

	case TypeAspect:
		child, err := bl.node(t, &n.Children[0], dir)
		if err != nil {
			return nil, err
		}
		r, err := glenda.NewFixedAspectRatio(n.Aspect, child)
		if err != nil {
			closeRenderer(child)
			return nil, err
		}
		return r, nil

	case TypeColor:
		c, _ := ParseColor(n.Color)
		return renderers.NewMonoColor(b, c)

	case TypeImage:
		img, err := bl.loadImage(resolve(dir, n.Path), image.Pt(n.Width, n.Height))
		if err != nil {
			return nil, err
		}
		tex, err := renderers.NewImageTexture(b, img)
		if err != nil {
			return nil, err
		}
		r, err := renderers.NewImage(b, glenda.Viewport{})
		if err != nil {
			_ = tex.Close()
			return nil, err
		}
		r.ReplaceTexture(tex)
		return r, nil

	case TypeText:
		var opts []renderers.TextOption
		if n.FontSize > 0 {
			opts = append(opts, renderers.WithFontSize(n.FontSize))
		}
		if n.Color != "" {
			c, _ := ParseColor(n.Color)
			opts = append(opts, renderers.WithTextColor(c))
		}
		return renderers.NewText(b, n.Text, opts...)

	case TypeTilemap:
		return bl.tilemap(t, n, dir)
	}
	return glenda.NullRenderer{}, nil
}

// tilemap stretches the map over the whole viewport. The tileset texture
// belongs to the tree, since the tilemap only borrows it.
func (bl *Builder) tilemap(t *Tree, n *Node, dir string) (glenda.Renderer, error) {
	img, err := bl.loadImage(resolve(dir, n.Path), image.Point{})
	if err != nil {
		return nil, err
	}
	layout := renderers.GridTileset(img.Bounds().Size(), image.Pt(n.TileWidth, n.TileHeight))
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	rows := (len(n.Tiles) + n.Columns - 1) / n.Columns
	mapSize := image.Pt(n.Columns, rows)

	tex, err := bl.backend.CreateTexture(img, backend.PixelArtTextureOptions())
	if err != nil {
		return nil, err
	}
	t.textures = append(t.textures, tex)

	tm, err := renderers.NewTilemap(bl.backend, mapSize, n.Tiles, layout)
	if err != nil {
		return nil, err
	}
	tm.SetTileset(tex)
	if rows > 0 {
		tm.SetMapTileSize(2/float32(n.Columns), 2/float32(rows))
	}
	tm.SetMapOffset(-1, 1)
	return tm, nil
}

// loadImage decodes path, scaled to size when size is not zero.
func (bl *Builder) loadImage(path string, size image.Point) (*image.RGBA, error) {
	return bl.images.Get(imageKey{path: path, size: size}, func() (*image.RGBA, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("layout: decode %s: %w", path, err)
		}
		if size.X > 0 && size.Y > 0 {
			return renderers.ScaleRGBA(img, size), nil
		}
		return renderers.ToRGBA(img), nil
	})
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

func closeRenderer(r glenda.Renderer) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Tree is a built description. It is itself a Renderer: the background,
// when set, fills the whole viewport before the root draws.
type Tree struct {
	background *renderers.MonoColor
	root       glenda.Renderer
	textures   []backend.Texture
	viewport   glenda.Viewport
	closed     bool
}

// Root returns the top renderer of the description.
func (t *Tree) Root() glenda.Renderer { return t.root }

// Viewport returns the last viewport set.
func (t *Tree) Viewport() glenda.Viewport { return t.viewport }

// SetViewport implements glenda.Renderer.
func (t *Tree) SetViewport(v glenda.Viewport) {
	t.viewport = v
	if t.background != nil {
		t.background.SetViewport(v)
	}
	if t.root != nil {
		t.root.SetViewport(v)
	}
}

// Render implements glenda.Renderer.
func (t *Tree) Render() {
	if t.closed {
		return
	}
	if t.background != nil {
		t.background.Render()
	}
	if t.root != nil {
		t.root.Render()
	}
}

// Close releases every renderer and texture the tree created.
func (t *Tree) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	var errs []error
	if t.root != nil {
		errs = append(errs, closeRenderer(t.root))
	}
	if t.background != nil {
		errs = append(errs, t.background.Close())
	}
	for _, tex := range t.textures {
		tex.Destroy()
	}
	t.textures = nil
	return errors.Join(errs...)
}

var _ glenda.Renderer = (*Tree)(nil)
