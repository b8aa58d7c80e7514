// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import (
	"fmt"
	"image"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
)

// Transformable is implemented by renderers whose geometry can be moved by
// a model transform on top of their viewport mapping.
type Transformable interface {
	SetTransform(m backend.Mat4)
	ClearTransform()
}

// TilesetLayout describes a tileset texture: a grid of TileCount tiles,
// each TileSize pixels, packed from the top-left corner of a texture of
// TextureSize pixels. Tile i sits at column i%TileCount.X, row
// i/TileCount.X.
type TilesetLayout struct {
	TextureSize image.Point
	TileSize    image.Point
	TileCount   image.Point
}

// GridTileset returns the layout of a texture filled with tileSize tiles.
func GridTileset(textureSize, tileSize image.Point) TilesetLayout {
	l := TilesetLayout{TextureSize: textureSize, TileSize: tileSize}
	if tileSize.X > 0 && tileSize.Y > 0 {
		l.TileCount = image.Pt(textureSize.X/tileSize.X, textureSize.Y/tileSize.Y)
	}
	return l
}

// Validate reports whether the grid of tiles fits the texture.
func (l TilesetLayout) Validate() error {
	if l.TextureSize.X <= 0 || l.TextureSize.Y <= 0 ||
		l.TileSize.X <= 0 || l.TileSize.Y <= 0 ||
		l.TileCount.X <= 0 || l.TileCount.Y <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidTileset, l)
	}
	if l.TileSize.X*l.TileCount.X > l.TextureSize.X || l.TileSize.Y*l.TileCount.Y > l.TextureSize.Y {
		return fmt.Errorf("%w: %dx%d tiles of %v exceed texture %v",
			ErrInvalidTileset, l.TileCount.X, l.TileCount.Y, l.TileSize, l.TextureSize)
	}
	return nil
}

// Len returns the number of tiles in the set.
func (l TilesetLayout) Len() int {
	return l.TileCount.X * l.TileCount.Y
}

// TileUV returns the texture coordinates of tile i: top-left (u1, v1)
// and bottom-right (u2, v2).
func (l TilesetLayout) TileUV(i int) (u1, v1, u2, v2 float32) {
	su := float32(l.TileSize.X) / float32(l.TextureSize.X)
	sv := float32(l.TileSize.Y) / float32(l.TextureSize.Y)
	u1 = float32(i%l.TileCount.X) * su
	v1 = float32(i/l.TileCount.X) * sv
	return u1, v1, u1 + su, v1 + sv
}

// tileVertices builds two triangles per map cell. Cell (x, y) spans
// [x, x+1] horizontally and [-y-1, -y] vertically in tile units, so row 0
// is the top row.
func tileVertices(mapSize image.Point, indices []uint16, layout TilesetLayout) ([]float32, error) {
	if mapSize.X < 0 || mapSize.Y < 0 || len(indices) != mapSize.X*mapSize.Y {
		return nil, fmt.Errorf("%w: %d indices for %dx%d map", ErrTileCount, len(indices), mapSize.X, mapSize.Y)
	}
	n := layout.Len()
	out := make([]float32, 0, len(indices)*6*4)
	for my := 0; my < mapSize.Y; my++ {
		for mx := 0; mx < mapSize.X; mx++ {
			i := int(indices[my*mapSize.X+mx])
			if i >= n {
				return nil, fmt.Errorf("%w: %d at (%d,%d), tileset has %d", ErrTileIndex, i, mx, my, n)
			}
			u1, v1, u2, v2 := layout.TileUV(i)
			x1, y1 := float32(mx), float32(-my)
			x2, y2 := x1+1, y1-1
			out = append(out,
				x1, y2, u1, v2,
				x1, y1, u1, v1,
				x2, y2, u2, v2,
				x1, y1, u1, v1,
				x2, y1, u2, v1,
				x2, y2, u2, v2,
			)
		}
	}
	return out, nil
}

// Tilemap draws a grid of tiles from a borrowed tileset texture.
//
// Map cells are one unit wide. MapTileSize scales a unit into normalized
// device coordinates and MapOffset places the top-left corner of the map,
// so a tile size of (0.2, 0.2) with offset (-1, 1) draws ten columns
// across the viewport starting at its top-left corner. The model
// transform is applied last.
type Tilemap struct {
	leaf
	layout    TilesetLayout
	mapSize   image.Point
	indices   []uint16
	tileset   backend.Texture
	tileSize  [2]float32
	offset    [2]float32
	transform backend.Mat4
}

// NewTilemap creates a tilemap of mapSize cells. indices holds one tile
// index per cell, row by row from the top-left.
func NewTilemap(b backend.Backend, mapSize image.Point, indices []uint16, layout TilesetLayout) (*Tilemap, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	data, err := tileVertices(mapSize, indices, layout)
	if err != nil {
		return nil, err
	}
	l, err := newLeaf(b, backend.TexturedProgram(), data, backend.PositionUVLayout())
	if err != nil {
		return nil, err
	}
	return &Tilemap{
		leaf:      l,
		layout:    layout,
		mapSize:   mapSize,
		indices:   append([]uint16(nil), indices...),
		tileSize:  [2]float32{1, 1},
		transform: backend.Identity(),
	}, nil
}

// SetTileset sets the tileset texture, or nil to draw nothing. The texture
// is borrowed and must match the layout the map was created with.
func (t *Tilemap) SetTileset(tex backend.Texture) {
	t.tileset = tex
}

// Tileset returns the current tileset texture, or nil.
func (t *Tilemap) Tileset() backend.Texture {
	return t.tileset
}

// Layout returns the tileset layout.
func (t *Tilemap) Layout() TilesetLayout {
	return t.layout
}

// SetTiles replaces the map contents.
func (t *Tilemap) SetTiles(mapSize image.Point, indices []uint16) error {
	if t.closed {
		return ErrClosed
	}
	data, err := tileVertices(mapSize, indices, t.layout)
	if err != nil {
		return err
	}
	if err := t.b.UpdateVertexBuffer(t.vertices, data); err != nil {
		return fmt.Errorf("renderers: update tiles: %w", err)
	}
	t.mapSize = mapSize
	t.indices = append(t.indices[:0], indices...)
	return nil
}

// MapSize returns the map size in cells.
func (t *Tilemap) MapSize() image.Point {
	return t.mapSize
}

// Tile returns the tile index at cell (x, y).
func (t *Tilemap) Tile(x, y int) (uint16, bool) {
	if x < 0 || y < 0 || x >= t.mapSize.X || y >= t.mapSize.Y {
		return 0, false
	}
	return t.indices[y*t.mapSize.X+x], true
}

// SetMapTileSize sets the size of one cell in normalized device coordinates.
func (t *Tilemap) SetMapTileSize(w, h float32) {
	t.tileSize = [2]float32{w, h}
}

// MapTileSize returns the size of one cell.
func (t *Tilemap) MapTileSize() [2]float32 {
	return t.tileSize
}

// SetMapOffset sets the position of the top-left corner of the map.
func (t *Tilemap) SetMapOffset(x, y float32) {
	t.offset = [2]float32{x, y}
}

// MapOffset returns the position of the top-left corner of the map.
func (t *Tilemap) MapOffset() [2]float32 {
	return t.offset
}

// SetTransform implements Transformable.
func (t *Tilemap) SetTransform(m backend.Mat4) {
	t.transform = m
}

// ClearTransform implements Transformable.
func (t *Tilemap) ClearTransform() {
	t.transform = backend.Identity()
}

// Transform returns the model transform.
func (t *Tilemap) Transform() backend.Mat4 {
	return t.transform
}

// Render draws the map if a tileset is set.
func (t *Tilemap) Render() {
	if t.tileset == nil || len(t.indices) == 0 {
		return
	}
	u := backend.DefaultUniforms()
	u.Transform = t.transform
	u.Scale = t.tileSize
	u.Offset = t.offset
	t.draw(t.tileset, u)
}

// Close releases the program and vertices. The tileset is left alone.
func (t *Tilemap) Close() error {
	t.tileset = nil
	return t.close()
}

var (
	_ glenda.Renderer = (*Tilemap)(nil)
	_ Transformable   = (*Tilemap)(nil)
)
