// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/glenda/backend"
)

var errDestroyed = errors.New("software: resource destroyed")

// vertex is a vertex after the vertex stage, in framebuffer pixels.
type vertex struct {
	x, y float64
	u, v float64
}

// Draw implements backend.Backend.
func (b *Backend) Draw(call backend.DrawCall) {
	if err := b.draw(call); err != nil {
		slogger().Warn("software: draw skipped", "program", call.Label(), "err", err)
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

	clip := b.clipRect()
	b.stats.DrawCalls++
	if clip.Empty() {
		return nil
	}

	posAttr, _ := vb.layout.Attribute(backend.LocationPosition)
	uvAttr, hasUV := vb.layout.Attribute(backend.LocationUV)
	stride := vb.layout.Floats()
	shade := b.solidShader(call.Uniforms.Color)
	if tex != nil {
		shade = b.textureShader(tex, call.Uniforms.Color)
	}

	var tri [3]vertex
	for i := 0; i+3 <= call.Count; i += 3 {
		culled := false
		for k := range 3 {
			base := (call.First + i + k) * stride
			px := vb.data[base+posAttr.Offset/4]
			py := vb.data[base+posAttr.Offset/4+1]
			vx, ok := b.transform(px, py, call.Uniforms)
			if !ok {
				culled = true
				break
			}
			if hasUV {
				vx.u = float64(vb.data[base+uvAttr.Offset/4])
				vx.v = float64(vb.data[base+uvAttr.Offset/4+1])
			}
			tri[k] = vx
		}
		if culled {
			continue
		}
		b.stats.Triangles++
		b.stats.Fragments += b.rasterize(tri, clip, shade)
	}
	return nil
}

// transform runs the vertex stage and viewport mapping. NDC +y is the top
// of the viewport. Vertices with w <= 0 are rejected.
func (b *Backend) transform(x, y float32, u backend.Uniforms) (vertex, bool) {
	p := [4]float32{x*u.Scale[0] + u.Offset[0], y*u.Scale[1] + u.Offset[1], 0, 1}
	c := u.Transform.Transform(p)
	if c[3] <= 0 {
		return vertex{}, false
	}
	ndcX := float64(c[0]) / float64(c[3])
	ndcY := float64(c[1]) / float64(c[3])
	vp := b.viewport
	return vertex{
		x: float64(vp.Min.X) + (ndcX+1)/2*float64(vp.Dx()),
		y: float64(vp.Min.Y) + (1-ndcY)/2*float64(vp.Dy()),
	}, true
}

// edge returns twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// topLeft reports whether edge a->b is a top or left edge of a triangle
// with positive area in y-down coordinates.
func topLeft(a, b vertex) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return (dy == 0 && dx > 0) || dy < 0
}

// rasterize fills tri inside clip and returns the number of fragments.
// Pixels are sampled at their centers; pixels on a shared edge belong to
// exactly one triangle.
func (b *Backend) rasterize(tri [3]vertex, clip image.Rectangle, shade shader) int {
	area := edge(tri[0].x, tri[0].y, tri[1].x, tri[1].y, tri[2].x, tri[2].y)
	if area == 0 || math.IsNaN(area) {
		return 0
	}
	if area < 0 {
		tri[1], tri[2] = tri[2], tri[1]
		area = -area
	}

	minX := math.Min(tri[0].x, math.Min(tri[1].x, tri[2].x))
	maxX := math.Max(tri[0].x, math.Max(tri[1].x, tri[2].x))
	minY := math.Min(tri[0].y, math.Min(tri[1].y, tri[2].y))
	maxY := math.Max(tri[0].y, math.Max(tri[1].y, tri[2].y))
	bbox := image.Rect(
		int(math.Floor(math.Max(minX, -1<<30))), int(math.Floor(math.Max(minY, -1<<30))),
		int(math.Ceil(math.Min(maxX, 1<<30))), int(math.Ceil(math.Min(maxY, 1<<30))),
	).Intersect(clip)
	if bbox.Empty() {
		return 0
	}

	tl0 := topLeft(tri[1], tri[2])
	tl1 := topLeft(tri[2], tri[0])
	tl2 := topLeft(tri[0], tri[1])
	inside := func(w float64, tl bool) bool { return w > 0 || (w == 0 && tl) }

	n := 0
	for y := bbox.Min.Y; y < bbox.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := bbox.Min.X; x < bbox.Max.X; x++ {
			px := float64(x) + 0.5
			w0 := edge(tri[1].x, tri[1].y, tri[2].x, tri[2].y, px, py)
			w1 := edge(tri[2].x, tri[2].y, tri[0].x, tri[0].y, px, py)
			w2 := edge(tri[0].x, tri[0].y, tri[1].x, tri[1].y, px, py)
			if !inside(w0, tl0) || !inside(w1, tl1) || !inside(w2, tl2) {
				continue
			}
			w0, w1, w2 = w0/area, w1/area, w2/area
			shade(x, y, w0*tri[0].u+w1*tri[1].u+w2*tri[2].u, w0*tri[0].v+w1*tri[1].v+w2*tri[2].v)
			n++
		}
	}
	return n
}
