// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Shader locations used by the built-in programs.
const (
	LocationPosition = 0
	LocationUV       = 1
)

// VertexAttribute describes one attribute inside a vertex.
type VertexAttribute struct {
	Location int
	Format   gputypes.VertexFormat
	// Offset is in bytes from the start of the vertex.
	Offset int
}

// VertexLayout describes interleaved float32 vertex data.
type VertexLayout struct {
	// Stride is the size of one vertex in bytes.
	Stride     int
	Attributes []VertexAttribute
}

// PositionLayout is a vertex holding only a 2D position.
func PositionLayout() VertexLayout {
	return VertexLayout{
		Stride: 8,
		Attributes: []VertexAttribute{
			{Location: LocationPosition, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
		},
	}
}

// PositionUVLayout is a vertex holding a 2D position followed by UVs.
func PositionUVLayout() VertexLayout {
	return VertexLayout{
		Stride: 16,
		Attributes: []VertexAttribute{
			{Location: LocationPosition, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
			{Location: LocationUV, Format: gputypes.VertexFormatFloat32x2, Offset: 8},
		},
	}
}

// Floats returns the stride in float32 units.
func (l VertexLayout) Floats() int {
	return l.Stride / 4
}

// Attribute returns the attribute bound to loc.
func (l VertexLayout) Attribute(loc int) (VertexAttribute, bool) {
	for _, a := range l.Attributes {
		if a.Location == loc {
			return a, true
		}
	}
	return VertexAttribute{}, false
}

// Components returns the number of float32 components of f, or 0 for
// formats that are not float32 based.
func Components(f gputypes.VertexFormat) int {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 1
	case gputypes.VertexFormatFloat32x2:
		return 2
	case gputypes.VertexFormatFloat32x3:
		return 3
	case gputypes.VertexFormatFloat32x4:
		return 4
	default:
		return 0
	}
}

// VertexCount validates data against l and returns the number of vertices.
func (l VertexLayout) VertexCount(data []float32) (int, error) {
	n := l.Floats()
	if n <= 0 || l.Stride%4 != 0 {
		return 0, fmt.Errorf("%w: stride %d", ErrInvalidVertexData, l.Stride)
	}
	for _, a := range l.Attributes {
		c := Components(a.Format)
		if c == 0 || a.Offset%4 != 0 || a.Offset+4*c > l.Stride {
			return 0, fmt.Errorf("%w: attribute %d does not fit stride %d", ErrInvalidVertexData, a.Location, l.Stride)
		}
	}
	if len(data)%n != 0 {
		return 0, fmt.Errorf("%w: %d floats is not a multiple of %d", ErrInvalidVertexData, len(data), n)
	}
	return len(data) / n, nil
}
