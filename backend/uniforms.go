// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"encoding/binary"
	"image/color"
	"math"
)

// Mat4 is a 4x4 matrix in column-major order, as uploaded to shaders.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scaling matrix.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotateZ returns a rotation of angle radians around the Z axis.
func RotateZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0], m[1] = float32(c), float32(s)
	m[4], m[5] = float32(-s), float32(c)
	return m
}

// Mul returns m * n; n is applied first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Transform returns m * v.
func (m Mat4) Transform(v [4]float32) [4]float32 {
	var r [4]float32
	for row := range 4 {
		r[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return r
}

// IsIdentity reports whether m is the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity()
}

// Uniforms are the per-draw shader parameters shared by every program.
type Uniforms struct {
	// Color is premultiplied RGBA. Solid programs output it; textured
	// programs multiply the sample by it.
	Color     [4]float32
	Transform Mat4
	Scale     [2]float32
	Offset    [2]float32
}

// UniformsSize is the size in bytes of the uniform block.
const UniformsSize = 96

// DefaultUniforms returns opaque white, identity transform, unit scale
// and no offset.
func DefaultUniforms() Uniforms {
	return Uniforms{
		Color:     [4]float32{1, 1, 1, 1},
		Transform: Identity(),
		Scale:     [2]float32{1, 1},
	}
}

// Bytes packs u into the uniform block layout:
// transform (64 bytes), color (16), scale (8), offset (8).
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformsSize)
	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	for _, f := range u.Transform {
		put(f)
	}
	for _, f := range u.Color {
		put(f)
	}
	put(u.Scale[0])
	put(u.Scale[1])
	put(u.Offset[0])
	put(u.Offset[1])
	return buf
}

// ColorFloats converts c to premultiplied RGBA floats in [0, 1].
func ColorFloats(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, b, a := c.RGBA()
	return [4]float32{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}
