// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

// fullscreenCorners are the NDC corners top-left, top-right,
// bottom-right, bottom-left.
var fullscreenCorners = [8]float32{
	-1, 1,
	1, 1,
	1, -1,
	-1, -1,
}

// cornerUVs match fullscreenCorners: UV (0, 0) is the top-left texel.
var cornerUVs = [8]float32{
	0, 0,
	1, 0,
	1, 1,
	0, 1,
}

// quadVertices triangulates four corners (TL, TR, BR, BL) into two
// triangles of interleaved position and UV.
func quadVertices(pos, uv [8]float32) []float32 {
	out := make([]float32, 0, 6*4)
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		out = append(out, pos[2*i], pos[2*i+1], uv[2*i], uv[2*i+1])
	}
	return out
}

// quadPositions triangulates four corners into position-only vertices.
func quadPositions(pos [8]float32) []float32 {
	out := make([]float32, 0, 6*2)
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		out = append(out, pos[2*i], pos[2*i+1])
	}
	return out
}
