// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements backend.Backend on the CPU.
//
// Draw calls are rasterized into a [Target] wrapping an *image.RGBA using
// the same pipeline a GPU would run: vertex transform, viewport mapping,
// clipping against viewport and scissor, top-left fill rule, texture
// sampling and premultiplied source-over blending.
//
// The backend registers itself as "software" on import:
//
//	import _ "github.com/gogpu/glenda/backend/software"
//
// Or construct one directly to keep access to its target:
//
//	b := software.New(800, 600)
//	root.SetViewport(glenda.ViewportFromSize(800, 600))
//	root.Render()
//	png.Encode(f, b.Target().Image())
package software
