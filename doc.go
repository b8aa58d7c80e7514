// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glenda composes independent renderers into a single frame.
//
// # Overview
//
// An application builds a tree of [Renderer] values. Leaves own their GPU
// resources and drawing logic (see the renderers package). Composites are
// layout operators that subdivide the rectangle they were given and push
// the resulting sub-rectangles down the tree:
//
//   - [HSplit] and [VSplit] cut the viewport in two at a [SplitPoint]
//   - [Inset] draws one child at full size and another inside a border
//   - [FixedAspectRatio] letterboxes or pillarboxes its child
//   - [NullRenderer] fills a slot with nothing
//
// # Quick Start
//
//	left, _ := renderers.NewMonoColor(b, color.RGBA{R: 255, A: 255})
//	right, _ := renderers.NewMonoColor(b, color.RGBA{B: 255, A: 255})
//	root, _ := glenda.NewHSplit(glenda.Ratio(0.5), left, right)
//	defer root.Close()
//
//	root.SetViewport(glenda.ViewportFromSize(800, 600))
//	root.Render()
//
// # Passes
//
// Layout and drawing are separate. SetViewport recomputes the layout of
// the whole subtree synchronously; Render only draws. Composites also
// recompute their children whenever their policy changes (SetSplitPoint,
// SetInset, SetAspectRatio). Children render in construction order:
// first before second, outer before inner.
//
// # Coordinate System
//
//   - Origin (0,0) at the top-left of the framebuffer
//   - X increases right
//   - Y increases down
//
// Backends with a bottom-left origin (OpenGL) flip Y when applying a
// [Viewport].
//
// # Ownership
//
// A composite exclusively owns its children. Close releases the whole
// subtree; children implementing io.Closer are closed depth-first. The
// Replace methods hand the previous child back to the caller.
//
// Nothing in this package is safe for concurrent use. Build, lay out and
// render a tree on the goroutine that owns the graphics context.
package glenda
