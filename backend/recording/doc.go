// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording implements backend.Backend by capturing every call as
// a typed command instead of drawing.
//
// Commands are plain structs for inspectability. Resources are referred to
// by [ResourceID]. A recording can be replayed to any other backend:
//
//	rec := recording.New()
//	root.SetViewport(glenda.ViewportFromSize(800, 600))
//	root.Render()
//
//	for _, d := range rec.Draws() {
//		fmt.Println(d.Count, d.Uniforms.Color)
//	}
//
//	sw := software.New(800, 600)
//	if err := rec.Playback(sw); err != nil {
//		log.Fatal(err)
//	}
package recording
