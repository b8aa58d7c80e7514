// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend defines the narrow graphics interface glenda renderers
// draw through.
//
// A [Backend] creates programs, vertex buffers and textures, applies
// viewport and scissor state, and issues triangle-list draw calls. Every
// program shares one vertex transform:
//
//	clip = Transform * vec4(pos * Scale + Offset, 0, 1)
//
// and one of two fragment stages selected by [ProgramKind].
//
// # Implementations
//
//   - backend/software: CPU rasterizer into an *image.RGBA (always available)
//   - backend/recording: records calls for inspection and tests
//   - backend/hal: gogpu/wgpu HAL render passes
//   - backend/gl: OpenGL 3.3 core (build tag !nogl)
//
// # Backend Registration
//
// Offscreen backends register a [Factory] from init() and are selected at
// runtime:
//
//	import _ "github.com/gogpu/glenda/backend/software"
//
//	b, err := backend.Default(800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
// Backends bound to a host device (hal, gl) are constructed directly.
package backend
