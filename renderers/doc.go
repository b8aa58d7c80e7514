// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package renderers provides the leaf renderers of a glenda tree.
//
// Every renderer draws through a backend.Backend, applies its viewport
// (viewport transform, scissor rectangle, scissor clipping) before each
// draw, and releases the backend resources it created on Close.
//
//   - [MonoColor] fills its viewport with one color
//   - [Texture] draws a borrowed texture over its viewport
//   - [Image] draws an owned [ImageTexture] into a configurable quad
//   - [Tilemap] draws a grid of tiles from a tileset texture
//   - [Text] draws a single line of text at its natural size
//
// Textures passed to SetTexture or SetTileset are borrowed: the renderer
// never destroys them. An [ImageTexture] installed with Image.ReplaceTexture
// is owned by the Image until it is replaced again.
package renderers
