// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderers

import "errors"

// Errors returned by renderer constructors and setters.
var (
	// ErrNilBackend is returned when a renderer is created without a backend.
	ErrNilBackend = errors.New("renderers: nil backend")

	// ErrInvalidQuad is returned by Image.SetRenderQuad when the vertex
	// slice does not hold exactly four 2D corners.
	ErrInvalidQuad = errors.New("renderers: render quad needs 8 floats")

	// ErrTileCount is returned when the number of tile indices does not
	// match the map size.
	ErrTileCount = errors.New("renderers: tile indices do not match map size")

	// ErrInvalidTileset is returned for tileset layouts with non-positive sizes.
	ErrInvalidTileset = errors.New("renderers: invalid tileset layout")

	// ErrTileIndex is returned for tile indices outside the tileset.
	ErrTileIndex = errors.New("renderers: tile index out of range")

	// ErrClosed is returned by setters called after Close.
	ErrClosed = errors.New("renderers: renderer is closed")

	// ErrNilImage is returned when an image texture is created from nil.
	ErrNilImage = errors.New("renderers: nil image")
)
