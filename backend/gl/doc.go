// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl implements backend.Backend with OpenGL 3.3 core.
//
// A context must be current on the calling goroutine before New is called
// and for every use of the backend. glenda viewports have their origin at
// the top-left of the framebuffer; the backend flips them for OpenGL, so
// it needs the framebuffer size (SetFramebufferSize) whenever the window
// is resized.
//
// The package is excluded by the nogl build tag.
package gl
