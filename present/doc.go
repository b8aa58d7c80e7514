// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package present shows a software-rendered glenda frame through a host GPU
// context.
//
// The host supplies a gpucontext.TextureDrawer (for example gogpu's
// Context.AsTextureDrawer). A Presenter uploads the software target into a
// GPU texture, updates it in place on later frames and recreates it when
// the target size changes:
//
//	sw := software.New(w, h)
//	p := present.New()
//	app.OnDraw(func(dc *gogpu.Context) {
//	    root.Render()
//	    _ = p.Present(dc.AsTextureDrawer(), sw.Target())
//	})
package present
