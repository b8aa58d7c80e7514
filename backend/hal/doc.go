// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hal implements backend.Backend on top of the gogpu/wgpu hardware
// abstraction layer.
//
// The host owns the device, the queue and the render target. A frame is
// drawn between BeginFrame and EndFrame, or in one call with Frame:
//
//	b, err := hal.New(device, queue, hal.WithFormat(gputypes.TextureFormatBGRA8Unorm))
//	...
//	err = b.Frame(view, width, height, gputypes.Color{A: 1}, func() {
//		root.SetViewport(glenda.ViewportFromSize(width, height))
//		root.Render()
//	})
//
// Each Draw allocates a small uniform buffer and bind group that live until
// the end of the frame.
//
// The package is excluded by the nogpu build tag.
package hal
