// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window drives a glenda renderer tree from window system events.
//
// A Source produces events; Loop dispatches them to an Application:
//
//	Resized          root.SetViewport(glenda.ViewportFromSize(w, h))
//	RedrawRequested  the frame hook, root.Render(), then the present hook
//	KeyPressed       Escape stops the loop, other keys go to a KeyHandler
//	CloseRequested   stops the loop
//	Wakeup           nothing; pending updates are applied
//
// WithUpdates replaces the root between events. A Source that implements
// Waker is woken when an update arrives.
//
// Headless is a scripted Source for tests and offscreen runs; package
// window/glfw provides a desktop window.
package window
