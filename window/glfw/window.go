// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogl

package glfw

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/window"
)

// pollInterval bounds how long NextEvent sleeps in glfw between context
// checks, in seconds.
const pollInterval = 0.1

// Window is a glfw window implementing window.Source and window.Waker.
type Window struct {
	win    *glfw.Window
	queue  []window.Event
	woken  atomic.Bool
	closed atomic.Bool
}

// New initializes glfw and opens a window of the given size whose OpenGL
// context is current on the calling thread.
func New(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{win: win}
	win.SetFramebufferSizeCallback(w.fbResized)
	win.SetRefreshCallback(w.refresh)
	win.SetKeyCallback(w.keyEvent)
	win.SetCloseCallback(w.closeRequested)

	// Initial layout and frame.
	fbw, fbh := win.GetFramebufferSize()
	w.push(window.Resized{Width: fbw, Height: fbh}, window.RedrawRequested{})
	glenda.Logger().Info("glfw: window opened", "title", title, "width", fbw, "height", fbh)
	return w, nil
}

func (w *Window) push(events ...window.Event) {
	w.queue = append(w.queue, events...)
}

func (w *Window) fbResized(_ *glfw.Window, width, height int) {
	w.push(window.Resized{Width: width, Height: height}, window.RedrawRequested{})
}

func (w *Window) refresh(_ *glfw.Window) {
	w.push(window.RedrawRequested{})
}

func (w *Window) keyEvent(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key, ok := keyCode(k); ok {
		w.push(window.KeyPressed{Key: key})
	}
}

func (w *Window) closeRequested(_ *glfw.Window) {
	w.push(window.CloseRequested{})
}

// NextEvent implements window.Source.
func (w *Window) NextEvent(ctx context.Context) (window.Event, error) {
	for len(w.queue) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if w.closed.Load() {
			return window.CloseRequested{}, nil
		}
		if w.woken.Swap(false) {
			return window.Wakeup{}, nil
		}
		glfw.WaitEventsTimeout(pollInterval)
	}
	ev := w.queue[0]
	w.queue = w.queue[1:]
	return ev, nil
}

// Wake interrupts a blocked NextEvent, which then returns window.Wakeup.
// It may be called from any goroutine.
func (w *Window) Wake() {
	if w.closed.Load() {
		return
	}
	w.woken.Store(true)
	glfw.PostEmptyEvent()
}

// FramebufferSize returns the framebuffer size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// SwapBuffers presents the back buffer. It is meant as a
// window.WithPresentHook.
func (w *Window) SwapBuffers() error {
	w.win.SwapBuffers()
	return nil
}

// Close destroys the window and terminates glfw.
func (w *Window) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	w.win.Destroy()
	glfw.Terminate()
	return nil
}

// keyCode maps the glfw keys glenda applications use.
func keyCode(k glfw.Key) (gpucontext.Key, bool) {
	switch k {
	case glfw.KeyEscape:
		return gpucontext.KeyEscape, true
	case glfw.KeySpace:
		return gpucontext.KeySpace, true
	case glfw.KeyEnter:
		return gpucontext.KeyEnter, true
	case glfw.KeyTab:
		return gpucontext.KeyTab, true
	case glfw.KeyLeft:
		return gpucontext.KeyLeft, true
	case glfw.KeyRight:
		return gpucontext.KeyRight, true
	case glfw.KeyUp:
		return gpucontext.KeyUp, true
	case glfw.KeyDown:
		return gpucontext.KeyDown, true
	}
	return 0, false
}

var (
	_ window.Source = (*Window)(nil)
	_ window.Waker  = (*Window)(nil)
)
