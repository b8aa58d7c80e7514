// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"context"
	"errors"
	"image"
	"io"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/glenda"
)

// Application is the root of the renderer tree driven by a Loop.
type Application interface {
	glenda.Renderer
}

// KeyHandler is implemented by applications that react to key presses.
type KeyHandler interface {
	HandleKey(key gpucontext.Key)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithResizeHook is called with the new size before the application is
// laid out, so backends can resize their targets.
func WithResizeHook(fn func(width, height int)) LoopOption {
	return func(l *Loop) {
		l.onResize = fn
	}
}

// WithPresentHook is called after every rendered frame, to swap buffers or
// copy the frame out. An error stops the loop.
func WithPresentHook(fn func() error) LoopOption {
	return func(l *Loop) {
		l.onPresent = fn
	}
}

// WithFrameHook is called before the application renders each frame, to
// clear the framebuffer.
func WithFrameHook(fn func()) LoopOption {
	return func(l *Loop) {
		l.onFrame = fn
	}
}

// Update builds a replacement application. It is called on the loop's
// goroutine, so it may create graphics resources.
type Update func() (Application, error)

// WithUpdates replaces the application with the result of updates received
// on ch. Only the newest pending update is built. The new application is
// laid out at the current size and drawn, and a replaced application that
// implements io.Closer is closed. A failed update keeps the current
// application. If the Source implements Waker, the loop is woken as soon
// as an update arrives.
func WithUpdates(ch <-chan Update) LoopOption {
	return func(l *Loop) {
		l.updates = ch
	}
}

// Loop dispatches events from a Source to an Application. It runs on the
// goroutine that calls Run, which must own the graphics context.
type Loop struct {
	src       Source
	app       Application
	size      image.Point
	onResize  func(width, height int)
	onFrame   func()
	onPresent func() error
	updates   <-chan Update
	frames    int
	done      bool
}

// NewLoop creates a loop. A nil app is replaced by glenda.NullRenderer.
func NewLoop(src Source, app Application, opts ...LoopOption) *Loop {
	if app == nil {
		app = glenda.NullRenderer{}
	}
	l := &Loop{src: src, app: app}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Application returns the current application.
func (l *Loop) Application() Application { return l.app }

// Size returns the last reported framebuffer size.
func (l *Loop) Size() image.Point { return l.size }

// Frames returns the number of frames rendered.
func (l *Loop) Frames() int { return l.frames }

// Run dispatches events until the application is closed, the source is
// exhausted or ctx is done. It returns nil on a normal close.
func (l *Loop) Run(ctx context.Context) error {
	if w, ok := l.src.(Waker); ok && l.updates != nil {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		l.updates = relay(ctx, l.updates, w.Wake)
	}
	for !l.done {
		if err := l.applyUpdates(); err != nil {
			return err
		}
		ev, err := l.src.NextEvent(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := l.Dispatch(ev); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch handles one event.
func (l *Loop) Dispatch(ev Event) error {
	glenda.Logger().Debug("window: event", "event", ev)
	switch ev := ev.(type) {
	case Resized:
		l.size = image.Pt(ev.Width, ev.Height)
		if l.onResize != nil {
			l.onResize(ev.Width, ev.Height)
		}
		l.app.SetViewport(glenda.ViewportFromSize(ev.Width, ev.Height))
	case RedrawRequested:
		return l.redraw()
	case KeyPressed:
		if ev.Key == gpucontext.KeyEscape {
			l.done = true
			return nil
		}
		if h, ok := l.app.(KeyHandler); ok {
			h.HandleKey(ev.Key)
		}
	case CloseRequested:
		l.done = true
	case Wakeup:
	}
	return nil
}

func (l *Loop) redraw() error {
	if l.onFrame != nil {
		l.onFrame()
	}
	l.app.Render()
	l.frames++
	if l.onPresent != nil {
		return l.onPresent()
	}
	return nil
}

// applyUpdates builds and installs the newest pending update, if any.
func (l *Loop) applyUpdates() error {
	if l.updates == nil {
		return nil
	}
	var (
		next    Update
		pending bool
	)
drain:
	for {
		select {
		case u, ok := <-l.updates:
			if !ok {
				l.updates = nil
				break drain
			}
			next, pending = u, true
		default:
			break drain
		}
	}
	if !pending {
		return nil
	}
	var app Application
	if next != nil {
		var err error
		if app, err = next(); err != nil {
			glenda.Logger().Warn("window: update failed", "err", err)
			return nil
		}
	}
	if app == nil {
		app = glenda.NullRenderer{}
	}
	closeApp(l.app)
	l.app = app
	l.app.SetViewport(glenda.ViewportFromSize(l.size.X, l.size.Y))
	glenda.Logger().Info("window: application replaced")
	return l.redraw()
}

// relay forwards updates from in and calls wake after each one, until in
// is closed or ctx is done.
func relay(ctx context.Context, in <-chan Update, wake func()) <-chan Update {
	out := make(chan Update, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
				wake()
			}
		}
	}()
	return out
}

func closeApp(app Application) {
	if c, ok := app.(io.Closer); ok {
		if err := c.Close(); err != nil {
			glenda.Logger().Warn("window: close application", "err", err)
		}
	}
}
