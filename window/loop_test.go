// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/glenda"
)

type probeApp struct {
	viewports []glenda.Viewport
	renders   int
	keys      []gpucontext.Key
	closed    int
}

func (p *probeApp) SetViewport(v glenda.Viewport) { p.viewports = append(p.viewports, v) }
func (p *probeApp) Render()                       { p.renders++ }
func (p *probeApp) HandleKey(k gpucontext.Key)    { p.keys = append(p.keys, k) }
func (p *probeApp) Close() error                  { p.closed++; return nil }

func TestLoopDispatch(t *testing.T) {
	app := &probeApp{}
	src := NewHeadless(
		Resized{Width: 800, Height: 600},
		RedrawRequested{},
		KeyPressed{Key: gpucontext.KeySpace},
		RedrawRequested{},
		CloseRequested{},
		RedrawRequested{},
	)
	presented := 0
	l := NewLoop(src, app, WithPresentHook(func() error {
		presented++
		return nil
	}))
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(app.viewports) != 1 || app.viewports[0] != glenda.ViewportFromSize(800, 600) {
		t.Errorf("viewports = %v, want [Viewport(0,0 800x600)]", app.viewports)
	}
	if app.renders != 2 || presented != 2 || l.Frames() != 2 {
		t.Errorf("renders, presented, Frames() = %d, %d, %d, want 2, 2, 2", app.renders, presented, l.Frames())
	}
	if len(app.keys) != 1 || app.keys[0] != gpucontext.KeySpace {
		t.Errorf("keys = %v, want [KeySpace]", app.keys)
	}
	if l.Size().X != 800 || l.Size().Y != 600 {
		t.Errorf("Size() = %v, want (800,600)", l.Size())
	}
}

func TestLoopEscapeStops(t *testing.T) {
	app := &probeApp{}
	src := NewHeadless(KeyPressed{Key: gpucontext.KeyEscape}, RedrawRequested{})
	if err := NewLoop(src, app).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if app.renders != 0 || len(app.keys) != 0 {
		t.Errorf("renders, keys = %d, %v, want 0, []", app.renders, app.keys)
	}
}

func TestLoopResizeHookRunsFirst(t *testing.T) {
	app := &probeApp{}
	var order []string
	l := NewLoop(NewHeadless(), app, WithResizeHook(func(w, h int) {
		order = append(order, "hook")
		if len(app.viewports) != 0 {
			t.Error("resize hook called after layout")
		}
	}))
	if err := l.Dispatch(Resized{Width: 10, Height: 20}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(order) != 1 || len(app.viewports) != 1 {
		t.Errorf("hook calls, layouts = %d, %d, want 1, 1", len(order), len(app.viewports))
	}
}

func TestLoopPresentErrorStops(t *testing.T) {
	errPresent := errors.New("swap failed")
	src := NewHeadless(RedrawRequested{}, RedrawRequested{})
	l := NewLoop(src, &probeApp{}, WithPresentHook(func() error { return errPresent }))
	if err := l.Run(context.Background()); !errors.Is(err, errPresent) {
		t.Errorf("Run() error = %v, want %v", err, errPresent)
	}
	if l.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", l.Frames())
	}
}

func TestLoopContextCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := NewLoop(NewHeadless(), nil).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want DeadlineExceeded", err)
	}
}

func buildsApp(app Application, builds *int) Update {
	return func() (Application, error) {
		*builds++
		return app, nil
	}
}

func TestLoopUpdatesNewestWins(t *testing.T) {
	first, second, third := &probeApp{}, &probeApp{}, &probeApp{}
	builds := 0
	updates := make(chan Update, 2)
	l := NewLoop(NewHeadless(), first, WithUpdates(updates))
	if err := l.Dispatch(Resized{Width: 40, Height: 30}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	updates <- buildsApp(second, &builds)
	updates <- buildsApp(third, &builds)
	if err := l.applyUpdates(); err != nil {
		t.Fatalf("applyUpdates() error = %v", err)
	}

	if l.Application() != third {
		t.Fatalf("Application() is not the newest update")
	}
	if builds != 1 {
		t.Errorf("builds = %d, want 1", builds)
	}
	if first.closed != 1 || second.closed != 0 || third.closed != 0 {
		t.Errorf("closed = %d, %d, %d, want 1, 0, 0", first.closed, second.closed, third.closed)
	}
	if len(third.viewports) != 1 || third.viewports[0] != glenda.ViewportFromSize(40, 30) {
		t.Errorf("third viewports = %v, want [Viewport(0,0 40x30)]", third.viewports)
	}
	if third.renders != 1 || l.Frames() != 1 {
		t.Errorf("third renders, Frames() = %d, %d, want 1, 1", third.renders, l.Frames())
	}
}

func TestLoopUpdateFailureKeepsApplication(t *testing.T) {
	app := &probeApp{}
	updates := make(chan Update, 1)
	l := NewLoop(NewHeadless(), app, WithUpdates(updates))
	updates <- func() (Application, error) { return nil, errors.New("bad layout") }
	if err := l.applyUpdates(); err != nil {
		t.Fatalf("applyUpdates() error = %v", err)
	}
	if l.Application() != app || app.closed != 0 || app.renders != 0 {
		t.Errorf("application replaced or touched: closed %d, renders %d", app.closed, app.renders)
	}
}

func TestLoopNilUpdate(t *testing.T) {
	tests := []struct {
		name   string
		update Update
	}{
		{"nil update", nil},
		{"nil application", func() (Application, error) { return nil, nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &probeApp{}
			updates := make(chan Update, 1)
			l := NewLoop(NewHeadless(), app, WithUpdates(updates))
			if err := l.Dispatch(Resized{Width: 4, Height: 4}); err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			updates <- tt.update
			if err := l.applyUpdates(); err != nil {
				t.Fatalf("applyUpdates() error = %v", err)
			}
			if _, ok := l.Application().(glenda.NullRenderer); !ok {
				t.Errorf("Application() = %T, want glenda.NullRenderer", l.Application())
			}
			if app.closed != 1 {
				t.Errorf("replaced application closed %d times, want 1", app.closed)
			}
			if err := l.Dispatch(Resized{Width: 8, Height: 8}); err != nil {
				t.Errorf("Dispatch() after nil update error = %v", err)
			}
		})
	}
}

func TestLoopWakesOnUpdate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src := NewHeadless(Resized{Width: 8, Height: 6})
	next := &probeApp{}
	updates := make(chan Update)
	var l *Loop
	l = NewLoop(src, &probeApp{}, WithUpdates(updates), WithPresentHook(func() error {
		if l.Application() == Application(next) {
			src.Push(CloseRequested{})
		}
		return nil
	}))
	go func() {
		updates <- func() (Application, error) { return next, nil }
	}()

	if err := l.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if next.renders != 1 {
		t.Errorf("renders = %d, want 1", next.renders)
	}
}

func TestLoopFrameHook(t *testing.T) {
	var order []string
	app := &orderApp{order: &order}
	l := NewLoop(NewHeadless(), app,
		WithFrameHook(func() { order = append(order, "clear") }),
		WithPresentHook(func() error {
			order = append(order, "present")
			return nil
		}),
	)
	if err := l.Dispatch(RedrawRequested{}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	want := []string{"clear", "render", "present"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

type orderApp struct {
	order *[]string
}

func (a *orderApp) SetViewport(glenda.Viewport) {}
func (a *orderApp) Render()                     { *a.order = append(*a.order, "render") }

func TestHeadlessWake(t *testing.T) {
	h := NewHeadless()
	h.Wake()
	ev, err := h.NextEvent(context.Background())
	if err != nil {
		t.Fatalf("NextEvent() error = %v", err)
	}
	if _, ok := ev.(Wakeup); !ok {
		t.Errorf("NextEvent() = %v, want Wakeup", ev)
	}
}

func TestHeadlessPushAndClose(t *testing.T) {
	h := NewHeadless()
	go func() {
		h.Push(RedrawRequested{})
		_ = h.Close()
	}()
	ctx := context.Background()
	ev, err := h.NextEvent(ctx)
	if err != nil {
		t.Fatalf("NextEvent() error = %v", err)
	}
	if _, ok := ev.(RedrawRequested); !ok {
		t.Errorf("NextEvent() = %v, want RedrawRequested", ev)
	}
	if _, err := h.NextEvent(ctx); err == nil {
		t.Error("NextEvent() after Close: expected io.EOF")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Resized{Width: 3, Height: 4}, "Resized(3x4)"},
		{RedrawRequested{}, "RedrawRequested"},
		{CloseRequested{}, "CloseRequested"},
		{Wakeup{}, "Wakeup"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
