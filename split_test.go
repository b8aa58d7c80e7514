// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestHSplitScenarios(t *testing.T) {
	tests := []struct {
		name        string
		p           SplitPoint
		left, right Viewport
	}{
		{"absolute 300", Absolute(300), NewViewport(0, 0, 300, 600), NewViewport(300, 0, 500, 600)},
		{"ratio half", Ratio(0.5), NewViewport(0, 0, 400, 600), NewViewport(400, 0, 400, 600)},
		{"from right edge", Absolute(-200), NewViewport(0, 0, 600, 600), NewViewport(600, 0, 200, 600)},
		{"past right edge", Absolute(5000), NewViewport(0, 0, 800, 600), NewViewport(800, 0, 0, 600)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := newProbe("l", nil), newProbe("r", nil)
			h, err := NewHSplit(tt.p, l, r)
			if err != nil {
				t.Fatalf("NewHSplit() error = %v", err)
			}
			h.SetViewport(ViewportFromSize(800, 600))
			if got := l.last(); got != tt.left {
				t.Errorf("left = %v, want %v", got, tt.left)
			}
			if got := r.last(); got != tt.right {
				t.Errorf("right = %v, want %v", got, tt.right)
			}
		})
	}
}

func TestVSplitScenario(t *testing.T) {
	top, bottom := newProbe("t", nil), newProbe("b", nil)
	v, err := NewVSplit(Absolute(100), top, bottom)
	if err != nil {
		t.Fatalf("NewVSplit() error = %v", err)
	}
	v.SetViewport(NewViewport(10, 20, 800, 600))

	if got, want := top.last(), NewViewport(10, 20, 800, 100); got != want {
		t.Errorf("top = %v, want %v", got, want)
	}
	if got, want := bottom.last(), NewViewport(10, 120, 800, 500); got != want {
		t.Errorf("bottom = %v, want %v", got, want)
	}
}

func TestSplitTilesViewport(t *testing.T) {
	viewports := []Viewport{
		{},
		NewViewport(0, 0, 1, 1),
		NewViewport(5, 7, 800, 600),
		NewViewport(-10, -20, 333, 17),
	}
	points := []SplitPoint{
		Absolute(0), Absolute(1), Absolute(250), Absolute(-1), Absolute(-9999),
		Ratio(0), Ratio(0.5), Ratio(1), Ratio(-0.1), Ratio(0.77),
	}
	for _, v := range viewports {
		for _, p := range points {
			l, r := newProbe("l", nil), newProbe("r", nil)
			h, _ := NewHSplit(p, l, r)
			h.SetViewport(v)
			a, b := l.last(), r.last()
			if a.Pos != v.Pos || a.Size.Y != v.Size.Y || b.Size.Y != v.Size.Y ||
				b.Pos.X != a.Pos.X+a.Size.X || b.Pos.Y != v.Pos.Y ||
				a.Size.X+b.Size.X != v.Size.X || a.Size.X < 0 || b.Size.X < 0 {
				t.Errorf("HSplit(%v) on %v: left %v, right %v do not tile", p, v, a, b)
			}

			top, bottom := newProbe("t", nil), newProbe("b", nil)
			vs, _ := NewVSplit(p, top, bottom)
			vs.SetViewport(v)
			a, b = top.last(), bottom.last()
			if a.Pos != v.Pos || a.Size.X != v.Size.X || b.Size.X != v.Size.X ||
				b.Pos.Y != a.Pos.Y+a.Size.Y || b.Pos.X != v.Pos.X ||
				a.Size.Y+b.Size.Y != v.Size.Y || a.Size.Y < 0 || b.Size.Y < 0 {
				t.Errorf("VSplit(%v) on %v: top %v, bottom %v do not tile", p, v, a, b)
			}
		}
	}
}

func TestSplitConstructionPropagatesZeroViewport(t *testing.T) {
	l, r := newProbe("l", nil), newProbe("r", nil)
	if _, err := NewHSplit(Ratio(0.5), l, r); err != nil {
		t.Fatalf("NewHSplit() error = %v", err)
	}
	if len(l.viewports) != 1 || l.viewports[0] != (Viewport{}) {
		t.Errorf("left viewports = %v, want [zero]", l.viewports)
	}
	if len(r.viewports) != 1 || r.viewports[0] != (Viewport{}) {
		t.Errorf("right viewports = %v, want [zero]", r.viewports)
	}
}

func TestSplitSetSplitPointRecomputes(t *testing.T) {
	l, r := newProbe("l", nil), newProbe("r", nil)
	h, _ := NewHSplit(Absolute(300), l, r)
	h.SetViewport(ViewportFromSize(800, 600))

	if err := h.SetSplitPoint(Ratio(0.25)); err != nil {
		t.Fatalf("SetSplitPoint() error = %v", err)
	}
	if got, want := l.last(), NewViewport(0, 0, 200, 600); got != want {
		t.Errorf("left = %v, want %v", got, want)
	}
	if got, want := r.last(), NewViewport(200, 0, 600, 600); got != want {
		t.Errorf("right = %v, want %v", got, want)
	}
	if got := h.SplitPoint(); got != Ratio(0.25) {
		t.Errorf("SplitPoint() = %v, want 0.25", got)
	}
	if got, want := h.Viewport(), ViewportFromSize(800, 600); got != want {
		t.Errorf("Viewport() = %v, want %v", got, want)
	}
}

func TestSplitRejectsInvalidPoint(t *testing.T) {
	if _, err := NewHSplit(Ratio(math.NaN()), nil, nil); !errors.Is(err, ErrInvalidSplitPoint) {
		t.Errorf("NewHSplit(NaN) error = %v, want ErrInvalidSplitPoint", err)
	}
	if _, err := NewVSplit(Ratio(math.Inf(1)), nil, nil); !errors.Is(err, ErrInvalidSplitPoint) {
		t.Errorf("NewVSplit(+Inf) error = %v, want ErrInvalidSplitPoint", err)
	}

	l := newProbe("l", nil)
	h, _ := NewHSplit(Absolute(10), l, nil)
	h.SetViewport(ViewportFromSize(100, 100))
	calls := len(l.viewports)
	if err := h.SetSplitPoint(Ratio(math.NaN())); !errors.Is(err, ErrInvalidSplitPoint) {
		t.Errorf("SetSplitPoint(NaN) error = %v, want ErrInvalidSplitPoint", err)
	}
	if h.SplitPoint() != Absolute(10) {
		t.Errorf("SplitPoint() = %v after rejected update, want 10px", h.SplitPoint())
	}
	if len(l.viewports) != calls {
		t.Errorf("rejected SetSplitPoint relaid out children")
	}
}

func TestSplitRenderOrder(t *testing.T) {
	var journal []string
	h, _ := NewHSplit(Absolute(-1), newProbe("left", &journal), newProbe("right", &journal))
	v, _ := NewVSplit(Ratio(0.9), newProbe("top", &journal), h)

	for _, vp := range []Viewport{{}, ViewportFromSize(10, 10), ViewportFromSize(1000, 5)} {
		journal = journal[:0]
		v.SetViewport(vp)
		v.Render()
		if want := []string{"top", "left", "right"}; !slices.Equal(journal, want) {
			t.Errorf("render order on %v = %v, want %v", vp, journal, want)
		}
	}
}

func TestSplitRenderDoesNotRelayout(t *testing.T) {
	l, r := newProbe("l", nil), newProbe("r", nil)
	h, _ := NewHSplit(Ratio(0.5), l, r)
	h.SetViewport(ViewportFromSize(10, 10))
	n := len(l.viewports)
	h.Render()
	h.Render()
	if len(l.viewports) != n || len(r.viewports) != n {
		t.Errorf("Render changed child viewports")
	}
}

func TestSplitSetViewportIdempotent(t *testing.T) {
	l, r := newProbe("l", nil), newProbe("r", nil)
	h, _ := NewHSplit(Ratio(0.3), l, r)
	vp := NewViewport(3, 4, 640, 480)
	h.SetViewport(vp)
	l1, r1 := l.last(), r.last()
	h.SetViewport(vp)
	if l.last() != l1 || r.last() != r1 {
		t.Errorf("second SetViewport changed layout: %v/%v -> %v/%v", l1, r1, l.last(), r.last())
	}
}

func TestSplitReplace(t *testing.T) {
	l, r := newProbe("l", nil), newProbe("r", nil)
	h, _ := NewHSplit(Absolute(300), l, r)
	h.SetViewport(ViewportFromSize(800, 600))

	nl := newProbe("nl", nil)
	if old := h.ReplaceLeft(nl); old != Renderer(l) {
		t.Errorf("ReplaceLeft returned %v, want previous left", old)
	}
	if h.Left() != Renderer(nl) {
		t.Errorf("Left() is not the replacement")
	}
	if got, want := nl.last(), NewViewport(0, 0, 300, 600); got != want {
		t.Errorf("replacement left = %v, want %v", got, want)
	}
	if l.closed != 0 {
		t.Errorf("replaced child was closed; ownership belongs to the caller")
	}

	old := h.ReplaceRight(nil)
	if old != Renderer(r) {
		t.Errorf("ReplaceRight returned %v, want previous right", old)
	}
	if _, ok := h.Right().(NullRenderer); !ok {
		t.Errorf("Right() = %T after ReplaceRight(nil), want NullRenderer", h.Right())
	}

	top, bottom := newProbe("t", nil), newProbe("b", nil)
	v, _ := NewVSplit(Absolute(100), top, bottom)
	v.SetViewport(ViewportFromSize(800, 600))
	nb := newProbe("nb", nil)
	if old := v.ReplaceBottom(nb); old != Renderer(bottom) {
		t.Errorf("ReplaceBottom returned %v, want previous bottom", old)
	}
	if got, want := nb.last(), NewViewport(0, 100, 800, 500); got != want {
		t.Errorf("replacement bottom = %v, want %v", got, want)
	}
	if old := v.ReplaceTop(nil); old != Renderer(top) || v.Top() != Renderer(NullRenderer{}) {
		t.Errorf("ReplaceTop(nil) = %v, Top() = %v", old, v.Top())
	}
	if v.Bottom() != Renderer(nb) {
		t.Errorf("Bottom() is not the replacement")
	}
}

func TestSplitNilChildren(t *testing.T) {
	h, err := NewHSplit(Ratio(0.5), nil, nil)
	if err != nil {
		t.Fatalf("NewHSplit() error = %v", err)
	}
	h.SetViewport(ViewportFromSize(10, 10))
	h.Render()
	if _, ok := h.Left().(NullRenderer); !ok {
		t.Errorf("Left() = %T, want NullRenderer", h.Left())
	}
}

func TestSplitClose(t *testing.T) {
	l, r := newProbe("l", nil), newProbe("r", nil)
	r.closeErr = errProbeClose
	h, _ := NewHSplit(Ratio(0.5), l, r)

	if err := h.Close(); !errors.Is(err, errProbeClose) {
		t.Errorf("Close() = %v, want errProbeClose", err)
	}
	if l.closed != 1 || r.closed != 1 {
		t.Errorf("closed = (%d, %d), want (1, 1)", l.closed, r.closed)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if l.closed != 1 || r.closed != 1 {
		t.Errorf("second Close closed children again")
	}
}

func TestNullRendererIsIdentity(t *testing.T) {
	var journal []string
	inner := newProbe("inner", &journal)
	h, _ := NewHSplit(Absolute(0), NullRenderer{}, inner)
	h.SetViewport(ViewportFromSize(50, 40))
	h.Render()
	if got, want := inner.last(), ViewportFromSize(50, 40); got != want {
		t.Errorf("inner = %v, want %v", got, want)
	}
	if !slices.Equal(journal, []string{"inner"}) {
		t.Errorf("journal = %v, want [inner]", journal)
	}
}
