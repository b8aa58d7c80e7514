// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"errors"
	"slices"
	"testing"
)

func TestInsetLayout(t *testing.T) {
	tests := []struct {
		name  string
		inset int
		v     Viewport
		inner Viewport
	}{
		{"zero inset", 0, NewViewport(5, 5, 100, 80), NewViewport(5, 5, 100, 80)},
		{"ten", 10, NewViewport(0, 0, 800, 600), NewViewport(10, 10, 780, 580)},
		{"offset", 4, NewViewport(100, 50, 40, 30), NewViewport(104, 54, 32, 22)},
		{"exactly half", 15, NewViewport(0, 0, 100, 30), NewViewport(15, 15, 70, 0)},
		{"too large", 16, NewViewport(0, 0, 100, 30), NewViewport(16, 16, 0, 0)},
		{"way too large", 1000, NewViewport(0, 0, 100, 100), NewViewport(1000, 1000, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outer, inner := newProbe("outer", nil), newProbe("inner", nil)
			in, err := NewInset(tt.inset, outer, inner)
			if err != nil {
				t.Fatalf("NewInset() error = %v", err)
			}
			in.SetViewport(tt.v)
			if got := outer.last(); got != tt.v {
				t.Errorf("outer = %v, want %v", got, tt.v)
			}
			if got := inner.last(); got != tt.inner {
				t.Errorf("inner = %v, want %v", got, tt.inner)
			}
			if !tt.v.Contains(inner.last()) && !inner.last().Empty() {
				t.Errorf("inner %v escapes %v", inner.last(), tt.v)
			}
		})
	}
}

func TestInsetAtLeastHalfGivesZeroSize(t *testing.T) {
	for _, size := range [][2]int{{100, 100}, {100, 40}, {7, 300}, {1, 1}} {
		w, h := size[0], size[1]
		i := min(w, h)/2 + 1
		inner := newProbe("inner", nil)
		in, _ := NewInset(i, nil, inner)
		in.SetViewport(ViewportFromSize(w, h))
		if got := inner.last(); got.Size.X != 0 || got.Size.Y != 0 {
			t.Errorf("inset %d on %dx%d: inner size = %v, want 0x0", i, w, h, got.Size)
		}
	}
}

func TestInsetSetInset(t *testing.T) {
	inner := newProbe("inner", nil)
	in, _ := NewInset(0, nil, inner)
	in.SetViewport(ViewportFromSize(200, 100))

	if err := in.SetInset(20); err != nil {
		t.Fatalf("SetInset() error = %v", err)
	}
	if got, want := inner.last(), NewViewport(20, 20, 160, 60); got != want {
		t.Errorf("inner = %v, want %v", got, want)
	}
	if in.Inset() != 20 {
		t.Errorf("Inset() = %d, want 20", in.Inset())
	}

	if err := in.SetInset(-1); !errors.Is(err, ErrInvalidInset) {
		t.Errorf("SetInset(-1) error = %v, want ErrInvalidInset", err)
	}
	if in.Inset() != 20 {
		t.Errorf("Inset() = %d after rejected update, want 20", in.Inset())
	}
	if _, err := NewInset(-5, nil, nil); !errors.Is(err, ErrInvalidInset) {
		t.Errorf("NewInset(-5) error = %v, want ErrInvalidInset", err)
	}
}

func TestInsetRenderOrder(t *testing.T) {
	var journal []string
	in, _ := NewInset(3, newProbe("outer", &journal), newProbe("inner", &journal))
	in.SetViewport(ViewportFromSize(4, 4))
	in.Render()
	if want := []string{"outer", "inner"}; !slices.Equal(journal, want) {
		t.Errorf("render order = %v, want %v", journal, want)
	}
}

func TestInsetReplaceAndClose(t *testing.T) {
	outer, inner := newProbe("outer", nil), newProbe("inner", nil)
	in, _ := NewInset(10, outer, inner)
	in.SetViewport(ViewportFromSize(100, 100))

	ni := newProbe("ni", nil)
	if old := in.ReplaceInner(ni); old != Renderer(inner) {
		t.Errorf("ReplaceInner returned %v, want previous inner", old)
	}
	if got, want := ni.last(), NewViewport(10, 10, 80, 80); got != want {
		t.Errorf("replacement inner = %v, want %v", got, want)
	}
	no := newProbe("no", nil)
	if old := in.ReplaceOuter(no); old != Renderer(outer) {
		t.Errorf("ReplaceOuter returned %v, want previous outer", old)
	}
	if got, want := no.last(), ViewportFromSize(100, 100); got != want {
		t.Errorf("replacement outer = %v, want %v", got, want)
	}
	if in.Outer() != Renderer(no) || in.Inner() != Renderer(ni) {
		t.Errorf("accessors do not return replacements")
	}

	if err := in.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if no.closed != 1 || ni.closed != 1 || outer.closed != 0 || inner.closed != 0 {
		t.Errorf("closed = no:%d ni:%d outer:%d inner:%d", no.closed, ni.closed, outer.closed, inner.closed)
	}
}
