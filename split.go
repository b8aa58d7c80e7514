// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"errors"
	"image"
)

// axis selects the dimension a split cuts.
type axis uint8

const (
	horizontal axis = iota // side by side
	vertical               // stacked
)

func (a axis) String() string {
	if a == vertical {
		return "vertical"
	}
	return "horizontal"
}

// split is the implementation shared by HSplit and VSplit.
type split struct {
	axis     axis
	point    SplitPoint
	viewport Viewport
	first    Renderer
	second   Renderer
}

func newSplit(a axis, p SplitPoint, first, second Renderer) (split, error) {
	if err := p.Validate(); err != nil {
		return split{}, err
	}
	return split{axis: a, point: p, first: orNull(first), second: orNull(second)}, nil
}

// layout computes the two sub-viewports. Together they tile s.viewport.
func (s *split) layout() (first, second Viewport) {
	v := s.viewport
	if s.axis == horizontal {
		sp := s.point.ToAbsolute(v.Size.X)
		first = Viewport{Pos: v.Pos, Size: image.Pt(sp, v.Size.Y)}
		second = Viewport{Pos: image.Pt(v.Pos.X+sp, v.Pos.Y), Size: image.Pt(v.Size.X-sp, v.Size.Y)}
		return first, second
	}
	sp := s.point.ToAbsolute(v.Size.Y)
	first = Viewport{Pos: v.Pos, Size: image.Pt(v.Size.X, sp)}
	second = Viewport{Pos: image.Pt(v.Pos.X, v.Pos.Y+sp), Size: image.Pt(v.Size.X, v.Size.Y-sp)}
	return first, second
}

func (s *split) update() {
	first, second := s.layout()
	Logger().Debug("glenda: split layout", "axis", s.axis, "at", s.point, "first", first, "second", second)
	s.first.SetViewport(first)
	s.second.SetViewport(second)
}

// SetViewport lays out both children inside v.
func (s *split) SetViewport(v Viewport) {
	s.viewport = v
	s.update()
}

// Render draws the first child, then the second.
func (s *split) Render() {
	s.first.Render()
	s.second.Render()
}

// Viewport returns the viewport last passed to SetViewport.
func (s *split) Viewport() Viewport { return s.viewport }

// SplitPoint returns the current split point.
func (s *split) SplitPoint() SplitPoint { return s.point }

// SetSplitPoint moves the split and lays out both children again.
// The previous split point is kept if p is invalid.
func (s *split) SetSplitPoint(p SplitPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.point = p
	s.update()
	return nil
}

func (s *split) replaceFirst(r Renderer) Renderer {
	old := s.first
	s.first = orNull(r)
	first, _ := s.layout()
	s.first.SetViewport(first)
	return old
}

func (s *split) replaceSecond(r Renderer) Renderer {
	old := s.second
	s.second = orNull(r)
	_, second := s.layout()
	s.second.SetViewport(second)
	return old
}

// Close closes both children. Closing twice is a no-op.
func (s *split) Close() error {
	err := errors.Join(closeRenderer(s.first), closeRenderer(s.second))
	s.first, s.second = NullRenderer{}, NullRenderer{}
	return err
}

// HSplit places two renderers side by side. The left child gets the
// columns before the split point, the right child the rest.
type HSplit struct {
	split
}

// NewHSplit creates a horizontal split and lays both children out in a
// zero viewport. A nil child is replaced by NullRenderer.
func NewHSplit(p SplitPoint, left, right Renderer) (*HSplit, error) {
	s, err := newSplit(horizontal, p, left, right)
	if err != nil {
		return nil, err
	}
	h := &HSplit{split: s}
	h.update()
	return h, nil
}

// Left returns the left child.
func (h *HSplit) Left() Renderer { return h.first }

// Right returns the right child.
func (h *HSplit) Right() Renderer { return h.second }

// ReplaceLeft installs r as the left child and returns the previous one.
// The caller owns the returned renderer.
func (h *HSplit) ReplaceLeft(r Renderer) Renderer { return h.replaceFirst(r) }

// ReplaceRight installs r as the right child and returns the previous one.
// The caller owns the returned renderer.
func (h *HSplit) ReplaceRight(r Renderer) Renderer { return h.replaceSecond(r) }

// VSplit stacks two renderers. The top child gets the rows before the
// split point, the bottom child the rest.
type VSplit struct {
	split
}

// NewVSplit creates a vertical split and lays both children out in a
// zero viewport. A nil child is replaced by NullRenderer.
func NewVSplit(p SplitPoint, top, bottom Renderer) (*VSplit, error) {
	s, err := newSplit(vertical, p, top, bottom)
	if err != nil {
		return nil, err
	}
	v := &VSplit{split: s}
	v.update()
	return v, nil
}

// Top returns the top child.
func (v *VSplit) Top() Renderer { return v.first }

// Bottom returns the bottom child.
func (v *VSplit) Bottom() Renderer { return v.second }

// ReplaceTop installs r as the top child and returns the previous one.
func (v *VSplit) ReplaceTop(r Renderer) Renderer { return v.replaceFirst(r) }

// ReplaceBottom installs r as the bottom child and returns the previous one.
func (v *VSplit) ReplaceBottom(r Renderer) Renderer { return v.replaceSecond(r) }

var (
	_ Renderer = (*HSplit)(nil)
	_ Renderer = (*VSplit)(nil)
)
