// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SplitPoint is where a split cuts its viewport, measured from the near
// edge (left for HSplit, top for VSplit).
//
// The zero value is Absolute(0).
type SplitPoint struct {
	ratio  bool
	pixels int
	frac   float64
}

// Absolute returns a split point px pixels from the near edge.
// A negative px counts from the far edge: Absolute(-100) leaves 100 pixels
// for the second child.
func Absolute(px int) SplitPoint {
	return SplitPoint{pixels: px}
}

// Ratio returns a split point at fraction r of the extent.
// Negative ratios count from the far edge, like negative Absolute values.
func Ratio(r float64) SplitPoint {
	return SplitPoint{ratio: true, frac: r}
}

// IsRatio reports whether p was created with Ratio.
func (p SplitPoint) IsRatio() bool { return p.ratio }

// Pixels returns the pixel offset of an Absolute split point, 0 otherwise.
func (p SplitPoint) Pixels() int { return p.pixels }

// Fraction returns the ratio of a Ratio split point, 0 otherwise.
func (p SplitPoint) Fraction() float64 { return p.frac }

// ToAbsolute resolves p against a container extent.
// The result always lies in [0, extent]; an extent <= 0 resolves to 0.
func (p SplitPoint) ToAbsolute(extent int) int {
	if extent <= 0 {
		return 0
	}
	raw := p.pixels
	if p.ratio {
		raw = scaleExtent(extent, p.frac)
	}
	if raw < 0 {
		raw += extent
	}
	return min(max(raw, 0), extent)
}

// scaleExtent returns int(extent*r) truncated toward zero. Products outside
// [-extent, extent] saturate, since they clamp to the same result anyway.
func scaleExtent(extent int, r float64) int {
	f := float64(extent) * r
	switch {
	case math.IsNaN(f):
		return 0
	case f > float64(extent):
		return extent
	case f < -float64(extent):
		return -extent
	}
	return int(f)
}

// Validate returns ErrInvalidSplitPoint for NaN or infinite ratios.
func (p SplitPoint) Validate() error {
	if p.ratio && (math.IsNaN(p.frac) || math.IsInf(p.frac, 0)) {
		return fmt.Errorf("%w: ratio %v", ErrInvalidSplitPoint, p.frac)
	}
	return nil
}

// String returns "300px" or "0.5" style text. Integral ratios keep a
// decimal point ("1.0") so ParseSplitPoint reads them back as ratios.
func (p SplitPoint) String() string {
	if p.ratio {
		s := strconv.FormatFloat(p.frac, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	}
	return strconv.Itoa(p.pixels) + "px"
}

// ParseSplitPoint parses the forms produced by String, plus percentages:
// "300px" or "300" is Absolute(300), "0.5" is Ratio(0.5) and "25%" is
// Ratio(0.25).
func ParseSplitPoint(s string) (SplitPoint, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "px"):
		px, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "px")))
		if err != nil {
			return SplitPoint{}, fmt.Errorf("%w: %q", ErrInvalidSplitPoint, s)
		}
		return Absolute(px), nil
	case strings.HasSuffix(s, "%"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return SplitPoint{}, fmt.Errorf("%w: %q", ErrInvalidSplitPoint, s)
		}
		p := Ratio(f / 100)
		return p, p.Validate()
	}
	if px, err := strconv.Atoi(s); err == nil {
		return Absolute(px), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return SplitPoint{}, fmt.Errorf("%w: %q", ErrInvalidSplitPoint, s)
	}
	p := Ratio(f)
	return p, p.Validate()
}
