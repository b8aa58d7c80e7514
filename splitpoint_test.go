// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import (
	"errors"
	"math"
	"testing"
)

func TestSplitPointToAbsolute(t *testing.T) {
	tests := []struct {
		name   string
		p      SplitPoint
		extent int
		want   int
	}{
		{"absolute", Absolute(300), 800, 300},
		{"absolute zero", Absolute(0), 800, 0},
		{"absolute full", Absolute(800), 800, 800},
		{"absolute overflow", Absolute(1000), 800, 800},
		{"absolute from far edge", Absolute(-100), 800, 700},
		{"absolute far underflow", Absolute(-1000), 100, 0},
		{"ratio half", Ratio(0.5), 800, 400},
		{"ratio truncates", Ratio(0.5), 801, 400},
		{"ratio third", Ratio(1.0 / 3.0), 100, 33},
		{"ratio negative", Ratio(-0.25), 800, 600},
		{"ratio above one", Ratio(2), 800, 800},
		{"ratio below minus one", Ratio(-3), 800, 0},
		{"ratio huge", Ratio(1e300), 800, 800},
		{"zero extent", Absolute(10), 0, 0},
		{"negative extent", Ratio(0.5), -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.ToAbsolute(tt.extent); got != tt.want {
				t.Errorf("%v.ToAbsolute(%d) = %d, want %d", tt.p, tt.extent, got, tt.want)
			}
		})
	}
}

func TestSplitPointToAbsoluteBoundsAndIdempotence(t *testing.T) {
	points := []SplitPoint{
		Absolute(-5000), Absolute(-1), Absolute(0), Absolute(17), Absolute(5000),
		Ratio(-2), Ratio(-0.5), Ratio(0), Ratio(0.3), Ratio(0.999), Ratio(1), Ratio(7),
	}
	for _, extent := range []int{0, 1, 2, 99, 100, 1920} {
		for _, p := range points {
			got := p.ToAbsolute(extent)
			if got < 0 || got > extent {
				t.Errorf("%v.ToAbsolute(%d) = %d, out of [0, %d]", p, extent, got, extent)
			}
			if again := Absolute(got).ToAbsolute(extent); again != got {
				t.Errorf("Absolute(%d).ToAbsolute(%d) = %d, want %d", got, extent, again, got)
			}
		}
	}
}

func TestSplitPointValidate(t *testing.T) {
	tests := []struct {
		p       SplitPoint
		wantErr bool
	}{
		{Absolute(-10), false},
		{Ratio(0.5), false},
		{Ratio(-4), false},
		{Ratio(math.NaN()), true},
		{Ratio(math.Inf(1)), true},
		{Ratio(math.Inf(-1)), true},
	}
	for _, tt := range tests {
		err := tt.p.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%v.Validate() = %v, wantErr %v", tt.p, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidSplitPoint) {
			t.Errorf("%v.Validate() = %v, want ErrInvalidSplitPoint", tt.p, err)
		}
	}
}

func TestSplitPointAccessors(t *testing.T) {
	a := Absolute(-7)
	if a.IsRatio() || a.Pixels() != -7 || a.String() != "-7px" {
		t.Errorf("Absolute(-7) = {ratio %v, pixels %d, %q}", a.IsRatio(), a.Pixels(), a.String())
	}
	r := Ratio(0.25)
	if !r.IsRatio() || r.Fraction() != 0.25 || r.String() != "0.25" {
		t.Errorf("Ratio(0.25) = {ratio %v, fraction %v, %q}", r.IsRatio(), r.Fraction(), r.String())
	}
	var zero SplitPoint
	if zero != Absolute(0) {
		t.Errorf("zero SplitPoint = %v, want Absolute(0)", zero)
	}
}

func TestParseSplitPoint(t *testing.T) {
	tests := []struct {
		in      string
		want    SplitPoint
		wantErr bool
	}{
		{"300px", Absolute(300), false},
		{"300", Absolute(300), false},
		{" -100 px ", Absolute(-100), false},
		{"0.5", Ratio(0.5), false},
		{"25%", Ratio(0.25), false},
		{"-50%", Ratio(-0.5), false},
		{"", SplitPoint{}, true},
		{"abc", SplitPoint{}, true},
		{"1.5px", SplitPoint{}, true},
		{"NaN", SplitPoint{}, true},
		{"inf%", SplitPoint{}, true},
	}
	for _, tt := range tests {
		got, err := ParseSplitPoint(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSplitPoint) {
				t.Errorf("ParseSplitPoint(%q) err = %v, want ErrInvalidSplitPoint", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseSplitPoint(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseSplitPointRoundTrip(t *testing.T) {
	for _, p := range []SplitPoint{Absolute(0), Absolute(-42), Ratio(0.125), Ratio(-1), Ratio(0), Ratio(2e-9)} {
		got, err := ParseSplitPoint(p.String())
		if err != nil || got != p {
			t.Errorf("ParseSplitPoint(%q) = %v, %v, want %v", p.String(), got, err, p)
		}
	}
}
