// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glenda

import "errors"

// probe records the viewports it is given and appends its name to a shared
// journal on every Render.
type probe struct {
	name      string
	journal   *[]string
	viewports []Viewport
	closed    int
	closeErr  error
}

func newProbe(name string, journal *[]string) *probe {
	return &probe{name: name, journal: journal}
}

func (p *probe) SetViewport(v Viewport) { p.viewports = append(p.viewports, v) }

func (p *probe) Render() {
	if p.journal != nil {
		*p.journal = append(*p.journal, p.name)
	}
}

func (p *probe) Close() error {
	p.closed++
	return p.closeErr
}

// last returns the most recent viewport, or the zero viewport.
func (p *probe) last() Viewport {
	if len(p.viewports) == 0 {
		return Viewport{}
	}
	return p.viewports[len(p.viewports)-1]
}

var errProbeClose = errors.New("probe: close failed")
