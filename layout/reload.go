// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"context"
	"sync"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/window"
)

// Reloader turns descriptions delivered on a channel, usually by a
// Watcher, into window updates. A tree is built only when the loop applies
// its update, on the goroutine that owns the backend, and only the newest
// pending description is built.
//
// A failed build keeps the current tree on screen.
type Reloader struct {
	builder *Builder
	configs <-chan *Config
	updates chan window.Update

	mu      sync.Mutex
	lastErr error
	reloads int
}

// NewReloader creates a reloader reading from configs. Run forwards them.
func NewReloader(builder *Builder, configs <-chan *Config) *Reloader {
	return &Reloader{
		builder: builder,
		configs: configs,
		updates: make(chan window.Update, 1),
	}
}

// Updates returns the channel to pass to window.WithUpdates. It is closed
// when Run returns.
func (r *Reloader) Updates() <-chan window.Update { return r.updates }

// Run forwards descriptions as updates until configs is closed or ctx is
// done.
func (r *Reloader) Run(ctx context.Context) {
	defer close(r.updates)
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-r.configs:
			if !ok {
				return
			}
			select {
			case r.updates <- r.Update(cfg):
			case <-ctx.Done():
				return
			}
		}
	}
}

// Update returns the update that builds cfg.
func (r *Reloader) Update(cfg *Config) window.Update {
	return func() (window.Application, error) {
		tree, err := r.builder.Build(cfg)
		r.mu.Lock()
		defer r.mu.Unlock()
		r.lastErr = err
		if err != nil {
			glenda.Logger().Warn("layout: rebuild failed", "err", err)
			return nil, err
		}
		r.reloads++
		return tree, nil
	}
}

// Reloads reports how many trees have been built.
func (r *Reloader) Reloads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloads
}

// Err returns the error of the most recent failed build, or nil once a
// build succeeds.
func (r *Reloader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}
