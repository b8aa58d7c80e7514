// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/glenda"
)

// DefaultDebounce is how long a Watcher waits after the last change before
// reloading. Editors often write a file in several steps.
const DefaultDebounce = 50 * time.Millisecond

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watcher reloads a description file whenever it changes.
//
// It watches the file's directory rather than the file, so editors that
// save by renaming a temporary file over the original are seen too.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	debounce time.Duration
	configs  chan *Config
	errs     chan error
}

// NewWatcher starts watching path. Call Run to deliver reloads.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("layout: watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("layout: watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:     abs,
		fs:       fsw,
		debounce: DefaultDebounce,
		configs:  make(chan *Config, 1),
		errs:     make(chan error, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Configs delivers each successfully reloaded description. Only the newest
// pending description is kept. The channel is closed when Run returns.
func (w *Watcher) Configs() <-chan *Config { return w.configs }

// Errors delivers load failures. Only the newest pending error is kept.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.configs)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			send(w.errs, fmt.Errorf("layout: watcher: %w", err))

		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				glenda.Logger().Warn("layout: reload failed", "path", w.path, "err", err)
				send(w.errs, err)
				continue
			}
			glenda.Logger().Debug("layout: reloaded", "path", w.path)
			send(w.configs, cfg)
		}
	}
}

// send replaces any pending value in a one-slot channel with v.
func send[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Close stops watching. A running Run returns nil.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
