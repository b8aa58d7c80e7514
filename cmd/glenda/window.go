// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogl

package main

import (
	"context"
	"io"
	"log"
	"runtime"

	"github.com/gogpu/glenda/backend/gl"
	"github.com/gogpu/glenda/layout"
	"github.com/gogpu/glenda/window"
	"github.com/gogpu/glenda/window/glfw"
)

// glfw and OpenGL calls must come from the main thread.
func init() {
	runtime.LockOSThread()
}

func runWindow(ctx context.Context, o options, cfg *layout.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	win, err := glfw.New("glenda", o.width, o.height)
	if err != nil {
		return err
	}
	defer win.Close()

	fbw, fbh := win.FramebufferSize()
	b, err := gl.New(fbw, fbh)
	if err != nil {
		return err
	}
	defer b.Close()

	bl := layout.NewBuilder(b)
	tree, err := bl.Build(cfg)
	if err != nil {
		return err
	}

	opts := []window.LoopOption{
		window.WithResizeHook(b.SetFramebufferSize),
		window.WithFrameHook(func() { b.Clear([4]float32{0, 0, 0, 1}) }),
		window.WithPresentHook(win.SwapBuffers),
	}
	if o.watch {
		w, err := layout.NewWatcher(o.layout)
		if err != nil {
			_ = tree.Close()
			return err
		}
		defer w.Close()
		go func() {
			for err := range w.Errors() {
				log.Printf("reload: %v", err)
			}
		}()
		go w.Run(ctx)

		r := layout.NewReloader(bl, w.Configs())
		go r.Run(ctx)
		opts = append(opts, window.WithUpdates(r.Updates()))
	}

	loop := window.NewLoop(win, tree, opts...)
	defer func() {
		if c, ok := loop.Application().(io.Closer); ok {
			_ = c.Close()
		}
	}()
	return loop.Run(ctx)
}
