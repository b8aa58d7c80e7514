// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command glenda renders a layout description.
//
// By default it draws the description once with the software backend and
// writes a PNG. With -watch it redraws whenever the file changes, and with
// -window it opens an OpenGL window instead.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/glenda"
	"github.com/gogpu/glenda/backend"
	"github.com/gogpu/glenda/backend/recording"
	"github.com/gogpu/glenda/backend/software"
	"github.com/gogpu/glenda/layout"
)

//go:embed demo.toml
var demoLayout []byte

type options struct {
	layout  string
	width   int
	height  int
	output  string
	backend string
	watch   bool
	window  bool
}

func main() {
	var o options
	flag.StringVar(&o.layout, "layout", "", "layout description (.toml, .yaml); empty uses the built-in demo")
	flag.IntVar(&o.width, "width", 800, "frame width")
	flag.IntVar(&o.height, "height", 600, "frame height")
	flag.StringVar(&o.output, "output", "glenda.png", "output file")
	flag.StringVar(&o.backend, "backend", backend.NameSoftware, "headless backend: software or recording")
	flag.BoolVar(&o.watch, "watch", false, "redraw when the layout file changes")
	flag.BoolVar(&o.window, "window", false, "open a window instead of writing a file")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	if *verbose {
		glenda.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run(ctx context.Context, o options) error {
	if o.watch && o.layout == "" {
		return errors.New("-watch needs -layout")
	}
	cfg, err := loadConfig(o.layout)
	if err != nil {
		return err
	}
	if o.window {
		return runWindow(ctx, o, cfg)
	}

	b, err := backend.Get(o.backend, o.width, o.height)
	if err != nil {
		return err
	}
	defer b.Close()
	bl := layout.NewBuilder(b)

	if err := renderOnce(bl, b, cfg, o); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}

	w, err := layout.NewWatcher(o.layout)
	if err != nil {
		return err
	}
	defer w.Close()
	go func() {
		for err := range w.Errors() {
			log.Printf("reload: %v", err)
		}
	}()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	log.Printf("watching %s", o.layout)
	for cfg := range w.Configs() {
		if err := renderOnce(bl, b, cfg, o); err != nil {
			log.Printf("render: %v", err)
		}
	}
	return <-errc
}

func loadConfig(path string) (*layout.Config, error) {
	if path == "" {
		return layout.Decode(demoLayout, layout.FormatTOML)
	}
	return layout.Load(path)
}

// renderOnce builds cfg, draws one frame and writes it out.
func renderOnce(bl *layout.Builder, b backend.Backend, cfg *layout.Config, o options) error {
	if rec, ok := b.(*recording.Backend); ok {
		rec.Reset()
	}
	tree, err := bl.Build(cfg)
	if err != nil {
		return err
	}
	defer tree.Close()
	if sw, ok := b.(*software.Backend); ok {
		sw.Target().Clear(color.Transparent)
		sw.ResetStats()
	}
	tree.SetViewport(glenda.ViewportFromSize(o.width, o.height))
	tree.Render()

	switch b := b.(type) {
	case *software.Backend:
		if err := savePNG(o.output, b.Target()); err != nil {
			return err
		}
		log.Printf("saved %s (%dx%d, %d draws)", o.output, o.width, o.height, b.Stats().DrawCalls)
	case *recording.Backend:
		for _, c := range b.Commands() {
			fmt.Printf("%-18v %+v\n", c.Type(), c)
		}
	default:
		return fmt.Errorf("backend %q cannot render headless", b.Name())
	}
	return nil
}

func savePNG(path string, t *software.Target) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, t.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
