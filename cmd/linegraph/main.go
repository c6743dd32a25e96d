// Command linegraph plots the series of a CSV trace and lets the user
// inspect values by hovering or dragging across the plot.
//
// The first column of the trace is the x value of each row; every other
// column is a series named by its heading. With -follow, rows appended to
// the file while it is open are plotted as they arrive.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~whereswaldon/linegraph/backend"
	"git.sr.ht/~whereswaldon/linegraph/config"
)

func main() {
	configPath := flag.String("config", "linegraph.yaml", "path to the YAML configuration file")
	follow := flag.Bool("follow", false, "keep reading rows appended to the trace")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		w := app.NewWindow(app.Title("linegraph"), app.Size(unit.Dp(1000), unit.Dp(700)))
		if err := run(w, cfg, flag.Arg(0), *follow); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run(w *app.Window, cfg config.Config, tracePath string, follow bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	bundle, err := backend.NewBundle(ctx)
	if err != nil {
		return err
	}
	defer bundle.Datasource.Close()
	expl := explorer.NewExplorer(w)
	ui, err := NewUI(backend.NewWindowState(ctx, bundle, w), expl, cfg, w.Invalidate)
	if err != nil {
		return err
	}
	if tracePath != "" {
		if _, err := bundle.Datasource.LoadPath(tracePath, follow); err != nil {
			ui.loadErr = err.Error()
		}
	}

	g.Go(func() error { return ui.overview.Run(ctx) })
	g.Go(func() error { return ui.focus.Run(ctx) })
	g.Go(func() error {
		defer cancel()
		return loop(w, ui, expl)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loop(w *app.Window, ui *UI, expl *explorer.Explorer) error {
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
