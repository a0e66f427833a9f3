package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"tools.zach/dev/hexbot/internal/config"
	"tools.zach/dev/hexbot/internal/watch"
)

// runWatch prints a palette, then fetches and prints again whenever
// config.toml or .env changes, until the context is canceled.
func runWatch(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rf := addRequestFlags(fs)
	format := fs.String("format", "", "Output format: text, json, or hex (default from config)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *format != "" {
		if err := checkFormat(*format); err != nil {
			return err
		}
	}

	w, err := watch.New(watch.Options{
		Debounce:     time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond,
		PollInterval: time.Duration(a.cfg.Watch.PollIntervalSeconds) * time.Second,
		Logger:       a.log,
	}, a.dd.Config(), a.dd.Env())
	if err != nil {
		return err
	}
	defer w.Close()
	if w.Polling() {
		a.log.Info("using polling mode for file watching")
	}

	return a.watchLoop(ctx, w.Events(), rf, *format)
}

// watchLoop fetches once, then again on every event. A config that fails
// to load is reported and the previous one kept. It returns nil when ctx
// ends.
func (a *app) watchLoop(ctx context.Context, events <-chan struct{}, rf *requestFlags, format string) error {
	a.watchFetch(ctx, rf, format)
	for {
		select {
		case <-ctx.Done():
			a.log.Info("watch stopped")
			return nil
		case <-events:
			cfg, err := config.Load(a.dd.Root, a.log)
			if err != nil {
				a.log.Warn("config reload failed, keeping previous config", "error", err)
				fmt.Fprintf(a.stderr, "warning: %v\n", err)
				continue
			}
			a.cfg = cfg
			a.log.Info("config reloaded")
			a.watchFetch(ctx, rf, format)
		}
	}
}

// watchFetch performs one fetch-and-print round. Failures are reported and
// do not stop the loop.
func (a *app) watchFetch(ctx context.Context, rf *requestFlags, format string) {
	if format == "" {
		format = a.cfg.Output.Format
	}
	if err := a.fetchAndPrint(ctx, rf, format); err != nil && ctx.Err() == nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
	}
}

func (a *app) fetchAndPrint(ctx context.Context, rf *requestFlags, format string) error {
	req, err := rf.request(a.cfg)
	if err != nil {
		return err
	}
	h, _, err := a.fetch(ctx, req, true)
	if err != nil {
		return err
	}
	return printPalette(a.stdout, h, format)
}
