package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"tools.zach/dev/hexbot"
	"tools.zach/dev/hexbot/internal/config"
	"tools.zach/dev/hexbot/internal/logger"
)

// ///////////////////////////////////////////////
// Request Flags
// ///////////////////////////////////////////////

// requestFlags are the query parameter flags shared by fetch, url, render and
// watch. Flags that are not given keep the config value.
type requestFlags struct {
	fs     *flag.FlagSet
	count  int
	width  int
	height int
	seed   string
}

func addRequestFlags(fs *flag.FlagSet) *requestFlags {
	rf := &requestFlags{fs: fs}
	fs.IntVar(&rf.count, "count", 0, "Number of colors, 1 to 1000; 0 leaves it out (default from config)")
	fs.IntVar(&rf.width, "width", 0, "Coordinate width, 10 to 100000; requires -height")
	fs.IntVar(&rf.height, "height", 0, "Coordinate height, 10 to 100000; requires -width")
	fs.StringVar(&rf.seed, "seed", "", "Comma-separated hex colors to base the palette on")
	return rf
}

// request merges the given flags over the config defaults and validates the
// result.
func (rf *requestFlags) request(cfg *config.Config) (hexbot.Request, error) {
	count, width, height, seed := cfg.Request.Count, cfg.Request.Width, cfg.Request.Height, cfg.Request.Seed
	rf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "count":
			count = rf.count
		case "width":
			width = rf.width
		case "height":
			height = rf.height
		case "seed":
			seed = splitColors(rf.seed)
		}
	})
	req, err := config.BuildRequest(count, width, height, seed)
	if err != nil {
		return req, usageError{err: err}
	}
	return req, nil
}

// splitColors splits a color list on commas and whitespace.
func splitColors(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
}

// ///////////////////////////////////////////////
// fetch
// ///////////////////////////////////////////////

func runFetch(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rf := addRequestFlags(fs)
	format := fs.String("format", a.cfg.Output.Format, "Output format: text, json, or hex")
	noHistory := fs.Bool("no-history", false, "Do not store the palette")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}
	req, err := rf.request(a.cfg)
	if err != nil {
		return err
	}

	h, _, err := a.fetch(ctx, req, !*noHistory)
	if err != nil {
		return err
	}
	return printPalette(a.stdout, h, *format)
}

// fetch requests a palette and stores it when store is set and history is
// enabled. When the request cannot be delivered and history.fallback is
// on, the newest stored palette is returned instead, with a warning, and
// fromHistory is true.
func (a *app) fetch(ctx context.Context, req hexbot.Request, store bool) (h *hexbot.Hexbot, fromHistory bool, err error) {
	client := a.client()
	url := client.URL(req)
	start := time.Now()
	h, err = client.Fetch(ctx, req)
	if err != nil {
		h, err = a.fallback(url, err)
		return h, err == nil, err
	}
	a.log.Info("fetched colors", "url", url, "colors", h.Len(), "elapsed", time.Since(start).Round(time.Millisecond))
	logger.Trace(a.log, "palette", "colors", h.String())

	if store && a.cfg.History.Enabled {
		s := a.history()
		if _, err := s.Save(url, h); err != nil {
			a.log.Warn("failed to store palette", "error", err)
		} else if _, err := s.Prune(a.cfg.History.Keep); err != nil {
			a.log.Warn("failed to prune history", "error", err)
		}
	}
	return h, false, nil
}

// fallback returns the newest stored palette for a transport failure, or
// fetchErr unchanged.
func (a *app) fallback(url string, fetchErr error) (*hexbot.Hexbot, error) {
	var te *hexbot.TransportError
	if !a.cfg.History.Fallback || !errors.As(fetchErr, &te) || errors.Is(fetchErr, context.Canceled) {
		return nil, fetchErr
	}
	e, err := a.history().Latest()
	if err != nil {
		a.log.Debug("no stored palette to fall back to", "error", err)
		return nil, fetchErr
	}
	a.log.Warn("fetch failed, using stored palette", "url", url, "error", fetchErr, "entry", e.Name)
	fmt.Fprintf(a.stderr, "warning: %v\nwarning: showing stored palette from %s\n", fetchErr, e.Time.Local().Format(time.DateTime))
	return e.Palette, nil
}

// ///////////////////////////////////////////////
// url
// ///////////////////////////////////////////////

func runURL(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("url", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rf := addRequestFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	req, err := rf.request(a.cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, req.URL(a.cfg.API.Endpoint))
	return err
}

// ///////////////////////////////////////////////
// seed
// ///////////////////////////////////////////////

// runSeed prints the wire encoding of the colors given as arguments, e.g.
// "hexbot seed 8B0000 #8B008B" prints "8B0000,8B008B".
func runSeed(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	colors := splitColors(strings.Join(fs.Args(), ","))
	if len(colors) == 0 {
		return usageError{err: errors.New("seed: no colors given")}
	}
	s, err := hexbot.ParseSeed(strings.Join(colors, ","))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, s.String())
	return err
}

// ///////////////////////////////////////////////
// Output
// ///////////////////////////////////////////////

func checkFormat(format string) error {
	switch format {
	case config.FormatText, config.FormatJSON, config.FormatHex:
		return nil
	}
	return usageError{err: fmt.Errorf("invalid format %q: must be text, json, or hex", format)}
}

// printPalette writes h to w in format:
//
//	text: [#8B0045, #A1008B]
//	json: {"colors":[{"value":"#8B0045"},...]}
//	hex:  one #RRGGBB per line, followed by "x y" when coordinates are present
func printPalette(w io.Writer, h *hexbot.Hexbot, format string) error {
	switch format {
	case config.FormatJSON:
		data, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("encode palette: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case config.FormatHex:
		for _, d := range h.All() {
			line := d.Hex()
			if d.HasCoordinates() {
				line += fmt.Sprintf(" %d %d", d.Coordinates.X, d.Coordinates.Y)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, h.String())
		return err
	}
}
