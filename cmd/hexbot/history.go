package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"
)

// runHistory lists stored palettes, newest first.
func runHistory(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	match := fs.String("match", "", `Glob over entry names, e.g. "20261014T*"`)
	limit := fs.Int("limit", 20, "Maximum entries to list; 0 lists all")
	format := fs.String("format", a.cfg.Output.Format, "Palette format: text, json, or hex")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	entries, err := a.history().List(*match)
	if err != nil {
		return err
	}
	if *limit > 0 && len(entries) > *limit {
		entries = entries[:*limit]
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.stderr, "no stored palettes")
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d colors\t%s\n", e.Name, e.Time.Local().Format(time.DateTime), e.Palette.Len(), e.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if *format != "text" || *limit == 1 {
		return printPalette(a.stdout, entries[0].Palette, *format)
	}
	return nil
}
