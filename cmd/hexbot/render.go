package main

import (
	"context"
	"flag"
	"fmt"
	"image"

	"tools.zach/dev/hexbot"
	"tools.zach/dev/hexbot/internal/render"
)

// runRender draws a palette as a PNG: swatches, or dots on a canvas when
// the palette has coordinates.
func runRender(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rf := addRequestFlags(fs)
	out := fs.String("out", a.dd.Render(), `Output file, or "-" for stdout`)
	cell := fs.Int("cell", a.cfg.Output.SwatchSize, "Swatch edge length in pixels")
	radius := fs.Int("radius", a.cfg.Output.DotRadius, "Dot radius in pixels")
	scale := fs.Int("scale", 1, "Integer upscale factor")
	last := fs.Bool("last", false, "Render the newest stored palette instead of fetching")
	labels := fs.Bool("labels", false, "Write each hex code on its swatch")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		palette *hexbot.Hexbot
		bounds  hexbot.WidthHeight
	)
	if *last {
		e, err := a.history().Latest()
		if err != nil {
			return err
		}
		palette = e.Palette
	} else {
		req, err := rf.request(a.cfg)
		if err != nil {
			return err
		}
		h, fromHistory, err := a.fetch(ctx, req, true)
		if err != nil {
			return err
		}
		palette = h
		// A stored palette was not produced by req, so it is sized by its
		// own coordinates.
		if !fromHistory {
			bounds = req.Size
		}
	}

	var (
		img image.Image
		err error
	)
	if palette.HasCoordinates() {
		img, err = render.Dots(palette, bounds, *radius, a.cfg.Output.MaxCanvas)
	} else {
		var sw *image.NRGBA
		if sw, err = render.Swatches(palette, *cell); err == nil && *labels {
			err = render.LabelSwatches(sw, palette, *cell)
		}
		img = sw
	}
	if err != nil {
		return usageError{err: err}
	}
	if img, err = render.Scale(img, *scale); err != nil {
		return usageError{err: err}
	}

	if *out == "-" {
		return render.Encode(a.stdout, img)
	}
	if err := render.Save(img, *out); err != nil {
		return err
	}
	b := img.Bounds()
	a.log.Info("rendered palette", "path", *out, "width", b.Dx(), "height", b.Dy())
	fmt.Fprintf(a.stdout, "wrote %s (%dx%d)\n", *out, b.Dx(), b.Dy())
	return nil
}
