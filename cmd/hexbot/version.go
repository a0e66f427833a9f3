package main

import (
	"context"
	"flag"
	"fmt"

	"tools.zach/dev/hexbot/internal/paths"
	"tools.zach/dev/hexbot/internal/remote"
	"tools.zach/dev/hexbot/internal/update"
)

// runVersion prints the version and, with -check, whether a newer release
// is listed in the release manifest.
func runVersion(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	check := fs.Bool("check", false, "Check the release manifest for a newer version")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ver := resolveVersion()
	fmt.Fprintf(a.stdout, "%s %s\n", paths.BinaryName, ver)
	if !*check {
		return nil
	}

	url := a.cfg.API.ManifestURL
	if url == "" {
		url = remote.Resolve(ctx).RawURL(paths.ReleaseManifest)
	}
	res, err := update.Checker{Transport: a.httpTransport(), URL: url}.Check(ctx, ver)
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}
	a.log.Debug("update check", "current", res.Current, "latest", res.Latest, "newer", res.Newer)
	switch {
	case res.Newer:
		fmt.Fprintf(a.stdout, "update available: %s\n", res.Latest)
	case res.Latest == "":
		fmt.Fprintln(a.stdout, "release manifest lists no version")
	default:
		fmt.Fprintln(a.stdout, "up to date")
	}
	return nil
}
