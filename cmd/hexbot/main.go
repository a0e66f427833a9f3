// Package main implements the hexbot command, which requests colors from the
// Hexbot API and prints, stores, renders or watches them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sort"

	"tools.zach/dev/hexbot"
	"tools.zach/dev/hexbot/internal/config"
	"tools.zach/dev/hexbot/internal/history"
	"tools.zach/dev/hexbot/internal/logger"
	"tools.zach/dev/hexbot/internal/paths"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via ldflags:
//   - goreleaser: -X main.version={{.Version}}  -> "0.1.0"
//   - make build: -X main.version=$(VERSION)    -> "0.0.0-dev+05ffee5"
//
// When ldflags are not set, resolveVersion reads the VCS info that Go embeds
// automatically.
var version = "dev"

// resolveVersion returns the build version string. If [version] was set via
// ldflags it is returned as-is; otherwise the embedded VCS revision and dirty
// state produce a "dev+<hash>" tag.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Commands
// ///////////////////////////////////////////////

// command is one subcommand of hexbot.
type command struct {
	summary string
	// bare commands run without loading the data directory.
	bare bool
	run  func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"fetch":   {summary: "request colors and print them (default)", run: runFetch},
	"url":     {summary: "print the request URL without sending it", run: runURL},
	"seed":    {summary: "validate and encode seed colors", bare: true, run: runSeed},
	"history": {summary: "list stored palettes", run: runHistory},
	"render":  {summary: "draw a palette as a PNG image", run: runRender},
	"watch":   {summary: "fetch again whenever the config changes", run: runWatch},
	"version": {summary: "print the version, -check for updates", run: runVersion},
}

// usageError marks a command line mistake; it exits with status 2.
// Flag parse errors are already printed by the flag package.
type usageError struct {
	err     error
	printed bool
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// parseFlags parses a subcommand's flags, mapping failures to [usageError].
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{err: err, printed: true}
	}
	return nil
}

// ///////////////////////////////////////////////
// Application State
// ///////////////////////////////////////////////

// app carries what every command needs: the data directory, the loaded
// config and the output streams.
type app struct {
	dd     paths.DataDir
	cfg    *config.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
	// logCloser closes the rotating log file when it is in use.
	logCloser io.Closer
	// transport overrides the HTTP transport built from the config.
	transport hexbot.Transport
}

// newApp creates the data directory, loads the config and sets up logging
// to the log file or stderr.
func newApp(dataDir string, stdout, stderr io.Writer) (*app, error) {
	dd := paths.DataDir{Root: dataDir}
	if err := os.MkdirAll(dd.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	cfg, err := config.Load(dd.Root, logger.NewConsoleLogger(stderr, slog.LevelWarn))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	a := &app{dd: dd, cfg: cfg, stdout: stdout, stderr: stderr}
	if cfg.Log.File {
		a.log, a.logCloser = logger.NewLogger(dd.Log(), cfg.LogLevel(), cfg.Log.MaxSizeMB)
	} else {
		a.log = logger.NewConsoleLogger(stderr, cfg.LogLevel())
	}
	return a, nil
}

// close releases the log file.
func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// httpTransport returns the transport for API and manifest requests.
func (a *app) httpTransport() hexbot.Transport {
	if a.transport != nil {
		return a.transport
	}
	return hexbot.NewHTTPTransport(a.cfg.HTTPOptions(a.log))
}

// client returns a Hexbot client for the configured endpoint.
func (a *app) client() *hexbot.Client {
	return hexbot.NewClient(
		hexbot.WithEndpoint(a.cfg.API.Endpoint),
		hexbot.WithTransport(a.httpTransport()),
		hexbot.WithLogger(a.log),
	)
}

// history returns the palette store in the data directory.
func (a *app) history() *history.Store {
	return history.Open(a.dd.History(), a.log)
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

// run parses global flags, dispatches to a command and returns the exit
// status: 0 on success, 1 on failure, 2 on a usage error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(paths.BinaryName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataDir := fs.String("data-dir", paths.Default().Root, "Data directory for config, history, and logs")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	name, rest := "fetch", fs.Args()
	if len(rest) > 0 {
		name, rest = rest[0], rest[1:]
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		fs.Usage()
		return 2
	}

	a := &app{stdout: stdout, stderr: stderr}
	if !cmd.bare {
		var err error
		a, err = newApp(*dataDir, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "fatal: %v\n", err)
			return 1
		}
		defer a.close()
	}

	err := cmd.run(ctx, a, rest)
	var ue usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &ue):
		if !ue.printed {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 2
	case errors.Is(err, context.Canceled):
		return 1
	default:
		// Console logs already go to stderr.
		if a.cfg != nil && a.cfg.Log.File {
			logger.Fail(a.log, "command failed", "command", name, "error", err)
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

// usage prints the global flags and the command list.
func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "Usage: %s [-data-dir dir] <command> [flags]\n\nCommands:\n", paths.BinaryName)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-8s %s\n", n, commands[n].summary)
	}
	fmt.Fprintln(w, "\nGlobal flags:")
	fs.PrintDefaults()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-signalChannel()
		cancel()
	}()
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
