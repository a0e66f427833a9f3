// Package config provides configuration loading and defaults for the hexbot
// command.
//
// Configuration is loaded from a TOML file in the user's data directory,
// then overridden by HEXBOT_* variables from a dotenv file and the process
// environment. The package covers the API endpoint and retry policy, the
// default request parameters, output, history and logging.
package config

//go:generate go run ../../cmd/genconfig

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/hexbot"
	"tools.zach/dev/hexbot/internal/atomicfile"
	"tools.zach/dev/hexbot/internal/logger"
	"tools.zach/dev/hexbot/internal/migrate"
	"tools.zach/dev/hexbot/internal/paths"
)

// Output formats accepted by output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHex  = "hex"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level application configuration.
type Config struct {
	// Version is the config schema version used for migrations.
	Version int `toml:"version"`
	// API holds endpoint and transport settings.
	API APIConfig `toml:"api"`
	// Request holds the default query parameters.
	Request RequestConfig `toml:"request"`
	// Output holds printing and rendering settings.
	Output OutputConfig `toml:"output"`
	// History holds palette history settings.
	History HistoryConfig `toml:"history"`
	// Watch holds settings for the watch command.
	Watch WatchConfig `toml:"watch"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// APIConfig holds endpoint and transport settings.
type APIConfig struct {
	// Endpoint is the Hexbot URL without query string.
	Endpoint string `toml:"endpoint"`
	// TimeoutSeconds bounds each HTTP attempt.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// RetryMax is the number of retries after a failed attempt.
	RetryMax int `toml:"retry_max"`
	// RetryWaitMinMS is the shortest backoff between attempts.
	RetryWaitMinMS int `toml:"retry_wait_min_ms"`
	// RetryWaitMaxMS is the longest backoff between attempts.
	RetryWaitMaxMS int `toml:"retry_wait_max_ms"`
	// ManifestURL overrides the release manifest used by "version -check".
	ManifestURL string `toml:"manifest_url,omitempty"`
}

// RequestConfig holds the default query parameters. Zero values and an
// empty seed mean the parameter is left out.
type RequestConfig struct {
	// Count is the number of colors, 1 to 1000.
	Count int `toml:"count"`
	// Width and Height bound dot coordinates, 10 to 100000. Both or neither.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Seed lists up to 10 hex colors.
	Seed []string `toml:"seed"`
}

// OutputConfig holds printing and rendering settings.
type OutputConfig struct {
	// Format is "text", "json" or "hex".
	Format string `toml:"format"`
	// SwatchSize is the edge length in pixels of a rendered swatch.
	SwatchSize int `toml:"swatch_size"`
	// DotRadius is the radius in pixels of a rendered coordinate dot.
	DotRadius int `toml:"dot_radius"`
	// MaxCanvas caps the longer edge of a rendered dot canvas in pixels.
	MaxCanvas int `toml:"max_canvas"`
}

// HistoryConfig holds palette history settings.
type HistoryConfig struct {
	// Enabled stores every successful fetch.
	Enabled bool `toml:"enabled"`
	// Keep is how many entries survive pruning. 0 keeps all.
	Keep int `toml:"keep"`
	// Fallback prints the latest stored palette when a fetch fails.
	Fallback bool `toml:"fallback"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	// DebounceMS coalesces bursts of file events.
	DebounceMS int `toml:"debounce_ms"`
	// PollIntervalSeconds is the fallback polling interval when file events
	// are unavailable.
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// File logs to the rotating data directory log instead of stderr.
	File bool `toml:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: Migrations.CurrentVersion,
		API: APIConfig{
			Endpoint:       hexbot.DefaultEndpoint,
			TimeoutSeconds: 10,
			RetryMax:       2,
			RetryWaitMinMS: 500,
			RetryWaitMaxMS: 5000,
		},
		Request: RequestConfig{
			Count: 1,
			Seed:  []string{},
		},
		Output: OutputConfig{
			Format:     FormatText,
			SwatchSize: 64,
			DotRadius:  4,
			MaxCanvas:  2048,
		},
		History: HistoryConfig{
			Enabled:  true,
			Keep:     100,
			Fallback: true,
		},
		Watch: WatchConfig{
			DebounceMS:          200,
			PollIntervalSeconds: 5,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// ExampleConfig returns a Config suitable for generating config.default.toml.
func ExampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Request.Count = 5
	return cfg
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Load reads dataDir/config.toml, migrating it to the current schema, then
// applies environment overrides and validates the result. A missing file is
// created from the embedded defaults.
func Load(dataDir string, log *slog.Logger) (*Config, error) {
	dd := paths.DataDir{Root: dataDir}
	path := dd.Config()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		data = DefaultConfigTOML
		if err := writeDefault(path); err != nil {
			log.Warn("failed to write default config", "path", path, "error", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	data, migrated, err := upgrade(data, log)
	if err != nil {
		return nil, err
	}
	if migrated {
		if err := atomicfile.Backup(path, paths.BackupExt); err != nil {
			log.Warn("failed to write config backup", "error", err)
		} else {
			log.Info("config migrated", "backup", dd.ConfigBackup())
		}
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Version = Migrations.CurrentVersion

	if migrated {
		if err := cfg.Save(path); err != nil {
			log.Warn("failed to save migrated config", "error", err)
		}
	}

	env, err := ReadEnv(dd.Env())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// upgrade runs pending migrations over raw TOML and returns the re-encoded
// document when anything changed.
func upgrade(data []byte, log *slog.Logger) ([]byte, bool, error) {
	doc := migrate.Document{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parse config: %w", err)
	}
	changed, err := Migrations.Upgrade(doc, log)
	if err != nil {
		return nil, false, fmt.Errorf("migrate config: %w", err)
	}
	if !changed {
		return data, false, nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, false, fmt.Errorf("encode migrated config: %w", err)
	}
	return buf.Bytes(), true, nil
}

// writeDefault writes the embedded defaults to path, creating its directory.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return atomicfile.Write(path, DefaultConfigTOML, 0o644)
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// ///////////////////////////////////////////////
// Derived Values
// ///////////////////////////////////////////////

// HexbotRequest builds the default request. Every parameter passes through
// the library constructors, so an invalid value is reported here and never
// reaches the wire.
func (c *Config) HexbotRequest() (hexbot.Request, error) {
	return BuildRequest(c.Request.Count, c.Request.Width, c.Request.Height, c.Request.Seed)
}

// BuildRequest validates raw parameter values into a [hexbot.Request].
// count 0, width and height both 0, and an empty seed are left out.
func BuildRequest(count, width, height int, seed []string) (hexbot.Request, error) {
	var req hexbot.Request
	if count != 0 {
		c, err := hexbot.NewCount(count)
		if err != nil {
			return req, err
		}
		req.Count = c
	}
	switch {
	case width == 0 && height == 0:
	case width == 0 || height == 0:
		return req, fmt.Errorf("width and height must be set together, got width=%d height=%d", width, height)
	default:
		wh, err := hexbot.NewWidthHeight(width, height)
		if err != nil {
			return req, err
		}
		req.Size = wh
	}
	if len(seed) > 0 {
		s, err := hexbot.ParseSeed(strings.Join(seed, ","))
		if err != nil {
			return req, err
		}
		req.Seed = s
	}
	return req, nil
}

// HTTPOptions returns the transport settings, logging retries to log.
func (c *Config) HTTPOptions(log *slog.Logger) hexbot.HTTPOptions {
	return hexbot.HTTPOptions{
		Timeout:      time.Duration(c.API.TimeoutSeconds) * time.Second,
		RetryMax:     c.API.RetryMax,
		RetryWaitMin: time.Duration(c.API.RetryWaitMinMS) * time.Millisecond,
		RetryWaitMax: time.Duration(c.API.RetryWaitMaxMS) * time.Millisecond,
		Logger:       log,
	}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() slog.Level {
	l, _ := logger.ParseLevel(c.Log.Level)
	return l
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.endpoint %q: must be an absolute http(s) URL", c.API.Endpoint)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("invalid api.endpoint %q: must not carry a query string", c.API.Endpoint)
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be > 0, got %d", c.API.TimeoutSeconds)
	}
	if c.API.RetryMax < 0 || c.API.RetryMax > 10 {
		return fmt.Errorf("api.retry_max must be between 0 and 10, got %d", c.API.RetryMax)
	}
	if c.API.RetryWaitMinMS < 0 || c.API.RetryWaitMaxMS < c.API.RetryWaitMinMS {
		return fmt.Errorf("api.retry_wait_min_ms (%d) must be >= 0 and <= retry_wait_max_ms (%d)",
			c.API.RetryWaitMinMS, c.API.RetryWaitMaxMS)
	}

	if _, err := c.HexbotRequest(); err != nil {
		return fmt.Errorf("invalid [request]: %w", err)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON, FormatHex:
	default:
		return fmt.Errorf("invalid output.format %q: must be text, json, or hex", c.Output.Format)
	}
	if c.Output.SwatchSize <= 0 {
		return fmt.Errorf("output.swatch_size must be > 0, got %d", c.Output.SwatchSize)
	}
	if c.Output.DotRadius <= 0 {
		return fmt.Errorf("output.dot_radius must be > 0, got %d", c.Output.DotRadius)
	}
	if c.Output.MaxCanvas < 16 {
		return fmt.Errorf("output.max_canvas must be >= 16, got %d", c.Output.MaxCanvas)
	}

	if c.History.Keep < 0 {
		return fmt.Errorf("history.keep must be >= 0, got %d", c.History.Keep)
	}

	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	if c.Watch.PollIntervalSeconds <= 0 {
		return fmt.Errorf("watch.poll_interval_seconds must be > 0, got %d", c.Watch.PollIntervalSeconds)
	}

	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, error, or fail", c.Log.Level)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}
	return nil
}
