package config

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated config.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "request.count") and
// section names to their [FieldDoc] entries.
var ConfigDocs = map[string]FieldDoc{
	// ── Root ──────────────────────────────────────────────────────
	"version": {
		Comment: "Config schema version. Do not edit.",
	},

	// ── API ──────────────────────────────────────────────────────
	"api": {
		Comment: "Where colors are requested from and how failed requests are retried.",
	},
	"api.endpoint": {
		Comment: "Hexbot endpoint, without a query string.\nOverride with HEXBOT_ENDPOINT.",
		Alternatives: []string{
			`endpoint = "http://localhost:3000/hexbot"`,
		},
	},
	"api.timeout_seconds": {
		Comment: "Timeout for each HTTP attempt.",
	},
	"api.retry_max": {
		Comment: "Retries after a connection error, 429 or 5xx reply. 0 disables retries. Max 10.",
	},
	"api.retry_wait_min_ms": {
		Comment: "Backoff bounds between retries, in milliseconds.",
	},
	"api.retry_wait_max_ms": {},
	"api.manifest_url": {
		Comment: "Release manifest checked by \"hexbot version -check\".\nDefaults to the manifest in the project repository.",
		Alternatives: []string{
			`manifest_url = "https://example.com/.release-manifest.json"`,
		},
	},

	// ── Request ──────────────────────────────────────────────────
	"request": {
		Comment: "Default query parameters. Command-line flags override these.",
	},
	"request.count": {
		Comment: "Number of colors per request, 1 to 1000. 0 leaves the parameter out (one color).\nOverride with HEXBOT_COUNT.",
	},
	"request.width": {
		Comment: "Coordinate bounds, 10 to 100000. Set both or neither.\nWhen set, every color comes with (x|y) coordinates.\nOverride with HEXBOT_WIDTH and HEXBOT_HEIGHT.",
		Alternatives: []string{
			`width = 500`,
		},
	},
	"request.height": {
		Alternatives: []string{
			`height = 500`,
		},
	},
	"request.seed": {
		Comment: "Up to 10 colors that generated colors are based on, as hex codes.\nOverride with HEXBOT_SEED (comma-separated).",
		Alternatives: []string{
			`seed = ["#8B0000", "#8B008B"]`,
		},
	},

	// ── Output ───────────────────────────────────────────────────
	"output": {
		Comment: "How palettes are printed and rendered.",
	},
	"output.format": {
		Comment: "Print format. Options: \"text\", \"json\", \"hex\"\n  text: [#8B0045, #A1008B]\n  json: the service's response shape\n  hex:  one #RRGGBB per line\nOverride with HEXBOT_FORMAT.",
		Alternatives: []string{
			`format = "json"`,
			`format = "hex"`,
		},
	},
	"output.swatch_size": {
		Comment: "Edge length in pixels of each swatch drawn by \"hexbot render\".",
	},
	"output.dot_radius": {
		Comment: "Radius in pixels of each dot when a palette has coordinates.",
	},
	"output.max_canvas": {
		Comment: "Longest edge in pixels of a coordinate canvas. Larger bounds are scaled down.",
	},

	// ── History ──────────────────────────────────────────────────
	"history": {
		Comment: "Fetched palettes are stored under <data dir>/history.",
	},
	"history.enabled": {
		Comment: "Store every successful fetch.",
	},
	"history.keep": {
		Comment: "Number of entries kept after each store. 0 keeps all.",
	},
	"history.fallback": {
		Comment: "Print the latest stored palette, with a warning, when a fetch fails.",
	},

	// ── Watch ────────────────────────────────────────────────────
	"watch": {
		Comment: "\"hexbot watch\" fetches again whenever this file changes.",
	},
	"watch.debounce_ms": {
		Comment: "Quiet period after a change before fetching, in milliseconds.",
	},
	"watch.poll_interval_seconds": {
		Comment: "Polling interval when file system events are unavailable.",
	},

	// ── Log ──────────────────────────────────────────────────────
	"log": {
		Comment: "Logging configuration",
	},
	"log.level": {
		Comment: "Minimum log level. Options: \"trace\", \"debug\", \"info\", \"warn\", \"error\"\nOverride with HEXBOT_LOG_LEVEL.",
		Alternatives: []string{
			`level = "debug"`,
			`level = "warn"`,
		},
	},
	"log.file": {
		Comment: "Write logs to <data dir>/hexbot.log instead of stderr.",
	},
	"log.max_size_mb": {
		Comment: "Maximum log file size in megabytes before rotation.",
	},
}
