package config

import _ "embed"

// DefaultConfigTOML holds config.default.toml, embedded at build time and
// written to the data directory on first run. It is generated from
// [ExampleConfig] and [ConfigDocs] by cmd/genconfig.
//
//go:embed config.default.toml
var DefaultConfigTOML []byte
