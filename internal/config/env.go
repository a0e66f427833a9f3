package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config values.
const (
	EnvEndpoint = "HEXBOT_ENDPOINT"
	EnvCount    = "HEXBOT_COUNT"
	EnvWidth    = "HEXBOT_WIDTH"
	EnvHeight   = "HEXBOT_HEIGHT"
	EnvSeed     = "HEXBOT_SEED"
	EnvFormat   = "HEXBOT_FORMAT"
	EnvLogLevel = "HEXBOT_LOG_LEVEL"
)

// envKeys lists every recognized override.
var envKeys = []string{EnvEndpoint, EnvCount, EnvWidth, EnvHeight, EnvSeed, EnvFormat, EnvLogLevel}

// ReadEnv collects overrides from the dotenv file at path and the process
// environment. Process variables win over the file. A missing file is not
// an error. Only HEXBOT_* keys listed above are returned.
func ReadEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	file, err := godotenv.Read(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, k := range envKeys {
		if v, ok := file[k]; ok {
			env[k] = v
		}
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides config values from env. Empty values are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	for _, k := range envKeys {
		v := strings.TrimSpace(env[k])
		if v == "" {
			continue
		}
		switch k {
		case EnvEndpoint:
			c.API.Endpoint = v
		case EnvCount, EnvWidth, EnvHeight:
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %q is not an integer", k, v)
			}
			switch k {
			case EnvCount:
				c.Request.Count = n
			case EnvWidth:
				c.Request.Width = n
			default:
				c.Request.Height = n
			}
		case EnvSeed:
			c.Request.Seed = splitList(v)
		case EnvFormat:
			c.Output.Format = v
		case EnvLogLevel:
			c.Log.Level = v
		}
	}
	return nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
