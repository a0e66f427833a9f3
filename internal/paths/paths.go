// Package paths centralizes file and directory names used across the project.
// All data directory file names are defined here as the single source of truth.
package paths

import (
	"os"
	"path/filepath"
)

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Data directory file names.
const (
	ConfigFile = "config.toml"
	EnvFile    = ".env"
	LogFile    = "hexbot.log"
	HistoryDir = "history"
	LockFile   = ".lock"
	BackupExt  = ".bak"
	HistoryExt = ".json"
	BinaryName = "hexbot"
	DataDirRel = ".hexbot" // relative to $HOME
	DataDirEnv = "HEXBOT_HOME"
	RenderFile = "palette.png"
)

// Remote-fetched file paths (relative to repo root).
const (
	ReleaseManifest = ".release-manifest.json"
)

// ///////////////////////////////////////////////
// DataDir
// ///////////////////////////////////////////////

// DataDir provides path construction methods rooted at a data directory.
type DataDir struct {
	Root string
}

// Default returns the data directory named by $HEXBOT_HOME, or ~/.hexbot.
// When the home directory cannot be determined the data directory is
// relative to the working directory.
func Default() DataDir {
	if v := os.Getenv(DataDirEnv); v != "" {
		return DataDir{Root: v}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DataDir{Root: DataDirRel}
	}
	return DataDir{Root: filepath.Join(home, DataDirRel)}
}

// Config returns the full path to the config file.
func (d DataDir) Config() string { return filepath.Join(d.Root, ConfigFile) }

// ConfigBackup returns the path the config file is copied to before a
// migration rewrites it.
func (d DataDir) ConfigBackup() string { return d.Config() + BackupExt }

// Env returns the full path to the optional dotenv file.
func (d DataDir) Env() string { return filepath.Join(d.Root, EnvFile) }

// Log returns the full path to the log file.
func (d DataDir) Log() string { return filepath.Join(d.Root, LogFile) }

// History returns the full path to the history directory.
func (d DataDir) History() string { return filepath.Join(d.Root, HistoryDir) }

// Render returns the default PNG output path.
func (d DataDir) Render() string { return filepath.Join(d.Root, RenderFile) }
