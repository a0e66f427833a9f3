// Package migrate applies sequential schema migrations to decoded on-disk
// documents, upgrading from one version to the next.
package migrate

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrFutureVersion is returned when a document declares a schema version
// newer than the registry knows.
var ErrFutureVersion = errors.New("schema version is newer than supported")

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// Document is a decoded TOML or JSON file.
type Document = map[string]any

// Migration upgrades a document from the prior version to Version.
type Migration struct {
	// Version is the schema version this migration produces.
	Version int
	// Description is a short human-readable label for log output.
	Description string
	// Upgrade rewrites doc in place.
	Upgrade func(doc Document) error
}

// ///////////////////////////////////////////////
// Run
// ///////////////////////////////////////////////

// Run applies, in version order, every migration with fromVersion <
// m.Version. It returns the version reached; on failure that is the last
// version successfully applied.
func Run(doc Document, fromVersion int, migrations []Migration, logger *slog.Logger) (int, error) {
	sorted := slices.Clone(migrations)
	slices.SortFunc(sorted, func(a, b Migration) int { return a.Version - b.Version })

	version := fromVersion
	for _, m := range sorted {
		if version >= m.Version {
			continue
		}
		logger.Info("applying migration", "version", m.Version, "description", m.Description)
		if err := m.Upgrade(doc); err != nil {
			return version, fmt.Errorf("migration to v%d failed: %w", m.Version, err)
		}
		version = m.Version
	}
	return version, nil
}

// VersionOf reads the integer "version" key of doc. A missing key is
// version 0.
func VersionOf(doc Document) (int, error) {
	v, ok := doc["version"]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("version has type %T, want integer", v)
}
