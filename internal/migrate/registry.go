package migrate

import (
	"fmt"
	"log/slog"
)

// Registry holds the version and migrations for a single schema target.
// Each target gets its own instance so version numbers and migration lists
// stay independent.
type Registry struct {
	// Name labels the target in errors and logs (e.g. "config").
	Name string
	// CurrentVersion is the latest schema version this registry targets.
	CurrentVersion int
	// Migrations is the list of versioned upgrades. Exported so tests can
	// substitute their own.
	Migrations []Migration
}

// Register appends a migration. It panics if the version is already
// registered or is beyond CurrentVersion.
func (r *Registry) Register(m Migration) {
	if m.Version > r.CurrentVersion {
		panic(fmt.Sprintf("migrate: %s migration v%d exceeds current version %d", r.Name, m.Version, r.CurrentVersion))
	}
	for _, existing := range r.Migrations {
		if existing.Version == m.Version {
			panic(fmt.Sprintf("migrate: duplicate %s migration version %d (description: %q)", r.Name, m.Version, m.Description))
		}
	}
	r.Migrations = append(r.Migrations, m)
}

// NeedsMigration reports whether a document at fileVersion is behind the
// registry.
func (r *Registry) NeedsMigration(fileVersion int) bool {
	return fileVersion < r.CurrentVersion
}

// Upgrade brings doc to CurrentVersion and stamps its "version" key. It
// reports whether anything changed.
func (r *Registry) Upgrade(doc Document, logger *slog.Logger) (bool, error) {
	from, err := VersionOf(doc)
	if err != nil {
		return false, fmt.Errorf("%s: %w", r.Name, err)
	}
	if from > r.CurrentVersion {
		return false, fmt.Errorf("%s v%d: %w (max v%d)", r.Name, from, ErrFutureVersion, r.CurrentVersion)
	}
	if !r.NeedsMigration(from) {
		return false, nil
	}
	if _, err := Run(doc, from, r.Migrations, logger.With("target", r.Name)); err != nil {
		return false, fmt.Errorf("%s: %w", r.Name, err)
	}
	doc["version"] = int64(r.CurrentVersion)
	return true, nil
}
