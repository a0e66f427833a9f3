// Package migrate tests verify sequential migration application, version
// skipping, error propagation, version detection, and the [Registry]
// upgrade path.
package migrate

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// appendStep returns a migration that appends its version to doc["steps"].
func appendStep(v int) Migration {
	return Migration{Version: v, Description: "step", Upgrade: func(doc Document) error {
		steps, _ := doc["steps"].([]int)
		doc["steps"] = append(steps, v)
		return nil
	}}
}

// ///////////////////////////////////////////////
// Run
// ///////////////////////////////////////////////

func TestRunSkipsOldVersions(t *testing.T) {
	doc := Document{}
	version, err := Run(doc, 1, []Migration{appendStep(1)}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}
	if _, ok := doc["steps"]; ok {
		t.Fatal("migration should have been skipped")
	}
}

func TestRunAppliesInVersionOrder(t *testing.T) {
	doc := Document{}
	version, err := Run(doc, 0, []Migration{appendStep(3), appendStep(1), appendStep(2)}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected version 3, got %d", version)
	}
	steps := doc["steps"].([]int)
	if len(steps) != 3 || steps[0] != 1 || steps[1] != 2 || steps[2] != 3 {
		t.Fatalf("steps = %v, want [1 2 3]", steps)
	}
}

func TestRunStopsOnError(t *testing.T) {
	migrations := []Migration{
		appendStep(2),
		{Version: 3, Description: "fails", Upgrade: func(Document) error { return errors.New("boom") }},
		appendStep(4),
	}
	doc := Document{}
	version, err := Run(doc, 1, migrations, discard())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "migration to v3 failed: boom") {
		t.Fatalf("unexpected error message: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2 (stopped before v3), got %d", version)
	}
	if steps := doc["steps"].([]int); len(steps) != 1 {
		t.Fatalf("steps after failure = %v", steps)
	}
}

func TestRunNoMigrations(t *testing.T) {
	version, err := Run(Document{}, 1, nil, discard())
	if err != nil || version != 1 {
		t.Fatalf("Run = %d, %v; want 1, nil", version, err)
	}
}

// ///////////////////////////////////////////////
// VersionOf
// ///////////////////////////////////////////////

func TestVersionOf(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    int
		wantErr bool
	}{
		{"missing", Document{}, 0, false},
		{"toml int64", Document{"version": int64(2)}, 2, false},
		{"int", Document{"version": 1}, 1, false},
		{"json float", Document{"version": float64(3)}, 3, false},
		{"fractional", Document{"version": 1.5}, 0, true},
		{"string", Document{"version": "2"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VersionOf(tt.doc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VersionOf err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("VersionOf = %d, want %d", got, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Registry
// ///////////////////////////////////////////////

func TestRegistryUpgrade(t *testing.T) {
	r := &Registry{Name: "test", CurrentVersion: 2}
	r.Register(appendStep(1))
	r.Register(appendStep(2))

	doc := Document{"version": int64(1)}
	changed, err := r.Upgrade(doc, discard())
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if doc["version"] != int64(2) {
		t.Errorf("version = %v, want 2", doc["version"])
	}
	if steps := doc["steps"].([]int); len(steps) != 1 || steps[0] != 2 {
		t.Errorf("steps = %v, want [2]", steps)
	}
}

func TestRegistryUpgradeCurrent(t *testing.T) {
	r := &Registry{Name: "test", CurrentVersion: 2}
	r.Register(appendStep(2))

	changed, err := r.Upgrade(Document{"version": int64(2)}, discard())
	if err != nil || changed {
		t.Fatalf("Upgrade = %v, %v; want false, nil", changed, err)
	}
}

func TestRegistryUpgradeFuture(t *testing.T) {
	r := &Registry{Name: "test", CurrentVersion: 2}
	_, err := r.Upgrade(Document{"version": int64(9)}, discard())
	if !errors.Is(err, ErrFutureVersion) {
		t.Fatalf("err = %v, want ErrFutureVersion", err)
	}
}

func TestRegistryNeedsMigration(t *testing.T) {
	r := &Registry{CurrentVersion: 2}
	if !r.NeedsMigration(0) || !r.NeedsMigration(1) {
		t.Error("older versions should need migration")
	}
	if r.NeedsMigration(2) {
		t.Error("current version should not need migration")
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		m    Migration
	}{
		{"duplicate", appendStep(1)},
		{"beyond current", appendStep(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Registry{Name: "test", CurrentVersion: 2}
			r.Register(appendStep(1))
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			r.Register(tt.m)
		})
	}
}
