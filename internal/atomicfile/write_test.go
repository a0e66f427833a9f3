// write_test.go tests [Write], [WriteJSON] and [Backup] for basic
// correctness, concurrent safety across distinct files, and cleanup of temp
// files on failure.

package atomicfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestWriteBasic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.txt")
	data := []byte("#8B0045,#A1008B")

	if err := Write(path, data, 0o644); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func TestWriteConcurrent(t *testing.T) {
	dir := t.TempDir()
	const n = 20

	// Each goroutine writes its own file; Windows refuses a rename over a
	// target that another writer holds open.
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path := filepath.Join(dir, fmt.Sprintf("entry-%02d.json", i))
			if err := Write(path, []byte(fmt.Sprintf("writer-%d", i)), 0o644); err != nil {
				t.Errorf("concurrent Write %d failed: %v", i, err)
			}
		}()
	}
	wg.Wait()

	for i := range n {
		path := filepath.Join(dir, fmt.Sprintf("entry-%02d.json", i))
		got, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("ReadFile %d: %v", i, err)
			continue
		}
		if want := fmt.Sprintf("writer-%d", i); string(got) != want {
			t.Errorf("file %d: got %q, want %q", i, got, want)
		}
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if matched, _ := filepath.Match("*.tmp.*", e.Name()); matched {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteOverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overwrite.txt")

	if err := Write(path, []byte("original"), 0o644); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := Write(path, []byte("updated"), 0o644); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "updated" {
		t.Errorf("content = %q, want %q", got, "updated")
	}
}

func TestWritePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perms.txt")

	if err := Write(path, []byte("secret"), 0o600); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	// Windows only honors the owner write bit.
	if got := info.Mode().Perm(); got&0o600 == 0 {
		t.Errorf("permissions = %o, expected at least owner rw", got)
	}
}

func TestWriteCleanupOnFailure(t *testing.T) {
	badPath := filepath.Join(t.TempDir(), "no-such-dir", "file.txt")

	if err := Write(badPath, []byte("data"), 0o644); err == nil {
		t.Fatal("expected error writing to non-existent directory")
	}

	parent := filepath.Dir(filepath.Dir(badPath))
	entries, _ := os.ReadDir(parent)
	for _, e := range entries {
		if matched, _ := filepath.Match("file.txt.tmp.*", e.Name()); matched {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

// ///////////////////////////////////////////////
// WriteJSON
// ///////////////////////////////////////////////

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entry.json")
	in := map[string]any{"url": "https://api.noopschallenge.com/hexbot?", "count": 1}

	if err := WriteJSON(path, in, 0o644); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("missing trailing newline")
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["url"] != in["url"] {
		t.Errorf("url = %v, want %v", out["url"], in["url"])
	}
}

func TestWriteJSONUnencodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := WriteJSON(path, map[string]any{"ch": make(chan int)}, 0o644); err == nil {
		t.Fatal("expected encode error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file created on encode failure: %v", err)
	}
}

// ///////////////////////////////////////////////
// Backup
// ///////////////////////////////////////////////

func TestBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("count = 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Backup(path, ".bak"); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	got, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "count = 5\n" {
		t.Errorf("backup = %q", got)
	}
}

func TestBackupMissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	if err := Backup(path, ".bak"); err != nil {
		t.Fatalf("Backup of missing file: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup created for missing source")
	}
}
