// Package history stores fetched palettes under the data directory, one
// JSON file per fetch, so the last good palette survives a failed request.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"tools.zach/dev/hexbot"
	"tools.zach/dev/hexbot/internal/atomicfile"
	"tools.zach/dev/hexbot/internal/paths"
)

// ErrEmpty is returned by [Store.Latest] when nothing has been stored.
var ErrEmpty = errors.New("history is empty")

// timeLayout is fixed-width so that entry names sort chronologically.
const timeLayout = "20060102T150405.000000000Z"

// ///////////////////////////////////////////////
// Entry
// ///////////////////////////////////////////////

// Entry is one stored fetch.
type Entry struct {
	// Name is the file name without extension. It is not stored in the file.
	Name string `json:"-"`
	// ID identifies the entry.
	ID uuid.UUID `json:"id"`
	// Time is when the palette was fetched, in UTC.
	Time time.Time `json:"time"`
	// URL is the request that produced the palette.
	URL string `json:"url"`
	// Palette is the decoded response.
	Palette *hexbot.Hexbot `json:"palette"`
}

// ///////////////////////////////////////////////
// Store
// ///////////////////////////////////////////////

// Store is a directory of history entries. Writers serialize through a lock
// file in the directory, so concurrent processes can share it.
type Store struct {
	dir string
	log *slog.Logger
	now func() time.Time
}

// Open returns a store rooted at dir. The directory is created on the first
// [Store.Save].
func Open(dir string, log *slog.Logger) *Store {
	return &Store{dir: dir, log: log, now: time.Now}
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Save stores palette as fetched from url.
func (s *Store) Save(url string, palette *hexbot.Hexbot) (Entry, error) {
	if palette == nil {
		return Entry{}, errors.New("save history: nil palette")
	}
	e := Entry{
		ID:      uuid.New(),
		Time:    s.now().UTC(),
		URL:     url,
		Palette: palette,
	}
	e.Name = e.Time.Format(timeLayout) + "-" + e.ID.String()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("create history dir: %w", err)
	}
	unlock, err := s.lock()
	if err != nil {
		return Entry{}, err
	}
	defer unlock()

	if err := atomicfile.WriteJSON(s.path(e.Name), e, 0o644); err != nil {
		return Entry{}, fmt.Errorf("save history: %w", err)
	}
	s.log.Debug("stored palette", "entry", e.Name, "colors", palette.Len())
	return e, nil
}

// List returns stored entries, newest first. A non-empty match is a
// doublestar glob over entry names, e.g. "20261014T*". Unreadable entries
// are logged and skipped. A missing directory yields no entries.
func (s *Store) List(match string) ([]Entry, error) {
	names, err := s.names(match)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e, err := s.read(name)
		if err != nil {
			s.log.Warn("skipping history entry", "entry", name, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Latest returns the newest readable entry, or [ErrEmpty].
func (s *Store) Latest() (Entry, error) {
	names, err := s.names("")
	if err != nil {
		return Entry{}, err
	}
	for _, name := range names {
		e, err := s.read(name)
		if err != nil {
			s.log.Warn("skipping history entry", "entry", name, "error", err)
			continue
		}
		return e, nil
	}
	return Entry{}, ErrEmpty
}

// Prune removes all but the newest keep entries and returns how many were
// removed. keep 0 keeps everything.
func (s *Store) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	unlock, err := s.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	names, err := s.names("")
	if err != nil {
		return 0, err
	}
	if len(names) <= keep {
		return 0, nil
	}
	removed := 0
	for _, name := range names[keep:] {
		if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("prune history: %w", err)
		}
		removed++
	}
	s.log.Debug("pruned history", "removed", removed, "kept", keep)
	return removed, nil
}

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

// names returns entry names matching match, newest first.
func (s *Store) names(match string) ([]string, error) {
	if match == "" {
		match = "*"
	}
	if !doublestar.ValidatePattern(match) {
		return nil, fmt.Errorf("invalid pattern %q: %w", match, doublestar.ErrBadPattern)
	}
	files, err := doublestar.Glob(os.DirFS(s.dir), match+paths.HistoryExt)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if strings.Contains(f, "/") {
			continue
		}
		names = append(names, strings.TrimSuffix(f, paths.HistoryExt))
	}
	slices.Sort(names)
	slices.Reverse(names)
	return names, nil
}

func (s *Store) read(name string) (Entry, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, err
	}
	if e.Palette == nil {
		return Entry{}, errors.New("entry has no palette")
	}
	e.Name = name
	return e, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+paths.HistoryExt)
}

// lock takes the store's writer lock and returns its release function.
func (s *Store) lock() (func(), error) {
	f, err := os.OpenFile(filepath.Join(s.dir, paths.LockFile), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open history lock: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		if err := unlockFile(f); err != nil {
			s.log.Warn("failed to unlock history", "error", err)
		}
		f.Close()
	}, nil
}
