// Package watch reports changes to a set of files, using fsnotify on their
// directories with a stat-polling fallback.
package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval applies when [Options.PollInterval] is zero.
const DefaultPollInterval = 2 * time.Second

// Options configures a [Watcher].
type Options struct {
	// Debounce is the quiet period after the last change before an event is
	// delivered. 0 delivers immediately.
	Debounce time.Duration
	// PollInterval is the stat interval in polling mode.
	PollInterval time.Duration
	// Poll skips fsnotify and polls from the start.
	Poll bool
	// Logger receives fallback notices. nil uses slog.Default().
	Logger *slog.Logger
}

// ///////////////////////////////////////////////
// Watcher
// ///////////////////////////////////////////////

// Watcher monitors files for writes and replacements. Watching the parent
// directories instead of the files keeps working across editors that save
// by renaming a temporary file over the original.
type Watcher struct {
	// files holds the absolute paths being monitored.
	files map[string]struct{}
	// events delivers a signal each time a watched file changes. The channel
	// is buffered to 1 so back-to-back changes coalesce.
	events chan struct{}
	// done is closed by [Watcher.Close] to signal the loop to exit.
	done chan struct{}
	// exited is closed when the loop goroutine returns.
	exited chan struct{}
	once   sync.Once
	// polling is true once the watcher has fallen back to stat polling.
	polling atomic.Bool
	opts    Options
	log     *slog.Logger
}

// New starts watching paths. A file may be missing when watching starts;
// its creation counts as a change. It fails only when no path is given.
func New(opts Options, paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no paths")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	w := &Watcher{
		files:  make(map[string]struct{}, len(paths)),
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		opts:   opts,
		log:    opts.Logger,
	}
	if w.log == nil {
		w.log = slog.Default()
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
	}

	if opts.Poll {
		w.startPolling()
		return w, nil
	}
	fsw, err := w.newNotify()
	if err != nil {
		w.log.Info("fsnotify unavailable, falling back to polling", "error", err)
		w.startPolling()
		return w, nil
	}
	go w.watch(fsw)
	return w, nil
}

// newNotify creates an fsnotify watcher on every parent directory.
func (w *Watcher) newNotify() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := map[string]bool{}
	for f := range w.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return fsw, nil
}

func (w *Watcher) startPolling() {
	w.polling.Store(true)
	go func() {
		defer close(w.exited)
		w.poll()
	}()
}

// Polling reports whether the watcher is using polling instead of fsnotify.
func (w *Watcher) Polling() bool {
	return w.polling.Load()
}

// Events returns a channel that receives a signal when a watched file
// changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and waits for its goroutine to exit. It is safe
// to call more than once.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
		<-w.exited
	})
	return nil
}

// ///////////////////////////////////////////////
// Event Loop
// ///////////////////////////////////////////////

// watch forwards write and create events on watched files, debounced. On an
// fsnotify error it closes the native watcher and continues by polling.
func (w *Watcher) watch(fsw *fsnotify.Watcher) {
	defer close(w.exited)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			fsw.Close()
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if w.opts.Debounce <= 0 {
				w.notify()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.notify()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Info("fsnotify error, switching to polling", "error", err)
			fsw.Close()
			w.polling.Store(true)
			w.poll()
			return
		}
	}
}

// poll stats the watched files every PollInterval and signals when any
// modification time or size differs from the last check.
func (w *Watcher) poll() {
	last := w.snapshot()

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			cur := w.snapshot()
			for f, s := range cur {
				if last[f] != s {
					w.notify()
					break
				}
			}
			last = cur
		}
	}
}

// stamp identifies one version of a file. The zero stamp means missing.
type stamp struct {
	mod  int64
	size int64
}

func (w *Watcher) snapshot() map[string]stamp {
	out := make(map[string]stamp, len(w.files))
	for f := range w.files {
		info, err := os.Stat(f)
		if err != nil {
			out[f] = stamp{}
			continue
		}
		out[f] = stamp{mod: info.ModTime().UnixNano(), size: info.Size()}
	}
	return out
}

// notify sends a single signal to the events channel. If a signal is already
// pending the call is a no-op.
func (w *Watcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
