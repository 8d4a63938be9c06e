// Package watch re-runs scans when the selected source files change.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/extmodel/scanner"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Target is what the watcher re-scans.
type Target interface {
	Root() string
	Selects(path string) bool
	Scan(ctx context.Context) (*scanner.Result, error)
}

// Config configures a Watcher
type Config struct {
	// Debounce is how long changes must settle before a re-scan
	Debounce time.Duration

	// OnScan receives every scan outcome, including the initial one
	OnScan func(*scanner.Result, error)

	Logger *slog.Logger
}

// Watcher watches the source root and re-scans after changes settle
type Watcher struct {
	config  Config
	target  Target
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
	lastEvent time.Time
}

// New creates a watcher for target
func New(config Config, target Target) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Debounce == 0 {
		config.Debounce = DefaultDebounce
	}
	if config.OnScan == nil {
		config.OnScan = func(*scanner.Result, error) {}
	}

	return &Watcher{
		config:  config,
		target:  target,
		watcher: fsw,
		logger:  config.Logger,
		pending: make(map[string]fsnotify.Op),
	}, nil
}

// Run scans once, then re-scans on every settled batch of changes until ctx is
// done. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	root := w.target.Root()
	if err := w.addWatchesRecursive(root, nil); err != nil {
		return err
	}
	w.logger.Info("File watcher started", "root", root, "debounce", w.config.Debounce)

	w.scan(ctx)

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if w.settled() {
				w.scan(ctx)
			}
		}
	}
}

func (w *Watcher) scan(ctx context.Context) {
	res, err := w.target.Scan(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return
	}
	w.config.OnScan(res, err)
}

func skipDir(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

// addWatchesRecursive adds watches to all directories and calls found, when set,
// for every file the walk passes
func (w *Watcher) addWatchesRecursive(root string, found func(path string)) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if found != nil {
				found(path)
			}
			return nil
		}
		if path != root && skipDir(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// handleFSEvent records a change to a selected file or watches a new directory
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if skipDir(path) {
				return
			}
			// files written before the watch landed raise no events of their own
			err := w.addWatchesRecursive(path, func(file string) { w.markPending(file, fsnotify.Create) })
			if err != nil {
				w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}
	w.markPending(path, event.Op)
}

// markPending records a change to path when the target selects it
func (w *Watcher) markPending(path string, op fsnotify.Op) {
	if !w.target.Selects(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= op
	w.lastEvent = time.Now()
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected", "path", path, "op", op.String())
}

// settled drains the pending set once no change arrived for a full debounce
// period and reports whether there was anything to drain.
func (w *Watcher) settled() bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 || time.Since(w.lastEvent) < w.config.Debounce {
		return false
	}
	w.logger.Info("Sources changed, re-scanning", "files", len(w.pending))
	w.pending = make(map[string]fsnotify.Op)
	return true
}

// Pending returns the number of changed files waiting for a re-scan.
func (w *Watcher) Pending() int {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	return len(w.pending)
}
