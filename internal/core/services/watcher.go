package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driving"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/logger"
)

// DefaultSettleDelay is how long a file must stay quiet after its last
// write before it is picked up. Editors and downloads write in bursts.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher ingests files dropped into a directory. Each created or
// written file is ingested once its writes settle, then deleted: the
// engine stages its own copy under the uploads directory.
type Watcher struct {
	engine      driving.RetrievalEngine
	dir         string
	settleDelay time.Duration

	// Results receives the outcome of every triggered ingestion.
	// Unread results are dropped rather than blocking the watch loop.
	Results chan *driving.IngestResult
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithSettleDelay overrides how long files must stay quiet before
// ingestion.
func WithSettleDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.settleDelay = d
		}
	}
}

// NewWatcher creates a drop-directory watcher over the engine.
func NewWatcher(engine driving.RetrievalEngine, dir string, opts ...WatcherOption) (*Watcher, error) {
	if engine == nil {
		return nil, fmt.Errorf("watcher: engine is required")
	}
	if dir == "" {
		return nil, fmt.Errorf("watcher: directory is required")
	}

	w := &Watcher{
		engine:      engine,
		dir:         dir,
		settleDelay: DefaultSettleDelay,
		Results:     make(chan *driving.IngestResult, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches the directory until the context is cancelled. Files
// already present at startup are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s", w.dir)

	w.ingestExisting(ctx)

	// pending tracks the newest write generation per path. Only this
	// loop touches the map; timers just report back which generation
	// settled, so a timer for a superseded write can never trigger a
	// second ingest of an already handled file.
	pending := make(map[string]int)
	settled := make(chan dueFile, 16)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			if !w.eligible(path) {
				continue
			}
			gen := pending[path] + 1
			pending[path] = gen
			time.AfterFunc(w.settleDelay, func() {
				select {
				case settled <- dueFile{path: path, gen: gen}:
				case <-ctx.Done():
				}
			})

		case due := <-settled:
			if pending[due.path] != due.gen {
				// A newer write restarted the settle window.
				continue
			}
			delete(pending, due.path)
			w.ingestFile(ctx, due.path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// dueFile reports that a path's settle window elapsed for a given
// write generation.
type dueFile struct {
	path string
	gen  int
}

// ingestExisting processes files already sitting in the directory.
func (w *Watcher) ingestExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("Scan watch directory: %v", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if w.eligible(path) {
			w.ingestFile(ctx, path)
		}
	}
}

// eligible filters out directories, hidden files and partial downloads.
func (w *Watcher) eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".part") || strings.HasSuffix(base, ".tmp") {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

// ingestFile runs one file through the engine and removes it afterwards.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Open %s: %v", path, err)
		return
	}

	result := w.engine.Ingest(ctx, filepath.Base(path), f)
	f.Close()

	if result.Status == "success" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("Remove %s after ingest: %v", path, err)
		}
		logger.Info("Auto-ingested %q", result.Document)
	} else {
		logger.Warn("Auto-ingest %s failed: %s", path, result.Error)
	}

	select {
	case w.Results <- result:
	default:
	}
}
