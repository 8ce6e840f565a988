package filewatcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
)

// settleDelay gives writers time to finish before a dropped file is
// picked up
const settleDelay = 500 * time.Millisecond

// Watcher ingests files dropped into a directory. Each created file is
// ingested once its writes settle, then removed from the drop dir.
type Watcher struct {
	dir    string
	ingest driving.IngestService
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for dir. The directory is created if missing.
func New(dir string, ingest driving.IngestService, logger *slog.Logger) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:     dir,
		ingest:  ingest,
		logger:  logger,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Run watches the drop directory until ctx is cancelled. Files already
// present at startup are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "dir", w.dir, "error", err)
		}
	}
}

// sweep ingests files that were dropped while the watcher was down
func (w *Watcher) sweep(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("sweep failed", "dir", w.dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.process(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// schedule debounces repeated write events for the same file
func (w *Watcher) schedule(ctx context.Context, path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(settleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.process(ctx, path)
	})
}

func (w *Watcher) process(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	doc, err := w.ingest.IngestPath(ctx, path)
	if err != nil {
		w.logger.Error("ingest failed", "path", path, "error", err)
		return
	}

	// The upload dir holds the stored copy, drop dir is transient
	if err := os.Remove(path); err != nil {
		w.logger.Warn("could not remove dropped file", "path", path, "error", err)
	}
	w.logger.Info("ingested dropped file", "document", doc.ID, "name", doc.OriginalName)
}
