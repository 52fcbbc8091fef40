// Package filesystem watches a local directory for EPUB files and
// ingests them into the library as they appear or change.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driving"
	"github.com/remedylabs/remedysearch/internal/logger"
)

// debounceDelay coalesces rapid write events into a single ingest.
// Copying a large EPUB into the watch dir fires many writes.
const debounceDelay = 500 * time.Millisecond

// Watcher monitors a directory and ingests EPUB files found there.
type Watcher struct {
	dir     string
	library driving.LibraryService

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher for dir backed by the given library.
func NewWatcher(dir string, library driving.LibraryService) *Watcher {
	return &Watcher{
		dir:     dir,
		library: library,
		timers:  make(map[string]*time.Timer),
	}
}

// Run ingests existing EPUB files, then blocks watching for new ones
// until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.syncExisting(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Info("Watching %s for EPUB files", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isEPUB(event.Name) {
				continue
			}
			w.scheduleIngest(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// syncExisting ingests every EPUB already present in the directory.
func (w *Watcher) syncExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isEPUB(entry.Name()) {
			continue
		}
		w.ingest(ctx, filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

// scheduleIngest delays ingestion so a file still being written is
// picked up once, whole.
func (w *Watcher) scheduleIngest(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.ingest(ctx, path)
	})
}

// ingest reads and ingests a single file. Failures are logged, not
// fatal: one bad file must not stop the watcher.
func (w *Watcher) ingest(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return
	}

	book, chunks, err := w.library.Ingest(ctx, &domain.RawBook{
		Filename: filepath.Base(path),
		Content:  content,
	})
	if err != nil {
		logger.Warn("Failed to ingest %s: %v", path, err)
		return
	}

	logger.Info("Ingested %q (%d chunks)", book.Title, chunks)
}

func isEPUB(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".epub")
}
