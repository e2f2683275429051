package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"coursepage/internal/domain"
)

// DocumentLoader replaces the editor's document.
type DocumentLoader interface {
	LoadDocument(doc domain.Document) (domain.EditorState, error)
}

// ImportedDir is where processed files are moved, relative to the watched
// directory.
const ImportedDir = "imported"

// ImportWatcher loads course documents dropped into a directory. Each
// *.json file is parsed, loaded into the editor and moved to ImportedDir.
// Files that fail to parse stay where they are.
type ImportWatcher struct {
	dir     string
	loader  DocumentLoader
	emitter EventEmitter
	logger  *log.Logger
	settle  time.Duration

	watcher *fsnotify.Watcher
	done    chan struct{}

	mu      sync.Mutex
	pending map[string]func(func())
}

// NewImportWatcher watches dir, creating it if needed. settle is how long a
// file must be quiet before it is read.
func NewImportWatcher(dir string, loader DocumentLoader, settle time.Duration, emitter EventEmitter, logger *log.Logger) (*ImportWatcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create import dir: %w", err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ImportWatcher{
		dir:     dir,
		loader:  loader,
		emitter: emitter,
		logger:  logger.WithPrefix("import"),
		settle:  settle,
		watcher: fsWatcher,
		done:    make(chan struct{}),
		pending: make(map[string]func(func())),
	}, nil
}

// Start begins watching for dropped files.
func (w *ImportWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !isImportCandidate(event.Name) {
					continue
				}
				w.schedule(event.Name)

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("watch error", "err", err)

			case <-w.done:
				return
			}
		}
	}()
}

// Stop stops the watcher.
func (w *ImportWatcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

func isImportCandidate(path string) bool {
	base := filepath.Base(path)
	return strings.EqualFold(filepath.Ext(base), ".json") && !strings.HasPrefix(base, ".")
}

// schedule collapses the burst of events a single copy produces.
func (w *ImportWatcher) schedule(path string) {
	w.mu.Lock()
	fire, ok := w.pending[path]
	if !ok {
		fire = debounce.New(w.settle)
		w.pending[path] = fire
	}
	w.mu.Unlock()

	fire(func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		if err := w.Import(context.Background(), path); err != nil {
			w.logger.Error("import failed", "file", filepath.Base(path), "err", err)
		}
	})
}

// Import loads one file and moves it out of the way.
func (w *ImportWatcher) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := domain.ParseDocument(data)
	if err != nil {
		return err
	}
	if _, err := w.loader.LoadDocument(doc); err != nil {
		return err
	}

	dest := filepath.Join(w.dir, ImportedDir)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("create imported dir: %w", err)
	}
	stamped := fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102T150405"), filepath.Base(path))
	if err := os.Rename(path, filepath.Join(dest, stamped)); err != nil {
		return fmt.Errorf("move imported file: %w", err)
	}

	w.logger.Info("document imported", "file", filepath.Base(path), "title", doc.Title, "blocks", len(doc.PageLayout))
	if w.emitter != nil {
		w.emitter.Emit(ctx, EventDocumentImported, filepath.Base(path))
	}
	return nil
}
