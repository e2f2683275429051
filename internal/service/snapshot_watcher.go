package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"coursepage/internal/domain"
)

// SnapshotWatcher polls the snapshot entry for writes made by another
// process, such as the standalone MCP server, and swaps them into the
// running editor.
type SnapshotWatcher struct {
	store    domain.SnapshotStore
	persist  *Persistence
	editor   *EditorService
	interval time.Duration
	logger   *log.Logger
	stopCh   chan struct{}
}

func NewSnapshotWatcher(store domain.SnapshotStore, persist *Persistence, editor *EditorService, interval time.Duration, logger *log.Logger) *SnapshotWatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &SnapshotWatcher{
		store:    store,
		persist:  persist,
		editor:   editor,
		interval: interval,
		logger:   logger.WithPrefix("snapshot-watch"),
	}
}

// Start begins the polling loop. Should be called once on app startup.
func (w *SnapshotWatcher) Start(ctx context.Context) {
	w.stopCh = make(chan struct{})
	go w.pollLoop(ctx, w.stopCh)
}

// Stop terminates the polling loop.
func (w *SnapshotWatcher) Stop() {
	if w.stopCh != nil {
		close(w.stopCh)
		w.stopCh = nil
	}
}

func (w *SnapshotWatcher) pollLoop(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Check compares the stored snapshot with what this process last wrote and
// reloads it when they differ. Local edits win, both those waiting to be
// saved and those made while the store was being read.
func (w *SnapshotWatcher) Check(ctx context.Context) bool {
	since := w.editor.Version()
	if w.persist.Pending() {
		return false
	}
	data, ok, err := w.store.Get(ctx, w.persist.Name())
	if err != nil || !ok || w.persist.InSync(data) {
		return false
	}
	doc, ok := w.persist.Load(ctx)
	if !ok {
		return false
	}
	if _, ok := w.editor.ReplaceFromStore(doc, since); !ok {
		w.logger.Debug("external change skipped, local edit is newer")
		return false
	}
	w.logger.Info("reloaded external change", "blocks", len(doc.PageLayout))
	return true
}
