package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"

	"coursepage/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Persistence: debounced snapshot writes, load and export
// ─────────────────────────────────────────────────────────────

// DefaultAutosaveDelay is the debounce window between the last edit and
// the snapshot write.
const DefaultAutosaveDelay = time.Second

// SaveResult is the payload of persistence:saved.
type SaveResult struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

// Persistence writes the document to a SnapshotStore. Save is cheap and may
// be called on every edit: only the latest document of a burst is written.
// Write failures are logged and emitted, never returned to the caller of Save.
type Persistence struct {
	store    domain.SnapshotStore
	name     string
	emitter  EventEmitter
	logger   *log.Logger
	schedule func(f func())

	mu       sync.Mutex
	pending  *domain.Document
	lastSync []byte

	writeMu sync.Mutex
}

// NewPersistence creates a Persistence that saves under name.
func NewPersistence(store domain.SnapshotStore, name string, delay time.Duration, emitter EventEmitter, logger *log.Logger) *Persistence {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Persistence{
		store:    store,
		name:     name,
		emitter:  emitter,
		logger:   logger.WithPrefix("persistence"),
		schedule: debounce.New(delay),
	}
}

// Name is the snapshot entry this instance reads and writes.
func (p *Persistence) Name() string { return p.name }

// Save queues doc for writing. Calls within the debounce window collapse
// into one write of the most recent document.
func (p *Persistence) Save(doc domain.Document) {
	p.mu.Lock()
	p.pending = &doc
	p.mu.Unlock()
	p.schedule(func() { _ = p.Flush(context.Background()) })
}

// Pending reports whether a document is waiting to be written.
func (p *Persistence) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// Flush writes the pending document now. The debounced write that follows
// finds nothing pending and does nothing.
func (p *Persistence) Flush(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	doc := p.pending
	p.pending = nil
	p.mu.Unlock()

	if doc == nil {
		return nil
	}
	return p.write(ctx, *doc)
}

func (p *Persistence) write(ctx context.Context, doc domain.Document) error {
	data, err := json.Marshal(doc)
	if err == nil {
		err = p.store.Put(ctx, p.name, data)
	}
	if err != nil {
		err = fmt.Errorf("%w: save %s: %v", domain.ErrStorage, p.name, err)
		p.logger.Error("snapshot write failed", "name", p.name, "err", err)
		p.emit(ctx, EventPersistenceError, err.Error())
		return err
	}

	p.mu.Lock()
	p.lastSync = data
	p.mu.Unlock()

	p.logger.Debug("snapshot saved", "name", p.name, "bytes", len(data))
	p.emit(ctx, EventPersistenceSaved, SaveResult{Name: p.name, Bytes: len(data)})
	return nil
}

// Load reads the stored document. A missing, unreadable or invalid snapshot
// yields false; the reason is logged.
func (p *Persistence) Load(ctx context.Context) (domain.Document, bool) {
	data, ok, err := p.store.Get(ctx, p.name)
	if err != nil {
		p.logger.Error("snapshot read failed", "name", p.name, "err", fmt.Errorf("%w: %v", domain.ErrStorage, err))
		return domain.Document{}, false
	}
	if !ok {
		p.logger.Debug("no snapshot", "name", p.name)
		return domain.Document{}, false
	}
	doc, err := domain.ParseDocument(data)
	if err != nil {
		p.logger.Warn("discarding unreadable snapshot", "name", p.name, "err", err)
		return domain.Document{}, false
	}

	p.mu.Lock()
	p.lastSync = data
	p.mu.Unlock()
	return doc, true
}

// InSync reports whether data is what this instance last wrote or loaded.
func (p *Persistence) InSync(data []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return bytes.Equal(p.lastSync, data)
}

// Clear drops any pending write and deletes the stored snapshot.
func (p *Persistence) Clear(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	p.pending = nil
	p.lastSync = nil
	p.mu.Unlock()

	if err := p.store.Delete(ctx, p.name); err != nil {
		return errors.Join(domain.ErrStorage, err)
	}
	return nil
}

// Export renders doc as the downloadable payload: two-space indented JSON
// in the same shape Load accepts.
func (p *Persistence) Export(doc domain.Document) ([]byte, error) {
	return ExportDocument(doc)
}

// ExportDocument renders doc as indented JSON.
func ExportDocument(doc domain.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}

func (p *Persistence) emit(ctx context.Context, event string, data any) {
	if p.emitter != nil {
		p.emitter.Emit(ctx, event, data)
	}
}
