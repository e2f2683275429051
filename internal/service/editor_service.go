package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
	"coursepage/internal/drag"
	"coursepage/internal/layout"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: selection, mode and layout actions
// ─────────────────────────────────────────────────────────────

// DocumentSink receives every committed document.
type DocumentSink interface {
	Save(doc domain.Document)
	Export(doc domain.Document) ([]byte, error)
}

// HeroFields is the part of the document edited through the hero panel.
type HeroFields struct {
	Title        string              `json:"title"`
	Hero         domain.Hero         `json:"hero"`
	Video        domain.Video        `json:"video"`
	EnrollButton domain.EnrollButton `json:"enrollButton"`
}

// ExportResult is a rendered export payload and its download name.
type ExportResult struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// EditorService owns the editing session. Every action runs under one lock
// and replaces the state wholesale, so readers never see a half-applied
// change.
type EditorService struct {
	sink    DocumentSink
	emitter EventEmitter
	logger  *log.Logger
	now     func() time.Time

	mu      sync.Mutex
	state   domain.EditorState
	drag    *drag.Coordinator
	version uint64 // bumped on every saved change
}

// NewEditorService starts a session on doc.
func NewEditorService(doc domain.Document, sink DocumentSink, emitter EventEmitter, logger *log.Logger) *EditorService {
	if logger == nil {
		logger = log.Default()
	}
	return &EditorService{
		sink:    sink,
		emitter: emitter,
		logger:  logger.WithPrefix("editor"),
		now:     time.Now,
		state:   domain.NewEditorState(doc),
		drag:    drag.NewCoordinator(logger),
	}
}

// State returns the current editor state.
func (s *EditorService) State() domain.EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Document returns the current document.
func (s *EditorService) Document() domain.Document {
	return s.State().Document
}

// ── Selection & mode ───────────────────────────────────────

// Select points the properties panel at sel. The key is not checked against
// the layout.
func (s *EditorService) Select(sel domain.Selection) domain.EditorState {
	return s.apply(false, func(st *domain.EditorState) { st.SelectedKey = sel })
}

// SelectHero selects the hero section.
func (s *EditorService) SelectHero() domain.EditorState {
	return s.Select(domain.SelectionHero)
}

// Deselect clears the selection.
func (s *EditorService) Deselect() domain.EditorState {
	return s.Select(domain.SelectionNone)
}

// ToggleMode flips between edit and preview. The selection is kept.
func (s *EditorService) ToggleMode() domain.EditorState {
	return s.apply(false, func(st *domain.EditorState) {
		if st.Mode == domain.ModePreview {
			st.Mode = domain.ModeEdit
		} else {
			st.Mode = domain.ModePreview
		}
	})
}

// ── Layout actions ─────────────────────────────────────────

// AddBlock appends a default block of kind. The selection is not changed.
func (s *EditorService) AddBlock(kind domain.Kind) (domain.EditorState, string, error) {
	b, err := catalog.CreateDefault(kind)
	if err != nil {
		return s.State(), "", err
	}
	var insertErr error
	st := s.apply(true, func(st *domain.EditorState) {
		st.Document, insertErr = layout.Insert(st.Document, b)
	})
	if insertErr != nil {
		return st, "", insertErr
	}
	return st, b.ID(), nil
}

// DeleteBlock removes the block and clears the selection if it pointed at it.
func (s *EditorService) DeleteBlock(key string) domain.EditorState {
	return s.apply(true, func(st *domain.EditorState) {
		st.Document = layout.Remove(st.Document, key)
		if st.SelectedKey == domain.Selection(key) {
			st.SelectedKey = domain.SelectionNone
		}
	})
}

// DuplicateBlock appends a copy of the block and returns the copy's key,
// or "" when key is not in the layout.
func (s *EditorService) DuplicateBlock(key string) (domain.EditorState, string) {
	var newKey string
	st := s.apply(true, func(st *domain.EditorState) {
		st.Document, newKey = layout.Duplicate(st.Document, key)
	})
	return st, newKey
}

// ReorderBlock moves from into the slot held by to.
func (s *EditorService) ReorderBlock(from, to string) domain.EditorState {
	return s.apply(true, func(st *domain.EditorState) {
		st.Document = layout.Reorder(st.Document, from, to)
	})
}

// PatchBlock merges fields into the block with key.
func (s *EditorService) PatchBlock(key string, fields layout.Fields) (domain.EditorState, error) {
	var patchErr error
	st := s.apply(true, func(st *domain.EditorState) {
		st.Document, patchErr = layout.PatchField(st.Document, key, fields)
	})
	if patchErr != nil {
		s.logger.Warn("patch rejected", "key", key, "err", patchErr)
	}
	return st, patchErr
}

// UpdateHero replaces the hero panel fields.
func (s *EditorService) UpdateHero(h HeroFields) domain.EditorState {
	return s.apply(true, func(st *domain.EditorState) {
		st.Document.Title = h.Title
		st.Document.Hero = h.Hero
		st.Document.Video = h.Video
		st.Document.EnrollButton = h.EnrollButton
	})
}

// UpdateDocument applies fn to the document. A result that fails validation
// is rejected and the state is left as it was.
func (s *EditorService) UpdateDocument(fn func(domain.Document) domain.Document) (domain.EditorState, error) {
	s.mu.Lock()
	next := fn(s.state.Document)
	if err := next.Validate(); err != nil {
		st := s.state
		s.mu.Unlock()
		return st, fmt.Errorf("update document: %w", err)
	}
	s.state.Document = next
	st := s.state
	s.save(st.Document)
	s.mu.Unlock()

	s.changed(st)
	return st, nil
}

// LoadDocument replaces the whole document and clears the selection.
func (s *EditorService) LoadDocument(doc domain.Document) (domain.EditorState, error) {
	if err := doc.Validate(); err != nil {
		return s.State(), fmt.Errorf("load document: %w", err)
	}
	return s.apply(true, func(st *domain.EditorState) {
		st.Document = doc
		st.SelectedKey = domain.SelectionNone
	}), nil
}

// ResetDocument starts over from the default course document.
func (s *EditorService) ResetDocument() domain.EditorState {
	doc := catalog.NewDocument(s.now())
	return s.apply(true, func(st *domain.EditorState) {
		st.Document = doc
		st.SelectedKey = domain.SelectionNone
	})
}

// Version counts the saved changes made in this session. Take it before
// reading the store and hand it to ReplaceFromStore.
func (s *EditorService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// ReplaceFromStore swaps in a document that is already persisted, such as
// one written by another process. Nothing is saved. The swap is refused,
// and false returned, when a local edit was saved after since, so a read
// of the store never overwrites a newer local change.
func (s *EditorService) ReplaceFromStore(doc domain.Document, since uint64) (domain.EditorState, bool) {
	s.mu.Lock()
	if s.version != since {
		st := s.state
		s.mu.Unlock()
		return st, false
	}
	next := s.state
	next.Document = doc
	if _, ok := doc.FindBlock(string(next.SelectedKey)); !ok && next.SelectedKey != domain.SelectionHero {
		next.SelectedKey = domain.SelectionNone
	}
	s.state = next
	s.mu.Unlock()

	s.changed(next)
	return next, true
}

// ExportDocument renders the current document for download.
func (s *EditorService) ExportDocument() (ExportResult, error) {
	doc := s.Document()
	data, err := s.sink.Export(doc)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Filename: doc.ExportFilename(), Data: data}, nil
}

// ── Drag gestures ──────────────────────────────────────────

var _ drag.Listener = (*EditorService)(nil)

// DragStart begins a drag session.
func (s *EditorService) DragStart(activeID string) {
	s.apply(false, func(st *domain.EditorState) {
		s.drag.Start(activeID)
		st.IsDragging = s.drag.Dragging()
	})
}

// DragOver records the hovered drop target.
func (s *EditorService) DragOver(overID string) {
	s.mu.Lock()
	s.drag.Hover(overID)
	s.mu.Unlock()
}

// DragEnd resolves the drop. A palette item dropped on the canvas is
// inserted and selected; a block dropped on another block is reordered.
func (s *EditorService) DragEnd(activeID, overID string) {
	var out drag.Outcome
	st := s.applyIf(func(st *domain.EditorState) bool {
		out = s.drag.End(st.Document, activeID, overID)
		st.IsDragging = s.drag.Dragging()
		if !out.Changed() {
			return false
		}
		st.Document = out.Document
		if out.SelectKey != "" {
			st.SelectedKey = domain.Selection(out.SelectKey)
		}
		return true
	})
	s.logger.Debug("drag end", "active", activeID, "over", overID, "action", out.Action, "blocks", len(st.Document.PageLayout))
}

// DragCancel abandons the drag session.
func (s *EditorService) DragCancel() {
	s.apply(false, func(st *domain.EditorState) {
		s.drag.Cancel()
		st.IsDragging = s.drag.Dragging()
	})
}

// ── helpers ────────────────────────────────────────────────

// apply runs fn on a copy of the state under the lock and installs the
// result. When save is set the new document goes to the sink.
func (s *EditorService) apply(save bool, fn func(st *domain.EditorState)) domain.EditorState {
	return s.applyIf(func(st *domain.EditorState) bool {
		fn(st)
		return save
	})
}

func (s *EditorService) applyIf(fn func(st *domain.EditorState) bool) domain.EditorState {
	s.mu.Lock()
	next := s.state
	if fn(&next) {
		s.save(next.Document)
	}
	s.state = next
	s.mu.Unlock()

	s.changed(next)
	return next
}

// save must run under s.mu so the sink sees documents in commit order.
func (s *EditorService) save(doc domain.Document) {
	s.version++
	if s.sink != nil {
		s.sink.Save(doc)
	}
}

func (s *EditorService) changed(st domain.EditorState) {
	if s.emitter != nil {
		s.emitter.Emit(context.Background(), EventEditorChanged, st)
	}
}
