// Package drag turns drag-and-drop gestures into layout mutations.
//
// A gesture source reports start, over, end and cancel events carrying
// opaque identities. Palette items are "new:<kind>", canvas blocks use their
// key and the canvas drop zone uses CanvasDropZone.
package drag

import (
	"strings"

	"github.com/charmbracelet/log"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
	"coursepage/internal/layout"
)

const (
	// NewItemPrefix marks a palette item identity.
	NewItemPrefix = "new:"
	// CanvasDropZone is the identity of the empty canvas area.
	CanvasDropZone = "canvas-droppable"
)

// Listener is the capability a gesture source drives. An empty overID on
// DragEnd means the pointer was released over nothing.
type Listener interface {
	DragStart(activeID string)
	DragOver(overID string)
	DragEnd(activeID, overID string)
	DragCancel()
}

// NewItemID returns the palette identity for kind.
func NewItemID(kind domain.Kind) string {
	return NewItemPrefix + string(kind)
}

// ParseNewItem reports whether id names a palette item and which kind.
func ParseNewItem(id string) (domain.Kind, bool) {
	kind, ok := strings.CutPrefix(id, NewItemPrefix)
	return domain.Kind(kind), ok
}

// Action is how a finished gesture was resolved.
type Action int

const (
	ActionDiscard Action = iota
	ActionNoop
	ActionInsert
	ActionReorder
)

func (a Action) String() string {
	switch a {
	case ActionNoop:
		return "noop"
	case ActionInsert:
		return "insert"
	case ActionReorder:
		return "reorder"
	default:
		return "discard"
	}
}

// Outcome is the result of resolving a drop. Document is the input document
// unless Action is ActionInsert or ActionReorder. SelectKey is set to the new
// block's key after an insert.
type Outcome struct {
	Action    Action
	Document  domain.Document
	SelectKey string
	Err       error
}

// Changed reports whether the outcome produced a new document.
func (o Outcome) Changed() bool {
	return o.Action == ActionInsert || o.Action == ActionReorder
}

// Coordinator tracks one drag session at a time: idle or dragging.
// It is not safe for concurrent use; callers serialize access.
type Coordinator struct {
	logger   *log.Logger
	dragging bool
	active   string
	over     string
}

// NewCoordinator returns an idle coordinator.
func NewCoordinator(logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{logger: logger.WithPrefix("drag")}
}

// Dragging reports whether a session is in progress.
func (c *Coordinator) Dragging() bool { return c.dragging }

// Active returns the identity being dragged, or "".
func (c *Coordinator) Active() string { return c.active }

// Over returns the last hovered identity, or "".
func (c *Coordinator) Over() string { return c.over }

// Start enters the dragging state.
func (c *Coordinator) Start(activeID string) {
	c.dragging = true
	c.active = activeID
	c.over = ""
}

// Hover records the identity under the pointer. It has no effect when idle.
func (c *Coordinator) Hover(overID string) {
	if c.dragging {
		c.over = overID
	}
}

// Cancel returns to idle without touching any document.
func (c *Coordinator) Cancel() {
	c.reset()
}

// End returns to idle and resolves the drop against doc.
func (c *Coordinator) End(doc domain.Document, activeID, overID string) Outcome {
	c.reset()
	out := Outcome{Action: ActionDiscard, Document: doc}

	if overID == "" {
		return out
	}

	if kind, isNew := ParseNewItem(activeID); isNew {
		if overID != CanvasDropZone {
			c.logger.Debug("palette item dropped outside canvas", "item", activeID, "over", overID)
			return out
		}
		b, err := catalog.CreateDefault(kind)
		if err != nil {
			c.logger.Error("drop of unknown block kind", "kind", kind, "err", err)
			out.Err = err
			return out
		}
		next, err := layout.Insert(doc, b)
		if err != nil {
			c.logger.Error("insert dropped block", "kind", kind, "err", err)
			out.Err = err
			return out
		}
		return Outcome{Action: ActionInsert, Document: next, SelectKey: b.ID()}
	}

	if activeID == overID {
		out.Action = ActionNoop
		return out
	}
	next := layout.Reorder(doc, activeID, overID)
	if next.IndexOf(activeID) == doc.IndexOf(activeID) {
		out.Action = ActionNoop
		return out
	}
	return Outcome{Action: ActionReorder, Document: next}
}

func (c *Coordinator) reset() {
	c.dragging = false
	c.active = ""
	c.over = ""
}
