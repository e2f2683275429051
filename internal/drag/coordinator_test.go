package drag_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepage/internal/domain"
	"coursepage/internal/drag"
)

func newCoordinator() *drag.Coordinator {
	return drag.NewCoordinator(log.New(io.Discard))
}

func threeBlocks() domain.Document {
	return domain.Document{PageLayout: []domain.Block{
		domain.TextBlock{Key: "a"},
		domain.TextBlock{Key: "b"},
		domain.TextBlock{Key: "c"},
	}}
}

func TestCoordinator_StartHoverCancel(t *testing.T) {
	c := newCoordinator()
	assert.False(t, c.Dragging())

	c.Hover("a")
	assert.Empty(t, c.Over())

	c.Start("b")
	assert.True(t, c.Dragging())
	assert.Equal(t, "b", c.Active())
	c.Hover("a")
	assert.Equal(t, "a", c.Over())

	c.Cancel()
	assert.False(t, c.Dragging())
	assert.Empty(t, c.Active())
}

func TestCoordinator_NewItemOnCanvas(t *testing.T) {
	c := newCoordinator()
	doc := threeBlocks()
	c.Start(drag.NewItemID(domain.KindFAQs))

	out := c.End(doc, drag.NewItemID(domain.KindFAQs), drag.CanvasDropZone)
	require.NoError(t, out.Err)
	assert.Equal(t, drag.ActionInsert, out.Action)
	assert.True(t, out.Changed())
	require.Len(t, out.Document.PageLayout, 4)

	added := out.Document.PageLayout[3]
	assert.Equal(t, domain.KindFAQs, added.Kind())
	assert.Equal(t, added.ID(), out.SelectKey)
	assert.Len(t, doc.PageLayout, 3)
	assert.False(t, c.Dragging())
}

func TestCoordinator_ExistingBlockReorders(t *testing.T) {
	c := newCoordinator()
	c.Start("a")
	out := c.End(threeBlocks(), "a", "c")
	assert.Equal(t, drag.ActionReorder, out.Action)
	assert.Equal(t, []string{"b", "c", "a"}, out.Document.Keys())
	assert.Empty(t, out.SelectKey)
}

func TestCoordinator_Discards(t *testing.T) {
	doc := threeBlocks()
	tests := []struct {
		name         string
		active, over string
		want         drag.Action
	}{
		{"no target", "a", "", drag.ActionDiscard},
		{"new item on a block", drag.NewItemID(domain.KindSkills), "b", drag.ActionDiscard},
		{"unknown kind", "new:carousel", drag.CanvasDropZone, drag.ActionDiscard},
		{"same target", "b", "b", drag.ActionNoop},
		{"block onto canvas", "b", drag.CanvasDropZone, drag.ActionNoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCoordinator()
			c.Start(tt.active)
			out := c.End(doc, tt.active, tt.over)
			assert.Equal(t, tt.want, out.Action)
			assert.False(t, out.Changed())
			assert.Equal(t, doc, out.Document)
			assert.False(t, c.Dragging())
		})
	}
}

func TestCoordinator_UnknownKindReportsError(t *testing.T) {
	out := newCoordinator().End(threeBlocks(), "new:carousel", drag.CanvasDropZone)
	assert.ErrorIs(t, out.Err, domain.ErrUnknownKind)
}

func TestParseNewItem(t *testing.T) {
	kind, ok := drag.ParseNewItem("new:text_block")
	assert.True(t, ok)
	assert.Equal(t, domain.KindTextBlock, kind)

	_, ok = drag.ParseNewItem("text-block-1")
	assert.False(t, ok)
}
