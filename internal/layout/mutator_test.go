package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepage/internal/domain"
	"coursepage/internal/layout"
)

func docWith(keys ...string) domain.Document {
	d := domain.Document{Title: "Course", PageLayout: []domain.Block{}}
	for _, k := range keys {
		d.PageLayout = append(d.PageLayout, domain.TextBlock{Key: k, Title: k})
	}
	return d
}

func TestInsert_AppendsAndPreservesInput(t *testing.T) {
	doc := docWith("a", "b")
	out, err := layout.Insert(doc, domain.FAQs{Key: "f"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "f"}, out.Keys())
	assert.Equal(t, []string{"a", "b"}, doc.Keys())
}

func TestInsertAt_Clamps(t *testing.T) {
	doc := docWith("a", "b")

	out, err := layout.InsertAt(doc, domain.Skills{Key: "s"}, -5)
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "a", "b"}, out.Keys())

	out, err = layout.InsertAt(doc, domain.Skills{Key: "s"}, 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "s"}, out.Keys())

	out, err = layout.InsertAt(doc, domain.Skills{Key: "s"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "s", "b"}, out.Keys())
}

func TestInsert_RejectsMalformed(t *testing.T) {
	doc := docWith("a")

	_, err := layout.Insert(doc, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedBlock)

	_, err = layout.Insert(doc, domain.TextBlock{})
	assert.ErrorIs(t, err, domain.ErrMalformedBlock)

	_, err = layout.Insert(doc, domain.TextBlock{Key: "a"})
	assert.ErrorIs(t, err, domain.ErrMalformedBlock)
}

func TestRemove(t *testing.T) {
	doc := docWith("a", "b", "c")
	out := layout.Remove(doc, "b")
	assert.Equal(t, []string{"a", "c"}, out.Keys())
	assert.Equal(t, []string{"a", "b", "c"}, doc.Keys())

	assert.Equal(t, doc, layout.Remove(doc, "missing"))
}

func TestDuplicate_AppendsCopyWithFreshKey(t *testing.T) {
	doc := docWith("a", "b", "c")
	out, newKey := layout.Duplicate(doc, "a")

	require.NotEmpty(t, newKey)
	assert.Len(t, out.PageLayout, 4)
	assert.Equal(t, newKey, out.PageLayout[3].ID())
	assert.NotEqual(t, "a", newKey)

	orig, _ := out.FindBlock("a")
	dup, _ := out.FindBlock(newKey)
	assert.Equal(t, orig.(domain.TextBlock).Title, dup.(domain.TextBlock).Title)
	assert.NoError(t, out.Validate())
}

func TestDuplicate_SharesNoListsWithSource(t *testing.T) {
	doc := domain.Document{PageLayout: []domain.Block{
		domain.FAQs{Key: "f", FAQs: []domain.FAQItem{{Question: "Why?", Answer: "Because."}}},
	}}
	out, newKey := layout.Duplicate(doc, "f")
	require.NotEmpty(t, newKey)

	dup, _ := out.FindBlock(newKey)
	dup.(domain.FAQs).FAQs[0].Question = "Changed"

	src, _ := out.FindBlock("f")
	assert.Equal(t, "Why?", src.(domain.FAQs).FAQs[0].Question)
	orig, _ := doc.FindBlock("f")
	assert.Equal(t, "Why?", orig.(domain.FAQs).FAQs[0].Question)
}

func TestDuplicate_Missing(t *testing.T) {
	doc := docWith("a")
	out, newKey := layout.Duplicate(doc, "zzz")
	assert.Empty(t, newKey)
	assert.Equal(t, doc, out)
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{"first onto last", "a", "c", []string{"b", "c", "a"}},
		{"last onto first", "c", "a", []string{"c", "a", "b"}},
		{"middle onto last", "b", "c", []string{"a", "c", "b"}},
		{"same key", "b", "b", []string{"a", "b", "c"}},
		{"missing source", "x", "a", []string{"a", "b", "c"}},
		{"missing target", "a", "x", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWith("a", "b", "c")
			out := layout.Reorder(doc, tt.from, tt.to)
			assert.Equal(t, tt.want, out.Keys())
			assert.ElementsMatch(t, doc.Keys(), out.Keys())
			assert.Equal(t, []string{"a", "b", "c"}, doc.Keys())
		})
	}
}

func TestPatchField_ShallowMerge(t *testing.T) {
	doc := docWith("a", "b")
	out, err := layout.PatchField(doc, "b", layout.Fields{
		"title":     "New title",
		"key":       "hijack",
		"component": "faqs",
	})
	require.NoError(t, err)

	b, ok := out.FindBlock("b")
	require.True(t, ok)
	tb := b.(domain.TextBlock)
	assert.Equal(t, "New title", tb.Title)
	assert.Equal(t, "b", tb.Key)
	assert.Equal(t, domain.KindTextBlock, b.Kind())

	old, _ := doc.FindBlock("b")
	assert.Equal(t, "b", old.(domain.TextBlock).Title)
}

func TestPatchField_IgnoresKeyAndComponentInAnyCase(t *testing.T) {
	doc := docWith("a", "b")
	for _, name := range []string{"Key", "KEY", "kEy", "Component", "COMPONENT"} {
		t.Run(name, func(t *testing.T) {
			out, err := layout.PatchField(doc, "b", layout.Fields{name: "a", "title": "T"})
			require.NoError(t, err)

			assert.Equal(t, []string{"a", "b"}, out.Keys())
			b, ok := out.FindBlock("b")
			require.True(t, ok)
			assert.Equal(t, domain.KindTextBlock, b.Kind())
			assert.Equal(t, "T", b.(domain.TextBlock).Title)
			assert.NoError(t, out.Validate())
		})
	}
}

func TestPatchField_ReplacesListFields(t *testing.T) {
	doc := domain.Document{PageLayout: []domain.Block{
		domain.Skills{Key: "s", Title: "Skills", Skills: []domain.Skill{{Text: "old"}}},
	}}
	out, err := layout.PatchField(doc, "s", layout.Fields{
		"skills": layout.SkillsFromLines("Go\n\n  SQL \n"),
	})
	require.NoError(t, err)

	b, _ := out.FindBlock("s")
	assert.Equal(t, []domain.Skill{{Text: "Go"}, {Text: "SQL"}}, b.(domain.Skills).Skills)
	assert.Equal(t, "Skills", b.(domain.Skills).Title)
}

func TestPatchField_NoOps(t *testing.T) {
	doc := docWith("a")

	out, err := layout.PatchField(doc, "missing", layout.Fields{"title": "x"})
	require.NoError(t, err)
	assert.Equal(t, doc, out)

	out, err = layout.PatchField(doc, "a", layout.Fields{"title": 42})
	assert.ErrorIs(t, err, domain.ErrMalformedBlock)
	assert.Equal(t, doc, out)
}

func TestPatchField_DottedFieldName(t *testing.T) {
	doc := docWith("a")
	out, err := layout.PatchField(doc, "a", layout.Fields{"odd.name": "v", "body": "text"})
	require.NoError(t, err)

	b, _ := out.FindBlock("a")
	assert.Equal(t, "text", b.(domain.TextBlock).Body)
}

func TestSkillsFromLines(t *testing.T) {
	assert.Empty(t, layout.SkillsFromLines(""))
	assert.Equal(t, []domain.Skill{{Text: "a"}, {Text: "b"}}, layout.SkillsFromLines("a\r\nb"))
}
