package catalog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
)

func TestDescribe_PaletteOrder(t *testing.T) {
	entries := catalog.Describe()
	kinds := make([]domain.Kind, len(entries))
	for i, e := range entries {
		kinds[i] = e.Kind
		assert.NotEmpty(t, e.Label)
		assert.NotEmpty(t, e.Icon)
	}
	assert.Equal(t, []domain.Kind{
		domain.KindFeatureList,
		domain.KindTextBlock,
		domain.KindInstructors,
		domain.KindPromoBanner,
		domain.KindSkills,
		domain.KindFAQs,
	}, kinds)
}

func TestDescribe_ReturnsCopy(t *testing.T) {
	entries := catalog.Describe()
	entries[0].Label = "changed"
	assert.NotEqual(t, "changed", catalog.Describe()[0].Label)
}

func TestInsertable(t *testing.T) {
	assert.True(t, catalog.Insertable(domain.KindFAQs))
	assert.False(t, catalog.Insertable(domain.KindTestimonials))
	assert.False(t, catalog.Insertable(domain.KindNewsletter))
	assert.True(t, catalog.Known(domain.KindNewsletter))
	assert.False(t, catalog.Known("carousel"))
}

func TestCreateDefault_AllKinds(t *testing.T) {
	for _, kind := range domain.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			b, err := catalog.CreateDefault(kind)
			require.NoError(t, err)
			assert.Equal(t, kind, b.Kind())
			assert.NoError(t, domain.ValidateBlock(b))
			assert.True(t, strings.HasPrefix(b.ID(), strings.ReplaceAll(string(kind), "_", "-")+"-"))
		})
	}
}

func TestCreateDefault_Placeholders(t *testing.T) {
	b, err := catalog.CreateDefault(domain.KindTextBlock)
	require.NoError(t, err)
	tb := b.(domain.TextBlock)
	assert.NotEmpty(t, tb.Title)
	assert.NotEmpty(t, tb.Body)

	b, err = catalog.CreateDefault(domain.KindFAQs)
	require.NoError(t, err)
	assert.Len(t, b.(domain.FAQs).FAQs, 2)
}

func TestCreateDefault_FreshKeys(t *testing.T) {
	a, err := catalog.CreateDefault(domain.KindSkills)
	require.NoError(t, err)
	b, err := catalog.CreateDefault(domain.KindSkills)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestCreateDefault_UnknownKind(t *testing.T) {
	_, err := catalog.CreateDefault("carousel")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestNewDocument(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := catalog.NewDocument(now)
	assert.Equal(t, "New Course", doc.Title)
	assert.Equal(t, "2024-03-01T12:00:00.000Z", doc.ReleasedAt)
	assert.Empty(t, doc.PageLayout)
	assert.NotNil(t, doc.PageLayout)
	assert.Equal(t, domain.DefaultInstructorName, doc.InstructorName())
	assert.NoError(t, doc.Validate())
}
