// Package catalog is the fixed registry of block kinds: palette metadata and
// a default-instance factory per kind.
package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"coursepage/internal/domain"
)

// Entry is one palette item.
type Entry struct {
	Kind        domain.Kind `json:"type"`
	Label       string      `json:"label"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
}

// palette order is significant: it is the order shown to the user.
// testimonials and newsletter are valid document kinds but are not offered.
var palette = []Entry{
	{Kind: domain.KindFeatureList, Label: "Feature List", Icon: "📋", Description: "What you'll learn section"},
	{Kind: domain.KindTextBlock, Label: "Text Block", Icon: "📝", Description: "Rich text content area"},
	{Kind: domain.KindInstructors, Label: "Instructors", Icon: "👨‍🏫", Description: "Instructor profiles"},
	{Kind: domain.KindPromoBanner, Label: "Promo Banner", Icon: "🎯", Description: "Call-to-action banner"},
	{Kind: domain.KindSkills, Label: "Skills", Icon: "🛠️", Description: "Skills and topics grid"},
	{Kind: domain.KindFAQs, Label: "FAQs", Icon: "❓", Description: "Frequently asked questions"},
}

// Describe returns the palette entries in display order.
func Describe() []Entry {
	out := make([]Entry, len(palette))
	copy(out, palette)
	return out
}

// Insertable reports whether kind is offered by the palette.
func Insertable(kind domain.Kind) bool {
	for _, e := range palette {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Known reports whether kind belongs to the fixed set.
func Known(kind domain.Kind) bool {
	_, ok := defaults[kind]
	return ok
}

// CreateDefault returns a new block of kind with placeholder content and a
// freshly minted key.
func CreateDefault(kind domain.Kind) (domain.Block, error) {
	factory, ok := defaults[kind]
	if !ok {
		return nil, fmt.Errorf("create default: %w %q", domain.ErrUnknownKind, kind)
	}
	return factory(NewKey(kind)), nil
}

// NewKey mints a block key of the form "<kind>-<uuidv7>". Version 7 UUIDs
// are time ordered and carry random bits, so keys sort by creation time and
// do not collide within a document.
func NewKey(kind domain.Kind) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(string(kind), "_", "-") + "-" + id.String()
}
