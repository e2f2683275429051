// Package layout holds the pure operations that rearrange a document's
// page layout. Every function returns a new Document and leaves its input
// untouched; unchanged blocks may be shared between the two.
package layout

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/sjson"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
)

// Fields is a shallow patch keyed by top-level JSON field name.
type Fields map[string]any

// Insert appends b to the end of the layout.
func Insert(doc domain.Document, b domain.Block) (domain.Document, error) {
	return InsertAt(doc, b, len(doc.PageLayout))
}

// InsertAt places b at index i, clamped to [0, len].
func InsertAt(doc domain.Document, b domain.Block, i int) (domain.Document, error) {
	if err := domain.ValidateBlock(b); err != nil {
		return doc, fmt.Errorf("insert: %w", err)
	}
	if doc.IndexOf(b.ID()) >= 0 {
		return doc, fmt.Errorf("insert: %w: key %q already in layout", domain.ErrMalformedBlock, b.ID())
	}
	i = max(0, min(i, len(doc.PageLayout)))
	return withLayout(doc, slices.Insert(clone(doc.PageLayout), i, b)), nil
}

// Remove drops the block with key. A missing key leaves doc as is.
func Remove(doc domain.Document, key string) domain.Document {
	if doc.IndexOf(key) < 0 {
		return doc
	}
	return withLayout(doc, lo.Reject(doc.PageLayout, func(b domain.Block, _ int) bool {
		return b.ID() == key
	}))
}

// Duplicate appends a copy of the block with key under a fresh key and
// returns the new key. The copy goes to the end of the layout, not next to
// its source. A missing key returns doc and "".
func Duplicate(doc domain.Document, key string) (domain.Document, string) {
	src, ok := doc.FindBlock(key)
	if !ok {
		return doc, ""
	}
	// Blocks hold slices, so the copy goes through JSON to share nothing
	// with its source.
	raw, err := json.Marshal(src)
	if err != nil {
		return doc, ""
	}
	dup, err := domain.DecodeBlock(raw)
	if err != nil {
		return doc, ""
	}
	newKey := freshKey(doc, src.Kind())
	return withLayout(doc, append(clone(doc.PageLayout), domain.Rekey(dup, newKey))), newKey
}

// Reorder moves the block with key from into the position currently held by
// the block with key to. Positions are taken before removal, so moving the
// first of [A B C] onto C yields [B C A]. Equal or missing keys are a no-op.
func Reorder(doc domain.Document, from, to string) domain.Document {
	i, j := doc.IndexOf(from), doc.IndexOf(to)
	if i < 0 || j < 0 || i == j {
		return doc
	}
	moved := doc.PageLayout[i]
	out := slices.Delete(clone(doc.PageLayout), i, i+1)
	return withLayout(doc, slices.Insert(out, j, moved))
}

// PatchField shallow-merges fields into the block with key. The block keeps
// its key and kind: "key" and "component" entries are ignored in any letter
// case, since the JSON decoder matches field names case-insensitively. A missing key
// is a no-op. A patch that leaves the block undecodable is rejected with
// ErrMalformedBlock and doc is returned unchanged.
func PatchField(doc domain.Document, key string, fields Fields) (domain.Document, error) {
	i := doc.IndexOf(key)
	if i < 0 || len(fields) == 0 {
		return doc, nil
	}
	src := doc.PageLayout[i]

	raw, err := json.Marshal(src)
	if err != nil {
		return doc, fmt.Errorf("patch %s: %w", key, err)
	}
	names := lo.Keys(map[string]any(fields))
	slices.Sort(names)
	for _, name := range names {
		if name == "" || strings.EqualFold(name, "key") || strings.EqualFold(name, "component") {
			continue
		}
		val, err := json.Marshal(fields[name])
		if err != nil {
			return doc, fmt.Errorf("patch %s.%s: %w", key, name, err)
		}
		raw, err = sjson.SetRawBytes(raw, pathEscaper.Replace(name), val)
		if err != nil {
			return doc, fmt.Errorf("patch %s.%s: %w", key, name, err)
		}
	}

	patched, err := domain.DecodeBlock(raw)
	if err != nil {
		return doc, fmt.Errorf("patch %s: %w", key, err)
	}
	if patched.ID() != key || patched.Kind() != src.Kind() {
		return doc, fmt.Errorf("patch %s: %w: key and component are fixed", key, domain.ErrMalformedBlock)
	}
	out := clone(doc.PageLayout)
	out[i] = patched
	return withLayout(doc, out), nil
}

// SkillsFromLines turns newline separated text into skill entries, one per
// non-blank line.
func SkillsFromLines(text string) []domain.Skill {
	return lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (domain.Skill, bool) {
		line = strings.TrimSpace(line)
		return domain.Skill{Text: line}, line != ""
	})
}

// ── helpers ────────────────────────────────────────────────

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

func freshKey(doc domain.Document, kind domain.Kind) string {
	for {
		k := catalog.NewKey(kind)
		if doc.IndexOf(k) < 0 {
			return k
		}
	}
}

func clone(blocks []domain.Block) []domain.Block {
	out := make([]domain.Block, len(blocks), len(blocks)+1)
	copy(out, blocks)
	return out
}

func withLayout(doc domain.Document, blocks []domain.Block) domain.Document {
	doc.PageLayout = blocks
	return doc
}
