package mcpserver

import (
	"encoding/json"
	"fmt"

	"coursepage/internal/domain"
	"coursepage/internal/layout"
)

// parseFields decodes a JSON object argument into a layout patch.
func parseFields(data string) (layout.Fields, error) {
	var fields layout.Fields
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("fields must be a JSON object: %w", err)
	}
	return fields, nil
}

// findBlock looks key up in the current document.
func (s *Server) findBlock(key string) (domain.Block, error) {
	b, ok := s.editor.Document().FindBlock(key)
	if !ok {
		return nil, fmt.Errorf("no block with key %q", key)
	}
	return b, nil
}

func summaries(doc domain.Document) []domain.BlockSummary {
	out := make([]domain.BlockSummary, len(doc.PageLayout))
	for i, b := range doc.PageLayout {
		out[i] = domain.Summarize(b)
	}
	return out
}
