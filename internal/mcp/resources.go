package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"coursepage/internal/catalog"
)

const (
	documentURI    = "coursepage://document"
	catalogURI     = "coursepage://catalog"
	blockURIPrefix = "coursepage://block/"
)

func (s *Server) registerResources() {
	// ── coursepage://document ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		documentURI,
		"Course Document",
		mcp.WithResourceDescription("The full course document in export form"),
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentResource)

	// ── coursepage://catalog ───────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		catalogURI,
		"Block Catalog",
		mcp.WithMIMEType("application/json"),
	), s.handleCatalogResource)

	// ── coursepage://block/{key} ───────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			blockURIPrefix+"{key}",
			"Layout Block",
		),
		s.handleBlockResource,
	)
}

func (s *Server) handleDocumentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.sync(ctx)
	res, err := s.editor.ExportDocument()
	if err != nil {
		return nil, err
	}
	return jsonContents(documentURI, res.Data), nil
}

func (s *Server) handleCatalogResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, _ := json.MarshalIndent(catalog.Describe(), "", "  ")
	return jsonContents(catalogURI, data), nil
}

func (s *Server) handleBlockResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	key := strings.TrimPrefix(uri, blockURIPrefix)
	if key == "" || key == uri {
		return nil, fmt.Errorf("could not extract block key from URI: %s", uri)
	}
	s.sync(ctx)
	b, err := s.findBlock(key)
	if err != nil {
		return nil, err
	}
	data, _ := json.MarshalIndent(b, "", "  ")
	return jsonContents(uri, data), nil
}

func jsonContents(uri string, data []byte) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}
}
