package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
)

func (s *Server) registerCatalogTools() {
	// ── list_catalog ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_catalog",
		mcp.WithDescription("List the block kinds offered by the palette, in display order"),
	), s.handleListCatalog)
}

func (s *Server) registerLayoutTools() {
	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the blocks of the page layout in render order, optionally filtered by kind"),
		mcp.WithString("kind", mcp.Description("Filter by block kind (optional)")),
	), s.handleListBlocks)

	// ── get_block ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_block",
		mcp.WithDescription("Return the full JSON of one block"),
		mcp.WithString("key", mcp.Description("Block key"), mcp.Required()),
	), s.handleGetBlock)

	// ── add_block ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_block",
		mcp.WithDescription("Append a block with placeholder content to the end of the layout"),
		mcp.WithString("kind",
			mcp.Description("Block kind: "+strings.Join(kindNames(), ", ")),
			mcp.Required(),
		),
		mcp.WithString("fields", mcp.Description("JSON object merged into the new block (optional)")),
	), s.handleAddBlock)

	// ── delete_block (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_block",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove a block from the layout. Requires user approval."),
		mcp.WithString("key", mcp.Description("Block key to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteBlock)

	// ── duplicate_block ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_block",
		mcp.WithDescription("Copy a block under a new key. The copy is appended to the end of the layout."),
		mcp.WithString("key", mcp.Description("Block key to copy"), mcp.Required()),
	), s.handleDuplicateBlock)

	// ── reorder_block ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("reorder_block",
		mcp.WithDescription("Move a block into the position currently held by another block"),
		mcp.WithString("from", mcp.Description("Key of the block to move"), mcp.Required()),
		mcp.WithString("to", mcp.Description("Key of the block whose position it takes"), mcp.Required()),
	), s.handleReorderBlock)

	// ── patch_block ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("patch_block",
		mcp.WithDescription("Replace top-level fields of a block. Pass a JSON object such as {\"title\":\"...\"}; key and component cannot be changed."),
		mcp.WithString("key", mcp.Description("Block key"), mcp.Required()),
		mcp.WithString("fields", mcp.Description("JSON object of fields to replace"), mcp.Required()),
	), s.handlePatchBlock)
}

func kindNames() []string {
	return lo.Map(domain.Kinds(), func(k domain.Kind, _ int) string { return string(k) })
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(catalog.Describe())
}

func (s *Server) handleListBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	all := summaries(s.editor.Document())
	if kind := req.GetString("kind", ""); kind != "" {
		all = lo.Filter(all, func(b domain.BlockSummary, _ int) bool { return string(b.Kind) == kind })
	}
	return jsonResult(all)
}

func (s *Server) handleGetBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	key, err := req.RequireString("key")
	if err != nil {
		return nil, err
	}
	b, err := s.findBlock(key)
	if err != nil {
		return nil, err
	}
	return jsonResult(b)
}

func (s *Server) handleAddBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	kind, err := req.RequireString("kind")
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if raw := req.GetString("fields", ""); raw != "" {
		if fields, err = parseFields(raw); err != nil {
			return nil, err
		}
	}

	_, key, err := s.editor.AddBlock(domain.Kind(kind))
	if err != nil {
		return nil, fmt.Errorf("add block: %w", err)
	}
	if len(fields) > 0 {
		if _, err := s.editor.PatchBlock(key, fields); err != nil {
			return nil, fmt.Errorf("block %s added but fields rejected: %w", key, err)
		}
	}
	b, _ := s.findBlock(key)
	return jsonResult(b)
}

func (s *Server) handleDeleteBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	key, err := req.RequireString("key")
	if err != nil {
		return nil, err
	}
	b, err := s.findBlock(key)
	if err != nil {
		return nil, err
	}

	approved, err := s.approval.Request(ctx, "delete_block",
		fmt.Sprintf("Delete %s block %s", b.Kind(), key), key)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	s.editor.DeleteBlock(key)
	return textResult(fmt.Sprintf("Block %s deleted", key)), nil
}

func (s *Server) handleDuplicateBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	key, err := req.RequireString("key")
	if err != nil {
		return nil, err
	}
	_, newKey := s.editor.DuplicateBlock(key)
	if newKey == "" {
		return nil, fmt.Errorf("no block with key %q", key)
	}
	return jsonResult(map[string]string{"key": newKey})
}

func (s *Server) handleReorderBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	from, err := req.RequireString("from")
	if err != nil {
		return nil, err
	}
	to, err := req.RequireString("to")
	if err != nil {
		return nil, err
	}
	for _, k := range []string{from, to} {
		if _, err := s.findBlock(k); err != nil {
			return nil, err
		}
	}
	st := s.editor.ReorderBlock(from, to)
	return jsonResult(st.Document.Keys())
}

func (s *Server) handlePatchBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	key, err := req.RequireString("key")
	if err != nil {
		return nil, err
	}
	raw, err := req.RequireString("fields")
	if err != nil {
		return nil, err
	}
	fields, err := parseFields(raw)
	if err != nil {
		return nil, err
	}
	if _, err := s.findBlock(key); err != nil {
		return nil, err
	}
	if _, err := s.editor.PatchBlock(key, fields); err != nil {
		return nil, err
	}
	b, _ := s.findBlock(key)
	return jsonResult(b)
}
