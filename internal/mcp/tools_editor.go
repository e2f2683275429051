package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"coursepage/internal/domain"
)

func (s *Server) registerEditorTools() {
	// ── select_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_block",
		mcp.WithDescription("Point the properties panel at a block, at the hero (\"hero\"), or clear it (empty)"),
		mcp.WithString("key", mcp.Description("Block key, \"hero\", or empty to deselect")),
	), s.handleSelectBlock)

	// ── toggle_mode ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("toggle_mode",
		mcp.WithDescription("Switch between edit and preview mode"),
	), s.handleToggleMode)

	// ── export_document ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_document",
		mcp.WithDescription("Return the whole course document as indented JSON"),
	), s.handleExportDocument)

	// ── reset_document (destructive) ───────────────────
	s.mcp.AddTool(mcp.NewTool("reset_document",
		mcp.WithDescription("🛑 DESTRUCTIVE: Replace the document with the default starter course. Requires user approval."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleResetDocument)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleSelectBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.editor.Select(domain.Selection(req.GetString("key", "")))
	return jsonResult(map[string]any{
		"selected": st.SelectedKey,
		"mode":     st.Mode,
	})
}

func (s *Server) handleToggleMode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.editor.ToggleMode()
	return textResult(fmt.Sprintf("Mode is now %s", st.Mode)), nil
}

func (s *Server) handleExportDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	res, err := s.editor.ExportDocument()
	if err != nil {
		return nil, err
	}
	return textResult(string(res.Data)), nil
}

func (s *Server) handleResetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	approved, err := s.approval.Request(ctx, "reset_document", "Replace the course with the starter document", "")
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}
	st := s.editor.ResetDocument()
	return textResult(fmt.Sprintf("Document reset to %q", st.Document.Title)), nil
}
