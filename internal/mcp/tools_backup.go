package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBackupTools() {
	// ── list_backups ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_backups",
		mcp.WithDescription("List stored backups of the course document, newest first"),
	), s.handleListBackups)

	// ── create_backup ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_backup",
		mcp.WithDescription("Store a copy of the saved course document"),
		mcp.WithString("label", mcp.Description("Short note stored with the backup (optional)")),
	), s.handleCreateBackup)

	// ── restore_backup (destructive) ───────────────────
	s.mcp.AddTool(mcp.NewTool("restore_backup",
		mcp.WithDescription("🛑 DESTRUCTIVE: Replace the document with a backup. Requires user approval."),
		mcp.WithString("id", mcp.Description("Backup ID from list_backups"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRestoreBackup)
}

func (s *Server) handleListBackups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.backups.List(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResult(list)
}

func (s *Server) handleCreateBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := s.backups.Create(ctx, req.GetString("label", "mcp"))
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	return jsonResult(b)
}

func (s *Server) handleRestoreBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return nil, err
	}
	doc, err := s.backups.Restore(ctx, id)
	if err != nil {
		return nil, err
	}

	approved, err := s.approval.Request(ctx, "restore_backup", fmt.Sprintf("Restore backup %s (%q)", id, doc.Title), "")
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}
	if _, err := s.editor.LoadDocument(doc); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Restored backup %s", id)), nil
}
