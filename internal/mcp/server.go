package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"coursepage/internal/service"
)

// Syncer pulls in changes written by another process before a tool runs.
type Syncer interface {
	Check(ctx context.Context) bool
}

// Server is the MCP server for the course page editor.
// It exposes tools, resources, and prompts so AI agents can edit the layout.
type Server struct {
	mcp      *server.MCPServer
	approval *ApprovalQueue
	logger   *log.Logger

	// Services (injected from app layer)
	editor  *service.EditorService
	backups *service.BackupService
	syncer  Syncer
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Editor  *service.EditorService
	Backups *service.BackupService // optional
	Syncer  Syncer                 // optional, set in standalone mode
	// Approvals carries destructive tool calls to the desktop app for a
	// decision. Without one, destructive tools run without asking.
	Approvals ApprovalStore
	Logger    *log.Logger
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		approval: NewApprovalQueue(deps.Approvals),
		logger:   logger.WithPrefix("mcp"),
		editor:   deps.Editor,
		backups:  deps.Backups,
		syncer:   deps.Syncer,
	}

	s.mcp = server.NewMCPServer(
		"coursepage-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerCatalogTools()
	s.registerLayoutTools()
	s.registerEditorTools()
	if s.backups != nil {
		s.registerBackupTools()
	}
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// sync refreshes the editor from the store when another process wrote it.
func (s *Server) sync(ctx context.Context) {
	if s.syncer != nil && s.syncer.Check(ctx) {
		s.logger.Debug("picked up external change")
	}
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }
