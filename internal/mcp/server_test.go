package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
	"coursepage/internal/service"
	"coursepage/internal/storage"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T, approvals ApprovalStore) *Server {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)
	logger := log.New(io.Discard)
	persist := service.NewPersistence(store, "course-editor-data", time.Hour, nil, logger)
	doc := catalog.NewDocument(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.PageLayout = []domain.Block{
		domain.TextBlock{Key: "a", Title: "About"},
		domain.FAQs{Key: "b"},
		domain.Skills{Key: "c", Title: "Skills"},
	}
	editor := service.NewEditorService(doc, persist, nil, logger)
	s := New(Deps{Editor: editor, Approvals: approvals, Logger: logger})
	s.approval.SetPollInterval(5 * time.Millisecond)
	return s
}

func callTool(t *testing.T, h toolHandler, args map[string]any) string {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func callToolErr(h toolHandler, args map[string]any) error {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	_, err := h(context.Background(), req)
	return err
}

func TestListCatalog(t *testing.T) {
	s := newTestServer(t, nil)
	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal([]byte(callTool(t, s.handleListCatalog, nil)), &entries))
	assert.Len(t, entries, 6)
	assert.Equal(t, domain.KindFeatureList, entries[0].Kind)
}

func TestListBlocks_FilterByKind(t *testing.T) {
	s := newTestServer(t, nil)

	var all []domain.BlockSummary
	require.NoError(t, json.Unmarshal([]byte(callTool(t, s.handleListBlocks, nil)), &all))
	assert.Len(t, all, 3)

	var faqs []domain.BlockSummary
	out := callTool(t, s.handleListBlocks, map[string]any{"kind": "faqs"})
	require.NoError(t, json.Unmarshal([]byte(out), &faqs))
	require.Len(t, faqs, 1)
	assert.Equal(t, "b", faqs[0].Key)
}

func TestAddAndPatchBlock(t *testing.T) {
	s := newTestServer(t, nil)

	out := callTool(t, s.handleAddBlock, map[string]any{
		"kind":   "newsletter",
		"fields": `{"title":"Join the list"}`,
	})
	b, err := domain.DecodeBlock([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "Join the list", b.(domain.Newsletter).Title)
	assert.Len(t, s.editor.Document().PageLayout, 4)

	out = callTool(t, s.handlePatchBlock, map[string]any{
		"key":    "a",
		"fields": `{"body":"Patched body"}`,
	})
	b, err = domain.DecodeBlock([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "Patched body", b.(domain.TextBlock).Body)

	assert.Error(t, callToolErr(s.handleAddBlock, map[string]any{"kind": "carousel"}))
	assert.Error(t, callToolErr(s.handlePatchBlock, map[string]any{"key": "a", "fields": "not json"}))
	assert.Error(t, callToolErr(s.handlePatchBlock, map[string]any{"key": "zzz", "fields": "{}"}))
}

func TestGetBlock(t *testing.T) {
	s := newTestServer(t, nil)
	out := callTool(t, s.handleGetBlock, map[string]any{"key": "c"})
	assert.Contains(t, out, `"component": "skills"`)
	assert.Error(t, callToolErr(s.handleGetBlock, map[string]any{"key": "nope"}))
	assert.Error(t, callToolErr(s.handleGetBlock, nil))
}

func TestDuplicateAndReorder(t *testing.T) {
	s := newTestServer(t, nil)

	var dup map[string]string
	require.NoError(t, json.Unmarshal([]byte(callTool(t, s.handleDuplicateBlock, map[string]any{"key": "a"})), &dup))
	assert.NotEmpty(t, dup["key"])
	assert.Equal(t, dup["key"], s.editor.Document().PageLayout[3].ID())

	var keys []string
	out := callTool(t, s.handleReorderBlock, map[string]any{"from": "a", "to": "c"})
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	assert.Equal(t, []string{"b", "c", "a", dup["key"]}, keys)

	assert.Error(t, callToolErr(s.handleReorderBlock, map[string]any{"from": "a", "to": "missing"}))
}

func TestDeleteBlock_AutoApprovedWithoutUI(t *testing.T) {
	s := newTestServer(t, nil)
	s.editor.Select("b")
	assert.Equal(t, "Block b deleted", callTool(t, s.handleDeleteBlock, map[string]any{"key": "b"}))
	assert.Equal(t, []string{"a", "c"}, s.editor.Document().Keys())
	assert.Equal(t, domain.SelectionNone, s.editor.State().SelectedKey)
}

func openApprovals(t *testing.T) *storage.ApprovalStore {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "coursepage.db"), dir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewApprovalStore(db)
}

// answerNext plays the desktop app: it waits for one pending approval and
// resolves it.
func answerNext(t *testing.T, store *storage.ApprovalStore, approve bool) <-chan storage.Approval {
	t.Helper()
	seen := make(chan storage.Approval, 1)
	go func() {
		defer close(seen)
		for range 200 {
			pending, err := store.ListPending(context.Background())
			if err == nil && len(pending) > 0 {
				store.Resolve(context.Background(), pending[0].ID, approve)
				seen <- pending[0]
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
	return seen
}

func TestDeleteBlock_WaitsForApproval(t *testing.T) {
	approvals := openApprovals(t)
	s := newTestServer(t, approvals)

	seen := answerNext(t, approvals, true)
	assert.Equal(t, "Block a deleted", callTool(t, s.handleDeleteBlock, map[string]any{"key": "a"}))
	action := <-seen
	assert.Equal(t, "delete_block", action.Tool)
	assert.Equal(t, "a", action.BlockKey)

	seen = answerNext(t, approvals, false)
	assert.Equal(t, "Action rejected by user", callTool(t, s.handleDeleteBlock, map[string]any{"key": "b"}))
	<-seen
	assert.Equal(t, []string{"b", "c"}, s.editor.Document().Keys())

	// Settled requests leave nothing behind for the app to show.
	pending, err := approvals.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApprovalQueue_Rejected(t *testing.T) {
	approvals := openApprovals(t)
	q := NewApprovalQueue(approvals)
	q.SetPollInterval(5 * time.Millisecond)

	seen := answerNext(t, approvals, false)
	ok, err := q.Request(context.Background(), "reset_document", "reset", "")
	<-seen
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestApprovalQueue_Timeout(t *testing.T) {
	approvals := openApprovals(t)
	q := NewApprovalQueue(approvals)
	q.SetTimeout(20 * time.Millisecond)
	q.SetPollInterval(5 * time.Millisecond)

	ok, err := q.Request(context.Background(), "reset_document", "reset", "")
	assert.False(t, ok)
	assert.Error(t, err)

	pending, err := approvals.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApprovalQueue_NoStoreApproves(t *testing.T) {
	ok, err := NewApprovalQueue(nil).Request(context.Background(), "delete_block", "x", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSelectToggleExport(t *testing.T) {
	s := newTestServer(t, nil)

	out := callTool(t, s.handleSelectBlock, map[string]any{"key": "hero"})
	assert.Contains(t, out, `"selected": "hero"`)
	assert.Equal(t, "Mode is now preview", callTool(t, s.handleToggleMode, nil))
	assert.Equal(t, domain.SelectionHero, s.editor.State().SelectedKey)

	doc, err := domain.ParseDocument([]byte(callTool(t, s.handleExportDocument, nil)))
	require.NoError(t, err)
	assert.Equal(t, s.editor.Document(), doc)
}

func TestResetDocument(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Contains(t, callTool(t, s.handleResetDocument, nil), "New Course")
	assert.Empty(t, s.editor.Document().PageLayout)
}

func TestResources(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	req := mcp.ReadResourceRequest{}
	req.Params.URI = documentURI
	contents, err := s.handleDocumentResource(ctx, req)
	require.NoError(t, err)
	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Contains(t, text.Text, `"pageLayout"`)

	req.Params.URI = blockURIPrefix + "b"
	contents, err = s.handleBlockResource(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"component": "faqs"`)

	req.Params.URI = blockURIPrefix + "nope"
	_, err = s.handleBlockResource(ctx, req)
	assert.Error(t, err)

	req.Params.URI = catalogURI
	contents, err = s.handleCatalogResource(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"type": "feature_list"`)
}
