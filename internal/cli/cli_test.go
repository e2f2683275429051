package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
)

func timeZero() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

// newTestCLI points a CLI at a config file inside a temp dir.
func newTestCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "data_dir: " + dir + "\nbackend: file\nautosave_delay: 1h\nbackup_schedule: \"\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	c := New(io.Discard, log.InfoLevel)
	c.ConfigPath = cfgPath
	return c, dir
}

func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config", c.ConfigPath))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogJSON(t *testing.T) {
	c, _ := newTestCLI(t)
	out, err := execute(t, c, "catalog", "--json")
	require.NoError(t, err)

	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, catalog.Describe(), entries)
}

func TestBlocksOnFreshStore(t *testing.T) {
	c, _ := newTestCLI(t)
	out, err := execute(t, c, "blocks", "--json")
	require.NoError(t, err)

	var summaries []domain.BlockSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	assert.Len(t, summaries, len(catalog.NewDocument(timeZero()).PageLayout))
}

func TestImportThenExport(t *testing.T) {
	c, dir := newTestCLI(t)

	doc := catalog.NewDocument(timeZero())
	doc.Title = "Go in Practice"
	doc.Slug = "go-in-practice"
	doc.PageLayout = []domain.Block{
		domain.TextBlock{Key: "text-block-1", Title: "About", Body: "Hands on."},
		domain.FAQs{Key: "faqs-1", FAQs: []domain.FAQItem{{Question: "Q", Answer: "A"}}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	src := filepath.Join(dir, "course.json")
	require.NoError(t, os.WriteFile(src, data, 0644))

	out, err := execute(t, c, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Go in Practice")

	out, err = execute(t, c, "export")
	require.NoError(t, err)
	got, err := domain.ParseDocument([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "Go in Practice", got.Title)
	assert.Equal(t, []string{"text-block-1", "faqs-1"}, got.Keys())

	dest := filepath.Join(dir, "out.json")
	_, err = execute(t, c, "export", "-o", dest)
	require.NoError(t, err)
	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "{\n  \"title\""))
}

func TestImportRejectsMalformedFile(t *testing.T) {
	c, dir := newTestCLI(t)
	src := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"pageLayout":[{"component":"carousel","key":"x"}]}`), 0644))

	_, err := execute(t, c, "import", src)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestBackupCreateListRestore(t *testing.T) {
	c, _ := newTestCLI(t)

	_, err := execute(t, c, "reset", "--backup=false")
	require.NoError(t, err)
	_, err = execute(t, c, "backup", "create", "--label", "first")
	require.NoError(t, err)

	out, err := execute(t, c, "backup", "list", "--json")
	require.NoError(t, err)
	var backups []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &backups))
	require.Len(t, backups, 1)
	assert.Equal(t, "first", backups[0].Label)

	out, err = execute(t, c, "backup", "restore", backups[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "New Course")
}

func TestResetBacksUpExistingDocument(t *testing.T) {
	c, _ := newTestCLI(t)

	_, err := execute(t, c, "reset", "--backup=false")
	require.NoError(t, err)
	out, err := execute(t, c, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Backed up as")
}

func TestBackupRestoreUnknownID(t *testing.T) {
	c, _ := newTestCLI(t)
	_, err := execute(t, c, "backup", "restore", "missing")
	assert.ErrorIs(t, err, domain.ErrBackupNotFound)
}
