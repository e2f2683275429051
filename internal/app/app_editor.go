package app

import (
	"fmt"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"coursepage/internal/catalog"
	"coursepage/internal/domain"
	"coursepage/internal/layout"
	"coursepage/internal/service"
)

// ============================================================
// Editor state
// ============================================================

func (a *App) GetState() domain.EditorState {
	return a.rt.Editor.State()
}

func (a *App) GetCatalog() []catalog.Entry {
	return catalog.Describe()
}

// SelectComponent selects a block key, "hero", or nothing for "".
func (a *App) SelectComponent(id string) domain.EditorState {
	return a.rt.Editor.Select(domain.Selection(id))
}

func (a *App) SelectHero() domain.EditorState {
	return a.rt.Editor.SelectHero()
}

func (a *App) Deselect() domain.EditorState {
	return a.rt.Editor.Deselect()
}

func (a *App) ToggleMode() domain.EditorState {
	return a.rt.Editor.ToggleMode()
}

// ============================================================
// Layout
// ============================================================

func (a *App) AddBlock(kind string) (domain.EditorState, error) {
	st, _, err := a.rt.Editor.AddBlock(domain.Kind(kind))
	return st, err
}

func (a *App) DeleteBlock(key string) domain.EditorState {
	return a.rt.Editor.DeleteBlock(key)
}

func (a *App) DuplicateBlock(key string) domain.EditorState {
	st, _ := a.rt.Editor.DuplicateBlock(key)
	return st
}

func (a *App) ReorderBlock(from, to string) domain.EditorState {
	return a.rt.Editor.ReorderBlock(from, to)
}

// PatchBlock merges form values into a block. Nested values replace the
// stored ones whole.
func (a *App) PatchBlock(key string, fields map[string]any) (domain.EditorState, error) {
	return a.rt.Editor.PatchBlock(key, layout.Fields(fields))
}

// SetSkillsText replaces a skills block's list from newline separated text.
func (a *App) SetSkillsText(key, text string) (domain.EditorState, error) {
	return a.rt.Editor.PatchBlock(key, layout.Fields{"skills": layout.SkillsFromLines(text)})
}

func (a *App) UpdateHero(h service.HeroFields) domain.EditorState {
	return a.rt.Editor.UpdateHero(h)
}

// UpdateCourseData replaces the document from the course settings form.
// The selection is kept.
func (a *App) UpdateCourseData(doc domain.Document) (domain.EditorState, error) {
	return a.rt.Editor.UpdateDocument(func(domain.Document) domain.Document { return doc })
}

// ============================================================
// Drag and drop
// ============================================================

func (a *App) DragStart(activeID string) {
	a.rt.Editor.DragStart(activeID)
}

func (a *App) DragOver(overID string) {
	a.rt.Editor.DragOver(overID)
}

func (a *App) DragEnd(activeID, overID string) domain.EditorState {
	a.rt.Editor.DragEnd(activeID, overID)
	return a.rt.Editor.State()
}

func (a *App) DragCancel() domain.EditorState {
	a.rt.Editor.DragCancel()
	return a.rt.Editor.State()
}

// ============================================================
// Documents
// ============================================================

// ResetDocument starts over from the default course.
func (a *App) ResetDocument() domain.EditorState {
	return a.rt.Editor.ResetDocument()
}

// ExportDocument asks where to save the export and writes it. An empty path
// means the user cancelled.
func (a *App) ExportDocument() (string, error) {
	res, err := a.rt.Editor.ExportDocument()
	if err != nil {
		return "", err
	}
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export course",
		DefaultFilename: res.Filename,
		Filters:         jsonFilters,
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := os.WriteFile(path, res.Data, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	a.rt.Logger.Info("document exported", "path", path, "bytes", len(res.Data))
	return path, nil
}

// LoadDocument asks for a course JSON file and replaces the open document
// with it. The selection is cleared.
func (a *App) LoadDocument() (domain.EditorState, error) {
	path, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:   "Load course",
		Filters: jsonFilters,
	})
	if err != nil || path == "" {
		return a.rt.Editor.State(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return a.rt.Editor.State(), fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := domain.ParseDocument(data)
	if err != nil {
		return a.rt.Editor.State(), err
	}
	return a.rt.Editor.LoadDocument(doc)
}

var jsonFilters = []wailsRuntime.FileFilter{
	{DisplayName: "Course JSON (*.json)", Pattern: "*.json"},
}
