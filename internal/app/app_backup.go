package app

import (
	"coursepage/internal/domain"
	"coursepage/internal/storage"
)

// ============================================================
// Backups
// ============================================================

func (a *App) ListBackups() ([]storage.Backup, error) {
	return a.rt.Backups.List(a.ctx)
}

func (a *App) CreateBackup(label string) (*storage.Backup, error) {
	if label == "" {
		label = "manual"
	}
	return a.rt.Backups.Create(a.ctx, label)
}

// RestoreBackup loads a backup into the editor. The restored document is
// saved like any other edit.
func (a *App) RestoreBackup(id string) (domain.EditorState, error) {
	doc, err := a.rt.Backups.Restore(a.ctx, id)
	if err != nil {
		return a.rt.Editor.State(), err
	}
	return a.rt.Editor.LoadDocument(doc)
}
