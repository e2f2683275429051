package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"coursepage/internal/catalog"
	"coursepage/internal/config"
	"coursepage/internal/domain"
	"coursepage/internal/service"
	"coursepage/internal/storage"
)

// Runtime is the set of stores and services shared by the desktop shell,
// the CLI and the standalone MCP server.
type Runtime struct {
	Config    *config.Config
	Logger    *log.Logger
	DB        *storage.DB
	Store     domain.SnapshotStore
	Settings  *storage.SettingsStore
	Approvals *storage.ApprovalStore
	Persist   *service.Persistence
	Editor    *service.EditorService
	Backups   *service.BackupService

	// Restored is false when no stored document could be read and the
	// editor started on the default course.
	Restored bool
}

// Open opens the database, picks the snapshot backend and starts an editing
// session on the stored document. emitter may be nil.
func Open(ctx context.Context, cfg *config.Config, emitter service.EventEmitter, logger *log.Logger) (*Runtime, error) {
	if logger == nil {
		logger = log.Default()
	}
	if emitter == nil {
		emitter = service.NopEmitter{}
	}

	db, err := storage.New(cfg.DBPath, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var store domain.SnapshotStore
	switch cfg.Backend {
	case config.BackendFile:
		fs, err := storage.NewFileStore(cfg.SnapshotDir())
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("open snapshot dir: %w", err)
		}
		store = fs
	default:
		store = storage.NewSnapshotStore(db)
	}

	persist := service.NewPersistence(store, cfg.SnapshotKey, cfg.AutosaveDelay, emitter, logger)
	doc, restored := persist.Load(ctx)
	if !restored {
		doc = catalog.NewDocument(time.Now())
		logger.Info("starting from the default course", "snapshot", cfg.SnapshotKey)
	}

	editor := service.NewEditorService(doc, persist, emitter, logger)
	backups := service.NewBackupService(store, storage.NewBackupStore(db), persist, cfg.SnapshotKey, cfg.BackupKeep, emitter, logger)

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Store:     store,
		Settings:  storage.NewSettingsStore(db),
		Approvals: storage.NewApprovalStore(db),
		Persist:   persist,
		Editor:    editor,
		Backups:   backups,
		Restored:  restored,
	}, nil
}

// Close stops scheduled backups, writes any pending document and closes the
// database.
func (r *Runtime) Close(ctx context.Context) error {
	r.Backups.Stop(ctx)
	flushErr := r.Persist.Flush(ctx)
	return errors.Join(flushErr, r.DB.Close())
}
