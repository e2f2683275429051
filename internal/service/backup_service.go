package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"coursepage/internal/domain"
	"coursepage/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Backup Service: scheduled and manual snapshot copies
// ─────────────────────────────────────────────────────────────

// ErrBackupBusy is returned when a backup of the same snapshot is running.
var ErrBackupBusy = errors.New("backup already running")

// ErrNothingToBackUp is returned when the snapshot entry does not exist yet.
var ErrNothingToBackUp = errors.New("no snapshot to back up")

// Flusher writes any pending document before a backup reads the store.
type Flusher interface {
	Flush(ctx context.Context) error
}

// BackupService copies the snapshot entry into the backups table, on a cron
// schedule and on demand, keeping the newest Keep copies.
type BackupService struct {
	snapshots domain.SnapshotStore
	backups   *storage.BackupStore
	flusher   Flusher
	name      string
	keep      int
	emitter   EventEmitter
	logger    *log.Logger

	cron  *cron.Cron
	guard jobGuard
}

// NewBackupService creates a BackupService for the snapshot called name.
// flusher may be nil.
func NewBackupService(snapshots domain.SnapshotStore, backups *storage.BackupStore, flusher Flusher, name string, keep int, emitter EventEmitter, logger *log.Logger) *BackupService {
	if logger == nil {
		logger = log.Default()
	}
	return &BackupService{
		snapshots: snapshots,
		backups:   backups,
		flusher:   flusher,
		name:      name,
		keep:      keep,
		emitter:   emitter,
		logger:    logger.WithPrefix("backup"),
	}
}

// Start schedules automatic backups. An empty schedule disables them.
func (s *BackupService) Start(schedule string) error {
	if schedule == "" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, s.runScheduled); err != nil {
		return fmt.Errorf("backup schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("scheduled backups", "schedule", schedule, "keep", s.keep)
	return nil
}

// Stop halts the scheduler and waits for a running backup to finish.
func (s *BackupService) Stop(ctx context.Context) {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
	s.guard.WaitAll(ctx)
}

func (s *BackupService) runScheduled() {
	ctx := context.Background()
	if _, err := s.Create(ctx, "scheduled"); err != nil {
		if errors.Is(err, ErrNothingToBackUp) || errors.Is(err, ErrBackupBusy) {
			s.logger.Debug("scheduled backup skipped", "reason", err)
			return
		}
		s.logger.Error("scheduled backup failed", "err", err)
	}
}

// Create stores a copy of the current snapshot.
func (s *BackupService) Create(ctx context.Context, label string) (*storage.Backup, error) {
	if !s.guard.TryLock(s.name) {
		return nil, ErrBackupBusy
	}
	defer s.guard.Unlock(s.name)

	if s.flusher != nil {
		if err := s.flusher.Flush(ctx); err != nil {
			return nil, err
		}
	}

	data, ok, err := s.snapshots.Get(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("%w: backup read: %v", domain.ErrStorage, err)
	}
	if !ok {
		return nil, ErrNothingToBackUp
	}

	b, err := s.backups.Create(ctx, s.name, label, data, s.keep)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	s.logger.Info("backup created", "id", b.ID, "label", label, "bytes", b.SizeBytes)
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventBackupCreated, *b)
	}
	return b, nil
}

// List returns the backups of this snapshot, newest first.
func (s *BackupService) List(ctx context.Context) ([]storage.Backup, error) {
	return s.backups.List(ctx, s.name)
}

// Restore decodes backup id. The caller decides how to apply it, usually
// through EditorService.LoadDocument.
func (s *BackupService) Restore(ctx context.Context, id string) (domain.Document, error) {
	b, err := s.backups.Get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	if b.SnapshotName != s.name {
		return domain.Document{}, fmt.Errorf("backup %s belongs to %q: %w", id, b.SnapshotName, domain.ErrBackupNotFound)
	}
	doc, err := domain.ParseDocument(b.Data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("restore %s: %w", id, err)
	}
	return doc, nil
}
