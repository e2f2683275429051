package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coursepage/internal/domain"
)

// Backup is a stored copy of a snapshot. Data is omitted from listings.
type Backup struct {
	ID           string    `json:"id"`
	SnapshotName string    `json:"snapshotName"`
	Label        string    `json:"label"`
	SizeBytes    int       `json:"sizeBytes"`
	CreatedAt    time.Time `json:"createdAt"`
	Data         []byte    `json:"-"`
}

// BackupStore manages snapshot backups in SQLite.
type BackupStore struct {
	db *DB
}

func NewBackupStore(db *DB) *BackupStore {
	return &BackupStore{db: db}
}

// Create stores data as a new backup of snapshotName and prunes the oldest
// entries beyond keep. keep <= 0 disables pruning.
func (s *BackupStore) Create(ctx context.Context, snapshotName, label string, data []byte, keep int) (*Backup, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("backup id: %w", err)
	}
	b := &Backup{
		ID:           id.String(),
		SnapshotName: snapshotName,
		Label:        label,
		SizeBytes:    len(data),
		CreatedAt:    time.Now().UTC(),
		Data:         data,
	}
	_, err = s.db.Conn().ExecContext(ctx,
		`INSERT INTO backups (id, snapshot_name, label, data, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.SnapshotName, b.Label, string(data), b.SizeBytes, b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert backup: %w", err)
	}

	if keep > 0 {
		if err := s.prune(ctx, snapshotName, keep); err != nil {
			return b, err
		}
	}
	return b, nil
}

// List returns the backups of snapshotName, newest first, without data.
// IDs are UUIDv7 and sort by creation time.
func (s *BackupStore) List(ctx context.Context, snapshotName string) ([]Backup, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, snapshot_name, label, size_bytes, created_at
		 FROM backups WHERE snapshot_name = ? ORDER BY id DESC`, snapshotName,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var out []Backup
	for rows.Next() {
		var b Backup
		if err := rows.Scan(&b.ID, &b.SnapshotName, &b.Label, &b.SizeBytes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Get returns one backup including its data.
func (s *BackupStore) Get(ctx context.Context, id string) (*Backup, error) {
	var (
		b    Backup
		data string
	)
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, snapshot_name, label, size_bytes, created_at, data FROM backups WHERE id = ?`, id,
	).Scan(&b.ID, &b.SnapshotName, &b.Label, &b.SizeBytes, &b.CreatedAt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("backup %s: %w", id, domain.ErrBackupNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get backup %s: %w", id, err)
	}
	b.Data = []byte(data)
	return &b, nil
}

// prune removes the oldest backups of snapshotName beyond keep.
func (s *BackupStore) prune(ctx context.Context, snapshotName string, keep int) error {
	// Collect IDs first and close rows before writing (single connection).
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id FROM backups WHERE snapshot_name = ?
		 ORDER BY id DESC LIMIT -1 OFFSET ?`, snapshotName, keep,
	)
	if err != nil {
		return fmt.Errorf("prune backups: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	rows.Close()

	for _, id := range ids {
		if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM backups WHERE id = ?`, id); err != nil {
			return fmt.Errorf("prune backup %s: %w", id, err)
		}
	}
	return nil
}
