package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SnapshotStore keeps named document snapshots in the snapshots table.
// It satisfies domain.SnapshotStore.
type SnapshotStore struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Get returns the stored bytes for name and whether the entry exists.
func (s *SnapshotStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var data string
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE name = ?`, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot %s: %w", name, err)
	}
	return []byte(data), true, nil
}

// Put writes data under name, replacing any previous entry.
func (s *SnapshotStore) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO snapshots (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put snapshot %s: %w", name, err)
	}
	return nil
}

// Delete removes the entry for name. Deleting a missing entry is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	return nil
}
