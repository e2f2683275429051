package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Approval statuses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Approval is a destructive agent action waiting for the editor user.
type Approval struct {
	ID          string    `json:"id"`
	Tool        string    `json:"tool"`
	Description string    `json:"description"`
	BlockKey    string    `json:"blockKey,omitempty"` // highlighted on the canvas
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApprovalStore is the mcp_approvals table. The MCP process inserts and
// polls rows; the desktop app lists and resolves them.
type ApprovalStore struct {
	db *DB
}

func NewApprovalStore(db *DB) *ApprovalStore {
	return &ApprovalStore{db: db}
}

// Create inserts a as pending.
func (s *ApprovalStore) Create(ctx context.Context, a Approval) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO mcp_approvals (id, tool, description, block_key, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Tool, a.Description, a.BlockKey, ApprovalPending, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

// Status returns the status of id and whether the row exists.
func (s *ApprovalStore) Status(ctx context.Context, id string) (string, bool, error) {
	var status string
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT status FROM mcp_approvals WHERE id = ?`, id,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("approval status: %w", err)
	}
	return status, true, nil
}

// Resolve answers a pending approval. It reports false when id is unknown or
// was already answered.
func (s *ApprovalStore) Resolve(ctx context.Context, id string, approved bool) (bool, error) {
	status := ApprovalRejected
	if approved {
		status = ApprovalApproved
	}
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE mcp_approvals SET status = ? WHERE id = ? AND status = ?`,
		status, id, ApprovalPending,
	)
	if err != nil {
		return false, fmt.Errorf("resolve approval: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve approval: %w", err)
	}
	return n > 0, nil
}

// ListPending returns unanswered approvals, oldest first.
func (s *ApprovalStore) ListPending(ctx context.Context) ([]Approval, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, tool, description, block_key, status, created_at
		 FROM mcp_approvals WHERE status = ? ORDER BY created_at, id`, ApprovalPending,
	)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	var out []Approval
	for rows.Next() {
		var a Approval
		if err := rows.Scan(&a.ID, &a.Tool, &a.Description, &a.BlockKey, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes id. Deleting a missing row is not an error.
func (s *ApprovalStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM mcp_approvals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete approval: %w", err)
	}
	return nil
}
