package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coursepage/internal/storage"
)

// ErrRejected is returned when the editor user turns an action down.
var ErrRejected = errors.New("action rejected by user")

// ApprovalStore is where pending actions wait for the desktop app to answer.
type ApprovalStore interface {
	Create(ctx context.Context, a storage.Approval) error
	Status(ctx context.Context, id string) (string, bool, error)
	Delete(ctx context.Context, id string) error
}

// ApprovalQueue holds destructive tool calls until the user approves or
// rejects them in the editor. The request is written to the store, which the
// desktop app polls, and the answer is polled back. With no store there is
// nobody to ask and every request is approved.
type ApprovalQueue struct {
	store    ApprovalStore
	timeout  time.Duration
	interval time.Duration
}

func NewApprovalQueue(store ApprovalStore) *ApprovalQueue {
	return &ApprovalQueue{
		store:    store,
		timeout:  120 * time.Second,
		interval: 500 * time.Millisecond,
	}
}

// SetTimeout changes how long Request waits for an answer.
func (q *ApprovalQueue) SetTimeout(d time.Duration) {
	q.timeout = d
}

// SetPollInterval changes how often Request checks for an answer.
func (q *ApprovalQueue) SetPollInterval(d time.Duration) {
	q.interval = d
}

// Request asks for approval and blocks until it is given, refused, timed
// out or ctx ends. A refusal returns ErrRejected. The row is removed once
// the question is settled.
func (q *ApprovalQueue) Request(ctx context.Context, tool, description, blockKey string) (bool, error) {
	if q.store == nil {
		return true, nil
	}

	id := uuid.New().String()
	if err := q.store.Create(ctx, storage.Approval{
		ID:          id,
		Tool:        tool,
		Description: description,
		BlockKey:    blockKey,
	}); err != nil {
		return false, err
	}
	defer q.store.Delete(context.Background(), id)

	deadline := time.NewTimer(q.timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status, ok, err := q.store.Status(ctx, id)
			if err != nil {
				continue
			}
			if !ok {
				return false, fmt.Errorf("approval %s for %s disappeared", id, tool)
			}
			switch status {
			case storage.ApprovalApproved:
				return true, nil
			case storage.ApprovalRejected:
				return false, fmt.Errorf("%w: %s", ErrRejected, tool)
			}
		case <-deadline.C:
			return false, fmt.Errorf("action timed out after %s: %s", q.timeout, tool)
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
