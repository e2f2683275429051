package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"coursepage/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Approval relay: agent actions waiting in SQLite → editor UI
// ─────────────────────────────────────────────────────────────

// ApprovalRelay shows the user the destructive actions a standalone MCP
// process is waiting on, and writes back the answers. Each pending row is
// announced once with EventApprovalRequired; when the row goes away (the
// MCP side timed out, or the answer was picked up) EventApprovalDismissed
// follows.
type ApprovalRelay struct {
	store    *storage.ApprovalStore
	emitter  EventEmitter
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	emitted map[string]struct{}
	stopCh  chan struct{}
}

func NewApprovalRelay(store *storage.ApprovalStore, emitter EventEmitter, interval time.Duration, logger *log.Logger) *ApprovalRelay {
	if logger == nil {
		logger = log.Default()
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &ApprovalRelay{
		store:    store,
		emitter:  emitter,
		interval: interval,
		logger:   logger.WithPrefix("approvals"),
		emitted:  make(map[string]struct{}),
	}
}

// Start begins the polling loop.
func (r *ApprovalRelay) Start(ctx context.Context) {
	r.mu.Lock()
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()
	go r.pollLoop(ctx, stopCh)
}

// Stop terminates the polling loop.
func (r *ApprovalRelay) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopCh != nil {
		close(r.stopCh)
		r.stopCh = nil
	}
}

func (r *ApprovalRelay) pollLoop(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Poll(ctx)
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Poll announces new pending actions and dismisses vanished ones.
func (r *ApprovalRelay) Poll(ctx context.Context) {
	pending, err := r.store.ListPending(ctx)
	if err != nil {
		r.logger.Warn("list pending approvals", "err", err)
		return
	}

	live := make(map[string]struct{}, len(pending))
	var fresh []storage.Approval
	var gone []string

	r.mu.Lock()
	for _, a := range pending {
		live[a.ID] = struct{}{}
		if _, sent := r.emitted[a.ID]; !sent {
			r.emitted[a.ID] = struct{}{}
			fresh = append(fresh, a)
		}
	}
	for id := range r.emitted {
		if _, ok := live[id]; !ok {
			delete(r.emitted, id)
			gone = append(gone, id)
		}
	}
	r.mu.Unlock()

	for _, a := range fresh {
		r.logger.Info("agent action needs approval", "tool", a.Tool, "block", a.BlockKey)
		r.emitter.Emit(ctx, EventApprovalRequired, a)
	}
	for _, id := range gone {
		r.emitter.Emit(ctx, EventApprovalDismissed, map[string]string{"id": id})
	}
}

// Pending lists the actions waiting for an answer.
func (r *ApprovalRelay) Pending(ctx context.Context) ([]storage.Approval, error) {
	return r.store.ListPending(ctx)
}

// Approve lets the waiting action run.
func (r *ApprovalRelay) Approve(ctx context.Context, id string) error {
	return r.resolve(ctx, id, true)
}

// Reject turns the waiting action down.
func (r *ApprovalRelay) Reject(ctx context.Context, id string) error {
	return r.resolve(ctx, id, false)
}

func (r *ApprovalRelay) resolve(ctx context.Context, id string, approved bool) error {
	ok, err := r.store.Resolve(ctx, id, approved)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("approval %s is no longer pending", id)
	}
	r.logger.Debug("approval answered", "id", id, "approved", approved)
	return nil
}
