package app

import (
	"coursepage/internal/storage"
)

// ============================================================
// Agent approvals
// ============================================================

// PendingActions lists the agent actions waiting for an answer, for a UI
// that opens after the mcp:approval-required event was sent.
func (a *App) PendingActions() ([]storage.Approval, error) {
	return a.approval.Pending(a.ctx)
}

func (a *App) ApproveAction(id string) error {
	return a.approval.Approve(a.ctx, id)
}

func (a *App) RejectAction(id string) error {
	return a.approval.Reject(a.ctx, id)
}
