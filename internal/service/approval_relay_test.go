package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepage/internal/service"
	"coursepage/internal/storage"
)

func TestApprovalRelay_AnnouncesOnceAndDismisses(t *testing.T) {
	ctx := context.Background()
	store := storage.NewApprovalStore(openDB(t))
	emitter := &service.MockEmitter{}
	relay := service.NewApprovalRelay(store, emitter, time.Hour, quietLogger())

	require.NoError(t, store.Create(ctx, storage.Approval{ID: "a1", Tool: "delete_block", BlockKey: "faqs-1"}))
	relay.Poll(ctx)
	relay.Poll(ctx)
	assert.Equal(t, 1, emitter.Count(service.EventApprovalRequired))

	got := emitter.Recorded()[0].Data.(storage.Approval)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "faqs-1", got.BlockKey)

	// The MCP side removes the row once it has read the answer.
	require.NoError(t, store.Delete(ctx, "a1"))
	relay.Poll(ctx)
	assert.Equal(t, 1, emitter.Count(service.EventApprovalDismissed))
}

func TestApprovalRelay_ApproveAndReject(t *testing.T) {
	ctx := context.Background()
	store := storage.NewApprovalStore(openDB(t))
	relay := service.NewApprovalRelay(store, nil, time.Hour, quietLogger())

	require.NoError(t, store.Create(ctx, storage.Approval{ID: "a1", Tool: "delete_block"}))
	require.NoError(t, store.Create(ctx, storage.Approval{ID: "a2", Tool: "reset_document"}))

	pending, err := relay.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, relay.Approve(ctx, "a1"))
	require.NoError(t, relay.Reject(ctx, "a2"))
	assert.Error(t, relay.Approve(ctx, "a2"), "an answered action cannot be answered again")
	assert.Error(t, relay.Approve(ctx, "missing"))

	status, _, err := store.Status(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, storage.ApprovalApproved, status)
	status, _, err = store.Status(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, storage.ApprovalRejected, status)
}

func TestApprovalRelay_StartStop(t *testing.T) {
	ctx := context.Background()
	store := storage.NewApprovalStore(openDB(t))
	emitter := &service.MockEmitter{}
	relay := service.NewApprovalRelay(store, emitter, 5*time.Millisecond, quietLogger())

	require.NoError(t, store.Create(ctx, storage.Approval{ID: "a1", Tool: "delete_block"}))
	relay.Start(ctx)
	defer relay.Stop()

	assert.Eventually(t, func() bool {
		return emitter.Count(service.EventApprovalRequired) == 1
	}, time.Second, 5*time.Millisecond)
}
