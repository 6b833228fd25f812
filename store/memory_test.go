package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

func TestMemoryConversations_CreateAppendGet(t *testing.T) {
	ctx := context.Background()
	conversations := NewMemoryConversations()

	conv, err := conversations.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, conv.ID)
	assert.Equal(t, "user-1", conv.UserID)

	err = conversations.Append(ctx, &AppendMessage{
		ConversationID: conv.ID,
		Role:           "user",
		Content:        "scan the market",
	})
	require.NoError(t, err)

	err = conversations.Append(ctx, &AppendMessage{
		ConversationID: conv.ID,
		Role:           "assistant",
		Content:        "Found 4 yield opportunities.",
	})
	require.NoError(t, err)

	got, err := conversations.Get(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Found 4 yield opportunities.", got.Messages[1].Content)

	// Mutating the returned copy must not leak into the store.
	got.Messages[0].Content = "tampered"
	again, err := conversations.Get(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "scan the market", again.Messages[0].Content)
}

func TestMemoryConversations_GetMissing(t *testing.T) {
	conversations := NewMemoryConversations()

	_, err := conversations.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	err = conversations.Append(context.Background(), &AppendMessage{ConversationID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConversations_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	conversations := NewMemoryConversations()

	first, err := conversations.Create(ctx, "user-1")
	require.NoError(t, err)
	_, err = conversations.Create(ctx, "user-2")
	require.NoError(t, err)
	second, err := conversations.Create(ctx, "user-1")
	require.NoError(t, err)

	// Appending bumps UpdatedAt, so first should now sort ahead of second.
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, conversations.Append(ctx, &AppendMessage{
		ConversationID: first.ID,
		Role:           "user",
		Content:        "hello",
	}))

	list, err := conversations.List(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.NoError(t, conversations.Delete(ctx, second.ID))
	list, err = conversations.List(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, conversations.Delete(ctx, second.ID), ErrNotFound)
}

func TestMemoryConfirmations_ConfirmConsumes(t *testing.T) {
	ctx := context.Background()
	confirmations := NewMemoryConfirmations()

	require.NoError(t, confirmations.Store(ctx, &core.PendingAction{
		ID:        "act-1",
		UserID:    "user-1",
		Tool:      "run_cycle",
		Summary:   "Run a full strategy cycle (may open new positions)",
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}))

	action, err := confirmations.Confirm(ctx, "user-1", "act-1")
	require.NoError(t, err)
	assert.Equal(t, "run_cycle", action.Tool)

	// Confirming is one-shot.
	_, err = confirmations.Confirm(ctx, "user-1", "act-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConfirmations_Expired(t *testing.T) {
	ctx := context.Background()
	confirmations := NewMemoryConfirmations()

	require.NoError(t, confirmations.Store(ctx, &core.PendingAction{
		ID:        "act-1",
		UserID:    "user-1",
		Tool:      "emergency_pause",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}))

	_, err := confirmations.Confirm(ctx, "user-1", "act-1")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMemoryConfirmations_WrongUser(t *testing.T) {
	ctx := context.Background()
	confirmations := NewMemoryConfirmations()

	require.NoError(t, confirmations.Store(ctx, &core.PendingAction{
		ID:        "act-1",
		UserID:    "user-1",
		Tool:      "submit_vote",
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}))

	_, err := confirmations.Get(ctx, "user-2", "act-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = confirmations.Confirm(ctx, "user-2", "act-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// The action is still there for its owner.
	action, err := confirmations.Get(ctx, "user-1", "act-1")
	require.NoError(t, err)
	assert.Equal(t, "submit_vote", action.Tool)
}

func TestMemoryConfirmations_Cancel(t *testing.T) {
	ctx := context.Background()
	confirmations := NewMemoryConfirmations()

	require.NoError(t, confirmations.Store(ctx, &core.PendingAction{
		ID:        "act-1",
		UserID:    "user-1",
		Tool:      "rebalance_position",
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}))

	require.NoError(t, confirmations.Cancel(ctx, "user-1", "act-1"))
	_, err := confirmations.Get(ctx, "user-1", "act-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
