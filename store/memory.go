package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

// MemoryConversations is an in-memory Conversations implementation for
// development and tests.
type MemoryConversations struct {
	mu            sync.RWMutex
	conversations map[string]*ConversationWithMessages
}

// NewMemoryConversations creates an empty in-memory conversation store.
func NewMemoryConversations() *MemoryConversations {
	return &MemoryConversations{
		conversations: make(map[string]*ConversationWithMessages),
	}
}

func (m *MemoryConversations) Create(ctx context.Context, userID string) (*Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	conv := Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.conversations[conv.ID] = &ConversationWithMessages{Conversation: conv}
	return &conv, nil
}

func (m *MemoryConversations) Get(ctx context.Context, id string) (*ConversationWithMessages, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy so callers can't mutate the stored history.
	out := &ConversationWithMessages{
		Conversation: conv.Conversation,
		Messages:     make([]StoredMessage, len(conv.Messages)),
	}
	copy(out.Messages, conv.Messages)
	return out, nil
}

func (m *MemoryConversations) Append(ctx context.Context, msg *AppendMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[msg.ConversationID]
	if !ok {
		return ErrNotFound
	}

	conv.Messages = append(conv.Messages, StoredMessage{
		ID:        uuid.New().String(),
		Role:      msg.Role,
		Content:   msg.Content,
		Blocks:    msg.Blocks,
		Tools:     msg.Tools,
		CreatedAt: time.Now(),
	})
	conv.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryConversations) List(ctx context.Context, userID string, limit int) ([]*Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var out []*Conversation
	for _, conv := range m.conversations {
		if conv.UserID == userID {
			c := conv.Conversation
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryConversations) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conversations[id]; !ok {
		return ErrNotFound
	}
	delete(m.conversations, id)
	return nil
}

// MemoryConfirmations is an in-memory Confirmations implementation.
// Expired actions are rejected at Confirm time rather than swept.
type MemoryConfirmations struct {
	mu      sync.Mutex
	actions map[string]*core.PendingAction // actionID -> action
}

// NewMemoryConfirmations creates an empty in-memory confirmation store.
func NewMemoryConfirmations() *MemoryConfirmations {
	return &MemoryConfirmations{
		actions: make(map[string]*core.PendingAction),
	}
}

func (m *MemoryConfirmations) Store(ctx context.Context, action *core.PendingAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions[action.ID] = action
	return nil
}

func (m *MemoryConfirmations) Get(ctx context.Context, userID, actionID string) (*core.PendingAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	action, ok := m.actions[actionID]
	if !ok || action.UserID != userID {
		return nil, ErrNotFound
	}
	return action, nil
}

func (m *MemoryConfirmations) Confirm(ctx context.Context, userID, actionID string) (*core.PendingAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	action, ok := m.actions[actionID]
	if !ok || action.UserID != userID {
		return nil, ErrNotFound
	}
	delete(m.actions, actionID)

	if action.ExpiresAt > 0 && time.Now().Unix() > action.ExpiresAt {
		return nil, ErrExpired
	}
	return action, nil
}

func (m *MemoryConfirmations) Cancel(ctx context.Context, userID, actionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	action, ok := m.actions[actionID]
	if !ok || action.UserID != userID {
		return ErrNotFound
	}
	delete(m.actions, actionID)
	return nil
}
