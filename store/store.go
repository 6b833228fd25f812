// Package store defines persistence interfaces for conversations and
// pending tool confirmations, with in-memory and SQLite implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

// ErrNotFound is returned when a conversation or action does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrExpired is returned when a pending action's TTL has elapsed.
var ErrExpired = errors.New("store: action expired")

// Conversation is conversation metadata without messages.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredMessage is a persisted conversation message.
type StoredMessage struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Blocks    interface{} `json:"blocks,omitempty"`
	Tools     interface{} `json:"tools,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ConversationWithMessages is a conversation plus its full message history.
type ConversationWithMessages struct {
	Conversation
	Messages []StoredMessage `json:"messages"`
}

// AppendMessage is the input for appending a message to a conversation.
type AppendMessage struct {
	ConversationID string
	Role           string
	Content        string
	Blocks         interface{}
	Tools          interface{}
}

// Conversations persists conversations and their messages.
type Conversations interface {
	// Create starts a new conversation for the user.
	Create(ctx context.Context, userID string) (*Conversation, error)

	// Get returns a conversation with all its messages.
	Get(ctx context.Context, id string) (*ConversationWithMessages, error)

	// Append adds a message to a conversation.
	Append(ctx context.Context, msg *AppendMessage) error

	// List returns the user's conversations, most recently updated first.
	List(ctx context.Context, userID string, limit int) ([]*Conversation, error)

	// Delete removes a conversation and its messages.
	Delete(ctx context.Context, id string) error
}

// Confirmations holds tool actions awaiting user approval.
type Confirmations interface {
	// Store saves a pending action.
	Store(ctx context.Context, action *core.PendingAction) error

	// Get returns a pending action without consuming it.
	Get(ctx context.Context, userID, actionID string) (*core.PendingAction, error)

	// Confirm removes and returns a pending action. Expired actions
	// return ErrExpired.
	Confirm(ctx context.Context, userID, actionID string) (*core.PendingAction, error)

	// Cancel discards a pending action.
	Cancel(ctx context.Context, userID, actionID string) error
}
