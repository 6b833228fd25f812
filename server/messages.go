package server

import "github.com/mkpollard101/agentic-ai-starter/store"

// ClientMessage is a message received from the WebSocket client.
type ClientMessage struct {
	// Type is one of: new_conversation, resume_conversation, message,
	// confirm, cancel.
	Type string `json:"type"`

	// Content is the user's message text (type "message").
	Content string `json:"content,omitempty"`

	// ConversationID identifies the conversation to resume.
	ConversationID string `json:"conversation_id,omitempty"`

	// ActionID identifies the pending action to confirm or cancel.
	ActionID string `json:"action_id,omitempty"`
}

// ServerMessage is a message sent to the WebSocket client.
type ServerMessage struct {
	// Type is one of: conversation_started, conversation_resumed, text,
	// text_chunk, confirm_request, complete, error.
	Type string `json:"type"`

	Content        string                `json:"content,omitempty"`
	ConversationID string                `json:"conversation_id,omitempty"`
	Messages       []store.StoredMessage `json:"messages,omitempty"`

	// Confirmation fields (type "confirm_request").
	ActionID  string `json:"action_id,omitempty"`
	Tool      string `json:"tool,omitempty"`
	Summary   string `json:"summary,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`

	// TokenUsage reports token consumption (type "complete").
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`
}

// TokenUsage reports token consumption for a completed turn.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}
