package core

// Context identifies who an agent run is acting for and which
// conversation it belongs to.
type Context struct {
	UserID         string
	SessionID      string
	ConversationID string
	RequestID      string
}

// NewContext creates an agent context.
func NewContext(userID, sessionID, conversationID, requestID string) *Context {
	return &Context{
		UserID:         userID,
		SessionID:      sessionID,
		ConversationID: conversationID,
		RequestID:      requestID,
	}
}

// Capabilities describes what an agent is allowed to do and the model
// budget it runs under.
type Capabilities struct {
	CanRequestConfirmation bool
	AvailableTools         []string
	Model                  string
	MaxTokens              int64
	MaxTurns               int
	SystemPrompt           string
}

// PendingAction is a write-tool invocation awaiting user confirmation.
type PendingAction struct {
	ID        string
	UserID    string
	Tool      string
	Input     []byte
	BlockID   string
	Summary   string
	ExpiresAt int64
}
