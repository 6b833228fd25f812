package core

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ToolResultContent is one tool result carried inside a user-role message.
type ToolResultContent struct {
	ToolUseID string
	Content   string
	IsError   bool
}

// Message is a single conversation turn. Plain text turns carry Content;
// turns with tool use or tool results carry Blocks.
type Message struct {
	Role    Role
	Content string
	Blocks  []anthropic.ContentBlockParamUnion
}

// NewUserMessage creates a plain-text user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a plain-text assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewAssistantMessageWithBlocks creates an assistant message from raw
// content blocks, preserving tool_use blocks for later tool results.
func NewAssistantMessageWithBlocks(blocks []anthropic.ContentBlockParamUnion) Message {
	return Message{Role: RoleAssistant, Blocks: blocks}
}

// NewToolResultMessage creates a user message carrying tool results.
func NewToolResultMessage(results []ToolResultContent) Message {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, anthropic.NewToolResultBlock(r.ToolUseID, r.Content, r.IsError))
	}
	return Message{Role: RoleUser, Blocks: blocks}
}

// ToParam converts the message to the Anthropic API representation.
func (m Message) ToParam() anthropic.MessageParam {
	if len(m.Blocks) > 0 {
		if m.Role == RoleAssistant {
			return anthropic.NewAssistantMessage(m.Blocks...)
		}
		return anthropic.NewUserMessage(m.Blocks...)
	}
	if m.Role == RoleAssistant {
		return anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content))
	}
	return anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content))
}
