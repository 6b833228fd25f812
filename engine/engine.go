package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

const (
	// DefaultMaxTurns bounds the tool-use loop for a single run.
	DefaultMaxTurns = 10

	// confirmationTTL is how long a pending write action stays valid.
	confirmationTTL = 5 * time.Minute
)

// OutputType classifies the result of an engine run.
type OutputType int

const (
	// OutputComplete means the agent finished with a text response.
	OutputComplete OutputType = iota

	// OutputConfirmationNeeded means the agent wants to run a write tool
	// and is waiting for user approval.
	OutputConfirmationNeeded

	// OutputError means the run failed.
	OutputError
)

// TokenUsage accumulates token counts across the turns of a run.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// TotalTokens returns input plus output tokens.
func (u TokenUsage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

// Input describes one agent run.
type Input struct {
	UserMessage  string
	Context      *core.Context
	History      []core.Message
	SystemPrompt string
	Model        string
	MaxTokens    int64
	MaxTurns     int

	// AllowedTools restricts the run to the named tools. Empty means all
	// registered tools are available.
	AllowedTools []string

	// StreamCallback receives response text as it arrives.
	StreamCallback func(chunk string, done bool)
}

// Output is the result of an agent run.
type Output struct {
	Type           OutputType
	Text           string
	TokensUsed     TokenUsage
	PendingAction  *core.PendingAction
	ResponseBlocks []anthropic.ContentBlockParamUnion
	Error          error
}

// Engine drives the model/tool loop for an agent.
type Engine struct {
	client   *anthropic.Client
	registry *ToolRegistry
}

// NewEngine creates an engine around an Anthropic client and tool registry.
func NewEngine(client *anthropic.Client, registry *ToolRegistry) *Engine {
	return &Engine{client: client, registry: registry}
}

// Registry returns the engine's tool registry.
func (e *Engine) Registry() *ToolRegistry {
	return e.registry
}

// Run executes one agent turn: sends the conversation to the model,
// executes requested tools, and loops until the model stops asking for
// tools, a write tool needs confirmation, or the turn budget runs out.
func (e *Engine) Run(ctx context.Context, input *Input) (*Output, error) {
	maxTurns := input.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	messages := make([]anthropic.MessageParam, 0, len(input.History)+1)
	for _, m := range input.History {
		messages = append(messages, m.ToParam())
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(input.UserMessage)))

	apiTools := e.registry.ToAPITools()
	if len(input.AllowedTools) > 0 {
		apiTools = e.registry.ToAPIToolsFiltered(FilterByNames(input.AllowedTools...))
	}

	var usage TokenUsage
	var finalText string

	for turn := 0; turn < maxTurns; turn++ {
		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(input.Model),
			MaxTokens: input.MaxTokens,
			Messages:  messages,
		}
		if input.SystemPrompt != "" {
			params.System = []anthropic.TextBlockParam{{Text: input.SystemPrompt}}
		}
		if len(apiTools) > 0 {
			params.Tools = apiTools
		}

		msg, err := e.client.Messages.New(ctx, params)
		if err != nil {
			return &Output{Type: OutputError, Error: err, TokensUsed: usage}, nil
		}

		usage.InputTokens += msg.Usage.InputTokens
		usage.OutputTokens += msg.Usage.OutputTokens

		var turnText string
		var toolUses []anthropic.ToolUseBlock
		for _, block := range msg.Content {
			switch b := block.AsAny().(type) {
			case anthropic.TextBlock:
				turnText += b.Text
			case anthropic.ToolUseBlock:
				toolUses = append(toolUses, b)
			}
		}

		if turnText != "" {
			finalText = turnText
			if input.StreamCallback != nil {
				input.StreamCallback(turnText, false)
			}
		}

		if msg.StopReason != anthropic.StopReasonToolUse || len(toolUses) == 0 {
			if input.StreamCallback != nil {
				input.StreamCallback("", true)
			}
			return &Output{Type: OutputComplete, Text: finalText, TokensUsed: usage}, nil
		}

		assistantBlocks := msg.ToParam().Content

		// Confirmation check happens before any tool in this turn runs so
		// a write tool never executes without approval.
		for _, tu := range toolUses {
			tool, ok := e.registry.Get(tu.Name)
			if !ok {
				continue
			}
			if tool.RequiresConfirmation() {
				inputJSON, _ := tu.Input.MarshalJSON()
				pending := &core.PendingAction{
					ID:        uuid.NewString(),
					UserID:    userIDFrom(input.Context),
					Tool:      tu.Name,
					Input:     inputJSON,
					BlockID:   tu.ID,
					Summary:   tool.Summary(),
					ExpiresAt: time.Now().Add(confirmationTTL).Unix(),
				}
				return &Output{
					Type:           OutputConfirmationNeeded,
					Text:           finalText,
					TokensUsed:     usage,
					PendingAction:  pending,
					ResponseBlocks: assistantBlocks,
				}, nil
			}
		}

		messages = append(messages, anthropic.NewAssistantMessage(assistantBlocks...))

		results := make([]anthropic.ContentBlockParamUnion, 0, len(toolUses))
		for _, tu := range toolUses {
			inputJSON, _ := tu.Input.MarshalJSON()
			content, isError := e.runTool(ctx, tu.Name, inputJSON)
			results = append(results, anthropic.NewToolResultBlock(tu.ID, content, isError))
		}
		messages = append(messages, anthropic.NewUserMessage(results...))
	}

	return &Output{
		Type:       OutputError,
		TokensUsed: usage,
		Error:      fmt.Errorf("agent exceeded %d turns without completing", maxTurns),
	}, nil
}

// ExecuteTool runs a registered tool directly, outside the model loop.
// Used to execute confirmed write actions.
func (e *Engine) ExecuteTool(ctx context.Context, userID, name string, input []byte, actionID string) (*core.ToolResult, error) {
	tool, ok := e.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return tool.Execute(ctx, json.RawMessage(input))
}

func (e *Engine) runTool(ctx context.Context, name string, input json.RawMessage) (content string, isError bool) {
	tool, ok := e.registry.Get(name)
	if !ok {
		return fmt.Sprintf("unknown tool: %s", name), true
	}

	result, err := tool.Execute(ctx, input)
	if err != nil {
		return fmt.Sprintf("tool failed: %v", err), true
	}
	if !result.Success {
		return result.Error, true
	}

	data, err := json.Marshal(result.Data)
	if err != nil {
		return fmt.Sprintf("unencodable tool result: %v", err), true
	}
	return string(data), false
}

func userIDFrom(ctx *core.Context) string {
	if ctx == nil {
		return ""
	}
	return ctx.UserID
}
