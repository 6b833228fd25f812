// Package subagent provides specialist agents that a primary agent can
// delegate tasks to through ordinary tool calls.
package subagent

import (
	"context"
	"fmt"

	"github.com/mkpollard101/agentic-ai-starter/engine"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTurns  = 5
	defaultMaxTokens = 1024
)

// SubAgentConfig configures a specialist sub-agent.
type SubAgentConfig struct {
	// Name identifies the sub-agent.
	Name string

	// SystemPrompt defines the specialist's behavior.
	SystemPrompt string

	// AvailableTools restricts which registered tools the specialist may
	// use. Empty means none.
	AvailableTools []string

	// Model overrides the default model.
	Model string

	// MaxTurns bounds the specialist's tool loop.
	MaxTurns int

	// MaxTokens bounds each response.
	MaxTokens int64
}

// SubAgent is a specialist agent with its own prompt and tool allow-list.
type SubAgent struct {
	engine *engine.Engine
	config SubAgentConfig
}

// NewSubAgent creates a specialist sub-agent on the given engine.
func NewSubAgent(eng *engine.Engine, cfg SubAgentConfig) *SubAgent {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = defaultMaxTurns
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &SubAgent{engine: eng, config: cfg}
}

// Name returns the sub-agent's name.
func (s *SubAgent) Name() string {
	return s.config.Name
}

// Run executes a single task and returns the specialist's answer.
func (s *SubAgent) Run(ctx context.Context, task string) (string, error) {
	output, err := s.engine.Run(ctx, &engine.Input{
		UserMessage:  task,
		SystemPrompt: s.config.SystemPrompt,
		Model:        s.config.Model,
		MaxTokens:    s.config.MaxTokens,
		MaxTurns:     s.config.MaxTurns,
		AllowedTools: s.config.AvailableTools,
	})
	if err != nil {
		return "", err
	}

	switch output.Type {
	case engine.OutputComplete:
		return output.Text, nil
	case engine.OutputConfirmationNeeded:
		// Specialists cannot ask the user for approval; the pending tool
		// is reported back to the delegating agent instead.
		return "", fmt.Errorf("sub-agent %s requested confirmation for tool %s", s.config.Name, output.PendingAction.Tool)
	default:
		return "", fmt.Errorf("sub-agent %s failed: %w", s.config.Name, output.Error)
	}
}
