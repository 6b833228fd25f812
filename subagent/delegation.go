package subagent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

// DelegationConfig configures a tool that hands work to a sub-agent.
type DelegationConfig struct {
	// SubAgent is the specialist that handles delegated tasks.
	SubAgent *SubAgent

	// ToolName is the name the delegating agent sees.
	ToolName string

	// Description tells the delegating agent when to use this specialist.
	Description string

	// QueryDescription documents the query parameter in the tool schema.
	QueryDescription string

	// TaskFormatter optionally rewrites the query into a task prompt.
	TaskFormatter func(query string) string
}

// DelegationTool exposes a sub-agent as a core.Tool. Calling the tool runs
// the specialist to completion and returns its answer as the tool result.
type DelegationTool struct {
	config DelegationConfig
}

// NewDelegationTool wraps a sub-agent in a tool.
func NewDelegationTool(cfg DelegationConfig) *DelegationTool {
	if cfg.QueryDescription == "" {
		cfg.QueryDescription = "The task or question to delegate"
	}
	return &DelegationTool{config: cfg}
}

func (d *DelegationTool) Name() string { return d.config.ToolName }
func (d *DelegationTool) Description() string { return d.config.Description }

func (d *DelegationTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": d.config.QueryDescription,
			},
		},
		"required": []string{"query"},
	}
}

func (d *DelegationTool) RequiresConfirmation() bool { return false }
func (d *DelegationTool) Summary() string { return "" }

// Execute runs the specialist on the delegated query.
func (d *DelegationTool) Execute(ctx context.Context, input json.RawMessage) (*core.ToolResult, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return &core.ToolResult{Success: false, Error: fmt.Sprintf("invalid input: %v", err)}, nil
	}
	if params.Query == "" {
		return &core.ToolResult{Success: false, Error: "query is required"}, nil
	}

	task := params.Query
	if d.config.TaskFormatter != nil {
		task = d.config.TaskFormatter(params.Query)
	}

	answer, err := d.config.SubAgent.Run(ctx, task)
	if err != nil {
		return &core.ToolResult{Success: false, Error: err.Error()}, nil
	}

	return &core.ToolResult{
		Success: true,
		Data: map[string]interface{}{
			"specialist": d.config.SubAgent.Name(),
			"answer":     answer,
		},
	}, nil
}
