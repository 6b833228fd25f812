// Package core defines the shared types the agent SDK is built from:
// tools, messages, execution contexts, and executor contracts.
package core

import (
	"context"
	"encoding/json"
)

// Tool is a capability an agent can invoke during a conversation turn.
type Tool interface {
	// Name returns the tool's unique name.
	Name() string

	// Description returns the tool description shown to the model.
	Description() string

	// Schema returns the JSON schema properties for the tool input.
	Schema() map[string]interface{}

	// Execute runs the tool with the given JSON input.
	Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error)

	// RequiresConfirmation reports whether the tool needs explicit user
	// approval before executing.
	RequiresConfirmation() bool

	// Summary returns a short human-readable template describing the
	// action, shown in confirmation prompts.
	Summary() string
}

// ToolResult is the outcome of a tool execution.
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ToolDefinition declares a tool served by an external executor rather
// than an in-process handler.
type ToolDefinition struct {
	ToolName                 string
	ToolDescription          string
	InputSchema              map[string]interface{}
	RequiresUserConfirmation bool
	SummaryTemplate          string
}

// ExecutorTool adapts a ToolDefinition plus a ToolExecutor into a Tool.
type ExecutorTool struct {
	def      ToolDefinition
	executor ToolExecutor
}

// NewExecutorTool creates a Tool backed by an external executor.
func NewExecutorTool(def ToolDefinition, executor ToolExecutor) *ExecutorTool {
	return &ExecutorTool{def: def, executor: executor}
}

// Name returns the tool name.
func (t *ExecutorTool) Name() string { return t.def.ToolName }

// Description returns the tool description.
func (t *ExecutorTool) Description() string { return t.def.ToolDescription }

// Schema returns the JSON schema properties.
func (t *ExecutorTool) Schema() map[string]interface{} { return t.def.InputSchema }

// RequiresConfirmation reports whether user approval is required.
func (t *ExecutorTool) RequiresConfirmation() bool { return t.def.RequiresUserConfirmation }

// Summary returns the confirmation summary template.
func (t *ExecutorTool) Summary() string { return t.def.SummaryTemplate }

// Execute forwards the call to the executor, routing write tools through
// ExecuteWrite so confirmation semantics are preserved.
func (t *ExecutorTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	req := &ExecuteRequest{
		Tool:  t.def.ToolName,
		Input: input,
	}

	var (
		resp *ExecuteResponse
		err  error
	)
	if t.def.RequiresUserConfirmation {
		resp, err = t.executor.ExecuteWrite(ctx, req)
	} else {
		resp, err = t.executor.Execute(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	return &ToolResult{
		Success: resp.Success,
		Data:    resp.Data,
		Error:   resp.Error,
	}, nil
}
