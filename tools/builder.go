// Package tools provides a builder for defining agent tools and helpers
// for constructing their JSON schemas.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

// HandlerFunc executes a tool call and returns its result payload.
type HandlerFunc func(ctx context.Context, input json.RawMessage) (interface{}, error)

// Builder assembles a tool definition fluently.
type Builder struct {
	name            string
	description     string
	schema          map[string]interface{}
	requiresConfirm bool
	summaryTemplate string
	handler         HandlerFunc
}

// New starts building a tool with the given name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Description sets the tool description shown to the model.
func (b *Builder) Description(d string) *Builder {
	b.description = d
	return b
}

// Schema sets the tool input schema (see ObjectSchema).
func (b *Builder) Schema(s map[string]interface{}) *Builder {
	b.schema = s
	return b
}

// RequiresConfirmation marks the tool as needing user approval.
func (b *Builder) RequiresConfirmation() *Builder {
	b.requiresConfirm = true
	return b
}

// SummaryTemplate sets the confirmation summary shown to the user.
func (b *Builder) SummaryTemplate(t string) *Builder {
	b.summaryTemplate = t
	return b
}

// HandlerFunc sets the function that executes the tool.
func (b *Builder) HandlerFunc(h HandlerFunc) *Builder {
	b.handler = h
	return b
}

// Build finalizes the tool.
func (b *Builder) Build() core.Tool {
	if b.schema == nil {
		b.schema = ObjectSchema(map[string]interface{}{})
	}
	return &builtTool{
		name:            b.name,
		description:     b.description,
		schema:          b.schema,
		requiresConfirm: b.requiresConfirm,
		summaryTemplate: b.summaryTemplate,
		handler:         b.handler,
	}
}

type builtTool struct {
	name            string
	description     string
	schema          map[string]interface{}
	requiresConfirm bool
	summaryTemplate string
	handler         HandlerFunc
}

func (t *builtTool) Name() string { return t.name }
func (t *builtTool) Description() string { return t.description }
func (t *builtTool) Schema() map[string]interface{} { return t.schema }
func (t *builtTool) RequiresConfirmation() bool { return t.requiresConfirm }
func (t *builtTool) Summary() string { return t.summaryTemplate }

func (t *builtTool) Execute(ctx context.Context, input json.RawMessage) (*core.ToolResult, error) {
	if t.handler == nil {
		return nil, fmt.Errorf("tool %s has no handler", t.name)
	}

	data, err := t.handler(ctx, input)
	if err != nil {
		return &core.ToolResult{Success: false, Error: err.Error()}, nil
	}

	return &core.ToolResult{Success: true, Data: data}, nil
}
