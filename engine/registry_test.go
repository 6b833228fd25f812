package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

type fakeTool struct {
	name   string
	schema map[string]interface{}
}

func (t *fakeTool) Name() string { return t.name }
func (t *fakeTool) Description() string { return "fake " + t.name }
func (t *fakeTool) Schema() map[string]interface{} { return t.schema }
func (t *fakeTool) RequiresConfirmation() bool { return false }
func (t *fakeTool) Summary() string { return "" }

func (t *fakeTool) Execute(ctx context.Context, input json.RawMessage) (*core.ToolResult, error) {
	return &core.ToolResult{Success: true}, nil
}

func objectSchema(required ...interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{"type": "string"},
		},
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func TestToolRegistry_RegisterAndGet(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(&fakeTool{name: "alpha", schema: objectSchema()})
	registry.RegisterAll(
		&fakeTool{name: "beta", schema: objectSchema()},
		&fakeTool{name: "gamma", schema: objectSchema()},
	)

	tool, ok := registry.Get("beta")
	require.True(t, ok)
	assert.Equal(t, "beta", tool.Name())

	_, ok = registry.Get("missing")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, registry.List())
}

func TestToolRegistry_RegisterOverwrites(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(&fakeTool{name: "alpha", schema: objectSchema()})
	registry.Register(&fakeTool{name: "alpha", schema: objectSchema("query")})

	assert.Len(t, registry.List(), 1)
}

func TestToAPITool_RequiredForms(t *testing.T) {
	// Required lists arrive as []string from builders and []interface{}
	// from schemas decoded out of JSON.
	fromBuilder := &fakeTool{name: "a", schema: map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
		"required":   []string{"query"},
	}}
	fromJSON := &fakeTool{name: "b", schema: objectSchema("query", "limit")}

	param := toAPITool(fromBuilder)
	require.NotNil(t, param.OfTool)
	assert.Equal(t, "a", param.OfTool.Name)
	assert.Equal(t, []string{"query"}, param.OfTool.InputSchema.Required)

	param = toAPITool(fromJSON)
	require.NotNil(t, param.OfTool)
	assert.Equal(t, []string{"query", "limit"}, param.OfTool.InputSchema.Required)
}

func TestToolRegistry_Filtered(t *testing.T) {
	registry := NewToolRegistry()
	registry.RegisterAll(
		&fakeTool{name: "scan_market", schema: objectSchema()},
		&fakeTool{name: "run_cycle", schema: objectSchema()},
		&fakeTool{name: "get_rollout_plan", schema: objectSchema()},
	)

	params := registry.ToAPIToolsFiltered(FilterByNames("scan_market", "run_cycle"))
	require.Len(t, params, 2)

	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.OfTool.Name)
	}
	assert.ElementsMatch(t, []string{"scan_market", "run_cycle"}, names)

	all := registry.ToAPITools()
	assert.Len(t, all, 3)
}
