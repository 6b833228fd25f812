package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildsTool(t *testing.T) {
	tool := New("greet").
		Description("Say hello").
		Schema(ObjectSchema(map[string]interface{}{
			"name": StringProperty("Who to greet"),
		}, "name")).
		HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
			var params struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(input, &params); err != nil {
				return nil, err
			}
			return map[string]interface{}{"greeting": "Hello, " + params.Name}, nil
		}).
		Build()

	assert.Equal(t, "greet", tool.Name())
	assert.Equal(t, "Say hello", tool.Description())
	assert.False(t, tool.RequiresConfirmation())

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"name":"Ada"}`))
	require.NoError(t, err)
	require.True(t, result.Success)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, "Hello, Ada", data["greeting"])
}

func TestBuilder_HandlerErrorBecomesFailedResult(t *testing.T) {
	tool := New("fail").
		HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
			return nil, errors.New("upstream unavailable")
		}).
		Build()

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "upstream unavailable", result.Error)
}

func TestBuilder_NoHandler(t *testing.T) {
	tool := New("empty").Build()

	_, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestBuilder_Confirmation(t *testing.T) {
	tool := New("transfer").
		RequiresConfirmation().
		SummaryTemplate("Move {{.amount}} USDC").
		Build()

	assert.True(t, tool.RequiresConfirmation())
	assert.Equal(t, "Move {{.amount}} USDC", tool.Summary())
}

func TestObjectSchema(t *testing.T) {
	schema := ObjectSchema(map[string]interface{}{
		"vote":  StringEnumProperty("The vote", "for", "against"),
		"count": IntegerProperty("How many"),
	}, "vote")

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"vote"}, schema["required"])

	props := schema["properties"].(map[string]interface{})
	vote := props["vote"].(map[string]interface{})
	assert.Equal(t, "string", vote["type"])
	assert.Equal(t, []string{"for", "against"}, vote["enum"])
}

func TestObjectSchema_NoRequired(t *testing.T) {
	schema := ObjectSchema(map[string]interface{}{})
	_, hasRequired := schema["required"]
	assert.False(t, hasRequired)
}
