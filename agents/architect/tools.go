package architect

import (
	"context"
	"encoding/json"

	"github.com/mkpollard101/agentic-ai-starter/core"
	"github.com/mkpollard101/agentic-ai-starter/tools"
)

// Tools returns the agent's registry tools.
func Tools(a *Agent) []core.Tool {
	return []core.Tool{
		tools.New("list_blueprints").
			Description("List all architecture blueprints with their pillar, version, status, foundations, and hardness assumptions.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				return map[string]interface{}{
					"blueprints": a.Blueprints(),
				}, nil
			}).
			Build(),

		tools.New("evaluate_blueprint").
			Description("Validate one blueprint's mathematical rigor and advance its status. Fails if the design rests on rejected concepts or lacks required foundations.").
			Schema(tools.ObjectSchema(map[string]interface{}{
				"blueprint_id": tools.StringProperty("The blueprint ID (e.g., QA-002)"),
			}, "blueprint_id")).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				var params struct {
					BlueprintID string `json:"blueprint_id"`
				}
				if err := json.Unmarshal(input, &params); err != nil {
					return nil, err
				}
				return a.Evaluate(params.BlueprintID)
			}).
			Build(),
	}
}
