package qin

import (
	"context"
	"encoding/json"

	"github.com/mkpollard101/agentic-ai-starter/core"
	"github.com/mkpollard101/agentic-ai-starter/tools"
)

// Tools returns the agent's registry tools.
func Tools(a *Agent) []core.Tool {
	return []core.Tool{
		tools.New("get_rollout_plan").
			Description("Get the phased rollout plan with each phase's technologies, mathematical basis, exit criteria, and completion state.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				return a.Plan(), nil
			}).
			Build(),

		tools.New("validate_component").
			Description("Check a component name against the program's nomenclature rules. Rejects obsolete marketing terms.").
			Schema(tools.ObjectSchema(map[string]interface{}{
				"component": tools.StringProperty("The component name to validate"),
			}, "component")).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				var params struct {
					Component string `json:"component"`
				}
				if err := json.Unmarshal(input, &params); err != nil {
					return nil, err
				}
				if err := RejectNomenclature(params.Component); err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"component": params.Component,
					"valid":     true,
				}, nil
			}).
			Build(),
	}
}
