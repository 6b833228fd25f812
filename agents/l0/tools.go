package l0

import (
	"context"
	"encoding/json"

	"github.com/mkpollard101/agentic-ai-starter/core"
	"github.com/mkpollard101/agentic-ai-starter/tools"
)

// Tools returns the agent's registry tools.
func Tools(a *Agent) []core.Tool {
	return []core.Tool{
		tools.New("get_control_posture").
			Description("Get the ecosystem control posture: per-chain stake and governance shares, the aggregate control level, and revenue streams.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				state, err := a.ScanEcosystem(ctx)
				if err != nil {
					return nil, err
				}
				level, share := EcosystemControl(state.Networks)
				return map[string]interface{}{
					"networks":        state.Networks,
					"revenue":         state.Revenue,
					"ecosystem_level": level.String(),
					"weighted_share":  share,
				}, nil
			}).
			Build(),

		tools.New("plan_control_actions").
			Description("Plan the highest-impact control actions for the current cycle: fee policy, data oracle deployment, stake acquisition, and governance votes.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				state, err := a.ScanEcosystem(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"actions": a.PlanActions(state),
				}, nil
			}).
			Build(),
	}
}
