package defi

import (
	"context"
	"encoding/json"

	"github.com/mkpollard101/agentic-ai-starter/core"
	"github.com/mkpollard101/agentic-ai-starter/tools"
)

// Tools returns the agent's registry tools for chat and orchestration use.
func Tools(a *Agent) []core.Tool {
	return []core.Tool{
		tools.New("scan_market").
			Description("Scan yield protocols, exchanges, and gas conditions. Returns current opportunities.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				return a.ScanMarket(ctx)
			}).
			Build(),

		tools.New("get_portfolio_status").
			Description("Get treasury capital, open positions, portfolio risk score, and the current adaptive risk parameters.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				maxRisk, minArb := a.RiskParameters()
				return map[string]interface{}{
					"capital_usd":        a.Capital(),
					"portfolio_value":    a.PortfolioValue(),
					"portfolio_risk":     a.PortfolioRiskScore(),
					"positions":          a.Positions(),
					"paused":             a.Paused(),
					"cycle":              a.Cycle(),
					"max_risk":           maxRisk,
					"min_arb_profit_pct": minArb,
				}, nil
			}).
			Build(),

		tools.New("get_performance_report").
			Description("Get the most recent cycle's performance report.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				report := a.LastReport()
				if report == nil {
					return map[string]interface{}{"message": "No cycle has completed yet."}, nil
				}
				return report, nil
			}).
			Build(),

		tools.New("run_cycle").
			Description("Execute a strategy cycle: scan, decompose, evaluate, and execute. May open positions.").
			Schema(tools.ObjectSchema(map[string]interface{}{})).
			RequiresConfirmation().
			SummaryTemplate("Run a full strategy cycle (may open new positions)").
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				return a.ExecuteCycle(ctx)
			}).
			Build(),

		tools.New("emergency_pause").
			Description("Halt all strategy execution immediately. Positions stay open but no new actions run.").
			Schema(tools.ObjectSchema(map[string]interface{}{
				"reason": tools.StringProperty("Why execution is being paused"),
			}, "reason")).
			RequiresConfirmation().
			SummaryTemplate("Pause all strategy execution: {{.reason}}").
			HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
				var params struct {
					Reason string `json:"reason"`
				}
				if err := json.Unmarshal(input, &params); err != nil {
					return nil, err
				}
				if err := a.EmergencyPause(ctx, params.Reason); err != nil {
					return nil, err
				}
				return map[string]interface{}{"message": "Execution paused: " + params.Reason}, nil
			}).
			Build(),
	}
}
