package defi

import (
	"github.com/mkpollard101/agentic-ai-starter/engine"
	"github.com/mkpollard101/agentic-ai-starter/subagent"
)

// NewMarketAnalyst creates the market analysis specialist.
func NewMarketAnalyst(eng *engine.Engine) *subagent.SubAgent {
	return subagent.NewSubAgent(eng, subagent.SubAgentConfig{
		Name:         "market-analyst",
		SystemPrompt: MarketAnalystPrompt,
		AvailableTools: []string{
			"scan_market",
			"get_gas_prices",
			"get_protocol_yields",
			"get_exchange_quotes",
		},
		MaxTurns:  6,
		MaxTokens: 2048,
	})
}

// NewMarketAnalystDelegationTool exposes the market analyst as a tool.
func NewMarketAnalystDelegationTool(eng *engine.Engine) *subagent.DelegationTool {
	return subagent.NewDelegationTool(subagent.DelegationConfig{
		SubAgent:    NewMarketAnalyst(eng),
		ToolName:    "analyze_market_conditions",
		Description: "Delegate market interpretation to the analyst specialist. Use this to understand which opportunities clear the thresholds and whether gas favors execution now.",
		TaskFormatter: func(query string) string {
			return "Interpret current market conditions for: " + query
		},
		QueryDescription: "The market question (e.g., 'Are any stablecoin yields worth entering this cycle?')",
	})
}

// NewRiskOfficer creates the risk oversight specialist.
func NewRiskOfficer(eng *engine.Engine) *subagent.SubAgent {
	return subagent.NewSubAgent(eng, subagent.SubAgentConfig{
		Name:         "risk-officer",
		SystemPrompt: RiskOfficerPrompt,
		AvailableTools: []string{
			"get_portfolio_status",
			"get_performance_report",
		},
		MaxTurns:  4,
		MaxTokens: 1024,
	})
}

// NewRiskOfficerDelegationTool exposes the risk officer as a tool.
func NewRiskOfficerDelegationTool(eng *engine.Engine) *subagent.DelegationTool {
	return subagent.NewDelegationTool(subagent.DelegationConfig{
		SubAgent:    NewRiskOfficer(eng),
		ToolName:    "audit_portfolio_risk",
		Description: "Delegate a portfolio risk audit to the risk officer. Use this before opening new positions or when the user asks about exposure.",
		TaskFormatter: func(query string) string {
			return "Audit the portfolio against its risk limits, considering: " + query
		},
		QueryDescription: "The risk question (e.g., 'Can we add another arbitrage position safely?')",
	})
}
