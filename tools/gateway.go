package tools

import (
	"github.com/mkpollard101/agentic-ai-starter/core"
)

// GatewayToolDefinitions returns the definitions for all data-gateway
// tools. These are the standard tools served by an on-chain data gateway.
func GatewayToolDefinitions() []core.ToolDefinition {
	return []core.ToolDefinition{
		// Read operations
		{
			ToolName:        "get_gas_prices",
			ToolDescription: "Get current gas prices (gwei) across supported networks.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"network": StringProperty("Optional: filter by network (e.g., 'ethereum', 'arbitrum')"),
			}),
		},
		{
			ToolName:        "get_protocol_yields",
			ToolDescription: "Get current pool APYs and TVL for monitored DeFi protocols.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"protocol": StringProperty("Optional: filter by protocol (e.g., 'aave', 'curve')"),
				"min_apy":  NumberProperty("Optional: minimum annualized yield percentage"),
			}),
		},
		{
			ToolName:        "get_exchange_quotes",
			ToolDescription: "Get current bid/ask quotes for an asset across monitored exchanges.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"asset": StringProperty("Asset symbol (e.g., 'ETH', 'BTC')"),
			}, "asset"),
		},
		{
			ToolName:        "get_network_status",
			ToolDescription: "Get validator and stake statistics for a monitored chain.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"chain_id": StringProperty("Chain identifier (e.g., 'ethereum', 'consortium-main')"),
			}, "chain_id"),
		},
		{
			ToolName:        "get_governance_proposals",
			ToolDescription: "List governance proposals across monitored chains.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"status": StringEnumProperty("Filter by proposal status", "active", "passed", "failed"),
			}),
		},

		// Write operations (require confirmation)
		{
			ToolName:                 "submit_vote",
			ToolDescription:          "Submit a governance vote. Requires confirmation.",
			RequiresUserConfirmation: true,
			SummaryTemplate:          "Vote {{.vote}} on proposal {{.proposal_id}}",
			InputSchema: ObjectSchema(map[string]interface{}{
				"proposal_id": StringProperty("Proposal identifier"),
				"vote":        StringEnumProperty("Vote direction", "for", "against", "abstain"),
			}, "proposal_id", "vote"),
		},
		{
			ToolName:                 "rebalance_position",
			ToolDescription:          "Move capital between pools. Requires confirmation.",
			RequiresUserConfirmation: true,
			SummaryTemplate:          "Move {{.amount}} USDC from {{.from_pool}} to {{.to_pool}}",
			InputSchema: ObjectSchema(map[string]interface{}{
				"from_pool": StringProperty("Pool to withdraw from"),
				"to_pool":   StringProperty("Pool to deposit into"),
				"amount":    StringProperty("Amount in USDC (e.g., '2500.00')"),
			}, "from_pool", "to_pool", "amount"),
		},
	}
}

// GatewayTools creates Tool instances for all gateway tools using the
// given executor.
func GatewayTools(executor core.ToolExecutor) []core.Tool {
	definitions := GatewayToolDefinitions()
	tools := make([]core.Tool, len(definitions))
	for i, def := range definitions {
		tools[i] = core.NewExecutorTool(def, executor)
	}
	return tools
}
