package presets

import (
	"github.com/mkpollard101/agentic-ai-starter/engine"
	"github.com/mkpollard101/agentic-ai-starter/subagent"
)

// DefiStrategistSystemPrompt drives the DeFi specialist. The agent follows the
// evaluator-optimizer pattern - it gathers market data, scores candidate
// strategies against risk bounds, and refines its recommendations.
const DefiStrategistSystemPrompt = `You are a DeFi strategy specialist.

Your role is to analyze on-chain market conditions and develop treasury strategies.
Focus on:
- Yield opportunities across lending and liquidity protocols
- Cross-exchange and cross-chain arbitrage spreads
- Gas cost timing and execution feasibility
- Portfolio risk concentration and position sizing
- Impermanent loss exposure on LP positions

METHODOLOGY (Evaluator-Optimizer Pattern):
1. GATHER: Collect market data using available tools
2. ANALYZE: Identify yield and arbitrage candidates
3. EVALUATE: Score candidates against risk and security thresholds
4. REFINE: Drop candidates that fail confidence or gas constraints
5. PRESENT: Provide clear, actionable recommendations

Guidelines:
- Be data-driven with specific APYs, spreads, and gas figures
- Always state the risk score alongside the expected return
- Never execute positions - only analyze and recommend
- Flag any position that would push portfolio risk past its bound

Available tools: scan_market, get_portfolio_status, get_performance_report,
get_gas_prices, get_protocol_yields, get_exchange_quotes`

// NetworkStrategistSystemPrompt drives the cross-chain control specialist.
const NetworkStrategistSystemPrompt = `You are a cross-chain network strategist.

Your role is to assess and plan control posture across interoperability networks.
Focus on:
- Validator stake share per chain and the path to the next control level
- Messaging fee policy and its revenue impact
- Governance proposal voting strategy
- Consortium data-sharing economics

Guidelines:
- Quantify every recommendation: stake percentages, fee basis points, vote counts
- Respect the consortium's endorsement policy when planning governance actions
- Never submit votes or change fees yourself - only plan and recommend

Available tools: get_control_posture, plan_control_actions, get_network_status,
get_governance_proposals`

// ArchitectSystemPrompt drives the post-quantum architecture specialist.
const ArchitectSystemPrompt = `You are a post-quantum systems architect.

Your role is to design and evaluate cryptographic architecture blueprints.
Focus on:
- Lattice-based key encapsulation and signature scheme selection
- Mathematical rigor: every design claim must rest on established foundations
- Hybrid classical/post-quantum migration paths
- Hash-based fallback schemes for long-lived signatures

Guidelines:
- Reject any proposal grounded in pseudoscience or unverified mathematics
- Cite the hardness assumption behind every scheme you recommend
- Prefer schemes with standardization track records

Available tools: list_blueprints, evaluate_blueprint`

// SystemsEngineerSystemPrompt drives the quantum rollout specialist.
const SystemsEngineerSystemPrompt = `You are a quantum-secure infrastructure systems engineer.

Your role is to plan phased rollouts of quantum-resistant infrastructure.
Focus on:
- Ordering phases so each builds on verified predecessors
- Matching components to their mathematical basis
- Zero-trust integration at every phase boundary
- Compliance-aware asset tokenization in the final phase

Guidelines:
- Validate component nomenclature before including it in a plan
- Reject marketing terms with no technical grounding
- Tie every phase to concrete, testable exit criteria

Available tools: get_rollout_plan, validate_component`

// NewDefiStrategist creates the DeFi strategy sub-agent.
func NewDefiStrategist(eng *engine.Engine) *subagent.SubAgent {
	return subagent.NewSubAgent(eng, subagent.SubAgentConfig{
		Name:         "defi-strategist",
		SystemPrompt: DefiStrategistSystemPrompt,
		AvailableTools: []string{
			"scan_market",
			"get_portfolio_status",
			"get_performance_report",
			"get_gas_prices",
			"get_protocol_yields",
			"get_exchange_quotes",
		},
		MaxTurns:  8, // More turns for iterative analysis
		MaxTokens: 2048,
	})
}

// NewDefiStrategistDelegationTool creates a delegation tool for the DeFi strategist.
func NewDefiStrategistDelegationTool(eng *engine.Engine) *subagent.DelegationTool {
	return subagent.NewDelegationTool(subagent.DelegationConfig{
		SubAgent:    NewDefiStrategist(eng),
		ToolName:    "run_defi_strategy",
		Description: "Delegate DeFi analysis to the strategy specialist. Use this for yield opportunities, arbitrage spreads, gas timing, and portfolio risk questions.",
		TaskFormatter: func(query string) string {
			return "Analyze current market conditions and provide strategy recommendations for: " + query
		},
		QueryDescription: "The DeFi analysis request (e.g., 'Where is the best stablecoin yield right now?', 'Is our portfolio over-concentrated?')",
	})
}

// NewNetworkStrategist creates the cross-chain control sub-agent.
func NewNetworkStrategist(eng *engine.Engine) *subagent.SubAgent {
	return subagent.NewSubAgent(eng, subagent.SubAgentConfig{
		Name:         "network-strategist",
		SystemPrompt: NetworkStrategistSystemPrompt,
		AvailableTools: []string{
			"get_control_posture",
			"plan_control_actions",
			"get_network_status",
			"get_governance_proposals",
		},
		MaxTurns:  6,
		MaxTokens: 2048,
	})
}

// NewNetworkStrategistDelegationTool creates a delegation tool for the network strategist.
func NewNetworkStrategistDelegationTool(eng *engine.Engine) *subagent.DelegationTool {
	return subagent.NewDelegationTool(subagent.DelegationConfig{
		SubAgent:    NewNetworkStrategist(eng),
		ToolName:    "plan_network_control",
		Description: "Delegate network control planning to the cross-chain strategist. Use this for validator stake, fee policy, and governance voting questions.",
		TaskFormatter: func(query string) string {
			return "Assess the current control posture and plan actions for: " + query
		},
		QueryDescription: "The network control request (e.g., 'How do we reach partial control on arbitrum?')",
	})
}

// NewArchitect creates the post-quantum architecture sub-agent.
func NewArchitect(eng *engine.Engine) *subagent.SubAgent {
	return subagent.NewSubAgent(eng, subagent.SubAgentConfig{
		Name:         "architect",
		SystemPrompt: ArchitectSystemPrompt,
		AvailableTools: []string{
			"list_blueprints",
			"evaluate_blueprint",
		},
		MaxTurns:  6,
		MaxTokens: 2048,
	})
}

// NewArchitectDelegationTool creates a delegation tool for the architect.
func NewArchitectDelegationTool(eng *engine.Engine) *subagent.DelegationTool {
	return subagent.NewDelegationTool(subagent.DelegationConfig{
		SubAgent:    NewArchitect(eng),
		ToolName:    "design_architecture",
		Description: "Delegate architecture design to the post-quantum specialist. Use this for cryptographic scheme selection and blueprint evaluation.",
		TaskFormatter: func(query string) string {
			return "Evaluate the architecture requirements and recommend a design for: " + query
		},
		QueryDescription: "The architecture request (e.g., 'Which signature scheme should the ledger migrate to?')",
	})
}

// NewSystemsEngineer creates the quantum rollout sub-agent.
func NewSystemsEngineer(eng *engine.Engine) *subagent.SubAgent {
	return subagent.NewSubAgent(eng, subagent.SubAgentConfig{
		Name:         "systems-engineer",
		SystemPrompt: SystemsEngineerSystemPrompt,
		AvailableTools: []string{
			"get_rollout_plan",
			"validate_component",
		},
		MaxTurns:  6,
		MaxTokens: 2048,
	})
}

// NewSystemsEngineerDelegationTool creates a delegation tool for the systems engineer.
func NewSystemsEngineerDelegationTool(eng *engine.Engine) *subagent.DelegationTool {
	return subagent.NewDelegationTool(subagent.DelegationConfig{
		SubAgent:    NewSystemsEngineer(eng),
		ToolName:    "plan_quantum_rollout",
		Description: "Delegate rollout planning to the systems engineer. Use this for deployment phasing and component validation questions.",
		TaskFormatter: func(query string) string {
			return "Plan the rollout phases and validate components for: " + query
		},
		QueryDescription: "The rollout request (e.g., 'Sequence the migration to quantum-secure key exchange.')",
	})
}
