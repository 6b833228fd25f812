// Package presets provides pre-configured sub-agents for common tasks.
package presets

import (
	"github.com/mkpollard101/agentic-ai-starter/core"
	"github.com/mkpollard101/agentic-ai-starter/engine"
	"github.com/mkpollard101/agentic-ai-starter/subagent"
)

// OrchestratorSystemPrompt implements the orchestrator-workers pattern from
// Anthropic's "Building Effective Agents" guidance. The orchestrator dynamically
// breaks down tasks, delegates to worker agents, and synthesizes results.
const OrchestratorSystemPrompt = `You are a systems orchestrator coordinating four specialist agents.

Your role is to coordinate complex strategy and engineering tasks by delegating
to specialist agents and synthesizing their results into actionable plans.

AVAILABLE SPECIALISTS:
- run_defi_strategy: DeFi strategist for yield, arbitrage, and portfolio risk analysis
- plan_network_control: Network strategist for cross-chain control posture and governance
- design_architecture: Systems architect for post-quantum cryptographic blueprint design
- plan_quantum_rollout: Systems engineer for phased quantum-secure infrastructure rollout

ORCHESTRATION METHODOLOGY:
1. DECOMPOSE: Break the user's request into subtasks that specialists can handle
2. DELEGATE: Route each subtask to the appropriate specialist agent
3. SYNTHESIZE: Combine specialist responses into a coherent answer
4. VALIDATE: Ensure the combined response fully addresses the user's needs

ROUTING GUIDELINES:
- For yields, arbitrage, or portfolio questions → use run_defi_strategy
- For validator stake, fee policy, or governance questions → use plan_network_control
- For cryptographic scheme or blueprint questions → use design_architecture
- For deployment phasing or component validation → use plan_quantum_rollout
- For complex queries → use multiple specialists sequentially

IMPORTANT:
- You coordinate but don't have direct data access - always delegate
- Wait for specialist responses before synthesizing
- Be explicit about which specialists you're consulting
- If a specialist fails, explain the limitation and offer alternatives

Example decomposition:
User: "Is our treasury positioned for a quantum-secure migration?"
→ run_defi_strategy (to assess current portfolio risk)
→ design_architecture (to identify required cryptographic upgrades)
→ plan_quantum_rollout (to sequence the migration)
→ Synthesize: A staged plan with risk bounds at each phase`

// Orchestrator represents a coordinating agent that delegates to specialists.
// It implements the orchestrator-workers pattern for complex multi-step tasks.
type Orchestrator struct {
	engine       *engine.Engine
	workers      map[string]*subagent.DelegationTool
	systemPrompt string
}

// OrchestratorConfig configures the orchestrator agent.
type OrchestratorConfig struct {
	// Engine is the agent execution engine.
	Engine *engine.Engine

	// Workers are the specialist agents available for delegation.
	// Map key is the tool name, value is the delegation tool.
	Workers map[string]*subagent.DelegationTool

	// SystemPromptOverride optionally overrides the default orchestrator prompt.
	SystemPromptOverride string
}

// NewOrchestrator creates an orchestrator agent with the default specialists.
func NewOrchestrator(eng *engine.Engine) *Orchestrator {
	workers := make(map[string]*subagent.DelegationTool)

	// Register default specialists
	workers["run_defi_strategy"] = NewDefiStrategistDelegationTool(eng)
	workers["plan_network_control"] = NewNetworkStrategistDelegationTool(eng)
	workers["design_architecture"] = NewArchitectDelegationTool(eng)
	workers["plan_quantum_rollout"] = NewSystemsEngineerDelegationTool(eng)

	return &Orchestrator{
		engine:       eng,
		workers:      workers,
		systemPrompt: OrchestratorSystemPrompt,
	}
}

// NewOrchestratorWithConfig creates an orchestrator with custom configuration.
func NewOrchestratorWithConfig(cfg OrchestratorConfig) *Orchestrator {
	prompt := OrchestratorSystemPrompt
	if cfg.SystemPromptOverride != "" {
		prompt = cfg.SystemPromptOverride
	}

	return &Orchestrator{
		engine:       cfg.Engine,
		workers:      cfg.Workers,
		systemPrompt: prompt,
	}
}

// AddWorker adds a specialist worker to the orchestrator.
func (o *Orchestrator) AddWorker(tool *subagent.DelegationTool) {
	o.workers[tool.Name()] = tool
}

// GetWorkerTools returns the delegation tools for registration with the engine.
func (o *Orchestrator) GetWorkerTools() []core.Tool {
	tools := make([]core.Tool, 0, len(o.workers))
	for _, w := range o.workers {
		tools = append(tools, w)
	}
	return tools
}

// SystemPrompt returns the orchestrator's system prompt.
func (o *Orchestrator) SystemPrompt() string {
	return o.systemPrompt
}

// WorkerNames returns the names of all available worker agents.
func (o *Orchestrator) WorkerNames() []string {
	names := make([]string, 0, len(o.workers))
	for name := range o.workers {
		names = append(names, name)
	}
	return names
}

// Capabilities returns the orchestrator's capabilities for use as a core.Agent.
func (o *Orchestrator) Capabilities() *core.Capabilities {
	return &core.Capabilities{
		CanRequestConfirmation: true, // Orchestrator CAN request confirmation
		AvailableTools:         o.WorkerNames(),
		Model:                  "claude-sonnet-4-20250514",
		MaxTokens:              4096,
		MaxTurns:               15, // More turns for coordination
		SystemPrompt:           o.systemPrompt,
	}
}
