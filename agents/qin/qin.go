// Package qin implements the quantum-secure infrastructure rollout agent:
// a phased deployment plan where each phase names its core technologies and
// the mathematics they rest on, plus nomenclature validation that rejects
// marketing terms with no technical grounding.
package qin

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Layer is a rollout phase's architectural layer.
type Layer string

const (
	LayerInfrastructure Layer = "infrastructure"
	LayerCryptographic  Layer = "cryptographic"
	LayerSecurity       Layer = "security"
	LayerAsset          Layer = "asset"
)

// Phase is one stage of the rollout.
type Phase struct {
	Number       int      `json:"number"`
	Name         string   `json:"name"`
	Layer        Layer    `json:"layer"`
	Technologies []string `json:"technologies"`
	MathBasis    []string `json:"math_basis"`
	ExitCriteria []string `json:"exit_criteria"`
	Complete     bool     `json:"complete"`
}

// Config holds the rollout program's technology selections.
type Config struct {
	// KeyDistribution is the quantum key distribution protocol.
	KeyDistribution string

	// Multiplexing is the optical transport multiplexing scheme.
	Multiplexing string

	// SecurityModel is the adaptive access-control framework.
	SecurityModel string

	// DataAvailability is the DA layer for the asset phase.
	DataAvailability string

	// TokenStandard is the compliance-aware token standard.
	TokenStandard string
}

// DefaultConfig returns the standard rollout parameters.
func DefaultConfig() Config {
	return Config{
		KeyDistribution:  "BB84",
		Multiplexing:     "WDM",
		SecurityModel:    "CARTA",
		DataAvailability: "Celestia",
		TokenStandard:    "ERC-3643",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.KeyDistribution == "" {
		return fmt.Errorf("key distribution protocol is required")
	}
	if c.SecurityModel == "" {
		return fmt.Errorf("security model is required")
	}
	if c.TokenStandard == "" {
		return fmt.Errorf("token standard is required")
	}
	return nil
}

// obsoleteTerms are nomenclature the program refuses to plan around.
var obsoleteTerms = []string{"web3", "web5", "web8"}

// RejectNomenclature returns an error when the component name uses obsolete
// or ungrounded marketing terms.
func RejectNomenclature(component string) error {
	lower := strings.ToLower(component)
	for _, term := range obsoleteTerms {
		if strings.Contains(lower, term) {
			return fmt.Errorf("component %q uses obsolete nomenclature %q: name the protocol or standard instead", component, term)
		}
	}
	return nil
}

// Agent plans and tracks the phased rollout.
type Agent struct {
	mu sync.RWMutex

	config Config
	phases []Phase
}

// NewAgent creates a rollout agent with the four standard phases.
func NewAgent(cfg Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Agent{config: cfg, phases: rolloutPhases(cfg)}, nil
}

// rolloutPhases builds the standard four-phase plan.
func rolloutPhases(cfg Config) []Phase {
	return []Phase{
		{
			Number: 1,
			Name:   "Quantum Network Infrastructure",
			Layer:  LayerInfrastructure,
			Technologies: []string{
				"fiber_backbone",
				cfg.Multiplexing + "_multiplexing",
				"trusted_repeater_nodes",
			},
			MathBasis: []string{
				"quantum_mechanics",
				"information_theory",
				"optical_physics",
			},
			ExitCriteria: []string{
				"end-to-end channel loss within budget",
				"repeater node attestation verified",
			},
		},
		{
			Number: 2,
			Name:   "Cryptographic Layer",
			Layer:  LayerCryptographic,
			Technologies: []string{
				cfg.KeyDistribution + "_key_distribution",
				"lattice_kem",
				"hybrid_tls",
			},
			MathBasis: []string{
				"no_cloning_theorem",
				"lattice_theory",
				"number_theory",
			},
			ExitCriteria: []string{
				"key rate above operational floor",
				"hybrid handshake interop verified",
			},
		},
		{
			Number: 3,
			Name:   "Adaptive Security Layer",
			Layer:  LayerSecurity,
			Technologies: []string{
				cfg.SecurityModel + "_access_control",
				"zero_trust_segmentation",
				"continuous_attestation",
			},
			MathBasis: []string{
				"probability_theory",
				"game_theory",
			},
			ExitCriteria: []string{
				"risk-adaptive policy engine in enforcement mode",
				"no implicit trust paths remain",
			},
		},
		{
			Number: 4,
			Name:   "Compliant Asset Layer",
			Layer:  LayerAsset,
			Technologies: []string{
				cfg.TokenStandard + "_tokenization",
				cfg.DataAvailability + "_data_availability",
				"onchain_identity_registry",
			},
			MathBasis: []string{
				"abstract_algebra",
				"merkle_commitments",
			},
			ExitCriteria: []string{
				"transfer restrictions enforced on-chain",
				"identity registry synchronized with compliance source",
			},
		},
	}
}

// Config returns the agent's configuration.
func (a *Agent) Config() Config {
	return a.config
}

// Phases returns a snapshot of the rollout plan.
func (a *Agent) Phases() []Phase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Phase, len(a.phases))
	copy(out, a.phases)
	return out
}

// CompletePhase marks a phase done. Phases must complete in order.
func (a *Agent) CompletePhase(number int) (*Phase, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.phases {
		p := &a.phases[i]
		if p.Number != number {
			continue
		}
		if i > 0 && !a.phases[i-1].Complete {
			return nil, fmt.Errorf("phase %d cannot complete before phase %d", number, a.phases[i-1].Number)
		}
		p.Complete = true
		return p, nil
	}
	return nil, fmt.Errorf("phase %d not found", number)
}

// RolloutPlan is the rendered plan with progress.
type RolloutPlan struct {
	Phases      []Phase   `json:"phases"`
	Completed   int       `json:"completed"`
	Total       int       `json:"total"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Plan renders the current rollout plan.
func (a *Agent) Plan() *RolloutPlan {
	phases := a.Phases()
	completed := 0
	for _, p := range phases {
		if p.Complete {
			completed++
		}
	}
	return &RolloutPlan{
		Phases:      phases,
		Completed:   completed,
		Total:       len(phases),
		GeneratedAt: time.Now(),
	}
}

// Render formats the plan as readable text.
func (p *RolloutPlan) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rollout plan: %d/%d phases complete\n", p.Completed, p.Total)
	for _, phase := range p.Phases {
		mark := " "
		if phase.Complete {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] Phase %d: %s (%s)\n", mark, phase.Number, phase.Name, phase.Layer)
		fmt.Fprintf(&b, "    tech: %s\n", strings.Join(phase.Technologies, ", "))
		fmt.Fprintf(&b, "    math: %s\n", strings.Join(phase.MathBasis, ", "))
	}
	return b.String()
}
