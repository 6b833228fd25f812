// Package architect implements the systems architecture agent: blueprint
// generation for post-quantum, zero-knowledge, and modular chain designs,
// with mathematical rigor validation.
package architect

import "fmt"

// TechPillar is a core technology area a blueprint builds on.
type TechPillar string

const (
	PillarModularChains TechPillar = "modular_chains"
	PillarZeroKnowledge TechPillar = "zero_knowledge"
	PillarPostQuantum   TechPillar = "post_quantum"
	PillarQuantumAI     TechPillar = "quantum_ai"
)

// MathFoundation is an established mathematical discipline a design claim
// may rest on.
type MathFoundation string

const (
	FoundationAbstractAlgebra   MathFoundation = "abstract_algebra"
	FoundationNumberTheory      MathFoundation = "number_theory"
	FoundationLatticeTheory     MathFoundation = "lattice_theory"
	FoundationProbability       MathFoundation = "probability_theory"
	FoundationInformationTheory MathFoundation = "information_theory"
	FoundationLinearAlgebra     MathFoundation = "linear_algebra"
)

// PQCScheme is a post-quantum cryptographic scheme.
type PQCScheme string

const (
	SchemeKyber     PQCScheme = "CRYSTALS-Kyber"
	SchemeDilithium PQCScheme = "CRYSTALS-Dilithium"
	SchemeFalcon    PQCScheme = "FALCON"
	SchemeSphincs   PQCScheme = "SPHINCS+"
)

// BlueprintStatus tracks a blueprint through the design pipeline.
type BlueprintStatus string

const (
	StatusDraft     BlueprintStatus = "draft"
	StatusEvaluated BlueprintStatus = "evaluated"
	StatusVerified  BlueprintStatus = "refined_and_verified"
)

// Blueprint is a complete architecture design.
type Blueprint struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Pillar      TechPillar       `json:"pillar"`
	Version     float64          `json:"version"`
	Status      BlueprintStatus  `json:"status"`
	Summary     string           `json:"summary"`
	Foundations []MathFoundation `json:"foundations"`
	Hardness    []string         `json:"hardness_assumptions,omitempty"`
	Schemes     []PQCScheme      `json:"schemes,omitempty"`
	Components  []string         `json:"components"`
}

// Config holds the architecture program's targets.
type Config struct {
	// TargetYear is the deployment horizon.
	TargetYear int

	// DataAvailability is the DA layer for modular designs.
	DataAvailability string

	// Consensus is the consensus model.
	Consensus string

	// ProofSystems are the supported ZK proof systems.
	ProofSystems []string

	// ZKEVMType is the zkEVM compatibility class.
	ZKEVMType string

	// RequiredFoundations must back every blueprint.
	RequiredFoundations []MathFoundation
}

// DefaultConfig returns the standard architecture program parameters.
func DefaultConfig() Config {
	return Config{
		TargetYear:       2026,
		DataAvailability: "Celestia",
		Consensus:        "PoS/PoA hybrid",
		ProofSystems:     []string{"Groth16", "PLONK"},
		ZKEVMType:        "Type-2",
		RequiredFoundations: []MathFoundation{
			FoundationAbstractAlgebra,
			FoundationNumberTheory,
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.TargetYear < 2024 {
		return fmt.Errorf("target year must be 2024 or later, got %d", c.TargetYear)
	}
	if c.DataAvailability == "" {
		return fmt.Errorf("data availability layer is required")
	}
	if len(c.RequiredFoundations) == 0 {
		return fmt.Errorf("at least one required foundation is needed")
	}
	return nil
}
