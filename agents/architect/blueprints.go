package architect

// Baseline blueprints the design pipeline starts from. Each is a draft at
// version 2.0; refinement bumps the version per pipeline phase.
func baselineBlueprints(cfg Config) []Blueprint {
	return []Blueprint{
		{
			ID:      "MB-002",
			Name:    "Modular Chain Stack",
			Pillar:  PillarModularChains,
			Version: 2.0,
			Status:  StatusDraft,
			Summary: "Execution, settlement, and data availability split into sovereign layers with " + cfg.DataAvailability + " DA and " + cfg.Consensus + " consensus.",
			Foundations: []MathFoundation{
				FoundationAbstractAlgebra,
				FoundationNumberTheory,
				FoundationProbability,
			},
			Components: []string{
				"execution_layer",
				"settlement_layer",
				"data_availability:" + cfg.DataAvailability,
				"consensus:" + cfg.Consensus,
			},
		},
		{
			ID:      "ZK-002",
			Name:    "Type-2 zkEVM Rollup",
			Pillar:  PillarZeroKnowledge,
			Version: 2.0,
			Status:  StatusDraft,
			Summary: "EVM-equivalent rollup proving execution with Groth16 and PLONK circuits over pairing-friendly curves.",
			Foundations: []MathFoundation{
				FoundationAbstractAlgebra,
				FoundationNumberTheory,
				FoundationLinearAlgebra,
			},
			Hardness: []string{"discrete_log", "knowledge_of_exponent"},
			Components: []string{
				"zkevm:" + cfg.ZKEVMType,
				"prover:Groth16",
				"prover:PLONK",
				"recursive_aggregation",
			},
		},
		{
			ID:      "QA-002",
			Name:    "Quantum-Resistant AI Ledger",
			Pillar:  PillarQuantumAI,
			Version: 2.0,
			Status:  StatusDraft,
			Summary: "Ledger with lattice-based key encapsulation and signatures, hash-based fallback, and AI-assisted anomaly detection.",
			Foundations: []MathFoundation{
				FoundationAbstractAlgebra,
				FoundationNumberTheory,
				FoundationLatticeTheory,
				FoundationInformationTheory,
			},
			Hardness: []string{"LWE", "RLWE", "SIS"},
			Schemes: []PQCScheme{
				SchemeKyber,
				SchemeDilithium,
				SchemeSphincs,
			},
			Components: []string{
				"kem:CRYSTALS-Kyber",
				"signature:CRYSTALS-Dilithium",
				"fallback_signature:SPHINCS+",
				"anomaly_detection",
			},
		},
	}
}
