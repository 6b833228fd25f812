package architect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchitect(t *testing.T) *Agent {
	t.Helper()
	agent, err := NewAgent(DefaultConfig())
	require.NoError(t, err)
	return agent
}

func TestBaselineBlueprints(t *testing.T) {
	agent := newTestArchitect(t)

	blueprints := agent.Blueprints()
	require.Len(t, blueprints, 3)

	ids := make(map[string]Blueprint)
	for _, bp := range blueprints {
		ids[bp.ID] = bp
		assert.Equal(t, StatusDraft, bp.Status)
		assert.InDelta(t, 2.0, bp.Version, 1e-9)
	}

	require.Contains(t, ids, "QA-002")
	qa := ids["QA-002"]
	assert.ElementsMatch(t, []string{"LWE", "RLWE", "SIS"}, qa.Hardness)
	assert.Contains(t, qa.Schemes, SchemeKyber)
	assert.Contains(t, qa.Schemes, SchemeDilithium)
	assert.Contains(t, qa.Schemes, SchemeSphincs)
}

func TestValidator_RequiredFoundations(t *testing.T) {
	v := NewValidator([]MathFoundation{FoundationAbstractAlgebra, FoundationNumberTheory})

	bp := Blueprint{
		ID:          "X-001",
		Foundations: []MathFoundation{FoundationAbstractAlgebra},
	}
	err := v.Validate(bp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number_theory")
}

func TestValidator_RejectsPseudoscience(t *testing.T) {
	v := NewValidator(nil)

	for _, term := range []string{"Numerology", "sacred geometry", "perpetual motion", "terryology"} {
		bp := Blueprint{
			ID:      "X-001",
			Summary: "A design based on " + term + " principles",
		}
		err := v.Validate(bp)
		require.Error(t, err, "term %q should be rejected", term)
		assert.Contains(t, err.Error(), "rejected concept")
	}
}

func TestValidator_QuantumClaimsNeedHardness(t *testing.T) {
	v := NewValidator(nil)

	bp := Blueprint{
		ID:      "X-001",
		Pillar:  PillarQuantumAI,
		Summary: "Quantum-resistant design",
	}
	err := v.Validate(bp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hardness assumption")

	bp.Hardness = []string{"LWE"}
	assert.NoError(t, v.Validate(bp))
}

func TestRunDesignPhase_StatusAndVersion(t *testing.T) {
	agent := newTestArchitect(t)

	report := agent.RunDesignPhase()
	require.Equal(t, 1, report.Phase)
	assert.Empty(t, report.Rejected)
	for _, bp := range report.Blueprints {
		assert.Equal(t, StatusEvaluated, bp.Status)
		assert.InDelta(t, 2.1, bp.Version, 1e-9)
	}

	report = agent.RunDesignPhase()
	require.Equal(t, 2, report.Phase)
	for _, bp := range report.Blueprints {
		assert.Equal(t, StatusVerified, bp.Status)
		assert.InDelta(t, 2.2, bp.Version, 1e-9)
	}
}

func TestEvaluate_AdvancesDraft(t *testing.T) {
	agent := newTestArchitect(t)

	bp, err := agent.Evaluate("MB-002")
	require.NoError(t, err)
	assert.Equal(t, StatusEvaluated, bp.Status)

	_, err = agent.Evaluate("NO-SUCH")
	assert.Error(t, err)
}

func TestPropose_ValidatesAndRejectsDuplicates(t *testing.T) {
	agent := newTestArchitect(t)

	bad := Blueprint{
		ID:          "BAD-001",
		Summary:     "Consensus via astrology charts",
		Foundations: DefaultConfig().RequiredFoundations,
	}
	assert.Error(t, agent.Propose(bad))

	good := Blueprint{
		ID:          "PQ-003",
		Name:        "Hybrid Signature Migration",
		Pillar:      PillarPostQuantum,
		Summary:     "Staged migration from ECDSA to Dilithium",
		Foundations: DefaultConfig().RequiredFoundations,
		Hardness:    []string{"RLWE"},
	}
	require.NoError(t, agent.Propose(good))
	assert.Len(t, agent.Blueprints(), 4)

	assert.Error(t, agent.Propose(good), "duplicate ID must be rejected")
}
