package qin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectNomenclature(t *testing.T) {
	for _, name := range []string{"Web3 identity hub", "web5 gateway", "WEB8 mesh"} {
		err := RejectNomenclature(name)
		require.Error(t, err, "%q should be rejected", name)
		assert.Contains(t, err.Error(), "obsolete nomenclature")
	}

	for _, name := range []string{"BB84 key exchange", "ERC-3643 registry", "zero-trust gateway"} {
		assert.NoError(t, RejectNomenclature(name), "%q should pass", name)
	}
}

func newTestQin(t *testing.T) *Agent {
	t.Helper()
	agent, err := NewAgent(DefaultConfig())
	require.NoError(t, err)
	return agent
}

func TestRolloutPhases_Structure(t *testing.T) {
	agent := newTestQin(t)

	phases := agent.Phases()
	require.Len(t, phases, 4)

	assert.Equal(t, LayerInfrastructure, phases[0].Layer)
	assert.Equal(t, LayerCryptographic, phases[1].Layer)
	assert.Equal(t, LayerSecurity, phases[2].Layer)
	assert.Equal(t, LayerAsset, phases[3].Layer)

	// Technology selections flow from config.
	assert.Contains(t, phases[1].Technologies, "BB84_key_distribution")
	assert.Contains(t, phases[2].Technologies, "CARTA_access_control")
	assert.Contains(t, phases[3].Technologies, "ERC-3643_tokenization")
	assert.Contains(t, phases[3].Technologies, "Celestia_data_availability")

	// Every phase names its mathematical basis and exit criteria.
	for _, p := range phases {
		assert.NotEmpty(t, p.MathBasis, "phase %d", p.Number)
		assert.NotEmpty(t, p.ExitCriteria, "phase %d", p.Number)
	}
}

func TestCompletePhase_Ordering(t *testing.T) {
	agent := newTestQin(t)

	_, err := agent.CompletePhase(2)
	require.Error(t, err, "phase 2 must wait for phase 1")

	_, err = agent.CompletePhase(1)
	require.NoError(t, err)

	p, err := agent.CompletePhase(2)
	require.NoError(t, err)
	assert.True(t, p.Complete)

	_, err = agent.CompletePhase(9)
	assert.Error(t, err)
}

func TestPlanAndRender(t *testing.T) {
	agent := newTestQin(t)
	_, err := agent.CompletePhase(1)
	require.NoError(t, err)

	plan := agent.Plan()
	assert.Equal(t, 1, plan.Completed)
	assert.Equal(t, 4, plan.Total)

	rendered := plan.Render()
	assert.Contains(t, rendered, "1/4 phases complete")
	assert.Contains(t, rendered, "Quantum Network Infrastructure")
	assert.Contains(t, rendered, "[x] Phase 1")
	assert.Contains(t, rendered, "[ ] Phase 2")
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.KeyDistribution = ""
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.TokenStandard = ""
	assert.Error(t, bad.Validate())
}
