package l0

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForShare(t *testing.T) {
	assert.Equal(t, ControlMonitoring, LevelForShare(0.05))
	assert.Equal(t, ControlInfluence, LevelForShare(0.15))
	assert.Equal(t, ControlInfluence, LevelForShare(0.30))
	assert.Equal(t, ControlPartial, LevelForShare(0.34))
	assert.Equal(t, ControlDominance, LevelForShare(0.51))
	assert.Equal(t, ControlAbsolute, LevelForShare(0.80))
}

func TestEcosystemControl_ActiveOnly(t *testing.T) {
	networks := []NetworkState{
		{Chain: "a", ValidatorShare: 0.40, GovernanceShare: 0.40, Active: true},
		{Chain: "b", ValidatorShare: 0.30, GovernanceShare: 0.30, Active: true},
		{Chain: "c", ValidatorShare: 0.90, GovernanceShare: 0.90, Active: false},
	}

	level, share := EcosystemControl(networks)

	// (0.40 + 0.30) / 2 = 0.35; the inactive chain is ignored.
	assert.InDelta(t, 0.35, share, 1e-9)
	assert.Equal(t, ControlPartial, level)
}

func TestEcosystemControl_Empty(t *testing.T) {
	level, share := EcosystemControl(nil)
	assert.Equal(t, ControlMonitoring, level)
	assert.Zero(t, share)
}

func newTestL0Agent(t *testing.T) *Agent {
	t.Helper()
	agent, err := NewAgent(DefaultConfig(), NewSimEcosystem(), nil)
	require.NoError(t, err)
	return agent
}

func TestPlanActions_TopKByControlImpact(t *testing.T) {
	agent := newTestL0Agent(t)

	state := &EcosystemState{
		Networks: []NetworkState{
			{Chain: "optimism", ValidatorShare: 0.08, GovernanceShare: 0.11, Active: true, Level: ControlMonitoring},
		},
		Proposals: []GovernanceProposal{
			{ID: "prop-32", Status: "active", StrategicScore: 8.1},
		},
	}

	actions := agent.PlanActions(state)

	require.Len(t, actions, maxSelectedActions)
	// Impacts: stake 0.8 > vote 0.81? vote = 8.1/10 = 0.81 > stake 0.8 > oracle 0.5.
	assert.Equal(t, "governance_vote", actions[0].Kind)
	assert.Equal(t, "stake_acquisition", actions[1].Kind)
	assert.Equal(t, "data_oracle", actions[2].Kind)

	// Ordering is strictly by control impact.
	for i := 1; i < len(actions); i++ {
		assert.GreaterOrEqual(t, actions[i-1].ControlImpact, actions[i].ControlImpact)
	}
}

func TestPlanActions_SkipsDominatedAndInactiveChains(t *testing.T) {
	agent := newTestL0Agent(t)

	state := &EcosystemState{
		Networks: []NetworkState{
			{Chain: "dominated", Active: true, Level: ControlDominance},
			{Chain: "inactive", Active: false, Level: ControlMonitoring},
		},
	}

	actions := agent.PlanActions(state)
	for _, a := range actions {
		assert.NotEqual(t, "stake_acquisition", a.Kind)
	}
}

func TestPlanActions_SkipsClosedProposals(t *testing.T) {
	agent := newTestL0Agent(t)

	state := &EcosystemState{
		Proposals: []GovernanceProposal{
			{ID: "prop-29", Status: "closed", StrategicScore: 9.9},
		},
	}

	actions := agent.PlanActions(state)
	for _, a := range actions {
		assert.NotEqual(t, "governance_vote", a.Kind)
	}
}

func TestPlanActions_ConfidenceGate(t *testing.T) {
	agent := newTestL0Agent(t)

	// With nothing else in the state, only the fee bump (0.9) and the
	// oracle (0.75) remain; both clear the 0.7 floor.
	actions := agent.PlanActions(&EcosystemState{})

	require.Len(t, actions, 2)
	for _, a := range actions {
		assert.GreaterOrEqual(t, a.Confidence, minActionConfidence)
	}
}

func TestExecuteCycle_Posture(t *testing.T) {
	agent := newTestL0Agent(t)

	report, err := agent.ExecuteCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Cycle)
	assert.Equal(t, report.ActionsPlanned, report.ActionsExecuted)
	assert.NotZero(t, report.MonthlyRevenue)
	assert.Equal(t, report, agent.LastReport())

	// Simulated shares average under 34%, so influence at best.
	assert.LessOrEqual(t, report.EcosystemLevel, ControlPartial)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.ValidatorTargetPct = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.GovernanceTargetPct = 1.5
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.ConsortiumMembers = nil
	assert.Error(t, bad.Validate())
}
