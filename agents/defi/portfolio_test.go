package defi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioRiskScore_ValueWeighted(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	_, err := agent.OpenPosition("yield", "aave", "arbitrum", 3000, 2.0)
	require.NoError(t, err)
	_, err = agent.OpenPosition("yield", "gmx", "arbitrum", 1000, 6.0)
	require.NoError(t, err)

	// (2.0 * 3000 + 6.0 * 1000) / 4000 = 3.0
	assert.InDelta(t, 3.0, agent.PortfolioRiskScore(), 1e-9)
	assert.InDelta(t, 4000, agent.PortfolioValue(), 1e-9)
	assert.InDelta(t, 6000, agent.Capital(), 1e-9)
}

func TestPortfolioRiskScore_EmptyPortfolio(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})
	assert.Zero(t, agent.PortfolioRiskScore())
}

func TestOpenPosition_InsufficientCapital(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	_, err := agent.OpenPosition("yield", "aave", "arbitrum", 20_000, 2.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient capital")
}

func TestClosePosition_ReturnsCapital(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	pos, err := agent.OpenPosition("yield", "aave", "arbitrum", 2500, 2.0)
	require.NoError(t, err)

	closed, err := agent.ClosePosition(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, pos.ID, closed.ID)
	assert.InDelta(t, 10_000, agent.Capital(), 1e-9)
	assert.Empty(t, agent.Positions())
}

func TestClosePosition_NotFound(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	_, err := agent.ClosePosition("no-such-id")
	assert.Error(t, err)
}

func TestReduceRiskExposure_ClosesHighestRiskFirst(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	_, err := agent.OpenPosition("yield", "aave", "arbitrum", 2000, 3.0)
	require.NoError(t, err)
	riskiest, err := agent.OpenPosition("yield", "gmx", "arbitrum", 2000, 9.0)
	require.NoError(t, err)
	_, err = agent.OpenPosition("yield", "curve", "optimism", 2000, 7.0)
	require.NoError(t, err)

	// (3+9+7)/3 = 6.33 > 6.0 limit
	require.Greater(t, agent.PortfolioRiskScore(), 6.0)

	closed, err := agent.ReduceRiskExposure(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, closed)
	assert.Equal(t, riskiest.ID, closed[0].ID)
	assert.LessOrEqual(t, agent.PortfolioRiskScore(), 6.0)
}

func TestReduceRiskExposure_NoopWhenUnderLimit(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	_, err := agent.OpenPosition("yield", "aave", "arbitrum", 2000, 2.0)
	require.NoError(t, err)

	closed, err := agent.ReduceRiskExposure(context.Background())
	require.NoError(t, err)
	assert.Empty(t, closed)
	assert.Len(t, agent.Positions(), 1)
}

func TestEmergencyPause_BlocksNewPositions(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	require.NoError(t, agent.EmergencyPause(context.Background(), "anomaly detected"))
	assert.True(t, agent.Paused())

	_, err := agent.OpenPosition("yield", "aave", "arbitrum", 1000, 2.0)
	assert.Error(t, err)

	agent.Resume()
	assert.False(t, agent.Paused())

	_, err = agent.OpenPosition("yield", "aave", "arbitrum", 1000, 2.0)
	assert.NoError(t, err)
}

func TestCheckRiskThresholds_PositionCap(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	branch := StrategyBranch{
		RiskScore:       1.0,
		CapitalRequired: 3000, // above the 2500 per-position cap
	}
	ok, reason := agent.CheckRiskThresholds(branch)
	assert.False(t, ok)
	assert.Contains(t, reason, "exceeds cap")
}
