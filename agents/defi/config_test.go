package defi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate_Ranges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capital", func(c *Config) { c.InitialCapitalUSDC = 0 }},
		{"negative capital", func(c *Config) { c.InitialCapitalUSDC = -100 }},
		{"position pct over 1", func(c *Config) { c.MaxPositionPct = 1.5 }},
		{"zero position pct", func(c *Config) { c.MaxPositionPct = 0 }},
		{"portfolio risk over 10", func(c *Config) { c.MaxPortfolioRisk = 11 }},
		{"portfolio risk under 1", func(c *Config) { c.MaxPortfolioRisk = 0.5 }},
		{"security score over 10", func(c *Config) { c.MinSecurityScore = 10.5 }},
		{"negative arb profit", func(c *Config) { c.MinArbNetProfitPct = -0.1 }},
		{"negative yield apy", func(c *Config) { c.MinYieldAPY = -1 }},
		{"zero gas cap", func(c *Config) { c.MaxGasGweiL1 = 0 }},
		{"no networks", func(c *Config) { c.Networks = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRiskLevelString(t *testing.T) {
	assert.Equal(t, "low", RiskLow.String())
	assert.Equal(t, "moderate", RiskModerate.String())
	assert.Equal(t, "elevated", RiskElevated.String())
	assert.Equal(t, "high", RiskHigh.String())
	assert.Equal(t, "critical", RiskCritical.String())
	assert.Contains(t, RiskLevel(2).String(), "unknown")
}

func TestNewAgent_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialCapitalUSDC = -1

	_, err := NewAgent(cfg, &stubScanner{}, nil)
	assert.Error(t, err)
}

func TestNewAgent_RequiresScanner(t *testing.T) {
	_, err := NewAgent(DefaultConfig(), nil, nil)
	assert.Error(t, err)
}
