// Package defi implements the DeFi profit-maximization agent: market
// scanning, strategy decomposition, branch evaluation, gated execution,
// and self-adjusting risk parameters.
package defi

import "fmt"

// RiskLevel grades an opportunity or position on a 1-9 scale.
type RiskLevel int

const (
	RiskLow      RiskLevel = 1
	RiskModerate RiskLevel = 3
	RiskElevated RiskLevel = 5
	RiskHigh     RiskLevel = 7
	RiskCritical RiskLevel = 9
)

// String returns the level's display name.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskElevated:
		return "elevated"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Config holds the agent's capital and risk parameters.
type Config struct {
	// InitialCapitalUSDC is the starting treasury in USDC.
	InitialCapitalUSDC float64

	// MaxPositionPct caps a single position as a fraction of capital.
	MaxPositionPct float64

	// MaxPortfolioRisk caps the value-weighted portfolio risk score (0-10).
	MaxPortfolioRisk float64

	// MinSecurityScore is the minimum protocol security score (0-10).
	MinSecurityScore float64

	// MaxImpermanentLossPct caps acceptable IL exposure on LP positions.
	MaxImpermanentLossPct float64

	// MinArbNetProfitPct is the minimum net spread for arbitrage, in percent.
	MinArbNetProfitPct float64

	// MinYieldAPY is the minimum APY for yield positions, in percent.
	MinYieldAPY float64

	// MaxGasGweiL1 defers execution when L1 gas exceeds this, in gwei.
	MaxGasGweiL1 float64

	// MaxGasGweiL2 defers L2 execution above this, in gwei.
	MaxGasGweiL2 float64

	// Networks are the chains the agent operates on.
	Networks []string

	// Protocols are the yield protocols the agent monitors.
	Protocols []string

	// Exchanges are the venues the agent watches for arbitrage.
	Exchanges []string
}

// DefaultConfig returns the standard treasury parameters.
func DefaultConfig() Config {
	return Config{
		InitialCapitalUSDC:    10_000,
		MaxPositionPct:        0.25,
		MaxPortfolioRisk:      6.0,
		MinSecurityScore:      8.5,
		MaxImpermanentLossPct: 5.0,
		MinArbNetProfitPct:    0.15,
		MinYieldAPY:           20.0,
		MaxGasGweiL1:          40.0,
		MaxGasGweiL2:          4.0,
		Networks:              []string{"ethereum", "arbitrum", "optimism", "polygon", "base"},
		Protocols:             []string{"aave", "compound", "curve", "convex", "yearn", "lido", "rocketpool", "gmx"},
		Exchanges:             []string{"uniswap", "sushiswap", "curve", "balancer", "binance", "coinbase", "kraken", "bybit"},
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.InitialCapitalUSDC <= 0 {
		return fmt.Errorf("initial capital must be positive, got %.2f", c.InitialCapitalUSDC)
	}
	if c.MaxPositionPct <= 0 || c.MaxPositionPct > 1 {
		return fmt.Errorf("max position pct must be in (0, 1], got %.2f", c.MaxPositionPct)
	}
	if c.MaxPortfolioRisk < 1 || c.MaxPortfolioRisk > 10 {
		return fmt.Errorf("max portfolio risk must be in [1, 10], got %.2f", c.MaxPortfolioRisk)
	}
	if c.MinSecurityScore < 0 || c.MinSecurityScore > 10 {
		return fmt.Errorf("min security score must be in [0, 10], got %.2f", c.MinSecurityScore)
	}
	if c.MaxImpermanentLossPct < 0 || c.MaxImpermanentLossPct > 100 {
		return fmt.Errorf("max impermanent loss must be in [0, 100], got %.2f", c.MaxImpermanentLossPct)
	}
	if c.MinArbNetProfitPct < 0 {
		return fmt.Errorf("min arbitrage profit must be non-negative, got %.2f", c.MinArbNetProfitPct)
	}
	if c.MinYieldAPY < 0 {
		return fmt.Errorf("min yield APY must be non-negative, got %.2f", c.MinYieldAPY)
	}
	if c.MaxGasGweiL1 <= 0 || c.MaxGasGweiL2 <= 0 {
		return fmt.Errorf("gas caps must be positive, got L1=%.2f L2=%.2f", c.MaxGasGweiL1, c.MaxGasGweiL2)
	}
	if len(c.Networks) == 0 {
		return fmt.Errorf("at least one network is required")
	}
	return nil
}
