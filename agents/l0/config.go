// Package l0 implements the cross-chain network orchestration agent:
// ecosystem scanning, control posture assessment, and prioritized action
// planning across interoperability and consortium networks.
package l0

import "fmt"

// ControlLevel grades the agent's influence over a network on a 1-9 scale.
type ControlLevel int

const (
	ControlMonitoring ControlLevel = 1
	ControlInfluence  ControlLevel = 3
	ControlPartial    ControlLevel = 5
	ControlDominance  ControlLevel = 7
	ControlAbsolute   ControlLevel = 9
)

// String returns the level's display name.
func (c ControlLevel) String() string {
	switch c {
	case ControlMonitoring:
		return "monitoring"
	case ControlInfluence:
		return "influence"
	case ControlPartial:
		return "partial_control"
	case ControlDominance:
		return "dominance"
	case ControlAbsolute:
		return "absolute_control"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// LevelForShare maps a stake or governance share to a control level.
func LevelForShare(share float64) ControlLevel {
	switch {
	case share >= 0.75:
		return ControlAbsolute
	case share >= 0.51:
		return ControlDominance
	case share >= 0.34:
		return ControlPartial
	case share >= 0.15:
		return ControlInfluence
	default:
		return ControlMonitoring
	}
}

// Config holds the orchestration agent's targets and economics.
type Config struct {
	// InteropProtocol is the cross-chain messaging layer.
	InteropProtocol string

	// ConsortiumPlatform is the permissioned ledger for the consortium.
	ConsortiumPlatform string

	// ValidatorTargetPct is the target validator stake share per chain.
	ValidatorTargetPct float64

	// GovernanceTargetPct is the target governance voting share.
	GovernanceTargetPct float64

	// MessagingFeeBps is the base cross-chain messaging fee in basis points.
	MessagingFeeBps int

	// MaxDataFeeUSD caps the per-query consortium data fee.
	MaxDataFeeUSD float64

	// MinYieldAPRPct is the minimum APR for treasury liquidity deployments.
	MinYieldAPRPct float64

	// StrategicAssets are the treasury assets under management.
	StrategicAssets []string

	// ConsortiumMembers are the data-sharing consortium participants.
	ConsortiumMembers []string
}

// DefaultConfig returns the standard orchestration parameters.
func DefaultConfig() Config {
	return Config{
		InteropProtocol:     "LayerZero",
		ConsortiumPlatform:  "Hyperledger Fabric",
		ValidatorTargetPct:  0.34,
		GovernanceTargetPct: 0.51,
		MessagingFeeBps:     5,
		MaxDataFeeUSD:       1000,
		MinYieldAPRPct:      15.0,
		StrategicAssets:     []string{"BTC", "ETH", "USDC", "USDT", "CQA_TOKEN"},
		ConsortiumMembers:   []string{"CQA_Treasury", "Partner_A_Corp", "Partner_B_Gov"},
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.InteropProtocol == "" {
		return fmt.Errorf("interop protocol is required")
	}
	if c.ValidatorTargetPct <= 0 || c.ValidatorTargetPct > 1 {
		return fmt.Errorf("validator target must be in (0, 1], got %.2f", c.ValidatorTargetPct)
	}
	if c.GovernanceTargetPct <= 0 || c.GovernanceTargetPct > 1 {
		return fmt.Errorf("governance target must be in (0, 1], got %.2f", c.GovernanceTargetPct)
	}
	if c.MessagingFeeBps < 0 {
		return fmt.Errorf("messaging fee must be non-negative, got %d", c.MessagingFeeBps)
	}
	if c.MaxDataFeeUSD < 0 {
		return fmt.Errorf("max data fee must be non-negative, got %.2f", c.MaxDataFeeUSD)
	}
	if len(c.ConsortiumMembers) == 0 {
		return fmt.Errorf("at least one consortium member is required")
	}
	return nil
}
