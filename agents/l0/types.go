package l0

import "time"

// NetworkState is one chain's observed posture.
type NetworkState struct {
	Chain           string       `json:"chain"`
	ValidatorShare  float64      `json:"validator_share"`
	GovernanceShare float64      `json:"governance_share"`
	Active          bool         `json:"active"`
	MessagingFeeBps int          `json:"messaging_fee_bps"`
	Level           ControlLevel `json:"level"`
}

// RevenueStream is one income source across the ecosystem.
type RevenueStream struct {
	Name       string  `json:"name"`
	MonthlyUSD float64 `json:"monthly_usd"`
	GrowthPct  float64 `json:"growth_pct"`
	Consortium bool    `json:"consortium"`
}

// GovernanceProposal is a proposal the agent can vote on.
type GovernanceProposal struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	StrategicScore float64 `json:"strategic_score"` // 0-10
}

// EcosystemState aggregates one ecosystem scan.
type EcosystemState struct {
	Networks  []NetworkState       `json:"networks"`
	Revenue   []RevenueStream      `json:"revenue"`
	Proposals []GovernanceProposal `json:"proposals"`
	ScannedAt time.Time            `json:"scanned_at"`
}

// ControlAction is a scored candidate action.
type ControlAction struct {
	Kind          string  `json:"kind"` // fee_adjustment, data_oracle, stake_acquisition, governance_vote
	Description   string  `json:"description"`
	RevenueGain   float64 `json:"revenue_gain_usd"`
	ControlImpact float64 `json:"control_impact"`
	Confidence    float64 `json:"confidence"`
	Chain         string  `json:"chain,omitempty"`
	ProposalID    string  `json:"proposal_id,omitempty"`
}

// ActionRecord is an executed or skipped control action.
type ActionRecord struct {
	ID          string    `json:"id"`
	Cycle       int       `json:"cycle"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostureReport summarizes the ecosystem control posture after a cycle.
type PostureReport struct {
	Cycle           int            `json:"cycle"`
	EcosystemLevel  ControlLevel   `json:"ecosystem_level"`
	WeightedShare   float64        `json:"weighted_share"`
	MonthlyRevenue  float64        `json:"monthly_revenue_usd"`
	ActionsPlanned  int            `json:"actions_planned"`
	ActionsExecuted int            `json:"actions_executed"`
	Records         []ActionRecord `json:"records"`
	CompletedAt     time.Time      `json:"completed_at"`
}
