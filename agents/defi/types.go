package defi

import "time"

// YieldOpportunity is a lending or LP opportunity observed during a scan.
type YieldOpportunity struct {
	Protocol      string    `json:"protocol"`
	Network       string    `json:"network"`
	Pool          string    `json:"pool"`
	APY           float64   `json:"apy"`
	TVLUSD        float64   `json:"tvl_usd"`
	SecurityScore float64   `json:"security_score"`
	ILRiskPct     float64   `json:"il_risk_pct"`
	ObservedAt    time.Time `json:"observed_at"`
}

// ArbitrageOpportunity is a price spread between two venues.
type ArbitrageOpportunity struct {
	Pair         string    `json:"pair"`
	BuyExchange  string    `json:"buy_exchange"`
	SellExchange string    `json:"sell_exchange"`
	BuyNetwork   string    `json:"buy_network"`
	SellNetwork  string    `json:"sell_network"`
	SpreadPct    float64   `json:"spread_pct"`
	NetProfitPct float64   `json:"net_profit_pct"`
	DepthUSD     float64   `json:"depth_usd"`
	CrossChain   bool      `json:"cross_chain"`
	ObservedAt   time.Time `json:"observed_at"`
}

// GasReading is gas pricing per network at scan time.
type GasReading struct {
	Network    string    `json:"network"`
	Gwei       float64   `json:"gwei"`
	ObservedAt time.Time `json:"observed_at"`
}

// Position is an open treasury position.
type Position struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "yield" or "arbitrage"
	Protocol  string    `json:"protocol"`
	Network   string    `json:"network"`
	ValueUSD  float64   `json:"value_usd"`
	RiskScore float64   `json:"risk_score"`
	OpenedAt  time.Time `json:"opened_at"`
}

// TransactionRecord is an executed, deferred, or skipped action.
type TransactionRecord struct {
	ID          string    `json:"id"`
	Cycle       int       `json:"cycle"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	AmountUSD   float64   `json:"amount_usd"`
	Status      string    `json:"status"` // executed, deferred, skipped, error
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// StrategyTask is one prioritized unit of work for a cycle.
type StrategyTask struct {
	Kind     string `json:"kind"` // arbitrage, yield, risk_assessment
	Priority int    `json:"priority"`

	Yield *YieldOpportunity     `json:"yield,omitempty"`
	Arb   *ArbitrageOpportunity `json:"arb,omitempty"`
}

// StrategyBranch is a scored candidate action derived from a task.
type StrategyBranch struct {
	Task            StrategyTask `json:"task"`
	Description     string       `json:"description"`
	ExpectedReturn  float64      `json:"expected_return"`
	RiskScore       float64      `json:"risk_score"`
	Confidence      float64      `json:"confidence"`
	CapitalRequired float64      `json:"capital_required"`
}

// ScanResult aggregates one market scan.
type ScanResult struct {
	Yields    []YieldOpportunity     `json:"yields"`
	Arbs      []ArbitrageOpportunity `json:"arbs"`
	Gas       []GasReading           `json:"gas"`
	ScannedAt time.Time              `json:"scanned_at"`
}

// ExecutionSummary tallies one cycle's execution phase.
type ExecutionSummary struct {
	Executed int                 `json:"executed"`
	Deferred int                 `json:"deferred"`
	Skipped  int                 `json:"skipped"`
	Errors   int                 `json:"errors"`
	Records  []TransactionRecord `json:"records"`
}

// PerformanceReport summarizes a completed cycle.
type PerformanceReport struct {
	Cycle            int              `json:"cycle"`
	CapitalUSD       float64          `json:"capital_usd"`
	PortfolioValue   float64          `json:"portfolio_value"`
	PortfolioRisk    float64          `json:"portfolio_risk"`
	OpenPositions    int              `json:"open_positions"`
	PnLDelta         float64          `json:"pnl_delta"`
	TasksPlanned     int              `json:"tasks_planned"`
	BranchesSelected int              `json:"branches_selected"`
	Execution        ExecutionSummary `json:"execution"`
	MaxRiskAfter     float64          `json:"max_risk_after"`
	MinArbAfter      float64          `json:"min_arb_after"`
	CompletedAt      time.Time        `json:"completed_at"`
}
