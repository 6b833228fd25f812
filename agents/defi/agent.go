package defi

import (
	"fmt"
	"sync"
)

// knowledgeLimit bounds the retained scan history.
const knowledgeLimit = 20

// Agent is the DeFi strategy agent. All state is guarded by mu; cycles and
// tool calls may run concurrently.
type Agent struct {
	mu sync.RWMutex

	config  Config
	scanner MarketScanner
	ledger  *Ledger // optional

	capital   float64
	positions map[string]*Position
	paused    bool
	cycle     int

	// Adaptive parameters, adjusted by Refine each cycle.
	maxRisk      float64
	minArbProfit float64

	// lastTotal is capital plus portfolio value at the end of the
	// previous cycle, used for the PnL delta.
	lastTotal float64

	knowledge  []ScanResult
	lastReport *PerformanceReport
}

// NewAgent creates a DeFi agent. The ledger may be nil for ephemeral runs.
func NewAgent(cfg Config, scanner MarketScanner, ledger *Ledger) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if scanner == nil {
		return nil, fmt.Errorf("scanner is required")
	}

	return &Agent{
		config:       cfg,
		scanner:      scanner,
		ledger:       ledger,
		capital:      cfg.InitialCapitalUSDC,
		positions:    make(map[string]*Position),
		maxRisk:      cfg.MaxPortfolioRisk,
		minArbProfit: cfg.MinArbNetProfitPct,
		lastTotal:    cfg.InitialCapitalUSDC,
	}, nil
}

// Config returns the agent's static configuration.
func (a *Agent) Config() Config {
	return a.config
}

// Cycle returns the number of completed cycles.
func (a *Agent) Cycle() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cycle
}

// Paused reports whether the agent is operationally paused.
func (a *Agent) Paused() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.paused
}

// RiskParameters returns the current adaptive thresholds.
func (a *Agent) RiskParameters() (maxRisk, minArbProfit float64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.maxRisk, a.minArbProfit
}

// LastReport returns the most recent cycle report, or nil before the first
// cycle completes.
func (a *Agent) LastReport() *PerformanceReport {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastReport
}

// Knowledge returns the retained scan history, newest last.
func (a *Agent) Knowledge() []ScanResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]ScanResult, len(a.knowledge))
	copy(out, a.knowledge)
	return out
}
