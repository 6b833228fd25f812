package l0

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// Actions below this confidence are discarded.
	minActionConfidence = 0.7

	// At most this many actions are executed per cycle.
	maxSelectedActions = 3
)

// Agent plans and executes control actions across the ecosystem.
type Agent struct {
	mu sync.RWMutex

	config  Config
	scanner EcosystemScanner
	ledger  *Ledger // optional

	cycle      int
	lastState  *EcosystemState
	lastReport *PostureReport
}

// NewAgent creates an orchestration agent. The ledger may be nil.
func NewAgent(cfg Config, scanner EcosystemScanner, ledger *Ledger) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if scanner == nil {
		return nil, fmt.Errorf("scanner is required")
	}
	return &Agent{config: cfg, scanner: scanner, ledger: ledger}, nil
}

// Config returns the agent's configuration.
func (a *Agent) Config() Config {
	return a.config
}

// LastReport returns the most recent posture report, or nil before the
// first cycle.
func (a *Agent) LastReport() *PostureReport {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastReport
}

// ScanEcosystem observes the networks, revenue streams, and proposals.
func (a *Agent) ScanEcosystem(ctx context.Context) (*EcosystemState, error) {
	state, err := a.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ecosystem scan: %w", err)
	}

	a.mu.Lock()
	a.lastState = state
	a.mu.Unlock()

	log.Printf("[L0] Scan: %d networks, %d revenue streams, %d proposals",
		len(state.Networks), len(state.Revenue), len(state.Proposals))
	return state, nil
}

// EcosystemControl computes the stake-and-governance weighted control level
// across active networks.
func EcosystemControl(networks []NetworkState) (ControlLevel, float64) {
	var sum float64
	var n int
	for _, net := range networks {
		if !net.Active {
			continue
		}
		sum += (net.ValidatorShare + net.GovernanceShare) / 2
		n++
	}
	if n == 0 {
		return ControlMonitoring, 0
	}
	share := sum / float64(n)
	return LevelForShare(share), share
}

// PlanActions generates candidate control actions from the current state,
// discards low-confidence candidates, and returns the top candidates by
// control impact.
func (a *Agent) PlanActions(state *EcosystemState) []ControlAction {
	var candidates []ControlAction

	// Fee policy: a one-basis-point bump on messaging volume.
	candidates = append(candidates, ControlAction{
		Kind: "fee_adjustment",
		Description: fmt.Sprintf("Raise %s messaging fee from %d to %d bps",
			a.config.InteropProtocol, a.config.MessagingFeeBps, a.config.MessagingFeeBps+1),
		RevenueGain:   10_000,
		ControlImpact: 0.1,
		Confidence:    0.9,
	})

	// Consortium data oracle on the permissioned ledger.
	candidates = append(candidates, ControlAction{
		Kind: "data_oracle",
		Description: fmt.Sprintf("Deploy consortium data oracle on %s (fee cap $%.0f)",
			a.config.ConsortiumPlatform, a.config.MaxDataFeeUSD),
		RevenueGain:   50_000,
		ControlImpact: 0.5,
		Confidence:    0.75,
	})

	// Stake acquisition on every active chain still below dominance.
	for _, net := range state.Networks {
		if !net.Active || net.Level >= ControlDominance {
			continue
		}
		candidates = append(candidates, ControlAction{
			Kind: "stake_acquisition",
			Description: fmt.Sprintf("Acquire +5%% validator stake on %s (currently %.0f%%)",
				net.Chain, net.ValidatorShare*100),
			ControlImpact: 0.8,
			Confidence:    0.8,
			Chain:         net.Chain,
		})
	}

	// FOR vote on every active proposal, weighted by strategic value.
	for _, p := range state.Proposals {
		if p.Status != "active" {
			continue
		}
		candidates = append(candidates, ControlAction{
			Kind:          "governance_vote",
			Description:   fmt.Sprintf("Vote FOR %s: %s", p.ID, p.Title),
			ControlImpact: p.StrategicScore / 10,
			Confidence:    0.95,
			ProposalID:    p.ID,
		})
	}

	// Validation gate, then top-k by control impact.
	valid := candidates[:0]
	for _, c := range candidates {
		if c.Confidence >= minActionConfidence {
			valid = append(valid, c)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].ControlImpact > valid[j].ControlImpact
	})
	if len(valid) > maxSelectedActions {
		valid = valid[:maxSelectedActions]
	}

	log.Printf("[L0] Planned %d actions", len(valid))
	return valid
}

// ExecuteCycle runs one scan/plan/execute cycle and reports the resulting
// posture. Execution is recorded; outward effects go through the gateway's
// confirmed write tools, not this path.
func (a *Agent) ExecuteCycle(ctx context.Context) (*PostureReport, error) {
	state, err := a.ScanEcosystem(ctx)
	if err != nil {
		return nil, err
	}

	actions := a.PlanActions(state)

	a.mu.Lock()
	a.cycle++
	cycle := a.cycle
	a.mu.Unlock()

	var records []ActionRecord
	executed := 0
	for _, action := range actions {
		rec := ActionRecord{
			ID:          uuid.New().String(),
			Cycle:       cycle,
			Kind:        action.Kind,
			Description: action.Description,
			Status:      "executed",
			CreatedAt:   time.Now(),
		}
		executed++
		records = append(records, rec)

		if a.ledger != nil {
			if err := a.ledger.RecordAction(ctx, rec); err != nil {
				log.Printf("[L0] Failed to record action: %v", err)
			}
		}
	}

	level, share := EcosystemControl(state.Networks)
	var revenue float64
	for _, r := range state.Revenue {
		revenue += r.MonthlyUSD
	}

	report := &PostureReport{
		Cycle:           cycle,
		EcosystemLevel:  level,
		WeightedShare:   share,
		MonthlyRevenue:  revenue,
		ActionsPlanned:  len(actions),
		ActionsExecuted: executed,
		Records:         records,
		CompletedAt:     time.Now(),
	}

	a.mu.Lock()
	a.lastReport = report
	a.mu.Unlock()

	log.Printf("[L0] Cycle %d complete: level=%s share=%.1f%% revenue=$%.0f/mo",
		cycle, level, share*100, revenue)
	return report, nil
}
