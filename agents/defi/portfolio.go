package defi

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ==================== PORTFOLIO STATE ====================

// Capital returns the uncommitted treasury balance.
func (a *Agent) Capital() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.capital
}

// Positions returns a snapshot of open positions.
func (a *Agent) Positions() []Position {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.positionsLocked()
}

func (a *Agent) positionsLocked() []Position {
	out := make([]Position, 0, len(a.positions))
	for _, p := range a.positions {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.Before(out[j].OpenedAt) })
	return out
}

// PortfolioValue returns the total value of open positions.
func (a *Agent) PortfolioValue() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.portfolioValueLocked()
}

func (a *Agent) portfolioValueLocked() float64 {
	var total float64
	for _, p := range a.positions {
		total += p.ValueUSD
	}
	return total
}

// PortfolioRiskScore returns the value-weighted risk score across open
// positions. An empty portfolio scores zero.
func (a *Agent) PortfolioRiskScore() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.portfolioRiskLocked()
}

func (a *Agent) portfolioRiskLocked() float64 {
	total := a.portfolioValueLocked()
	if total == 0 {
		return 0
	}
	var risk float64
	for _, p := range a.positions {
		risk += p.RiskScore * (p.ValueUSD / total)
	}
	return risk
}

// ==================== RISK GATES ====================

// CheckRiskThresholds reports whether opening the branch keeps the portfolio
// within bounds. The returned reason is empty when the branch passes.
func (a *Agent) CheckRiskThresholds(branch StrategyBranch) (ok bool, reason string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.checkRiskLocked(branch)
}

func (a *Agent) checkRiskLocked(branch StrategyBranch) (bool, string) {
	if branch.CapitalRequired > a.capital {
		return false, fmt.Sprintf("insufficient capital: need %.2f, have %.2f", branch.CapitalRequired, a.capital)
	}

	maxPosition := a.config.InitialCapitalUSDC * a.config.MaxPositionPct
	if branch.CapitalRequired > maxPosition {
		return false, fmt.Sprintf("position %.2f exceeds cap %.2f", branch.CapitalRequired, maxPosition)
	}

	// Projected value-weighted risk including the new position.
	total := a.portfolioValueLocked() + branch.CapitalRequired
	if total == 0 {
		return true, ""
	}
	risk := a.portfolioRiskLocked() * a.portfolioValueLocked() / total
	risk += branch.RiskScore * branch.CapitalRequired / total
	if risk > a.maxRisk {
		return false, fmt.Sprintf("projected portfolio risk %.2f exceeds limit %.2f", risk, a.maxRisk)
	}

	return true, ""
}

// ==================== POSITION LIFECYCLE ====================

// OpenPosition commits capital to a new position.
func (a *Agent) OpenPosition(kind, protocol, network string, valueUSD, riskScore float64) (*Position, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.paused {
		return nil, fmt.Errorf("agent is paused")
	}
	if valueUSD <= 0 {
		return nil, fmt.Errorf("position value must be positive, got %.2f", valueUSD)
	}
	if valueUSD > a.capital {
		return nil, fmt.Errorf("insufficient capital: need %.2f, have %.2f", valueUSD, a.capital)
	}

	pos := &Position{
		ID:        uuid.New().String(),
		Kind:      kind,
		Protocol:  protocol,
		Network:   network,
		ValueUSD:  valueUSD,
		RiskScore: riskScore,
		OpenedAt:  time.Now(),
	}
	a.positions[pos.ID] = pos
	a.capital -= valueUSD

	log.Printf("[DEFI] Opened %s position %s: %.2f USDC on %s/%s (risk %.1f)",
		kind, pos.ID[:8], valueUSD, protocol, network, riskScore)
	return pos, nil
}

// ClosePosition returns a position's value to the treasury.
func (a *Agent) ClosePosition(id string) (*Position, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closePositionLocked(id)
}

func (a *Agent) closePositionLocked(id string) (*Position, error) {
	pos, ok := a.positions[id]
	if !ok {
		return nil, fmt.Errorf("position %s not found", id)
	}
	delete(a.positions, id)
	a.capital += pos.ValueUSD

	log.Printf("[DEFI] Closed position %s: %.2f USDC returned", pos.ID[:8], pos.ValueUSD)
	return pos, nil
}

// ReduceRiskExposure closes the highest-risk positions until the portfolio
// risk score is back under the current limit. Returns the closed positions.
func (a *Agent) ReduceRiskExposure(ctx context.Context) ([]Position, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var closed []Position
	for a.portfolioRiskLocked() > a.maxRisk && len(a.positions) > 0 {
		var worst *Position
		for _, p := range a.positions {
			if worst == nil || p.RiskScore > worst.RiskScore {
				worst = p
			}
		}
		pos, err := a.closePositionLocked(worst.ID)
		if err != nil {
			return closed, err
		}
		closed = append(closed, *pos)

		if a.ledger != nil {
			rec := TransactionRecord{
				ID:          uuid.New().String(),
				Cycle:       a.cycle,
				Kind:        "risk_reduction",
				Description: fmt.Sprintf("Closed %s on %s to reduce portfolio risk", pos.Protocol, pos.Network),
				AmountUSD:   pos.ValueUSD,
				Status:      "executed",
				CreatedAt:   time.Now(),
			}
			if err := a.ledger.RecordTransaction(ctx, rec); err != nil {
				log.Printf("[DEFI] Failed to record risk reduction: %v", err)
			}
		}
	}

	if len(closed) > 0 {
		log.Printf("[DEFI] Risk reduction closed %d position(s), portfolio risk now %.2f",
			len(closed), a.portfolioRiskLocked())
	}
	return closed, nil
}

// EmergencyPause halts execution until Resume. The pause is recorded in the
// ledger when one is attached.
func (a *Agent) EmergencyPause(ctx context.Context, reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.paused {
		return nil
	}
	a.paused = true
	log.Printf("[DEFI] EMERGENCY PAUSE: %s", reason)

	if a.ledger != nil {
		rec := TransactionRecord{
			ID:          uuid.New().String(),
			Cycle:       a.cycle,
			Kind:        "emergency_pause",
			Description: reason,
			Status:      "executed",
			CreatedAt:   time.Now(),
		}
		if err := a.ledger.RecordTransaction(ctx, rec); err != nil {
			return fmt.Errorf("pause recorded in memory but not in ledger: %w", err)
		}
	}
	return nil
}

// Resume lifts an emergency pause.
func (a *Agent) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.paused {
		a.paused = false
		log.Printf("[DEFI] Resumed from pause")
	}
}
