package defi

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// Branches below this confidence are discarded during evaluation.
	minBranchConfidence = 0.6

	// At most this many branches are selected per cycle.
	maxSelectedBranches = 3

	// Task priorities. Lower runs first.
	priorityRiskAssessment = 0
	priorityArbitrage      = 1
	priorityYield          = 2
)

// ==================== SCAN ====================

// ScanMarket gathers yields, arbitrage spreads, and gas conditions, and
// appends the result to the agent's knowledge base.
func (a *Agent) ScanMarket(ctx context.Context) (*ScanResult, error) {
	yields, err := a.scanner.ScanYields(ctx)
	if err != nil {
		return nil, fmt.Errorf("yield scan: %w", err)
	}
	arbs, err := a.scanner.ScanArbitrage(ctx)
	if err != nil {
		return nil, fmt.Errorf("arbitrage scan: %w", err)
	}
	gas, err := a.scanner.GasConditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("gas scan: %w", err)
	}

	result := &ScanResult{
		Yields:    yields,
		Arbs:      arbs,
		Gas:       gas,
		ScannedAt: time.Now(),
	}

	a.mu.Lock()
	a.knowledge = append(a.knowledge, *result)
	if len(a.knowledge) > knowledgeLimit {
		a.knowledge = a.knowledge[len(a.knowledge)-knowledgeLimit:]
	}
	a.mu.Unlock()

	log.Printf("[DEFI] Scan: %d yields, %d arbs, %d gas readings",
		len(yields), len(arbs), len(gas))
	return result, nil
}

// ==================== DECOMPOSE ====================

// DecomposeStrategy filters scan results against the agent's thresholds and
// emits a prioritized task list. A risk assessment task is always present.
func (a *Agent) DecomposeStrategy(scan *ScanResult) []StrategyTask {
	a.mu.RLock()
	minArb := a.minArbProfit
	a.mu.RUnlock()

	tasks := []StrategyTask{
		{Kind: "risk_assessment", Priority: priorityRiskAssessment},
	}

	for i := range scan.Arbs {
		arb := scan.Arbs[i]
		if arb.NetProfitPct >= minArb {
			tasks = append(tasks, StrategyTask{
				Kind:     "arbitrage",
				Priority: priorityArbitrage,
				Arb:      &arb,
			})
		}
	}

	for i := range scan.Yields {
		y := scan.Yields[i]
		if y.APY < a.config.MinYieldAPY {
			continue
		}
		if y.SecurityScore < a.config.MinSecurityScore {
			continue
		}
		if y.ILRiskPct > a.config.MaxImpermanentLossPct {
			continue
		}
		tasks = append(tasks, StrategyTask{
			Kind:     "yield",
			Priority: priorityYield,
			Yield:    &y,
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority < tasks[j].Priority
	})

	log.Printf("[DEFI] Decomposed into %d tasks", len(tasks))
	return tasks
}

// ==================== EVALUATE ====================

// yieldConfidence scores a yield opportunity. Security above the midpoint
// raises confidence, deep TVL adds a fixed bonus, result clamped to [0, 1].
func yieldConfidence(y *YieldOpportunity) float64 {
	conf := 0.5 + (y.SecurityScore-5.0)*0.05
	if y.TVLUSD > 10_000_000 {
		conf += 0.1
	}
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// arbConfidence scores an arbitrage by available depth.
func arbConfidence(arb *ArbitrageOpportunity) float64 {
	if arb.DepthUSD > 100_000 {
		return 0.85
	}
	return 0.60
}

// arbRiskScore grades arbitrage risk; crossing chains doubles it.
func arbRiskScore(arb *ArbitrageOpportunity) float64 {
	if arb.CrossChain {
		return 4.0
	}
	return 2.0
}

// EvaluateBranches scores each task into a candidate branch, discards
// branches below the confidence floor, and selects the top candidates by
// expected return.
func (a *Agent) EvaluateBranches(tasks []StrategyTask) []StrategyBranch {
	a.mu.RLock()
	capital := a.capital
	a.mu.RUnlock()
	positionSize := capital * a.config.MaxPositionPct

	var branches []StrategyBranch
	for _, task := range tasks {
		switch task.Kind {
		case "risk_assessment":
			// Always valid; consumes no capital.
			branches = append(branches, StrategyBranch{
				Task:        task,
				Description: "Review portfolio risk and rebalance if over limit",
				Confidence:  1.0,
			})

		case "yield":
			y := task.Yield
			branches = append(branches, StrategyBranch{
				Task: task,
				Description: fmt.Sprintf("Deposit into %s %s on %s at %.1f%% APY",
					y.Protocol, y.Pool, y.Network, y.APY),
				ExpectedReturn:  positionSize * y.APY / 100,
				RiskScore:       10.0 - y.SecurityScore,
				Confidence:      yieldConfidence(y),
				CapitalRequired: positionSize,
			})

		case "arbitrage":
			arb := task.Arb
			size := positionSize
			if arb.DepthUSD < size {
				size = arb.DepthUSD
			}
			branches = append(branches, StrategyBranch{
				Task: task,
				Description: fmt.Sprintf("Arb %s: buy on %s, sell on %s (%.2f%% net)",
					arb.Pair, arb.BuyExchange, arb.SellExchange, arb.NetProfitPct),
				ExpectedReturn:  size * arb.NetProfitPct / 100,
				RiskScore:       arbRiskScore(arb),
				Confidence:      arbConfidence(arb),
				CapitalRequired: size,
			})
		}
	}

	// Validation gate.
	valid := branches[:0]
	for _, b := range branches {
		if b.Confidence >= minBranchConfidence {
			valid = append(valid, b)
		}
	}

	// The risk assessment branch is kept ahead of the top-k ordering so it
	// always executes first.
	sort.SliceStable(valid, func(i, j int) bool {
		pi, pj := valid[i].Task.Priority, valid[j].Task.Priority
		if (pi == priorityRiskAssessment) != (pj == priorityRiskAssessment) {
			return pi == priorityRiskAssessment
		}
		return valid[i].ExpectedReturn > valid[j].ExpectedReturn
	})
	if len(valid) > maxSelectedBranches {
		valid = valid[:maxSelectedBranches]
	}

	log.Printf("[DEFI] Selected %d branches from %d tasks", len(valid), len(tasks))
	return valid
}

// ==================== EXECUTE ====================

// ExecuteDecisions runs the selected branches through the gas and risk
// gates, opening positions for those that pass.
func (a *Agent) ExecuteDecisions(ctx context.Context, branches []StrategyBranch, gas []GasReading) ExecutionSummary {
	var l1Gas float64
	for _, g := range gas {
		if g.Network == "ethereum" {
			l1Gas = g.Gwei
		}
	}

	var summary ExecutionSummary
	for _, branch := range branches {
		rec := TransactionRecord{
			ID:          uuid.New().String(),
			Cycle:       a.Cycle(),
			Kind:        branch.Task.Kind,
			Description: branch.Description,
			AmountUSD:   branch.CapitalRequired,
			CreatedAt:   time.Now(),
		}

		switch {
		case a.Paused():
			rec.Status = "skipped"
			rec.Reason = "agent paused"
			summary.Skipped++

		case branch.Task.Kind == "risk_assessment":
			if _, err := a.ReduceRiskExposure(ctx); err != nil {
				rec.Status = "error"
				rec.Reason = err.Error()
				summary.Errors++
			} else {
				rec.Status = "executed"
				summary.Executed++
			}

		case l1Gas > 0 && l1Gas > a.config.MaxGasGweiL1 && touchesL1(branch):
			rec.Status = "deferred"
			rec.Reason = fmt.Sprintf("L1 gas %.1f gwei above cap %.1f", l1Gas, a.config.MaxGasGweiL1)
			summary.Deferred++

		default:
			if ok, reason := a.CheckRiskThresholds(branch); !ok {
				rec.Status = "skipped"
				rec.Reason = reason
				summary.Skipped++
				break
			}

			protocol, network := branchVenue(branch)
			if _, err := a.OpenPosition(branch.Task.Kind, protocol, network, branch.CapitalRequired, branch.RiskScore); err != nil {
				rec.Status = "error"
				rec.Reason = err.Error()
				summary.Errors++
			} else {
				rec.Status = "executed"
				summary.Executed++
			}
		}

		summary.Records = append(summary.Records, rec)
		if a.ledger != nil {
			if err := a.ledger.RecordTransaction(ctx, rec); err != nil {
				log.Printf("[DEFI] Failed to record transaction: %v", err)
			}
		}
	}

	log.Printf("[DEFI] Execution: %d executed, %d deferred, %d skipped, %d errors",
		summary.Executed, summary.Deferred, summary.Skipped, summary.Errors)
	return summary
}

// touchesL1 reports whether the branch settles on Ethereum mainnet.
func touchesL1(branch StrategyBranch) bool {
	switch branch.Task.Kind {
	case "yield":
		return branch.Task.Yield.Network == "ethereum"
	case "arbitrage":
		arb := branch.Task.Arb
		return arb.BuyNetwork == "ethereum" || arb.SellNetwork == "ethereum"
	}
	return false
}

// branchVenue extracts the protocol and network for position bookkeeping.
func branchVenue(branch StrategyBranch) (protocol, network string) {
	switch branch.Task.Kind {
	case "yield":
		return branch.Task.Yield.Protocol, branch.Task.Yield.Network
	case "arbitrage":
		arb := branch.Task.Arb
		return arb.BuyExchange + "->" + arb.SellExchange, arb.BuyNetwork
	}
	return "", ""
}

// ==================== REFINE ====================

// Refine adjusts the adaptive thresholds from the cycle's PnL delta. Losses
// tighten the risk limit and raise the arbitrage profit floor; strong gains
// loosen the risk limit slightly.
func (a *Agent) Refine(pnlDelta float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case pnlDelta < 0:
		a.maxRisk -= 0.5
		if a.maxRisk < 3.0 {
			a.maxRisk = 3.0
		}
		a.minArbProfit += 0.05
		log.Printf("[DEFI] Refine: loss %.2f, tightened maxRisk=%.2f minArb=%.2f%%",
			pnlDelta, a.maxRisk, a.minArbProfit)

	case pnlDelta > 0.5:
		a.maxRisk += 0.2
		if a.maxRisk > 7.0 {
			a.maxRisk = 7.0
		}
		log.Printf("[DEFI] Refine: gain %.2f, loosened maxRisk=%.2f", pnlDelta, a.maxRisk)
	}
}

// ==================== CYCLE ====================

// ExecuteCycle runs one full scan/decompose/evaluate/execute/refine cycle
// and returns its performance report.
func (a *Agent) ExecuteCycle(ctx context.Context) (*PerformanceReport, error) {
	scan, err := a.ScanMarket(ctx)
	if err != nil {
		return nil, err
	}

	tasks := a.DecomposeStrategy(scan)
	branches := a.EvaluateBranches(tasks)
	summary := a.ExecuteDecisions(ctx, branches, scan.Gas)

	a.mu.Lock()
	a.cycle++

	// Accrue one day's expected return on executed positions so the PnL
	// signal has something to measure in simulation.
	for _, rec := range summary.Records {
		if rec.Status != "executed" || rec.Kind == "risk_assessment" {
			continue
		}
		for _, b := range branches {
			if b.Description == rec.Description {
				a.accrueLocked(b)
				break
			}
		}
	}

	total := a.capital + a.portfolioValueLocked()
	pnlDelta := total - a.lastTotal
	a.lastTotal = total

	report := &PerformanceReport{
		Cycle:            a.cycle,
		CapitalUSD:       a.capital,
		PortfolioValue:   a.portfolioValueLocked(),
		PortfolioRisk:    a.portfolioRiskLocked(),
		OpenPositions:    len(a.positions),
		PnLDelta:         pnlDelta,
		TasksPlanned:     len(tasks),
		BranchesSelected: len(branches),
		Execution:        summary,
		CompletedAt:      time.Now(),
	}
	a.mu.Unlock()

	a.Refine(pnlDelta)

	maxRisk, minArb := a.RiskParameters()
	report.MaxRiskAfter = maxRisk
	report.MinArbAfter = minArb

	a.mu.Lock()
	a.lastReport = report
	a.mu.Unlock()

	if a.ledger != nil {
		if err := a.ledger.RecordReport(ctx, report); err != nil {
			log.Printf("[DEFI] Failed to record cycle report: %v", err)
		}
	}

	log.Printf("[DEFI] Cycle %d complete: value=%.2f risk=%.2f pnl=%+.2f",
		report.Cycle, report.CapitalUSD+report.PortfolioValue, report.PortfolioRisk, report.PnLDelta)
	return report, nil
}

// accrueLocked credits one day of a branch's expected annual return to the
// newest matching position.
func (a *Agent) accrueLocked(branch StrategyBranch) {
	var newest *Position
	for _, p := range a.positions {
		if p.Kind != branch.Task.Kind {
			continue
		}
		if newest == nil || p.OpenedAt.After(newest.OpenedAt) {
			newest = p
		}
	}
	if newest != nil {
		newest.ValueUSD += branch.ExpectedReturn / 365
	}
}
