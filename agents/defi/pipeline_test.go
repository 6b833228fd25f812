package defi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScanner returns fixed market data so pipeline behavior is exact.
type stubScanner struct {
	yields []YieldOpportunity
	arbs   []ArbitrageOpportunity
	gas    []GasReading
}

func (s *stubScanner) ScanYields(ctx context.Context) ([]YieldOpportunity, error) {
	return s.yields, nil
}

func (s *stubScanner) ScanArbitrage(ctx context.Context) ([]ArbitrageOpportunity, error) {
	return s.arbs, nil
}

func (s *stubScanner) GasConditions(ctx context.Context) ([]GasReading, error) {
	return s.gas, nil
}

func newTestAgent(t *testing.T, scanner MarketScanner) *Agent {
	t.Helper()
	agent, err := NewAgent(DefaultConfig(), scanner, nil)
	require.NoError(t, err)
	return agent
}

func goodYield() YieldOpportunity {
	return YieldOpportunity{
		Protocol: "aave", Network: "arbitrum", Pool: "USDC",
		APY: 24, TVLUSD: 52_000_000, SecurityScore: 9.2,
	}
}

func goodArb() ArbitrageOpportunity {
	return ArbitrageOpportunity{
		Pair: "ETH/USDC", BuyExchange: "uniswap", SellExchange: "binance",
		BuyNetwork: "arbitrum", NetProfitPct: 0.30, DepthUSD: 400_000,
	}
}

func TestDecomposeStrategy_AlwaysIncludesRiskAssessment(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	tasks := agent.DecomposeStrategy(&ScanResult{})

	require.Len(t, tasks, 1)
	assert.Equal(t, "risk_assessment", tasks[0].Kind)
	assert.Equal(t, priorityRiskAssessment, tasks[0].Priority)
}

func TestDecomposeStrategy_FiltersYields(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	lowAPY := goodYield()
	lowAPY.APY = 10 // below the 20% floor

	lowSecurity := goodYield()
	lowSecurity.SecurityScore = 7.8 // below the 8.5 floor

	highIL := goodYield()
	highIL.ILRiskPct = 6.5 // above the 5% cap

	scan := &ScanResult{
		Yields: []YieldOpportunity{goodYield(), lowAPY, lowSecurity, highIL},
	}
	tasks := agent.DecomposeStrategy(scan)

	var yieldTasks []StrategyTask
	for _, task := range tasks {
		if task.Kind == "yield" {
			yieldTasks = append(yieldTasks, task)
		}
	}
	require.Len(t, yieldTasks, 1)
	assert.Equal(t, "aave", yieldTasks[0].Yield.Protocol)
}

func TestDecomposeStrategy_FiltersArbsByNetProfit(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	thin := goodArb()
	thin.NetProfitPct = 0.10 // below the 0.15% floor

	scan := &ScanResult{Arbs: []ArbitrageOpportunity{goodArb(), thin}}
	tasks := agent.DecomposeStrategy(scan)

	var arbTasks []StrategyTask
	for _, task := range tasks {
		if task.Kind == "arbitrage" {
			arbTasks = append(arbTasks, task)
		}
	}
	require.Len(t, arbTasks, 1)
	assert.InDelta(t, 0.30, arbTasks[0].Arb.NetProfitPct, 1e-9)
}

func TestDecomposeStrategy_PriorityOrder(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	scan := &ScanResult{
		Yields: []YieldOpportunity{goodYield()},
		Arbs:   []ArbitrageOpportunity{goodArb()},
	}
	tasks := agent.DecomposeStrategy(scan)

	require.Len(t, tasks, 3)
	assert.Equal(t, "risk_assessment", tasks[0].Kind)
	assert.Equal(t, "arbitrage", tasks[1].Kind)
	assert.Equal(t, "yield", tasks[2].Kind)
}

func TestYieldConfidence(t *testing.T) {
	// security 9.0 with deep TVL: 0.5 + 4*0.05 + 0.1 = 0.8
	y := &YieldOpportunity{SecurityScore: 9.0, TVLUSD: 52_000_000}
	assert.InDelta(t, 0.8, yieldConfidence(y), 1e-9)

	// shallow TVL loses the bonus
	y.TVLUSD = 5_000_000
	assert.InDelta(t, 0.7, yieldConfidence(y), 1e-9)
}

func TestYieldConfidence_Clamped(t *testing.T) {
	high := &YieldOpportunity{SecurityScore: 10, TVLUSD: 1e9}
	assert.LessOrEqual(t, yieldConfidence(high), 1.0)

	low := &YieldOpportunity{SecurityScore: 0}
	assert.GreaterOrEqual(t, yieldConfidence(low), 0.0)
}

func TestArbConfidenceAndRisk(t *testing.T) {
	deep := &ArbitrageOpportunity{DepthUSD: 400_000}
	assert.InDelta(t, 0.85, arbConfidence(deep), 1e-9)

	shallow := &ArbitrageOpportunity{DepthUSD: 50_000}
	assert.InDelta(t, 0.60, arbConfidence(shallow), 1e-9)

	same := &ArbitrageOpportunity{}
	assert.InDelta(t, 2.0, arbRiskScore(same), 1e-9)

	cross := &ArbitrageOpportunity{CrossChain: true}
	assert.InDelta(t, 4.0, arbRiskScore(cross), 1e-9)
}

func TestEvaluateBranches_ConfidenceGate(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	// Shallow-depth arbitrage scores 0.60 confidence and is dropped.
	shallow := goodArb()
	shallow.DepthUSD = 50_000

	branches := agent.EvaluateBranches([]StrategyTask{
		{Kind: "arbitrage", Priority: priorityArbitrage, Arb: &shallow},
	})

	assert.Empty(t, branches)
}

func TestEvaluateBranches_TopKAndRiskFirst(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	tasks := []StrategyTask{
		{Kind: "risk_assessment", Priority: priorityRiskAssessment},
	}
	// Four passing yields; only two fit beside the risk branch.
	apys := []float64{21, 35, 28, 24}
	for _, apy := range apys {
		y := goodYield()
		y.APY = apy
		tasks = append(tasks, StrategyTask{Kind: "yield", Priority: priorityYield, Yield: &y})
	}

	branches := agent.EvaluateBranches(tasks)

	require.Len(t, branches, maxSelectedBranches)
	assert.Equal(t, "risk_assessment", branches[0].Task.Kind)
	// Remaining slots go to the highest expected returns.
	assert.InDelta(t, 35, branches[1].Task.Yield.APY, 1e-9)
	assert.InDelta(t, 28, branches[2].Task.Yield.APY, 1e-9)
}

func TestExecuteDecisions_GasGateDefersL1(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	y := goodYield()
	y.Network = "ethereum"
	branch := StrategyBranch{
		Task:            StrategyTask{Kind: "yield", Yield: &y},
		Description:     "test yield",
		RiskScore:       1,
		Confidence:      0.8,
		CapitalRequired: 1000,
	}
	gas := []GasReading{{Network: "ethereum", Gwei: 85}} // above the 40 cap

	summary := agent.ExecuteDecisions(context.Background(), []StrategyBranch{branch}, gas)

	assert.Equal(t, 1, summary.Deferred)
	assert.Equal(t, 0, summary.Executed)
	require.Len(t, summary.Records, 1)
	assert.Equal(t, "deferred", summary.Records[0].Status)
}

func TestExecuteDecisions_GasGateIgnoresL2(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	y := goodYield() // arbitrum
	branch := StrategyBranch{
		Task:            StrategyTask{Kind: "yield", Yield: &y},
		Description:     "test yield",
		RiskScore:       1,
		Confidence:      0.8,
		CapitalRequired: 1000,
	}
	gas := []GasReading{{Network: "ethereum", Gwei: 85}}

	summary := agent.ExecuteDecisions(context.Background(), []StrategyBranch{branch}, gas)

	assert.Equal(t, 1, summary.Executed)
	assert.Equal(t, 0, summary.Deferred)
}

func TestExecuteDecisions_RiskGateSkips(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	y := goodYield()
	branch := StrategyBranch{
		Task:            StrategyTask{Kind: "yield", Yield: &y},
		Description:     "risky yield",
		RiskScore:       9.5, // over the 6.0 portfolio limit on its own
		Confidence:      0.8,
		CapitalRequired: 1000,
	}

	summary := agent.ExecuteDecisions(context.Background(), []StrategyBranch{branch}, nil)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Executed)
	require.Len(t, summary.Records, 1)
	assert.Contains(t, summary.Records[0].Reason, "portfolio risk")
}

func TestExecuteDecisions_PausedSkipsEverything(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})
	require.NoError(t, agent.EmergencyPause(context.Background(), "test"))

	y := goodYield()
	branch := StrategyBranch{
		Task:            StrategyTask{Kind: "yield", Yield: &y},
		RiskScore:       1,
		CapitalRequired: 1000,
	}

	summary := agent.ExecuteDecisions(context.Background(), []StrategyBranch{branch}, nil)

	assert.Equal(t, 1, summary.Skipped)
}

func TestRefine_TightensOnLoss(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	agent.Refine(-10)

	maxRisk, minArb := agent.RiskParameters()
	assert.InDelta(t, 5.5, maxRisk, 1e-9)
	assert.InDelta(t, 0.20, minArb, 1e-9)
}

func TestRefine_TightenFloor(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	for i := 0; i < 20; i++ {
		agent.Refine(-1)
	}

	maxRisk, _ := agent.RiskParameters()
	assert.InDelta(t, 3.0, maxRisk, 1e-9)
}

func TestRefine_LoosensOnGainWithCap(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	for i := 0; i < 20; i++ {
		agent.Refine(1.0)
	}

	maxRisk, minArb := agent.RiskParameters()
	assert.InDelta(t, 7.0, maxRisk, 1e-9)
	assert.InDelta(t, 0.15, minArb, 1e-9) // gains never move the arb floor
}

func TestRefine_SmallGainNoChange(t *testing.T) {
	agent := newTestAgent(t, &stubScanner{})

	agent.Refine(0.3)

	maxRisk, minArb := agent.RiskParameters()
	assert.InDelta(t, 6.0, maxRisk, 1e-9)
	assert.InDelta(t, 0.15, minArb, 1e-9)
}

func TestExecuteCycle_EndToEnd(t *testing.T) {
	scanner := &stubScanner{
		yields: []YieldOpportunity{goodYield()},
		arbs:   []ArbitrageOpportunity{goodArb()},
		gas: []GasReading{
			{Network: "ethereum", Gwei: 20},
			{Network: "arbitrum", Gwei: 0.5},
		},
	}
	agent := newTestAgent(t, scanner)

	report, err := agent.ExecuteCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Cycle)
	assert.Equal(t, 3, report.TasksPlanned)
	assert.Equal(t, 3, report.BranchesSelected)
	assert.Positive(t, report.Execution.Executed)
	assert.Equal(t, report, agent.LastReport())

	// Positions opened and capital committed.
	assert.NotEmpty(t, agent.Positions())
	assert.Less(t, agent.Capital(), DefaultConfig().InitialCapitalUSDC)

	// Knowledge base retained the scan.
	require.Len(t, agent.Knowledge(), 1)
	assert.WithinDuration(t, time.Now(), agent.Knowledge()[0].ScannedAt, time.Minute)
}
