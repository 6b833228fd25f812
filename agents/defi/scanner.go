package defi

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

// Fees assumed on both legs of an arbitrage, in percent of notional.
const arbFeePct = 0.20

// MarketScanner supplies market observations for a cycle.
type MarketScanner interface {
	// ScanYields returns current yield opportunities.
	ScanYields(ctx context.Context) ([]YieldOpportunity, error)

	// ScanArbitrage returns current cross-venue spreads.
	ScanArbitrage(ctx context.Context) ([]ArbitrageOpportunity, error)

	// GasConditions returns gas pricing per network.
	GasConditions(ctx context.Context) ([]GasReading, error)
}

// ==================== SIMULATED SCANNER ====================

// SimScanner produces deterministic simulated market data for a given seed.
type SimScanner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimScanner creates a seeded simulated scanner.
func NewSimScanner(seed int64) *SimScanner {
	return &SimScanner{rng: rand.New(rand.NewSource(seed))}
}

func (s *SimScanner) ScanYields(ctx context.Context) ([]YieldOpportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	return []YieldOpportunity{
		{Protocol: "aave", Network: "arbitrum", Pool: "USDC", APY: s.jitter(24, 8), TVLUSD: 52_000_000, SecurityScore: 9.2, ILRiskPct: 0, ObservedAt: now},
		{Protocol: "compound", Network: "ethereum", Pool: "USDC", APY: s.jitter(12, 4), TVLUSD: 310_000_000, SecurityScore: 9.0, ILRiskPct: 0, ObservedAt: now},
		{Protocol: "curve", Network: "optimism", Pool: "3pool", APY: s.jitter(22, 6), TVLUSD: 18_000_000, SecurityScore: 8.7, ILRiskPct: 1.2, ObservedAt: now},
		{Protocol: "gmx", Network: "arbitrum", Pool: "GLP", APY: s.jitter(35, 15), TVLUSD: 9_500_000, SecurityScore: 7.8, ILRiskPct: 6.5, ObservedAt: now},
		{Protocol: "yearn", Network: "base", Pool: "USDC", APY: s.jitter(19, 7), TVLUSD: 6_200_000, SecurityScore: 8.6, ILRiskPct: 0, ObservedAt: now},
	}, nil
}

func (s *SimScanner) ScanArbitrage(ctx context.Context) ([]ArbitrageOpportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	spread1 := s.jitter(0.45, 0.5)
	spread2 := s.jitter(0.25, 0.3)
	return []ArbitrageOpportunity{
		{
			Pair: "ETH/USDC", BuyExchange: "uniswap", SellExchange: "binance",
			BuyNetwork: "ethereum", SellNetwork: "",
			SpreadPct: spread1, NetProfitPct: spread1 - arbFeePct,
			DepthUSD: 420_000, CrossChain: true, ObservedAt: now,
		},
		{
			Pair: "ETH/USDC", BuyExchange: "sushiswap", SellExchange: "uniswap",
			BuyNetwork: "arbitrum", SellNetwork: "ethereum",
			SpreadPct: spread2, NetProfitPct: spread2 - arbFeePct,
			DepthUSD: 140_000, CrossChain: true, ObservedAt: now,
		},
	}, nil
}

func (s *SimScanner) GasConditions(ctx context.Context) ([]GasReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	return []GasReading{
		{Network: "ethereum", Gwei: s.jitter(28, 12), ObservedAt: now},
		{Network: "arbitrum", Gwei: s.jitter(0.8, 0.6), ObservedAt: now},
		{Network: "optimism", Gwei: s.jitter(0.6, 0.5), ObservedAt: now},
		{Network: "polygon", Gwei: s.jitter(45, 30), ObservedAt: now},
		{Network: "base", Gwei: s.jitter(0.5, 0.4), ObservedAt: now},
	}, nil
}

func (s *SimScanner) jitter(base, spread float64) float64 {
	return base + (s.rng.Float64()-0.5)*spread
}

// ==================== GATEWAY SCANNER ====================

// GatewayScanner reads market data through a ToolExecutor, so the agent and
// the chat tools share one gateway connection.
type GatewayScanner struct {
	executor core.ToolExecutor
	userID   string
}

// NewGatewayScanner creates a scanner backed by the given executor.
func NewGatewayScanner(executor core.ToolExecutor, userID string) *GatewayScanner {
	return &GatewayScanner{executor: executor, userID: userID}
}

func (g *GatewayScanner) fetch(ctx context.Context, tool string, out interface{}) error {
	resp, err := g.executor.Execute(ctx, &core.ExecuteRequest{
		Tool:   tool,
		Input:  json.RawMessage(`{}`),
		UserID: g.userID,
	})
	if err != nil {
		return fmt.Errorf("gateway %s: %w", tool, err)
	}
	if !resp.Success {
		return fmt.Errorf("gateway %s: %s", tool, resp.Error)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("gateway %s: decode: %w", tool, err)
	}
	return nil
}

func (g *GatewayScanner) ScanYields(ctx context.Context) ([]YieldOpportunity, error) {
	var payload struct {
		Yields []struct {
			Protocol      string  `json:"protocol"`
			Network       string  `json:"network"`
			Pool          string  `json:"pool"`
			APY           float64 `json:"apy"`
			TVLUSD        float64 `json:"tvl_usd"`
			SecurityScore float64 `json:"security_score"`
			ILRiskPct     float64 `json:"il_risk_pct"`
		} `json:"yields"`
	}
	if err := g.fetch(ctx, "get_protocol_yields", &payload); err != nil {
		return nil, err
	}

	now := time.Now()
	yields := make([]YieldOpportunity, 0, len(payload.Yields))
	for _, y := range payload.Yields {
		yields = append(yields, YieldOpportunity{
			Protocol:      y.Protocol,
			Network:       y.Network,
			Pool:          y.Pool,
			APY:           y.APY,
			TVLUSD:        y.TVLUSD,
			SecurityScore: y.SecurityScore,
			ILRiskPct:     y.ILRiskPct,
			ObservedAt:    now,
		})
	}
	return yields, nil
}

func (g *GatewayScanner) ScanArbitrage(ctx context.Context) ([]ArbitrageOpportunity, error) {
	var payload struct {
		Quotes []struct {
			Exchange string  `json:"exchange"`
			Network  string  `json:"network"`
			Pair     string  `json:"pair"`
			Price    float64 `json:"price"`
			DepthUSD float64 `json:"depth_usd"`
		} `json:"quotes"`
	}
	if err := g.fetch(ctx, "get_exchange_quotes", &payload); err != nil {
		return nil, err
	}

	// Pair best bid against best ask per trading pair.
	type quote = struct {
		Exchange string  `json:"exchange"`
		Network  string  `json:"network"`
		Pair     string  `json:"pair"`
		Price    float64 `json:"price"`
		DepthUSD float64 `json:"depth_usd"`
	}
	byPair := make(map[string][]quote)
	for _, q := range payload.Quotes {
		byPair[q.Pair] = append(byPair[q.Pair], q)
	}

	now := time.Now()
	var arbs []ArbitrageOpportunity
	for pair, quotes := range byPair {
		if len(quotes) < 2 {
			continue
		}
		low, high := quotes[0], quotes[0]
		for _, q := range quotes[1:] {
			if q.Price < low.Price {
				low = q
			}
			if q.Price > high.Price {
				high = q
			}
		}
		if low.Exchange == high.Exchange || low.Price <= 0 {
			continue
		}

		spread := (high.Price - low.Price) / low.Price * 100
		depth := low.DepthUSD
		if high.DepthUSD < depth {
			depth = high.DepthUSD
		}

		arbs = append(arbs, ArbitrageOpportunity{
			Pair:         pair,
			BuyExchange:  low.Exchange,
			SellExchange: high.Exchange,
			BuyNetwork:   low.Network,
			SellNetwork:  high.Network,
			SpreadPct:    spread,
			NetProfitPct: spread - arbFeePct,
			DepthUSD:     depth,
			CrossChain:   low.Network != high.Network,
			ObservedAt:   now,
		})
	}
	return arbs, nil
}

func (g *GatewayScanner) GasConditions(ctx context.Context) ([]GasReading, error) {
	var payload struct {
		Prices []struct {
			Network string  `json:"network"`
			Gwei    float64 `json:"gwei"`
		} `json:"prices"`
	}
	if err := g.fetch(ctx, "get_gas_prices", &payload); err != nil {
		return nil, err
	}

	now := time.Now()
	readings := make([]GasReading, 0, len(payload.Prices))
	for _, p := range payload.Prices {
		readings = append(readings, GasReading{Network: p.Network, Gwei: p.Gwei, ObservedAt: now})
	}
	return readings, nil
}
