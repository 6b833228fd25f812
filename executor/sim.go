package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

// SimExecutor implements ToolExecutor with simulated gateway data. It serves
// development and tests; responses are deterministic for a given seed.
type SimExecutor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimExecutor creates a simulated executor seeded for reproducible output.
func NewSimExecutor(seed int64) *SimExecutor {
	return &SimExecutor{rng: rand.New(rand.NewSource(seed))}
}

// Execute serves a read-only tool from simulated data.
func (e *SimExecutor) Execute(ctx context.Context, req *core.ExecuteRequest) (*core.ExecuteResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var data interface{}
	switch req.Tool {
	case "get_gas_prices":
		data = map[string]interface{}{
			"prices": []map[string]interface{}{
				{"network": "ethereum", "gwei": e.jitter(28, 12)},
				{"network": "arbitrum", "gwei": e.jitter(0.8, 0.6)},
				{"network": "optimism", "gwei": e.jitter(0.6, 0.5)},
				{"network": "polygon", "gwei": e.jitter(45, 30)},
				{"network": "base", "gwei": e.jitter(0.5, 0.4)},
			},
		}

	case "get_protocol_yields":
		data = map[string]interface{}{
			"yields": []map[string]interface{}{
				{"protocol": "aave", "network": "arbitrum", "pool": "USDC", "apy": e.jitter(24, 8), "tvl_usd": 52_000_000.0, "security_score": 9.2, "il_risk_pct": 0.0},
				{"protocol": "compound", "network": "ethereum", "pool": "USDC", "apy": e.jitter(12, 4), "tvl_usd": 310_000_000.0, "security_score": 9.0, "il_risk_pct": 0.0},
				{"protocol": "curve", "network": "optimism", "pool": "3pool", "apy": e.jitter(22, 6), "tvl_usd": 18_000_000.0, "security_score": 8.7, "il_risk_pct": 1.2},
				{"protocol": "gmx", "network": "arbitrum", "pool": "GLP", "apy": e.jitter(35, 15), "tvl_usd": 9_500_000.0, "security_score": 7.8, "il_risk_pct": 6.5},
				{"protocol": "yearn", "network": "base", "pool": "USDC", "apy": e.jitter(19, 7), "tvl_usd": 6_200_000.0, "security_score": 8.6, "il_risk_pct": 0.0},
			},
		}

	case "get_exchange_quotes":
		ethMid := e.jitter(3200, 60)
		data = map[string]interface{}{
			"quotes": []map[string]interface{}{
				{"exchange": "uniswap", "network": "ethereum", "pair": "ETH/USDC", "price": ethMid, "depth_usd": 420_000.0},
				{"exchange": "sushiswap", "network": "arbitrum", "pair": "ETH/USDC", "price": ethMid * e.jitter(1.0, 0.004), "depth_usd": 140_000.0},
				{"exchange": "binance", "network": "", "pair": "ETH/USDC", "price": ethMid * e.jitter(1.0, 0.003), "depth_usd": 2_000_000.0},
				{"exchange": "coinbase", "network": "", "pair": "ETH/USDC", "price": ethMid * e.jitter(1.0, 0.003), "depth_usd": 1_500_000.0},
			},
		}

	case "get_network_status":
		data = map[string]interface{}{
			"networks": []map[string]interface{}{
				{"chain": "ethereum", "validator_share": 0.12, "governance_share": 0.18, "active": true, "messaging_fee_bps": 5},
				{"chain": "arbitrum", "validator_share": 0.27, "governance_share": 0.31, "active": true, "messaging_fee_bps": 5},
				{"chain": "optimism", "validator_share": 0.08, "governance_share": 0.11, "active": true, "messaging_fee_bps": 5},
				{"chain": "polygon", "validator_share": 0.19, "governance_share": 0.24, "active": true, "messaging_fee_bps": 5},
				{"chain": "base", "validator_share": 0.05, "governance_share": 0.07, "active": false, "messaging_fee_bps": 5},
			},
		}

	case "get_governance_proposals":
		data = map[string]interface{}{
			"proposals": []map[string]interface{}{
				{"id": "prop-31", "title": "Raise messaging fee cap", "status": "active", "support_score": 6.4},
				{"id": "prop-32", "title": "Onboard data oracle partner", "status": "active", "support_score": 8.1},
				{"id": "prop-29", "title": "Treasury diversification", "status": "closed", "support_score": 5.0},
			},
		}

	default:
		return &core.ExecuteResponse{
			Success: false,
			Error:   fmt.Sprintf("unknown tool: %s", req.Tool),
		}, nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &core.ExecuteResponse{Success: true, Data: payload}, nil
}

// ExecuteWrite acknowledges a write tool. Confirmation gating happens in the
// engine before this is reached.
func (e *SimExecutor) ExecuteWrite(ctx context.Context, req *core.ExecuteRequest) (*core.ExecuteResponse, error) {
	switch req.Tool {
	case "submit_vote", "rebalance_position":
		payload, _ := json.Marshal(map[string]interface{}{
			"message": fmt.Sprintf("%s accepted (simulated)", req.Tool),
		})
		return &core.ExecuteResponse{Success: true, Data: payload}, nil
	default:
		return &core.ExecuteResponse{
			Success: false,
			Error:   fmt.Sprintf("unknown write tool: %s", req.Tool),
		}, nil
	}
}

// Confirm is a no-op for the simulator.
func (e *SimExecutor) Confirm(ctx context.Context, userID, confirmationID string) (*core.ExecuteResponse, error) {
	payload, _ := json.Marshal(map[string]interface{}{"message": "confirmed (simulated)"})
	return &core.ExecuteResponse{Success: true, Data: payload}, nil
}

// Cancel is a no-op for the simulator.
func (e *SimExecutor) Cancel(ctx context.Context, userID, confirmationID string) error {
	return nil
}

// jitter returns base plus a uniform offset in [-spread/2, spread/2).
func (e *SimExecutor) jitter(base, spread float64) float64 {
	return base + (e.rng.Float64()-0.5)*spread
}
