package defi

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

func TestSimScanner_DeterministicForSeed(t *testing.T) {
	ctx := context.Background()

	a, err := NewSimScanner(7).ScanYields(ctx)
	require.NoError(t, err)
	b, err := NewSimScanner(7).ScanYields(ctx)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Protocol, b[i].Protocol)
		assert.InDelta(t, a[i].APY, b[i].APY, 1e-9)
	}
}

// quoteExecutor serves canned exchange quotes for GatewayScanner tests.
type quoteExecutor struct {
	payload interface{}
}

func (q *quoteExecutor) Execute(ctx context.Context, req *core.ExecuteRequest) (*core.ExecuteResponse, error) {
	data, err := json.Marshal(q.payload)
	if err != nil {
		return nil, err
	}
	return &core.ExecuteResponse{Success: true, Data: data}, nil
}

func (q *quoteExecutor) ExecuteWrite(ctx context.Context, req *core.ExecuteRequest) (*core.ExecuteResponse, error) {
	return q.Execute(ctx, req)
}

func (q *quoteExecutor) Confirm(ctx context.Context, userID, confirmationID string) (*core.ExecuteResponse, error) {
	return &core.ExecuteResponse{Success: true}, nil
}

func (q *quoteExecutor) Cancel(ctx context.Context, userID, confirmationID string) error {
	return nil
}

func TestGatewayScanner_BuildsArbsFromQuotes(t *testing.T) {
	exec := &quoteExecutor{payload: map[string]interface{}{
		"quotes": []map[string]interface{}{
			{"exchange": "uniswap", "network": "ethereum", "pair": "ETH/USDC", "price": 3200.0, "depth_usd": 400_000.0},
			{"exchange": "sushiswap", "network": "arbitrum", "pair": "ETH/USDC", "price": 3232.0, "depth_usd": 150_000.0},
		},
	}}
	scanner := NewGatewayScanner(exec, "test")

	arbs, err := scanner.ScanArbitrage(context.Background())
	require.NoError(t, err)
	require.Len(t, arbs, 1)

	arb := arbs[0]
	assert.Equal(t, "uniswap", arb.BuyExchange)
	assert.Equal(t, "sushiswap", arb.SellExchange)
	assert.InDelta(t, 1.0, arb.SpreadPct, 1e-9) // (3232-3200)/3200 * 100
	assert.InDelta(t, 1.0-arbFeePct, arb.NetProfitPct, 1e-9)
	assert.InDelta(t, 150_000, arb.DepthUSD, 1e-9) // shallower side
	assert.True(t, arb.CrossChain)
}

func TestGatewayScanner_SingleQuoteNoArb(t *testing.T) {
	exec := &quoteExecutor{payload: map[string]interface{}{
		"quotes": []map[string]interface{}{
			{"exchange": "uniswap", "network": "ethereum", "pair": "ETH/USDC", "price": 3200.0, "depth_usd": 400_000.0},
		},
	}}
	scanner := NewGatewayScanner(exec, "test")

	arbs, err := scanner.ScanArbitrage(context.Background())
	require.NoError(t, err)
	assert.Empty(t, arbs)
}

func TestCachedScanner_ServesFromCacheWithinTTL(t *testing.T) {
	calls := 0
	inner := &countingScanner{stub: &stubScanner{yields: []YieldOpportunity{goodYield()}}, calls: &calls}

	cached, err := NewCachedScanner(inner, time.Minute)
	require.NoError(t, err)
	defer cached.Close()

	ctx := context.Background()
	_, err = cached.ScanYields(ctx)
	require.NoError(t, err)
	_, err = cached.ScanYields(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

// countingScanner counts yield scans that reach the inner scanner.
type countingScanner struct {
	stub  *stubScanner
	calls *int
}

func (c *countingScanner) ScanYields(ctx context.Context) ([]YieldOpportunity, error) {
	*c.calls++
	return c.stub.ScanYields(ctx)
}

func (c *countingScanner) ScanArbitrage(ctx context.Context) ([]ArbitrageOpportunity, error) {
	return c.stub.ScanArbitrage(ctx)
}

func (c *countingScanner) GasConditions(ctx context.Context) ([]GasReading, error) {
	return c.stub.GasConditions(ctx)
}
