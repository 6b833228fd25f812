package defi

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

const (
	cacheKeyYields = "scan:yields"
	cacheKeyArbs   = "scan:arbs"
	cacheKeyGas    = "scan:gas"
)

// CachedScanner wraps a MarketScanner with a short-TTL ristretto cache so
// repeated reads within a cycle don't hammer the gateway.
type CachedScanner struct {
	inner MarketScanner
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCachedScanner wraps the scanner with the given TTL.
func NewCachedScanner(inner MarketScanner, ttl time.Duration) (*CachedScanner, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     1 << 20, // 1MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedScanner{inner: inner, cache: cache, ttl: ttl}, nil
}

func (c *CachedScanner) ScanYields(ctx context.Context) ([]YieldOpportunity, error) {
	if v, ok := c.cache.Get(cacheKeyYields); ok {
		return v.([]YieldOpportunity), nil
	}
	yields, err := c.inner.ScanYields(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(cacheKeyYields, yields, 1, c.ttl)
	c.cache.Wait()
	return yields, nil
}

func (c *CachedScanner) ScanArbitrage(ctx context.Context) ([]ArbitrageOpportunity, error) {
	if v, ok := c.cache.Get(cacheKeyArbs); ok {
		return v.([]ArbitrageOpportunity), nil
	}
	arbs, err := c.inner.ScanArbitrage(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(cacheKeyArbs, arbs, 1, c.ttl)
	c.cache.Wait()
	return arbs, nil
}

func (c *CachedScanner) GasConditions(ctx context.Context) ([]GasReading, error) {
	if v, ok := c.cache.Get(cacheKeyGas); ok {
		return v.([]GasReading), nil
	}
	gas, err := c.inner.GasConditions(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(cacheKeyGas, gas, 1, c.ttl)
	c.cache.Wait()
	return gas, nil
}

// Close releases the cache.
func (c *CachedScanner) Close() {
	c.cache.Close()
}
