package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model)
	assert.Equal(t, int64(4096), cfg.MaxTokens)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Gateway.TimeoutSeconds)
	assert.Empty(t, cfg.Gateway.URL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
model: claude-opus-4-20250514
gateway:
  url: https://gateway.example.com
  api_key: test-key
defi:
  capital_usdc: 25000
  networks:
    - arbitrum
    - base
network:
  governance_target_pct: 0.51
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude-opus-4-20250514", cfg.Model)
	assert.Equal(t, "https://gateway.example.com", cfg.Gateway.URL)
	assert.Equal(t, "test-key", cfg.Gateway.APIKey)
	assert.Equal(t, 25000.0, cfg.Defi.CapitalUSDC)
	assert.Equal(t, []string{"arbitrum", "base"}, cfg.Defi.Networks)
	assert.Equal(t, 0.51, cfg.Network.GovernanceTargetPct)

	// File values layer over defaults, not replace them.
	assert.Equal(t, int64(4096), cfg.MaxTokens)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGENT_MODEL", "claude-haiku-4-20250514")
	t.Setenv("AGENT_MAX_TOKENS", "2048")
	t.Setenv("SERVER_ADDR", ":9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-20250514", cfg.Model)
	assert.Equal(t, int64(2048), cfg.MaxTokens)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_BadMaxTokensIgnored(t *testing.T) {
	t.Setenv("AGENT_MAX_TOKENS", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(4096), cfg.MaxTokens)
}
