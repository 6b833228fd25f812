// Package config loads runtime configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level runtime configuration.
type Config struct {
	// Model is the default model for all agents.
	Model string `yaml:"model"`

	// MaxTokens bounds each model response.
	MaxTokens int64 `yaml:"max_tokens"`

	Gateway GatewayConfig `yaml:"gateway"`
	Server  ServerConfig  `yaml:"server"`
	Defi    DefiConfig    `yaml:"defi"`
	Network NetworkConfig `yaml:"network"`
}

// GatewayConfig points at the market data gateway.
type GatewayConfig struct {
	// URL is the gateway base URL. Empty selects the built-in simulator.
	URL string `yaml:"url"`

	// APIKey authenticates gateway requests.
	APIKey string `yaml:"api_key"`

	// TimeoutSeconds is the HTTP timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// SimSeed seeds the simulator when URL is empty.
	SimSeed int64 `yaml:"sim_seed"`
}

// ServerConfig configures the WebSocket server.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// DBPath is the SQLite path for conversation history. Empty keeps
	// conversations in memory.
	DBPath string `yaml:"db_path"`
}

// DefiConfig overrides the DeFi strategy agent's defaults. Zero values keep
// the agent's own defaults.
type DefiConfig struct {
	CapitalUSDC          float64  `yaml:"capital_usdc"`
	MaxPositionPct       float64  `yaml:"max_position_pct"`
	MaxPortfolioRisk     float64  `yaml:"max_portfolio_risk"`
	MinSecurityScore     float64  `yaml:"min_security_score"`
	MaxImpermanentLoss   float64  `yaml:"max_impermanent_loss_pct"`
	MinArbNetProfitPct   float64  `yaml:"min_arb_net_profit_pct"`
	MinYieldAPY          float64  `yaml:"min_yield_apy"`
	MaxGasGweiL1         float64  `yaml:"max_gas_gwei_l1"`
	MaxGasGweiL2         float64  `yaml:"max_gas_gwei_l2"`
	Networks             []string `yaml:"networks"`
	Protocols            []string `yaml:"protocols"`
	Exchanges            []string `yaml:"exchanges"`
	CycleIntervalSeconds int      `yaml:"cycle_interval_seconds"`
	LedgerPath           string   `yaml:"ledger_path"`
}

// NetworkConfig overrides the network orchestration agent's defaults.
type NetworkConfig struct {
	ValidatorTargetPct  float64  `yaml:"validator_target_pct"`
	GovernanceTargetPct float64  `yaml:"governance_target_pct"`
	MessagingFeeBps     int      `yaml:"messaging_fee_bps"`
	MaxDataFeeUSD       float64  `yaml:"max_data_fee_usd"`
	MinYieldAPRPct      float64  `yaml:"min_yield_apr_pct"`
	Assets              []string `yaml:"assets"`
	ConsortiumMembers   []string `yaml:"consortium_members"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 4096,
		Gateway: GatewayConfig{
			TimeoutSeconds: 30,
			SimSeed:        1,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a YAML config file and applies environment overrides. An empty
// path returns defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment variables over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("AGENT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("AGENT_MAX_TOKENS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxTokens = n
		}
	}
	if v := os.Getenv("GATEWAY_URL"); v != "" {
		c.Gateway.URL = v
	}
	if v := os.Getenv("GATEWAY_API_KEY"); v != "" {
		c.Gateway.APIKey = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SERVER_DB_PATH"); v != "" {
		c.Server.DBPath = v
	}
}
