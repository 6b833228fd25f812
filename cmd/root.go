// Package cmd defines the CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkpollard101/agentic-ai-starter/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agentic",
	Short: "Strategy agents for DeFi, network orchestration, and quantum-secure architecture",
	Long: `agentic runs a family of strategy agents:

  defi       DeFi treasury strategist (yield, arbitrage, risk)
  l0         Cross-chain network orchestration
  architect  Post-quantum architecture blueprints
  qin        Quantum-secure infrastructure rollout
  serve      WebSocket chat server with all agents registered

The defi, l0, architect, and qin commands run offline demo cycles against
built-in simulators. serve connects the agents to the model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
}
