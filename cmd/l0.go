package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkpollard101/agentic-ai-starter/agents/l0"
)

var (
	l0Cycles int
	l0Ledger string
)

var l0Cmd = &cobra.Command{
	Use:   "l0",
	Short: "Run network orchestration cycles against the ecosystem simulator",
	RunE: func(cmd *cobra.Command, args []string) error {
		agentCfg := l0.DefaultConfig()
		n := cfg.Network
		if n.ValidatorTargetPct > 0 {
			agentCfg.ValidatorTargetPct = n.ValidatorTargetPct
		}
		if n.GovernanceTargetPct > 0 {
			agentCfg.GovernanceTargetPct = n.GovernanceTargetPct
		}
		if n.MessagingFeeBps > 0 {
			agentCfg.MessagingFeeBps = n.MessagingFeeBps
		}
		if n.MaxDataFeeUSD > 0 {
			agentCfg.MaxDataFeeUSD = n.MaxDataFeeUSD
		}
		if n.MinYieldAPRPct > 0 {
			agentCfg.MinYieldAPRPct = n.MinYieldAPRPct
		}
		if len(n.Assets) > 0 {
			agentCfg.StrategicAssets = n.Assets
		}
		if len(n.ConsortiumMembers) > 0 {
			agentCfg.ConsortiumMembers = n.ConsortiumMembers
		}

		var ledger *l0.Ledger
		if l0Ledger != "" {
			var err error
			ledger, err = l0.NewLedger(l0Ledger)
			if err != nil {
				return err
			}
			defer ledger.Close()
		}

		agent, err := l0.NewAgent(agentCfg, l0.NewSimEcosystem(), ledger)
		if err != nil {
			return err
		}

		for i := 0; i < l0Cycles; i++ {
			report, err := agent.ExecuteCycle(cmd.Context())
			if err != nil {
				return fmt.Errorf("cycle %d: %w", i+1, err)
			}
			printJSON(report)
		}
		return nil
	},
}

func init() {
	l0Cmd.Flags().IntVar(&l0Cycles, "cycles", 1, "number of orchestration cycles to run")
	l0Cmd.Flags().StringVar(&l0Ledger, "ledger", "", "SQLite ledger path (empty for no persistence)")
	rootCmd.AddCommand(l0Cmd)
}
