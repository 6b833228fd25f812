package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkpollard101/agentic-ai-starter/agents/defi"
)

var (
	defiCycles  int
	defiSeed    int64
	defiLedger  string
	defiCapital float64
	defiMaxRisk float64
)

var defiCmd = &cobra.Command{
	Use:   "defi",
	Short: "Run DeFi strategy cycles against the market simulator",
	RunE: func(cmd *cobra.Command, args []string) error {
		agentCfg := defi.DefaultConfig()
		applyDefiOverrides(&agentCfg)
		if defiCapital > 0 {
			agentCfg.InitialCapitalUSDC = defiCapital
		}
		if defiMaxRisk > 0 {
			agentCfg.MaxPortfolioRisk = defiMaxRisk
		}

		var ledger *defi.Ledger
		if defiLedger != "" {
			var err error
			ledger, err = defi.NewLedger(defiLedger)
			if err != nil {
				return err
			}
			defer ledger.Close()
		}

		scanner, err := defi.NewCachedScanner(defi.NewSimScanner(defiSeed), 30*time.Second)
		if err != nil {
			return err
		}
		defer scanner.Close()

		agent, err := defi.NewAgent(agentCfg, scanner, ledger)
		if err != nil {
			return err
		}

		for i := 0; i < defiCycles; i++ {
			report, err := agent.ExecuteCycle(cmd.Context())
			if err != nil {
				return fmt.Errorf("cycle %d: %w", i+1, err)
			}
			printJSON(report)
		}
		return nil
	},
}

// applyDefiOverrides layers non-zero config file values over the defaults.
func applyDefiOverrides(agentCfg *defi.Config) {
	d := cfg.Defi
	if d.CapitalUSDC > 0 {
		agentCfg.InitialCapitalUSDC = d.CapitalUSDC
	}
	if d.MaxPositionPct > 0 {
		agentCfg.MaxPositionPct = d.MaxPositionPct
	}
	if d.MaxPortfolioRisk > 0 {
		agentCfg.MaxPortfolioRisk = d.MaxPortfolioRisk
	}
	if d.MinSecurityScore > 0 {
		agentCfg.MinSecurityScore = d.MinSecurityScore
	}
	if d.MaxImpermanentLoss > 0 {
		agentCfg.MaxImpermanentLossPct = d.MaxImpermanentLoss
	}
	if d.MinArbNetProfitPct > 0 {
		agentCfg.MinArbNetProfitPct = d.MinArbNetProfitPct
	}
	if d.MinYieldAPY > 0 {
		agentCfg.MinYieldAPY = d.MinYieldAPY
	}
	if d.MaxGasGweiL1 > 0 {
		agentCfg.MaxGasGweiL1 = d.MaxGasGweiL1
	}
	if d.MaxGasGweiL2 > 0 {
		agentCfg.MaxGasGweiL2 = d.MaxGasGweiL2
	}
	if len(d.Networks) > 0 {
		agentCfg.Networks = d.Networks
	}
	if len(d.Protocols) > 0 {
		agentCfg.Protocols = d.Protocols
	}
	if len(d.Exchanges) > 0 {
		agentCfg.Exchanges = d.Exchanges
	}
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(out))
}

func init() {
	defiCmd.Flags().IntVar(&defiCycles, "cycles", 3, "number of strategy cycles to run")
	defiCmd.Flags().Int64Var(&defiSeed, "seed", 1, "market simulator seed")
	defiCmd.Flags().StringVar(&defiLedger, "ledger", "", "SQLite ledger path (empty for no persistence)")
	defiCmd.Flags().Float64Var(&defiCapital, "capital", 0, "starting treasury in USDC (0 keeps the default)")
	defiCmd.Flags().Float64Var(&defiMaxRisk, "max-risk", 0, "max portfolio risk score 0-10 (0 keeps the default)")
	rootCmd.AddCommand(defiCmd)
}
