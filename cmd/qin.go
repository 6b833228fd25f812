package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkpollard101/agentic-ai-starter/agents/qin"
)

var qinComplete int

var qinCmd = &cobra.Command{
	Use:   "qin",
	Short: "Print the quantum-secure rollout plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, err := qin.NewAgent(qin.DefaultConfig())
		if err != nil {
			return err
		}

		for phase := 1; phase <= qinComplete; phase++ {
			if _, err := agent.CompletePhase(phase); err != nil {
				return err
			}
		}

		fmt.Print(agent.Plan().Render())
		return nil
	},
}

func init() {
	qinCmd.Flags().IntVar(&qinComplete, "complete", 0, "mark the first N phases complete")
	rootCmd.AddCommand(qinCmd)
}
