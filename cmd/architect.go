package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkpollard101/agentic-ai-starter/agents/architect"
)

var architectPhases int

var architectCmd = &cobra.Command{
	Use:   "architect",
	Short: "Run architecture design phases and print the blueprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, err := architect.NewAgent(architect.DefaultConfig())
		if err != nil {
			return err
		}

		for i := 0; i < architectPhases; i++ {
			printJSON(agent.RunDesignPhase())
		}
		return nil
	},
}

func init() {
	architectCmd.Flags().IntVar(&architectPhases, "phases", 2, "number of design phases to run")
	rootCmd.AddCommand(architectCmd)
}
