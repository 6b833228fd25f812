package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mkpollard101/agentic-ai-starter/agents/architect"
	"github.com/mkpollard101/agentic-ai-starter/agents/defi"
	"github.com/mkpollard101/agentic-ai-starter/agents/l0"
	"github.com/mkpollard101/agentic-ai-starter/agents/qin"
	"github.com/mkpollard101/agentic-ai-starter/core"
	"github.com/mkpollard101/agentic-ai-starter/executor"
	"github.com/mkpollard101/agentic-ai-starter/server"
	"github.com/mkpollard101/agentic-ai-starter/store"
	"github.com/mkpollard101/agentic-ai-starter/subagent/presets"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebSocket chat server with all agents registered",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Gateway executor: real gateway when configured, simulator otherwise.
		var exec core.ToolExecutor
		if cfg.Gateway.URL != "" {
			exec = executor.NewHTTPExecutor(executor.HTTPExecutorConfig{
				BaseURL: cfg.Gateway.URL,
				APIKey:  cfg.Gateway.APIKey,
				Timeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
			})
		} else {
			exec = executor.NewSimExecutor(cfg.Gateway.SimSeed)
		}

		var conversations store.Conversations
		if cfg.Server.DBPath != "" {
			sqlite, err := store.NewSQLiteConversations(cfg.Server.DBPath)
			if err != nil {
				return err
			}
			defer sqlite.Close()
			conversations = sqlite
		}

		// DeFi agent reads the market through the same gateway executor the
		// chat tools use.
		scanner, err := defi.NewCachedScanner(defi.NewGatewayScanner(exec, "server"), 30*time.Second)
		if err != nil {
			return err
		}
		defer scanner.Close()

		var defiLedger *defi.Ledger
		if cfg.Defi.LedgerPath != "" {
			defiLedger, err = defi.NewLedger(cfg.Defi.LedgerPath)
			if err != nil {
				return err
			}
			defer defiLedger.Close()
		}

		defiCfg := defi.DefaultConfig()
		applyDefiOverrides(&defiCfg)
		defiAgent, err := defi.NewAgent(defiCfg, scanner, defiLedger)
		if err != nil {
			return err
		}

		l0Agent, err := l0.NewAgent(l0.DefaultConfig(), l0.NewGatewayEcosystem(exec, "server"), nil)
		if err != nil {
			return err
		}

		architectAgent, err := architect.NewAgent(architect.DefaultConfig())
		if err != nil {
			return err
		}

		qinAgent, err := qin.NewAgent(qin.DefaultConfig())
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			SystemPrompt:  presets.OrchestratorSystemPrompt,
			Model:         cfg.Model,
			MaxTokens:     cfg.MaxTokens,
			Executor:      exec,
			Conversations: conversations,
		})

		srv.AddTools(defi.Tools(defiAgent)...)
		srv.AddTools(l0.Tools(l0Agent)...)
		srv.AddTools(architect.Tools(architectAgent)...)
		srv.AddTools(qin.Tools(qinAgent)...)

		// Specialists delegate through the server's engine.
		eng := srv.Engine()
		orchestrator := presets.NewOrchestrator(eng)
		orchestrator.AddWorker(defi.NewMarketAnalystDelegationTool(eng))
		orchestrator.AddWorker(defi.NewRiskOfficerDelegationTool(eng))
		srv.AddTools(orchestrator.GetWorkerTools()...)

		// Background strategy cycles, if configured.
		if cfg.Defi.CycleIntervalSeconds > 0 {
			runner := defi.NewRunner(defiAgent, time.Duration(cfg.Defi.CycleIntervalSeconds)*time.Second)
			runner.Start(cmd.Context())
			defer runner.Stop()
		}

		return srv.Run(cfg.Server.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
