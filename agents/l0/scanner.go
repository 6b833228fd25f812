package l0

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkpollard101/agentic-ai-starter/core"
)

// EcosystemScanner supplies network, revenue, and governance observations.
type EcosystemScanner interface {
	Scan(ctx context.Context) (*EcosystemState, error)
}

// SimEcosystem returns a fixed ecosystem snapshot for development and tests.
type SimEcosystem struct{}

// NewSimEcosystem creates the simulated ecosystem scanner.
func NewSimEcosystem() *SimEcosystem {
	return &SimEcosystem{}
}

func (s *SimEcosystem) Scan(ctx context.Context) (*EcosystemState, error) {
	state := &EcosystemState{
		Networks: []NetworkState{
			{Chain: "ethereum", ValidatorShare: 0.12, GovernanceShare: 0.18, Active: true, MessagingFeeBps: 5},
			{Chain: "arbitrum", ValidatorShare: 0.27, GovernanceShare: 0.31, Active: true, MessagingFeeBps: 5},
			{Chain: "optimism", ValidatorShare: 0.08, GovernanceShare: 0.11, Active: true, MessagingFeeBps: 5},
			{Chain: "polygon", ValidatorShare: 0.19, GovernanceShare: 0.24, Active: true, MessagingFeeBps: 5},
			{Chain: "base", ValidatorShare: 0.05, GovernanceShare: 0.07, Active: false, MessagingFeeBps: 5},
		},
		Revenue: []RevenueStream{
			{Name: "messaging_fees", MonthlyUSD: 42_000, GrowthPct: 4.5},
			{Name: "consortium_data", MonthlyUSD: 18_500, GrowthPct: 11.0, Consortium: true},
			{Name: "validator_rewards", MonthlyUSD: 27_300, GrowthPct: 2.1},
		},
		Proposals: []GovernanceProposal{
			{ID: "prop-31", Title: "Raise messaging fee cap", Status: "active", StrategicScore: 6.4},
			{ID: "prop-32", Title: "Onboard data oracle partner", Status: "active", StrategicScore: 8.1},
			{ID: "prop-29", Title: "Treasury diversification", Status: "closed", StrategicScore: 5.0},
		},
		ScannedAt: time.Now(),
	}
	for i := range state.Networks {
		n := &state.Networks[i]
		n.Level = LevelForShare((n.ValidatorShare + n.GovernanceShare) / 2)
	}
	return state, nil
}

// GatewayEcosystem reads network and governance data through a ToolExecutor.
// Revenue streams are not exposed by the gateway and come back empty.
type GatewayEcosystem struct {
	executor core.ToolExecutor
	userID   string
}

// NewGatewayEcosystem creates a gateway-backed ecosystem scanner.
func NewGatewayEcosystem(executor core.ToolExecutor, userID string) *GatewayEcosystem {
	return &GatewayEcosystem{executor: executor, userID: userID}
}

func (g *GatewayEcosystem) fetch(ctx context.Context, tool string, out interface{}) error {
	resp, err := g.executor.Execute(ctx, &core.ExecuteRequest{
		Tool:   tool,
		Input:  json.RawMessage(`{}`),
		UserID: g.userID,
	})
	if err != nil {
		return fmt.Errorf("gateway %s: %w", tool, err)
	}
	if !resp.Success {
		return fmt.Errorf("gateway %s: %s", tool, resp.Error)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("gateway %s: decode: %w", tool, err)
	}
	return nil
}

func (g *GatewayEcosystem) Scan(ctx context.Context) (*EcosystemState, error) {
	var networks struct {
		Networks []struct {
			Chain           string  `json:"chain"`
			ValidatorShare  float64 `json:"validator_share"`
			GovernanceShare float64 `json:"governance_share"`
			Active          bool    `json:"active"`
			MessagingFeeBps int     `json:"messaging_fee_bps"`
		} `json:"networks"`
	}
	if err := g.fetch(ctx, "get_network_status", &networks); err != nil {
		return nil, err
	}

	var proposals struct {
		Proposals []struct {
			ID           string  `json:"id"`
			Title        string  `json:"title"`
			Status       string  `json:"status"`
			SupportScore float64 `json:"support_score"`
		} `json:"proposals"`
	}
	if err := g.fetch(ctx, "get_governance_proposals", &proposals); err != nil {
		return nil, err
	}

	state := &EcosystemState{ScannedAt: time.Now()}
	for _, n := range networks.Networks {
		state.Networks = append(state.Networks, NetworkState{
			Chain:           n.Chain,
			ValidatorShare:  n.ValidatorShare,
			GovernanceShare: n.GovernanceShare,
			Active:          n.Active,
			MessagingFeeBps: n.MessagingFeeBps,
			Level:           LevelForShare((n.ValidatorShare + n.GovernanceShare) / 2),
		})
	}
	for _, p := range proposals.Proposals {
		state.Proposals = append(state.Proposals, GovernanceProposal{
			ID:             p.ID,
			Title:          p.Title,
			Status:         p.Status,
			StrategicScore: p.SupportScore,
		})
	}
	return state, nil
}
