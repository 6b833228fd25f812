package architect

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// DesignReport summarizes one design pipeline run.
type DesignReport struct {
	Phase       int         `json:"phase"`
	Blueprints  []Blueprint `json:"blueprints"`
	Rejected    []string    `json:"rejected,omitempty"`
	CompletedAt time.Time   `json:"completed_at"`
}

// Agent runs the blueprint design pipeline: draft, evaluate, validate,
// refine.
type Agent struct {
	mu sync.RWMutex

	config    Config
	validator *Validator

	phase      int
	blueprints []Blueprint
}

// NewAgent creates an architecture agent seeded with the baseline
// blueprints.
func NewAgent(cfg Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Agent{
		config:     cfg,
		validator:  NewValidator(cfg.RequiredFoundations),
		blueprints: baselineBlueprints(cfg),
	}, nil
}

// Config returns the agent's configuration.
func (a *Agent) Config() Config {
	return a.config
}

// Blueprints returns a snapshot of the current blueprints.
func (a *Agent) Blueprints() []Blueprint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Blueprint, len(a.blueprints))
	copy(out, a.blueprints)
	return out
}

// Evaluate validates one blueprint by ID and advances its status.
func (a *Agent) Evaluate(id string) (*Blueprint, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.blueprints {
		bp := &a.blueprints[i]
		if bp.ID != id {
			continue
		}
		if err := a.validator.Validate(*bp); err != nil {
			return nil, err
		}
		if bp.Status == StatusDraft {
			bp.Status = StatusEvaluated
		}
		return bp, nil
	}
	return nil, fmt.Errorf("blueprint %s not found", id)
}

// RunDesignPhase runs one full pipeline pass: every blueprint is validated;
// passing blueprints are refined (version bump, status advance) and failing
// ones stay behind with their rejection reasons reported.
func (a *Agent) RunDesignPhase() *DesignReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.phase++

	var rejected []string
	for i := range a.blueprints {
		bp := &a.blueprints[i]
		if err := a.validator.Validate(*bp); err != nil {
			rejected = append(rejected, err.Error())
			continue
		}

		bp.Version = 2.0 + float64(a.phase)*0.1
		switch bp.Status {
		case StatusDraft:
			bp.Status = StatusEvaluated
		case StatusEvaluated:
			bp.Status = StatusVerified
		}
	}

	report := &DesignReport{
		Phase:       a.phase,
		Blueprints:  make([]Blueprint, len(a.blueprints)),
		Rejected:    rejected,
		CompletedAt: time.Now(),
	}
	copy(report.Blueprints, a.blueprints)

	log.Printf("[ARCHITECT] Design phase %d: %d blueprints, %d rejected",
		a.phase, len(a.blueprints), len(rejected))
	return report
}

// Propose adds a new draft blueprint after rigor validation.
func (a *Agent) Propose(bp Blueprint) error {
	if err := a.validator.Validate(bp); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.blueprints {
		if existing.ID == bp.ID {
			return fmt.Errorf("blueprint %s already exists", bp.ID)
		}
	}

	bp.Status = StatusDraft
	if bp.Version == 0 {
		bp.Version = 2.0
	}
	a.blueprints = append(a.blueprints, bp)

	log.Printf("[ARCHITECT] Proposed blueprint %s (%s)", bp.ID, bp.Name)
	return nil
}
