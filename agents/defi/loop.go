package defi

import (
	"context"
	"log"
	"sync"
	"time"
)

// Runner drives the agent through cycles on a fixed interval until stopped.
type Runner struct {
	agent    *Agent
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewRunner creates a cycle runner for the agent.
func NewRunner(agent *Agent, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Runner{agent: agent, interval: interval}
}

// Start begins the cycle loop. Calling Start on a running loop is a no-op.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true
	r.stopChan = make(chan struct{})

	r.wg.Add(1)
	go r.loop(ctx)

	log.Printf("[DEFI] Cycle runner started, interval %s", r.interval)
}

// Stop halts the loop and waits for the in-flight cycle to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopChan)
	r.mu.Unlock()

	r.wg.Wait()
	log.Printf("[DEFI] Cycle runner stopped")
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Runner) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// First cycle immediately, then on the ticker.
	r.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			r.runOnce(ctx)
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	if r.agent.Paused() {
		log.Printf("[DEFI] Skipping cycle: agent paused")
		return
	}
	if _, err := r.agent.ExecuteCycle(ctx); err != nil {
		log.Printf("[DEFI] Cycle failed: %v", err)
	}
}
