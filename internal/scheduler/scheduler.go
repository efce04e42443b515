package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"trade-reconciliation/internal/logger"
	"trade-reconciliation/internal/triage"
)

// Scheduler manages the periodic recomputation of the learned routing
// policy from its reward event log. Used only by the daemon path; one-shot
// runs recompute lazily instead.
type Scheduler struct {
	Cron     *cron.Cron
	Policies *triage.PolicyProvider
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, policies *triage.PolicyProvider) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Policies: policies,
		Ctx:      ctx,
	}
}

// RegisterAll registers the policy recomputation task.
func (s *Scheduler) RegisterAll(policyCron string) error {
	if _, err := s.Cron.AddFunc(policyCron, s.recomputePolicy); err != nil {
		return fmt.Errorf("register policy recompute task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.L.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	logger.L.Info("scheduler stopped")
}

func (s *Scheduler) recomputePolicy() {
	if err := s.Policies.Refresh(s.Ctx); err != nil {
		logger.L.Warn("scheduled policy recomputation failed", "error", err)
		return
	}
	logger.L.Debug("routing policy recomputed")
}
