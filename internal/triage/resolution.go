package triage

import (
	"context"
	"errors"
	"time"

	"trade-reconciliation/internal/domain"
	"trade-reconciliation/internal/logger"
)

var (
	// ErrAlreadyResolved is returned when resolving an exception that has
	// already reached its terminal state. The reward update is applied at
	// most once per exception.
	ErrAlreadyResolved = errors.New("exception already resolved")

	// ErrInvalidTransition is returned for any other disallowed status
	// change, such as assigning a resolved exception.
	ErrInvalidTransition = errors.New("invalid resolution status transition")
)

// ComputeReward maps a resolution outcome to the feedback reward:
// resolved within SLA with correct routing earns the full reward, being
// late or misrouted costs progressively more.
func ComputeReward(withinSLA, routingCorrect bool) float64 {
	switch {
	case withinSLA && routingCorrect:
		return 1.0
	case withinSLA:
		return 0.5
	case routingCorrect:
		return -0.5
	default:
		return -1.0
	}
}

// Tracker advances exceptions through their resolution lifecycle and feeds
// the learned policy on resolution. The policy store is optional; when it
// is absent or failing, resolution tracking still succeeds and the reward
// is skipped.
type Tracker struct {
	store PolicyStore
}

func NewTracker(store PolicyStore) *Tracker {
	return &Tracker{store: store}
}

// Assign moves a pending exception to ASSIGNED.
func (t *Tracker) Assign(exc *domain.ExceptionRecord) error {
	switch exc.Status {
	case domain.ResolutionPending:
		exc.Status = domain.ResolutionAssigned
		return nil
	case domain.ResolutionResolved:
		return ErrAlreadyResolved
	default:
		return ErrInvalidTransition
	}
}

// Resolve moves an exception to RESOLVED and appends a reward event
// reflecting whether it was resolved within its SLA and whether the routed
// destination matched the destination the resolver actually used.
//
// Resolving twice returns ErrAlreadyResolved without a second reward, so
// double resolution can never double-count feedback.
func (t *Tracker) Resolve(ctx context.Context, exc *domain.ExceptionRecord, resolvedAt time.Time, actual domain.RoutingDestination) error {
	switch exc.Status {
	case domain.ResolutionResolved:
		return ErrAlreadyResolved
	case domain.ResolutionPending, domain.ResolutionAssigned:
	default:
		return ErrInvalidTransition
	}

	withinSLA := !resolvedAt.After(exc.SLADeadline)
	routingCorrect := actual == exc.RoutingDestination

	exc.Status = domain.ResolutionResolved

	if t.store == nil {
		return nil
	}
	ev := domain.RewardEvent{
		ExceptionID: exc.ExceptionID,
		ReasonCode:  PrimaryReason(exc.ReasonCodes),
		Destination: exc.RoutingDestination,
		Reward:      ComputeReward(withinSLA, routingCorrect),
		CreatedAt:   resolvedAt,
	}
	if err := t.store.AppendReward(ctx, ev); err != nil {
		// Policy feedback is best-effort: a failing store must never block
		// resolution tracking.
		logger.L.Warn("skipping policy reward update",
			"exceptionID", exc.ExceptionID, "error", err)
	}
	return nil
}
