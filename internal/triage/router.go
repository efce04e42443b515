package triage

import (
	"time"

	"trade-reconciliation/internal/domain"
)

// SLA windows per routing rule.
const (
	slaCritical = 2 * time.Hour
	slaHigh     = 4 * time.Hour
	slaMedium   = 8 * time.Hour
	slaLow      = 24 * time.Hour
)

// Decision is the routing outcome for one exception.
type Decision struct {
	Destination domain.RoutingDestination
	Priority    int
	Tier        domain.SeverityTier
	SLA         time.Duration
}

// Route maps an exception and its severity score to a routing decision.
// The rules are evaluated in strict precedence order and the first match
// wins. The learned policy only participates in the default rule, so a bad
// policy update can never hijack a critical exception.
func Route(exc *domain.ExceptionRecord, severity float64, pol *Policy) Decision {
	// Rule 1: a counterparty mismatch is always critical.
	if exc.HasReason(domain.ReasonCounterpartyMismatch) {
		return Decision{domain.RouteSeniorOps, 1, domain.SeverityCritical, slaCritical}
	}
	// Rule 2: severe notional breaks go straight to the ops desk.
	if exc.HasReason(domain.ReasonNotionalMismatch) && severity > 0.7 {
		return Decision{domain.RouteOpsDesk, 2, domain.SeverityHigh, slaHigh}
	}
	// Rule 3: low-severity noise auto-resolves.
	if severity < 0.3 {
		return Decision{domain.RouteAutoResolve, 4, domain.SeverityLow, slaLow}
	}
	// Rule 4: everything else is medium; the learned policy may suggest a
	// destination, falling back to the ops desk.
	dest := domain.RouteOpsDesk
	if pol != nil {
		if learned, ok := pol.Destination(PrimaryReason(exc.ReasonCodes)); ok {
			dest = learned
		}
	}
	return Decision{dest, 3, domain.SeverityMedium, slaMedium}
}

// Triage scores and routes an exception in place: severity score and tier,
// routing destination, priority and SLA deadline. The record must carry
// CreatedAt and its reason codes; everything else is derived here.
func Triage(exc *domain.ExceptionRecord, pol *Policy) {
	exc.SeverityScore = SeverityScore(exc.ReasonCodes, exc.MatchScore, pol)

	d := Route(exc, exc.SeverityScore, pol)
	exc.SeverityTier = d.Tier
	exc.RoutingDestination = d.Destination
	exc.Priority = d.Priority
	exc.SLADeadline = exc.CreatedAt.Add(d.SLA)
	if exc.Status == "" {
		exc.Status = domain.ResolutionPending
	}
}
