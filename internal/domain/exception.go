package domain

import "time"

// SeverityTier buckets a severity score for human consumption.
type SeverityTier string

const (
	SeverityLow      SeverityTier = "LOW"
	SeverityMedium   SeverityTier = "MEDIUM"
	SeverityHigh     SeverityTier = "HIGH"
	SeverityCritical SeverityTier = "CRITICAL"
)

// RoutingDestination is the team or queue an exception is dispatched to.
type RoutingDestination string

const (
	RouteSeniorOps   RoutingDestination = "SENIOR_OPS"
	RouteOpsDesk     RoutingDestination = "OPS_DESK"
	RouteDataOps     RoutingDestination = "DATA_OPS"
	RouteAutoResolve RoutingDestination = "AUTO_RESOLVE"
)

// ResolutionStatus tracks an exception through its lifecycle.
// Transitions: PENDING -> ASSIGNED -> RESOLVED. RESOLVED is terminal.
type ResolutionStatus string

const (
	ResolutionPending  ResolutionStatus = "PENDING"
	ResolutionAssigned ResolutionStatus = "ASSIGNED"
	ResolutionResolved ResolutionStatus = "RESOLVED"
)

// ExceptionRecord captures any failure or exception-worthy event during a
// reconciliation run. Severity scoring and triage routing fill in the
// routing fields; resolution tracking advances Status.
type ExceptionRecord struct {
	ExceptionID     string    `json:"exception_id"`
	CreatedAt       time.Time `json:"created_at"`
	SourceEventType string    `json:"source_event_type"`

	TradeID     string   `json:"trade_id,omitempty"`
	MatchScore  *float64 `json:"match_score,omitempty"`
	ReasonCodes []string `json:"reason_codes"`

	SeverityScore float64      `json:"severity_score"`
	SeverityTier  SeverityTier `json:"severity_tier"`

	RoutingDestination RoutingDestination `json:"routing_destination"`
	Priority           int                `json:"priority"` // 1 = highest .. 5 = lowest
	SLADeadline        time.Time          `json:"sla_deadline"`

	Status ResolutionStatus `json:"resolution_status"`
}

// HasReason reports whether the given reason code is present.
func (e *ExceptionRecord) HasReason(code string) bool {
	for _, rc := range e.ReasonCodes {
		if rc == code {
			return true
		}
	}
	return false
}

// RewardEvent is one append-only entry in the routing-policy feedback log,
// produced when an exception resolves. The effective policy is recomputed
// from the full event stream rather than mutated in place.
type RewardEvent struct {
	ExceptionID string             `json:"exception_id"`
	ReasonCode  string             `json:"reason_code"`
	Destination RoutingDestination `json:"destination"`
	Reward      float64            `json:"reward"`
	CreatedAt   time.Time          `json:"created_at"`
}
