package triage

import (
	"math"

	"trade-reconciliation/internal/domain"
)

// baseSeverity maps reason codes to their base severity contribution. The
// overall base is the maximum over the codes present.
var baseSeverity = map[string]float64{
	domain.ReasonCounterpartyMismatch: 0.90,
	domain.ReasonSourceIntegrity:      0.85,
	domain.ReasonNotionalMismatch:     0.80,
	domain.ReasonCurrencyMismatch:     0.70,
	domain.ReasonMissingField:         0.60,
	domain.ReasonTradeRefMismatch:     0.60,
	domain.ReasonDateMismatch:         0.50,
	domain.ReasonProcessingError:      0.40,
}

// unknownBaseSeverity is used for reason codes not in the table.
const unknownBaseSeverity = 0.50

// Severity tier bands. LOW below 0.30, MEDIUM below 0.60, HIGH up to and
// including 0.85, CRITICAL above.
const (
	tierLowBelow    = 0.30
	tierMediumBelow = 0.60
	tierHighUpTo    = 0.85
)

// SeverityScore computes the [0,1] severity of an exception. The base is
// the worst reason code present; a known match score scales it (a lower
// match score amplifies severity); an optional learned policy contributes a
// bounded correction.
func SeverityScore(reasonCodes []string, matchScore *float64, pol *Policy) float64 {
	base := baseFor(reasonCodes)

	severity := base
	if matchScore != nil {
		severity = base * (1 - *matchScore)
	}
	if pol != nil {
		severity += pol.SeverityCorrection(PrimaryReason(reasonCodes))
	}
	return math.Min(1.0, math.Max(0.0, severity))
}

func baseFor(reasonCodes []string) float64 {
	if len(reasonCodes) == 0 {
		return unknownBaseSeverity
	}
	var base float64
	for _, rc := range reasonCodes {
		b, ok := baseSeverity[rc]
		if !ok {
			b = unknownBaseSeverity
		}
		if b > base {
			base = b
		}
	}
	return base
}

// PrimaryReason picks the reason code with the highest base severity,
// breaking ties alphabetically so the choice is deterministic.
func PrimaryReason(reasonCodes []string) string {
	var primary string
	var best float64 = -1
	for _, rc := range reasonCodes {
		b, ok := baseSeverity[rc]
		if !ok {
			b = unknownBaseSeverity
		}
		if b > best || (b == best && rc < primary) {
			primary = rc
			best = b
		}
	}
	return primary
}

// TierFor buckets a severity score into its tier.
func TierFor(score float64) domain.SeverityTier {
	switch {
	case score < tierLowBelow:
		return domain.SeverityLow
	case score < tierMediumBelow:
		return domain.SeverityMedium
	case score <= tierHighUpTo:
		return domain.SeverityHigh
	default:
		return domain.SeverityCritical
	}
}
