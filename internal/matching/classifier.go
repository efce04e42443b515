package matching

import "trade-reconciliation/internal/domain"

// Classification thresholds. Each tier includes its lower bound.
const (
	ThresholdMatched  = 0.85
	ThresholdProbable = 0.70
	ThresholdReview   = 0.50
)

// Classify maps a match score to its classification and decision status.
// An integrity violation overrides the score entirely: a misplaced record
// must never be reported as a clean match however similar the fields are.
func Classify(score float64, integrityViolated bool) (domain.Classification, domain.DecisionStatus) {
	if integrityViolated {
		return domain.ClassificationDataError, domain.DecisionException
	}
	switch {
	case score >= ThresholdMatched:
		return domain.ClassificationMatched, domain.DecisionAutoMatch
	case score >= ThresholdProbable:
		return domain.ClassificationProbableMatch, domain.DecisionEscalate
	case score >= ThresholdReview:
		return domain.ClassificationReviewRequired, domain.DecisionException
	default:
		return domain.ClassificationBreak, domain.DecisionException
	}
}
