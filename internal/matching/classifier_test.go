package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"trade-reconciliation/internal/domain"
)

func TestClassify_ThresholdTable(t *testing.T) {
	tests := []struct {
		score        float64
		wantClass    domain.Classification
		wantDecision domain.DecisionStatus
	}{
		{1.00, domain.ClassificationMatched, domain.DecisionAutoMatch},
		{0.90, domain.ClassificationMatched, domain.DecisionAutoMatch},
		{0.85, domain.ClassificationMatched, domain.DecisionAutoMatch},
		{0.84, domain.ClassificationProbableMatch, domain.DecisionEscalate},
		{0.70, domain.ClassificationProbableMatch, domain.DecisionEscalate},
		{0.69, domain.ClassificationReviewRequired, domain.DecisionException},
		{0.50, domain.ClassificationReviewRequired, domain.DecisionException},
		{0.49, domain.ClassificationBreak, domain.DecisionException},
		{0.00, domain.ClassificationBreak, domain.DecisionException},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %.2f", tt.score), func(t *testing.T) {
			class, decision := Classify(tt.score, false)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantDecision, decision)
		})
	}
}

func TestClassify_FullRangeConsistency(t *testing.T) {
	// Walk the whole score range and verify classification and decision
	// always agree with the fixed threshold table.
	for i := 0; i <= 100; i++ {
		score := float64(i) / 100
		class, decision := Classify(score, false)
		switch {
		case score >= ThresholdMatched:
			assert.Equal(t, domain.ClassificationMatched, class)
			assert.Equal(t, domain.DecisionAutoMatch, decision)
		case score >= ThresholdProbable:
			assert.Equal(t, domain.ClassificationProbableMatch, class)
			assert.Equal(t, domain.DecisionEscalate, decision)
		case score >= ThresholdReview:
			assert.Equal(t, domain.ClassificationReviewRequired, class)
			assert.Equal(t, domain.DecisionException, decision)
		default:
			assert.Equal(t, domain.ClassificationBreak, class)
			assert.Equal(t, domain.DecisionException, decision)
		}
	}
}

func TestClassify_IntegrityViolationOverridesScore(t *testing.T) {
	for _, score := range []float64{0.0, 0.5, 0.85, 1.0} {
		class, decision := Classify(score, true)
		assert.Equal(t, domain.ClassificationDataError, class)
		assert.Equal(t, domain.DecisionException, decision)
	}
}

func TestVerifySourceIntegrity(t *testing.T) {
	bank := domain.TradeRecord{TradeID: "FX-1", Source: domain.SourceBank}
	ctpy := domain.TradeRecord{TradeID: "CP-1", Source: domain.SourceCounterparty}

	t.Run("records in their own stores", func(t *testing.T) {
		ok, details := VerifySourceIntegrity(
			domain.RetrievedRecord{Record: bank, Store: domain.SourceBank},
			domain.RetrievedRecord{Record: ctpy, Store: domain.SourceCounterparty},
		)
		assert.True(t, ok)
		assert.Empty(t, details)
	})

	t.Run("misplaced record detected", func(t *testing.T) {
		ok, details := VerifySourceIntegrity(
			domain.RetrievedRecord{Record: bank, Store: domain.SourceCounterparty},
		)
		assert.False(t, ok)
		assert.Len(t, details, 1)
		assert.Contains(t, details[0], "FX-1")
	})
}
