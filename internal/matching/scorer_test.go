package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trade-reconciliation/internal/compare"
	"trade-reconciliation/internal/domain"
)

func weightedComparisons(tradeRef, notional, tradeDate, counterparty, currency float64) []domain.FieldComparison {
	return []domain.FieldComparison{
		{Field: compare.FieldTradeRef, RawScore: tradeRef},
		{Field: compare.FieldNotional, RawScore: notional},
		{Field: compare.FieldTradeDate, RawScore: tradeDate},
		{Field: compare.FieldCounterparty, RawScore: counterparty},
		{Field: compare.FieldCurrency, RawScore: currency},
	}
}

func TestWeightSum(t *testing.T) {
	assert.InEpsilon(t, 1.0, WeightSum(), 1e-9)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		fcs  []domain.FieldComparison
		want float64
	}{
		{"all perfect", weightedComparisons(1, 1, 1, 1, 1), 1.00},
		{"all zero", weightedComparisons(0, 0, 0, 0, 0), 0.00},
		{"neutral trade ref only", weightedComparisons(0.5, 1, 1, 1, 1), 0.85},
		{"counterparty lost", weightedComparisons(1, 1, 1, 0, 1), 0.85},
		{"rounding to two decimals", weightedComparisons(0.5, 0.9376, 1, 1, 1), 0.83},
		{"no comparisons at all", nil, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.fcs), 1e-9)
		})
	}
}

func TestScore_IgnoresUnweightedFields(t *testing.T) {
	fcs := weightedComparisons(1, 1, 1, 1, 1)
	fcs = append(fcs,
		domain.FieldComparison{Field: compare.FieldProductType, RawScore: 0},
		domain.FieldComparison{Field: compare.FieldFixedPrice, RawScore: 0},
	)
	assert.InDelta(t, 1.00, Score(fcs), 1e-9)
}

func TestScore_AlwaysBounded(t *testing.T) {
	// Sweep raw scores over and beyond the valid range; the aggregate must
	// stay inside [0,1] regardless.
	for _, raw := range []float64{-1, 0, 0.25, 0.5, 0.75, 1, 2} {
		score := Score(weightedComparisons(raw, raw, raw, raw, raw))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestScore_Deterministic(t *testing.T) {
	fcs := weightedComparisons(0.5, 0.9376, 1, 0.76, 1)
	first := Score(fcs)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Score(fcs))
	}
}
