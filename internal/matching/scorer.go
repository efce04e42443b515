package matching

import (
	"math"

	"trade-reconciliation/internal/compare"
	"trade-reconciliation/internal/domain"
)

// weightedField binds one of the five weighted matching attributes to its
// fixed weight. The table is ordered so every run evaluates and reports the
// fields identically.
type weightedField struct {
	Field  string
	Weight float64
}

// weightTable is the fixed weighting of the five matching attributes.
// Weights sum to 1.0. Optional fields compared for reporting never enter
// the sum, so the score stays stable as the canonical schema grows.
var weightTable = []weightedField{
	{compare.FieldTradeRef, 0.30},
	{compare.FieldNotional, 0.25},
	{compare.FieldTradeDate, 0.20},
	{compare.FieldCounterparty, 0.15},
	{compare.FieldCurrency, 0.10},
}

// WeightSum returns the sum of the fixed weight table.
func WeightSum() float64 {
	var sum float64
	for _, wf := range weightTable {
		sum += wf.Weight
	}
	return sum
}

// Score aggregates the per-field comparison results into one confidence
// score in [0,1], rounded to two decimal places. Comparisons for fields
// outside the weight table are ignored. A weighted field with no
// comparison result counts as zero contribution.
func Score(comparisons []domain.FieldComparison) float64 {
	byField := make(map[string]domain.FieldComparison, len(comparisons))
	for _, fc := range comparisons {
		byField[fc.Field] = fc
	}

	var total float64
	for _, wf := range weightTable {
		if fc, ok := byField[wf.Field]; ok {
			total += wf.Weight * fc.RawScore
		}
	}

	rounded := math.Round(total*100) / 100
	return math.Min(1.0, math.Max(0.0, rounded))
}
