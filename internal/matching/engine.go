package matching

import (
	"errors"
	"sort"
	"strings"

	"trade-reconciliation/internal/compare"
	"trade-reconciliation/internal/domain"
)

// comparison runs one comparator method against the pair of records.
type comparison func(a, b domain.TradeRecord) (domain.FieldComparison, error)

// Engine evaluates one bank/counterparty record pair into a MatchResult.
// It holds no mutable state, so one engine is safe to share across
// concurrent match evaluations.
type Engine struct {
	cmp *compare.Comparator
}

func NewEngine(cmp *compare.Comparator) *Engine {
	return &Engine{cmp: cmp}
}

// MatchPair runs the full pipeline for one pair: integrity check, field
// comparison, weighted scoring, classification. It never returns an error;
// structurally invalid input becomes a DATA_ERROR result so one bad pair
// cannot abort the rest of a batch.
func (e *Engine) MatchPair(bank, ctpy domain.RetrievedRecord) domain.MatchResult {
	result := domain.MatchResult{
		TradeID:    bank.Record.TradeID,
		BankRecord: bank.Record,
		CtpyRecord: ctpy.Record,
	}

	// Misplaced records take priority over any field similarity.
	if ok, details := VerifySourceIntegrity(bank, ctpy); !ok {
		result.Classification = domain.ClassificationDataError
		result.DecisionStatus = domain.DecisionException
		result.ReasonCodes = []string{domain.ReasonSourceIntegrity}
		result.Differences = make([]domain.FieldComparison, 0)
		result.Differences = append(result.Differences, domain.FieldComparison{
			Field:  "source",
			Detail: strings.Join(details, "; "),
		})
		return result
	}

	a, b := bank.Record, ctpy.Record

	weighted := []comparison{
		e.cmp.TradeRef,
		e.cmp.Notional,
		e.cmp.TradeDate,
		e.cmp.Counterparty,
		e.cmp.Currency,
	}
	informational := []comparison{
		e.cmp.ProductType,
		e.cmp.CommodityType,
		e.cmp.EffectiveDate,
		e.cmp.MaturityDate,
		e.cmp.FixedPrice,
	}

	var (
		weightedResults []domain.FieldComparison
		differences     []domain.FieldComparison
	)
	for _, cmpFn := range weighted {
		fc, err := cmpFn(a, b)
		if err != nil {
			return e.dataError(result, err)
		}
		weightedResults = append(weightedResults, fc)
		differences = append(differences, fc)
	}
	for _, cmpFn := range informational {
		fc, err := cmpFn(a, b)
		if err != nil {
			return e.dataError(result, err)
		}
		differences = append(differences, fc)
	}

	result.MatchScore = Score(weightedResults)
	result.Classification, result.DecisionStatus = Classify(result.MatchScore, false)
	result.ReasonCodes = collectReasons(weightedResults)
	result.Differences = differences
	return result
}

// dataError converts a ComparisonError into a DATA_ERROR result.
func (e *Engine) dataError(result domain.MatchResult, err error) domain.MatchResult {
	result.Classification = domain.ClassificationDataError
	result.DecisionStatus = domain.DecisionException
	result.ReasonCodes = []string{domain.ReasonProcessingError}
	result.Differences = make([]domain.FieldComparison, 0)

	var cerr *compare.ComparisonError
	if errors.As(err, &cerr) {
		result.Differences = append(result.Differences, domain.FieldComparison{
			Field:  cerr.Field,
			Detail: cerr.Error(),
		})
	}
	return result
}

// collectReasons gathers the reason codes from the weighted comparisons,
// deduplicated and sorted so identical inputs always produce identical
// results.
func collectReasons(comparisons []domain.FieldComparison) []string {
	seen := make(map[string]struct{})
	for _, fc := range comparisons {
		if fc.ReasonCode != "" {
			seen[fc.ReasonCode] = struct{}{}
		}
	}
	reasons := make([]string, 0, len(seen))
	for rc := range seen {
		reasons = append(reasons, rc)
	}
	sort.Strings(reasons)
	return reasons
}
