package domain

// Classification is the outcome tier of one matching attempt.
type Classification string

const (
	ClassificationMatched        Classification = "MATCHED"
	ClassificationProbableMatch  Classification = "PROBABLE_MATCH"
	ClassificationReviewRequired Classification = "REVIEW_REQUIRED"
	ClassificationBreak          Classification = "BREAK"
	ClassificationDataError      Classification = "DATA_ERROR"
)

// DecisionStatus is the routing action implied by a classification.
// Downstream consumers key off this field only; they never re-derive it
// from the score.
type DecisionStatus string

const (
	DecisionAutoMatch DecisionStatus = "AUTO_MATCH"
	DecisionEscalate  DecisionStatus = "ESCALATE"
	DecisionException DecisionStatus = "EXCEPTION"
)

// Reason codes emitted by the field comparators and the integrity checker.
const (
	ReasonTradeRefMismatch     = "TRADE_REF_MISMATCH"
	ReasonNotionalMismatch     = "NOTIONAL_MISMATCH"
	ReasonDateMismatch         = "DATE_MISMATCH"
	ReasonCounterpartyMismatch = "COUNTERPARTY_MISMATCH"
	ReasonCurrencyMismatch     = "CURRENCY_MISMATCH"
	ReasonMissingField         = "MISSING_FIELD"
	ReasonProcessingError      = "PROCESSING_ERROR"
	ReasonSourceIntegrity      = "SOURCE_INTEGRITY_VIOLATION"
)

// FieldComparison is the result of comparing a single field between the two
// candidate records. Created per match attempt and consumed immediately by
// the scorer; it is never persisted on its own.
type FieldComparison struct {
	Field           string  `json:"field"`
	RawScore        float64 `json:"raw_score"`
	WithinTolerance bool    `json:"within_tolerance"`
	ReasonCode      string  `json:"reason_code,omitempty"`
	Detail          string  `json:"detail,omitempty"`
}

// MatchResult is the immutable outcome of one matching attempt between a
// bank record and a counterparty record. A re-match produces a new result;
// results are never updated in place.
type MatchResult struct {
	TradeID        string            `json:"trade_id"`
	Classification Classification    `json:"classification"`
	MatchScore     float64           `json:"match_score"`
	DecisionStatus DecisionStatus    `json:"decision_status"`
	ReasonCodes    []string          `json:"reason_codes"`
	Differences    []FieldComparison `json:"differences"`
	BankRecord     TradeRecord       `json:"bank_record"`
	CtpyRecord     TradeRecord       `json:"counterparty_record"`
}

// HasReason reports whether the given reason code is present.
func (mr *MatchResult) HasReason(code string) bool {
	for _, rc := range mr.ReasonCodes {
		if rc == code {
			return true
		}
	}
	return false
}
