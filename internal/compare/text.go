package compare

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"trade-reconciliation/internal/domain"
)

// Counterparty compares the weighted counterparty legal names using a
// normalized edit-distance similarity. At or above the fuzzy threshold the
// names count as a full match; below it the similarity itself is kept as
// partial credit alongside a mismatch reason code.
func (c *Comparator) Counterparty(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	na, nb := normalizeName(a.CounterpartyName), normalizeName(b.CounterpartyName)
	if na == "" || nb == "" {
		return missing(FieldCounterparty), nil
	}

	sim := levenshtein.Match(na, nb, nil)
	if sim >= c.tol.FuzzyThreshold {
		return domain.FieldComparison{
			Field:           FieldCounterparty,
			RawScore:        1.0,
			WithinTolerance: true,
			Detail:          fmt.Sprintf("similarity %.2f", sim),
		}, nil
	}
	return domain.FieldComparison{
		Field:      FieldCounterparty,
		RawScore:   sim,
		ReasonCode: domain.ReasonCounterpartyMismatch,
		Detail:     fmt.Sprintf("similarity %.2f", sim),
	}, nil
}

// TradeRef compares the weighted trade-reference signal. Source-local IDs
// are not shared between the two systems, so literal equality is the
// exception rather than the rule. The comparator distinguishes three
// cases:
//
//   - the normalized references are equal or one embeds the other:
//     the records are cross-linked, full score;
//   - both references use the same alphabetic scheme prefix but carry
//     different bodies: the systems share a numbering scheme and the refs
//     genuinely disagree, zero score with TRADE_REF_MISMATCH;
//   - the references come from unrelated schemes: indeterminate, neutral
//     score and no reason code.
func (c *Comparator) TradeRef(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	na, nb := normalizeRef(a.TradeID), normalizeRef(b.TradeID)
	if na == "" || nb == "" {
		return missing(FieldTradeRef), nil
	}

	if na == nb || embeds(na, nb) || embeds(nb, na) {
		return domain.FieldComparison{
			Field:           FieldTradeRef,
			RawScore:        1.0,
			WithinTolerance: true,
			Detail:          "references cross-linked",
		}, nil
	}

	pa, pb := alphaPrefix(na), alphaPrefix(nb)
	if pa != "" && pa == pb {
		return domain.FieldComparison{
			Field:      FieldTradeRef,
			RawScore:   0.0,
			ReasonCode: domain.ReasonTradeRefMismatch,
			Detail:     fmt.Sprintf("same scheme %q, different references", pa),
		}, nil
	}
	return domain.FieldComparison{
		Field:    FieldTradeRef,
		RawScore: neutralScore,
		Detail:   "independent source-local reference schemes",
	}, nil
}

// embeds reports whether sub occurs inside s. Very short references carry
// too little signal to cross-link on containment alone.
func embeds(s, sub string) bool {
	return len(sub) >= 4 && strings.Contains(s, sub)
}

// normalizeToken case-folds and trims a categorical value.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeName prepares a legal entity name for fuzzy comparison:
// case-fold, strip punctuation, collapse whitespace.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeRef uppercases a trade reference and strips everything that is
// not a letter or digit.
func normalizeRef(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// alphaPrefix returns the leading run of letters of a normalized reference,
// which identifies its numbering scheme ("FX" in FX88213).
func alphaPrefix(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			return s[:i]
		}
	}
	return s
}
