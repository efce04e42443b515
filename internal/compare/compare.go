package compare

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"trade-reconciliation/internal/domain"
)

// Field names used in comparison results. The first five are the weighted
// matching attributes; the rest are attached to differences for reporting
// only.
const (
	FieldTradeRef      = "trade_ref"
	FieldNotional      = "notional"
	FieldTradeDate     = "trade_date"
	FieldCounterparty  = "counterparty_name"
	FieldCurrency      = "currency"
	FieldProductType   = "product_type"
	FieldCommodityType = "commodity_type"
	FieldEffectiveDate = "effective_date"
	FieldMaturityDate  = "maturity_date"
	FieldFixedPrice    = "fixed_price"
)

// neutralScore is used when a value is missing on either side. A missing
// optional field must not tank an otherwise good match, so it scores
// halfway instead of zero.
const neutralScore = 0.5

// ComparisonError reports structurally invalid input, such as a non-numeric
// raw value where a numeric field is expected. Missing values are not an
// error; they score neutral instead.
type ComparisonError struct {
	Field string
	Value string
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("comparison of field %s: invalid value %q", e.Field, e.Value)
}

// Tolerances holds the comparison tolerance bands. Values are fixed for a
// whole run; they are never varied per call.
type Tolerances struct {
	// NotionalTolerance is the relative difference inside which two
	// notionals count as equal. NotionalOuterBound is where the linearly
	// decaying score reaches zero.
	NotionalTolerance  float64
	NotionalOuterBound float64

	// DateToleranceDays is the calendar-day difference inside which two
	// dates count as equal. DateOuterDays is where the decay reaches zero.
	DateToleranceDays int
	DateOuterDays     int

	// FuzzyThreshold is the name similarity at or above which two
	// counterparty names count as a match.
	FuzzyThreshold float64
}

// DefaultTolerances returns the authoritative tolerance table:
// notional ±0.01% inner / ±2% outer, dates ±1 day inner / ±3 days outer,
// counterparty similarity threshold 0.80.
func DefaultTolerances() Tolerances {
	return Tolerances{
		NotionalTolerance:  0.0001,
		NotionalOuterBound: 0.02,
		DateToleranceDays:  1,
		DateOuterDays:      3,
		FuzzyThreshold:     0.80,
	}
}

// Comparator compares individual fields between two trade records. All
// methods are pure: no I/O, no clock, no mutation of the inputs.
type Comparator struct {
	tol Tolerances
}

func NewComparator(tol Tolerances) *Comparator {
	return &Comparator{tol: tol}
}

// Notional compares the weighted notional amounts. A record whose typed
// notional is unset but whose raw attribute map carries an unparseable
// value is structurally invalid and yields a ComparisonError.
func (c *Comparator) Notional(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareDecimal(FieldNotional, domain.ReasonNotionalMismatch, a, b, a.Notional, b.Notional)
}

// FixedPrice compares the optional fixed price. Reported in differences
// only; it does not enter the weighted sum.
func (c *Comparator) FixedPrice(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareDecimal(FieldFixedPrice, "FIXED_PRICE_MISMATCH", a, b, a.FixedPrice, b.FixedPrice)
}

func (c *Comparator) compareDecimal(field, reason string, a, b domain.TradeRecord, va, vb decimal.NullDecimal) (domain.FieldComparison, error) {
	da, err := resolveDecimal(field, va, a.Attributes)
	if err != nil {
		return domain.FieldComparison{}, err
	}
	db, err := resolveDecimal(field, vb, b.Attributes)
	if err != nil {
		return domain.FieldComparison{}, err
	}
	if da == nil || db == nil {
		return missing(field), nil
	}

	rel := relativeDiff(*da, *db)
	switch {
	case rel <= c.tol.NotionalTolerance:
		return domain.FieldComparison{
			Field:           field,
			RawScore:        1.0,
			WithinTolerance: true,
			Detail:          fmt.Sprintf("relative diff %.4f%%", rel*100),
		}, nil
	case rel < c.tol.NotionalOuterBound:
		score := 1.0 - (rel-c.tol.NotionalTolerance)/(c.tol.NotionalOuterBound-c.tol.NotionalTolerance)
		return domain.FieldComparison{
			Field:      field,
			RawScore:   score,
			ReasonCode: reason,
			Detail:     fmt.Sprintf("relative diff %.4f%%", rel*100),
		}, nil
	default:
		return domain.FieldComparison{
			Field:      field,
			RawScore:   0.0,
			ReasonCode: reason,
			Detail:     fmt.Sprintf("relative diff %.4f%%", rel*100),
		}, nil
	}
}

// resolveDecimal returns the typed value if set, otherwise falls back to
// the raw attribute map. nil means the value is genuinely absent.
func resolveDecimal(field string, v decimal.NullDecimal, attrs map[string]string) (*decimal.Decimal, error) {
	if v.Valid {
		return &v.Decimal, nil
	}
	raw, ok := attrs[field]
	if !ok || raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &ComparisonError{Field: field, Value: raw}
	}
	return &d, nil
}

func relativeDiff(a, b decimal.Decimal) float64 {
	if a.Equal(b) {
		return 0
	}
	base := decimal.Max(a.Abs(), b.Abs())
	if base.IsZero() {
		return 0
	}
	return a.Sub(b).Abs().Div(base).InexactFloat64()
}

// TradeDate compares the weighted trade date.
func (c *Comparator) TradeDate(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareDate(FieldTradeDate, domain.ReasonDateMismatch, a.TradeDate, b.TradeDate, a.Attributes, b.Attributes)
}

// EffectiveDate and MaturityDate are compared for reporting only.
func (c *Comparator) EffectiveDate(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareDate(FieldEffectiveDate, "EFFECTIVE_DATE_MISMATCH", a.EffectiveDate, b.EffectiveDate, a.Attributes, b.Attributes)
}

func (c *Comparator) MaturityDate(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareDate(FieldMaturityDate, "MATURITY_DATE_MISMATCH", a.MaturityDate, b.MaturityDate, a.Attributes, b.Attributes)
}

func (c *Comparator) compareDate(field, reason string, da, db time.Time, attrsA, attrsB map[string]string) (domain.FieldComparison, error) {
	va, err := resolveDate(field, da, attrsA)
	if err != nil {
		return domain.FieldComparison{}, err
	}
	vb, err := resolveDate(field, db, attrsB)
	if err != nil {
		return domain.FieldComparison{}, err
	}
	if va == nil || vb == nil {
		return missing(field), nil
	}

	days := calendarDays(*va, *vb)
	tolDays := float64(c.tol.DateToleranceDays)
	outerDays := float64(c.tol.DateOuterDays)
	switch {
	case days <= tolDays:
		return domain.FieldComparison{
			Field:           field,
			RawScore:        1.0,
			WithinTolerance: true,
			Detail:          fmt.Sprintf("%.0f day(s) apart", days),
		}, nil
	case days < outerDays:
		score := (outerDays - days) / (outerDays - tolDays)
		return domain.FieldComparison{
			Field:      field,
			RawScore:   score,
			ReasonCode: reason,
			Detail:     fmt.Sprintf("%.0f day(s) apart", days),
		}, nil
	default:
		return domain.FieldComparison{
			Field:      field,
			RawScore:   0.0,
			ReasonCode: reason,
			Detail:     fmt.Sprintf("%.0f day(s) apart", days),
		}, nil
	}
}

func resolveDate(field string, v time.Time, attrs map[string]string) (*time.Time, error) {
	if !v.IsZero() {
		return &v, nil
	}
	raw, ok := attrs[field]
	if !ok || raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, &ComparisonError{Field: field, Value: raw}
	}
	return &t, nil
}

// calendarDays returns the whole-day distance between two dates, ignoring
// any time-of-day component.
func calendarDays(a, b time.Time) float64 {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return math.Abs(ad.Sub(bd).Hours() / 24)
}

// Currency compares the weighted currency code exactly after normalization.
func (c *Comparator) Currency(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareExact(FieldCurrency, domain.ReasonCurrencyMismatch, a.Currency, b.Currency), nil
}

// ProductType and CommodityType are categorical fields compared for
// reporting only.
func (c *Comparator) ProductType(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareExact(FieldProductType, "PRODUCT_TYPE_MISMATCH", a.ProductType, b.ProductType), nil
}

func (c *Comparator) CommodityType(a, b domain.TradeRecord) (domain.FieldComparison, error) {
	return c.compareExact(FieldCommodityType, "COMMODITY_TYPE_MISMATCH", a.CommodityType, b.CommodityType), nil
}

func (c *Comparator) compareExact(field, reason, a, b string) domain.FieldComparison {
	na, nb := normalizeToken(a), normalizeToken(b)
	if na == "" || nb == "" {
		return missing(field)
	}
	if na == nb {
		return domain.FieldComparison{Field: field, RawScore: 1.0, WithinTolerance: true}
	}
	return domain.FieldComparison{
		Field:      field,
		RawScore:   0.0,
		ReasonCode: reason,
		Detail:     fmt.Sprintf("%q vs %q", a, b),
	}
}

func missing(field string) domain.FieldComparison {
	return domain.FieldComparison{
		Field:      field,
		RawScore:   neutralScore,
		ReasonCode: domain.ReasonMissingField,
		Detail:     "value missing on one or both sides",
	}
}
