package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies which counterparty's system a trade record came from.
type Source string

const (
	SourceBank         Source = "BANK"
	SourceCounterparty Source = "COUNTERPARTY"
)

// TradeRecord is the canonical, normalized representation of one trade
// confirmation as produced by the upstream extraction stage. It is a
// read-only input to the matching core: nothing downstream mutates it.
//
// The five weighted matching attributes (trade reference, notional, trade
// date, counterparty name, currency) live as typed fields. Everything else
// the extractor picked up goes into Attributes, so the scorer's required
// inputs are never ambiguous no matter how many optional fields a
// confirmation carries.
type TradeRecord struct {
	TradeID string `json:"trade_id"`
	Source  Source `json:"source"`

	TradeDate     time.Time `json:"trade_date"`
	EffectiveDate time.Time `json:"effective_date"`
	MaturityDate  time.Time `json:"maturity_date"`

	Notional   decimal.NullDecimal `json:"notional"`
	FixedPrice decimal.NullDecimal `json:"fixed_price"`

	Currency         string `json:"currency"`
	CounterpartyName string `json:"counterparty_name"`
	ProductType      string `json:"product_type"`
	CommodityType    string `json:"commodity_type"`

	// Attributes holds optional extension fields plus any raw values the
	// extractor could not parse into the typed fields above. A raw value
	// present here for a typed field that is unset means the upstream data
	// was structurally invalid, which the comparator reports as a
	// ComparisonError rather than silently skipping.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// RetrievedRecord pairs a trade record with the source-partitioned store it
// was physically read from. The data-integrity checker compares the two.
type RetrievedRecord struct {
	Record TradeRecord
	Store  Source
}
