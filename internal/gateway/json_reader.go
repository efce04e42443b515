package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trade-reconciliation/internal/domain"
)

// JSONRecordRepository implements the RecordRepository interface for the
// JSON files produced by the upstream extraction stage. One file per
// source-partitioned store, each holding an array of canonical records.
type JSONRecordRepository struct{}

// NewJSONRecordRepository creates a new repository instance.
func NewJSONRecordRepository() *JSONRecordRepository {
	return &JSONRecordRepository{}
}

// GetBankRecords reads and parses the bank-store extraction file.
func (r *JSONRecordRepository) GetBankRecords(ctx context.Context, path string) ([]domain.TradeRecord, error) {
	return r.readStore(path)
}

// GetCounterpartyRecords reads and parses the counterparty-store file.
func (r *JSONRecordRepository) GetCounterpartyRecords(ctx context.Context, path string) ([]domain.TradeRecord, error) {
	return r.readStore(path)
}

// recordPayload is the lenient wire shape of one extracted record. Numeric
// and date fields arrive as whatever the extractor produced; values that
// fail to parse are preserved raw in Attributes instead of failing the
// whole store, so a single malformed confirmation surfaces later as one
// DATA_ERROR pair rather than aborting the run.
type recordPayload struct {
	TradeID          string            `json:"trade_id"`
	Source           string            `json:"source"`
	TradeDate        json.RawMessage   `json:"trade_date"`
	EffectiveDate    json.RawMessage   `json:"effective_date"`
	MaturityDate     json.RawMessage   `json:"maturity_date"`
	Notional         json.RawMessage   `json:"notional"`
	FixedPrice       json.RawMessage   `json:"fixed_price"`
	Currency         string            `json:"currency"`
	CounterpartyName string            `json:"counterparty_name"`
	ProductType      string            `json:"product_type"`
	CommodityType    string            `json:"commodity_type"`
	Attributes       map[string]string `json:"attributes"`
}

func (r *JSONRecordRepository) readStore(path string) ([]domain.TradeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store %s: %w", path, err)
	}

	var payloads []recordPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("failed to parse record store %s: %w", path, err)
	}

	records := make([]domain.TradeRecord, 0, len(payloads))
	for _, p := range payloads {
		rec := domain.TradeRecord{
			TradeID:          p.TradeID,
			Source:           domain.Source(strings.ToUpper(strings.TrimSpace(p.Source))),
			Currency:         p.Currency,
			CounterpartyName: p.CounterpartyName,
			ProductType:      p.ProductType,
			CommodityType:    p.CommodityType,
			Attributes:       map[string]string{},
		}
		for k, v := range p.Attributes {
			rec.Attributes[k] = v
		}

		rec.TradeDate = parseDate(p.TradeDate, "trade_date", rec.Attributes)
		rec.EffectiveDate = parseDate(p.EffectiveDate, "effective_date", rec.Attributes)
		rec.MaturityDate = parseDate(p.MaturityDate, "maturity_date", rec.Attributes)
		rec.Notional = parseDecimal(p.Notional, "notional", rec.Attributes)
		rec.FixedPrice = parseDecimal(p.FixedPrice, "fixed_price", rec.Attributes)

		if len(rec.Attributes) == 0 {
			rec.Attributes = nil
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseDecimal accepts a JSON number or string. On failure the raw text is
// kept in the attribute map for the comparator to report.
func parseDecimal(raw json.RawMessage, field string, attrs map[string]string) decimal.NullDecimal {
	s := rawString(raw)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		attrs[field] = s
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// parseDate accepts YYYY-MM-DD or RFC 3339. On failure the raw text is
// kept in the attribute map for the comparator to report.
func parseDate(raw json.RawMessage, field string, attrs map[string]string) time.Time {
	s := rawString(raw)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	attrs[field] = s
	return time.Time{}
}

// rawString unwraps a JSON scalar to its text form, "" for null/absent.
func rawString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var unquoted string
	if err := json.Unmarshal(raw, &unquoted); err == nil {
		return strings.TrimSpace(unquoted)
	}
	return s
}
