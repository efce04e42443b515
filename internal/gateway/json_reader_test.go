package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-reconciliation/internal/domain"
)

func writeStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONRecordRepository_ReadsRecords(t *testing.T) {
	path := writeStore(t, `[
		{
			"trade_id": "BNK-20250304-001",
			"source": "BANK",
			"trade_date": "2025-03-04",
			"effective_date": "2025-03-06T00:00:00Z",
			"notional": 11160.00,
			"fixed_price": "44.85",
			"currency": "EUR",
			"counterparty_name": "Merrill Lynch International",
			"product_type": "Commodity Swap",
			"attributes": {"desk": "LDN-COMM"}
		},
		{
			"trade_id": "BNK-20250304-002",
			"source": "bank",
			"trade_date": "2025-03-04",
			"notional": "18625",
			"currency": "USD",
			"counterparty_name": "Goldman Sachs International"
		}
	]`)

	repo := NewJSONRecordRepository()
	records, err := repo.GetBankRecords(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "BNK-20250304-001", first.TradeID)
	assert.Equal(t, domain.SourceBank, first.Source)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), first.TradeDate)
	assert.Equal(t, time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), first.EffectiveDate)
	require.True(t, first.Notional.Valid)
	assert.True(t, first.Notional.Decimal.Equal(decimal.RequireFromString("11160.00")))
	require.True(t, first.FixedPrice.Valid)
	assert.True(t, first.FixedPrice.Decimal.Equal(decimal.RequireFromString("44.85")))
	assert.Equal(t, "LDN-COMM", first.Attributes["desk"])

	// Source tags are normalized; quoted numbers parse like bare ones.
	second := records[1]
	assert.Equal(t, domain.SourceBank, second.Source)
	require.True(t, second.Notional.Valid)
	assert.True(t, second.Notional.Decimal.Equal(decimal.RequireFromString("18625")))
	assert.Nil(t, second.Attributes)
}

func TestJSONRecordRepository_KeepsUnparseableValuesRaw(t *testing.T) {
	path := writeStore(t, `[
		{
			"trade_id": "BNK-20250304-003",
			"source": "BANK",
			"trade_date": "03/04/2025",
			"notional": "eleven thousand",
			"currency": "EUR",
			"counterparty_name": "Merrill Lynch International"
		}
	]`)

	repo := NewJSONRecordRepository()
	records, err := repo.GetCounterpartyRecords(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.False(t, rec.Notional.Valid)
	assert.True(t, rec.TradeDate.IsZero())
	assert.Equal(t, "eleven thousand", rec.Attributes["notional"])
	assert.Equal(t, "03/04/2025", rec.Attributes["trade_date"])
}

func TestJSONRecordRepository_MissingFieldsStayEmpty(t *testing.T) {
	path := writeStore(t, `[
		{
			"trade_id": "CP-7781",
			"source": "COUNTERPARTY",
			"notional": null
		}
	]`)

	repo := NewJSONRecordRepository()
	records, err := repo.GetCounterpartyRecords(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, domain.SourceCounterparty, rec.Source)
	assert.False(t, rec.Notional.Valid)
	assert.True(t, rec.TradeDate.IsZero())
	assert.Empty(t, rec.Currency)
	assert.Nil(t, rec.Attributes)
}

func TestJSONRecordRepository_Errors(t *testing.T) {
	repo := NewJSONRecordRepository()

	t.Run("missing file", func(t *testing.T) {
		_, err := repo.GetBankRecords(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open record store")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeStore(t, `{"not": "an array"`)
		_, err := repo.GetBankRecords(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse record store")
	})
}
