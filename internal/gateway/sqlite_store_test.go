package gateway

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-reconciliation/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "recon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveMatchResult(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mr := domain.MatchResult{
		TradeID:        "BNK-20250304-001",
		MatchScore:     0.83,
		Classification: domain.ClassificationProbableMatch,
		DecisionStatus: domain.DecisionEscalate,
		ReasonCodes:    []string{domain.ReasonNotionalMismatch},
	}

	require.NoError(t, store.SaveMatchResult(ctx, mr))
	// Results are append-only; saving again adds a second row rather than
	// failing or overwriting.
	require.NoError(t, store.SaveMatchResult(ctx, mr))
}

func TestSQLiteStore_SaveException_Upserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	score := 0.63
	exc := domain.ExceptionRecord{
		ExceptionID:        "exc-42",
		CreatedAt:          created,
		SourceEventType:    "MATCH_EXCEPTION",
		TradeID:            "BNK-20250304-001",
		MatchScore:         &score,
		ReasonCodes:        []string{domain.ReasonCounterpartyMismatch},
		SeverityScore:      0.33,
		SeverityTier:       domain.SeverityCritical,
		RoutingDestination: domain.RouteSeniorOps,
		Priority:           1,
		SLADeadline:        created.Add(2 * time.Hour),
		Status:             domain.ResolutionPending,
	}
	require.NoError(t, store.SaveException(ctx, exc))

	exc.Status = domain.ResolutionResolved
	require.NoError(t, store.SaveException(ctx, exc))

	var status string
	err := store.db.QueryRow(
		`SELECT resolution_status FROM exceptions WHERE exception_id = ?`, "exc-42").Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ResolutionResolved), status)

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM exceptions`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_RewardLogRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	events := []domain.RewardEvent{
		{
			ExceptionID: "exc-1",
			ReasonCode:  domain.ReasonNotionalMismatch,
			Destination: domain.RouteOpsDesk,
			Reward:      1.0,
			CreatedAt:   time.Date(2025, 3, 5, 11, 0, 0, 0, time.UTC),
		},
		{
			ExceptionID: "exc-2",
			ReasonCode:  domain.ReasonDateMismatch,
			Destination: domain.RouteAutoResolve,
			Reward:      -0.5,
			CreatedAt:   time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC),
		},
	}
	for _, ev := range events {
		require.NoError(t, store.AppendReward(ctx, ev))
	}

	got, err := store.ListRewards(ctx)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestSQLiteStore_ListRewards_EmptyLog(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ListRewards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
