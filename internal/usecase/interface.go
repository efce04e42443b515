package usecase

import (
	"context"

	"trade-reconciliation/internal/domain"
)

// RecordRepository fetches canonical trade records from the two
// source-partitioned stores. The usecase layer depends on this interface,
// not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go RecordRepository ResultStore
type RecordRepository interface {
	GetBankRecords(ctx context.Context, path string) ([]domain.TradeRecord, error)
	GetCounterpartyRecords(ctx context.Context, path string) ([]domain.TradeRecord, error)
}

// ResultStore persists the immutable outputs of a reconciliation run.
type ResultStore interface {
	SaveMatchResult(ctx context.Context, mr domain.MatchResult) error
	SaveException(ctx context.Context, exc domain.ExceptionRecord) error
}
