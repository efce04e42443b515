package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"trade-reconciliation/internal/domain"
	"trade-reconciliation/internal/logger"
	"trade-reconciliation/internal/matching"
	"trade-reconciliation/internal/report"
	"trade-reconciliation/internal/triage"
)

// Source event types attached to generated exceptions.
const (
	EventMatchException  = "MATCH_EXCEPTION"
	EventUnmatchedRecord = "UNMATCHED_RECORD"
)

// pairingFloor is the minimum score at which two records are considered
// candidates for the same economic trade during cross-pairing. Below it a
// pair means "different trades", not "a break between two trades".
const pairingFloor = matching.ThresholdReview

// defaultWorkers bounds the pair-scoring worker pool.
const defaultWorkers = 4

// ReconciliationUseCase orchestrates one reconciliation run: fetch both
// stores, pair and score records, classify, raise and triage exceptions,
// persist the immutable outputs.
type ReconciliationUseCase struct {
	repo     RecordRepository
	store    ResultStore
	engine   *matching.Engine
	policies *triage.PolicyProvider

	workers int
	now     func() time.Time
	newID   func() string
}

// NewReconciliationUseCase creates a new instance of the usecase. The
// policy provider may be nil; triage then runs on fixed rules only.
func NewReconciliationUseCase(repo RecordRepository, store ResultStore, engine *matching.Engine, policies *triage.PolicyProvider) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		repo:     repo,
		store:    store,
		engine:   engine,
		policies: policies,
		workers:  defaultWorkers,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Reconcile performs the main reconciliation logic for one run.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, bankPath, ctpyPath string) (*report.RunReport, error) {
	bankRecs, err := uc.repo.GetBankRecords(ctx, bankPath)
	if err != nil {
		return nil, fmt.Errorf("could not get bank records: %w", err)
	}
	ctpyRecs, err := uc.repo.GetCounterpartyRecords(ctx, ctpyPath)
	if err != nil {
		return nil, fmt.Errorf("could not get counterparty records: %w", err)
	}

	runAt := uc.now()
	pol := uc.policies.Current(ctx)

	// Integrity pass first: misplaced records never enter pairing and are
	// reported as DATA_ERROR regardless of how well their fields align.
	cleanBank, results := uc.partition(bankRecs, domain.SourceBank)
	cleanCtpy, ctpyResults := uc.partition(ctpyRecs, domain.SourceCounterparty)
	results = append(results, ctpyResults...)

	paired, unmatchedBank, unmatchedCtpy := uc.pairAndScore(cleanBank, cleanCtpy)
	results = append(results, paired...)

	exceptions := uc.raiseExceptions(results, unmatchedBank, unmatchedCtpy, runAt, pol)

	uc.persist(ctx, results, exceptions)

	return report.Build(runAt, len(bankRecs), len(ctpyRecs), results, exceptions, unmatchedBank, unmatchedCtpy), nil
}

// partition splits records into those consistent with their store and
// DATA_ERROR results for the misplaced ones.
func (uc *ReconciliationUseCase) partition(recs []domain.TradeRecord, store domain.Source) ([]domain.TradeRecord, []domain.MatchResult) {
	var clean []domain.TradeRecord
	var misplaced []domain.MatchResult
	for _, rec := range recs {
		rr := domain.RetrievedRecord{Record: rec, Store: store}
		if ok, details := matching.VerifySourceIntegrity(rr); !ok {
			mr := domain.MatchResult{
				TradeID:        rec.TradeID,
				Classification: domain.ClassificationDataError,
				DecisionStatus: domain.DecisionException,
				ReasonCodes:    []string{domain.ReasonSourceIntegrity},
				Differences: []domain.FieldComparison{
					{Field: "source", Detail: details[0]},
				},
			}
			if store == domain.SourceBank {
				mr.BankRecord = rec
			} else {
				mr.CtpyRecord = rec
			}
			misplaced = append(misplaced, mr)
			continue
		}
		clean = append(clean, rec)
	}
	return clean, misplaced
}

// pairAndScore evaluates every bank/counterparty combination concurrently,
// then pairs records greedily by descending score. Pair evaluations are
// independent, so they fan out over a bounded worker pool; the join is the
// indexed result slice, which keeps the outcome deterministic.
func (uc *ReconciliationUseCase) pairAndScore(bank, ctpy []domain.TradeRecord) (results []domain.MatchResult, unmatchedBank, unmatchedCtpy []domain.TradeRecord) {
	nb, nc := len(bank), len(ctpy)
	if nb == 0 || nc == 0 {
		return nil, bank, ctpy
	}

	scored := make([]domain.MatchResult, nb*nc)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				bi, ci := k/nc, k%nc
				scored[k] = uc.engine.MatchPair(
					domain.RetrievedRecord{Record: bank[bi], Store: domain.SourceBank},
					domain.RetrievedRecord{Record: ctpy[ci], Store: domain.SourceCounterparty},
				)
			}
		}()
	}
	for k := 0; k < nb*nc; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	order := make([]int, nb*nc)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		si, sj := scored[order[i]].MatchScore, scored[order[j]].MatchScore
		if si != sj {
			return si > sj
		}
		return order[i] < order[j]
	})

	bankTaken := make([]bool, nb)
	ctpyTaken := make([]bool, nc)
	for _, k := range order {
		bi, ci := k/nc, k%nc
		if bankTaken[bi] || ctpyTaken[ci] {
			continue
		}
		// A lone record on each side is still a candidate pair even when
		// the score is poor: the run was asked to reconcile exactly them.
		if scored[k].MatchScore < pairingFloor && !(nb == 1 && nc == 1) {
			continue
		}
		bankTaken[bi], ctpyTaken[ci] = true, true
		results = append(results, scored[k])
	}

	for bi, taken := range bankTaken {
		if !taken {
			unmatchedBank = append(unmatchedBank, bank[bi])
		}
	}
	for ci, taken := range ctpyTaken {
		if !taken {
			unmatchedCtpy = append(unmatchedCtpy, ctpy[ci])
		}
	}
	return results, unmatchedBank, unmatchedCtpy
}

// raiseExceptions converts exception-worthy outcomes into triaged
// exception records: every EXCEPTION decision plus every unmatched record.
func (uc *ReconciliationUseCase) raiseExceptions(results []domain.MatchResult, unmatchedBank, unmatchedCtpy []domain.TradeRecord, runAt time.Time, pol *triage.Policy) []domain.ExceptionRecord {
	var exceptions []domain.ExceptionRecord

	for _, mr := range results {
		if mr.DecisionStatus != domain.DecisionException {
			continue
		}
		exc := domain.ExceptionRecord{
			ExceptionID:     uc.newID(),
			CreatedAt:       runAt,
			SourceEventType: EventMatchException,
			TradeID:         mr.TradeID,
			ReasonCodes:     mr.ReasonCodes,
			Status:          domain.ResolutionPending,
		}
		// A DATA_ERROR has no meaningful score; leave it absent so the
		// severity scorer uses the base reason severity unscaled.
		if mr.Classification != domain.ClassificationDataError {
			score := mr.MatchScore
			exc.MatchScore = &score
		}
		triage.Triage(&exc, pol)
		exceptions = append(exceptions, exc)
	}

	for _, rec := range append(append([]domain.TradeRecord{}, unmatchedBank...), unmatchedCtpy...) {
		exc := domain.ExceptionRecord{
			ExceptionID:     uc.newID(),
			CreatedAt:       runAt,
			SourceEventType: EventUnmatchedRecord,
			TradeID:         rec.TradeID,
			ReasonCodes:     []string{domain.ReasonMissingField},
			Status:          domain.ResolutionPending,
		}
		triage.Triage(&exc, pol)
		exceptions = append(exceptions, exc)
	}
	return exceptions
}

// persist stores results and exceptions. Persistence failures are logged
// per record and never abort the remainder of the run.
func (uc *ReconciliationUseCase) persist(ctx context.Context, results []domain.MatchResult, exceptions []domain.ExceptionRecord) {
	if uc.store == nil {
		return
	}
	for _, mr := range results {
		if err := uc.store.SaveMatchResult(ctx, mr); err != nil {
			logger.L.Error("failed to persist match result", "tradeID", mr.TradeID, "error", err)
		}
	}
	for _, exc := range exceptions {
		if err := uc.store.SaveException(ctx, exc); err != nil {
			logger.L.Error("failed to persist exception", "exceptionID", exc.ExceptionID, "error", err)
		}
	}
}
