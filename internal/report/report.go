package report

import (
	"fmt"
	"strings"
	"time"

	"trade-reconciliation/internal/domain"
)

// Summary provides high-level statistics of one reconciliation run.
type Summary struct {
	RunAt                 string  `json:"run_at"`
	BankRecordsProcessed  int     `json:"bank_records_processed"`
	CtpyRecordsProcessed  int     `json:"counterparty_records_processed"`
	Matched               int     `json:"matched"`
	ProbableMatches       int     `json:"probable_matches"`
	ReviewRequired        int     `json:"review_required"`
	Breaks                int     `json:"breaks"`
	DataErrors            int     `json:"data_errors"`
	ExceptionsRaised      int     `json:"exceptions_raised"`
	AutoMatchRate         float64 `json:"auto_match_rate"`
}

// RunReport is the top-level structure for the final output of a run.
type RunReport struct {
	Summary               Summary                  `json:"summary"`
	Results               []domain.MatchResult     `json:"results"`
	Exceptions            []domain.ExceptionRecord `json:"exceptions"`
	UnmatchedBank         []domain.TradeRecord     `json:"unmatched_bank_records"`
	UnmatchedCounterparty []domain.TradeRecord     `json:"unmatched_counterparty_records"`
}

// Build assembles the report for one run. It derives the summary counts
// from the classified results; it performs no scoring of its own.
func Build(runAt time.Time, bankCount, ctpyCount int, results []domain.MatchResult, exceptions []domain.ExceptionRecord, unmatchedBank, unmatchedCtpy []domain.TradeRecord) *RunReport {
	r := &RunReport{
		Summary: Summary{
			RunAt:                runAt.UTC().Format(time.RFC3339),
			BankRecordsProcessed: bankCount,
			CtpyRecordsProcessed: ctpyCount,
			ExceptionsRaised:     len(exceptions),
		},
		Results:               results,
		Exceptions:            exceptions,
		UnmatchedBank:         unmatchedBank,
		UnmatchedCounterparty: unmatchedCtpy,
	}
	for _, mr := range results {
		switch mr.Classification {
		case domain.ClassificationMatched:
			r.Summary.Matched++
		case domain.ClassificationProbableMatch:
			r.Summary.ProbableMatches++
		case domain.ClassificationReviewRequired:
			r.Summary.ReviewRequired++
		case domain.ClassificationBreak:
			r.Summary.Breaks++
		case domain.ClassificationDataError:
			r.Summary.DataErrors++
		}
	}
	if len(results) > 0 {
		r.Summary.AutoMatchRate = float64(r.Summary.Matched) / float64(len(results))
	}
	return r
}

// Render produces the human-readable run summary for operators.
func (r *RunReport) Render() string {
	var b strings.Builder
	s := r.Summary
	fmt.Fprintf(&b, "Reconciliation run %s\n", s.RunAt)
	fmt.Fprintf(&b, "Records: %d bank, %d counterparty\n", s.BankRecordsProcessed, s.CtpyRecordsProcessed)
	fmt.Fprintf(&b, "Matched %d | probable %d | review %d | break %d | data error %d\n",
		s.Matched, s.ProbableMatches, s.ReviewRequired, s.Breaks, s.DataErrors)
	fmt.Fprintf(&b, "Auto-match rate: %.0f%%\n", s.AutoMatchRate*100)

	for _, mr := range r.Results {
		if mr.DecisionStatus == domain.DecisionAutoMatch {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%s, score %.2f -> %s)\n",
			mr.TradeID, mr.Classification, mr.MatchScore, mr.DecisionStatus)
		for _, fc := range mr.Differences {
			if fc.ReasonCode == "" {
				continue
			}
			fmt.Fprintf(&b, "  %-18s %s", fc.Field, fc.ReasonCode)
			if fc.Detail != "" {
				fmt.Fprintf(&b, " (%s)", fc.Detail)
			}
			b.WriteString("\n")
		}
	}

	if len(r.UnmatchedBank)+len(r.UnmatchedCounterparty) > 0 {
		fmt.Fprintf(&b, "\nUnmatched: %d bank, %d counterparty\n",
			len(r.UnmatchedBank), len(r.UnmatchedCounterparty))
	}
	if len(r.Exceptions) > 0 {
		fmt.Fprintf(&b, "\nExceptions (%d):\n", len(r.Exceptions))
		for _, exc := range r.Exceptions {
			fmt.Fprintf(&b, "  %s %s -> %s p%d, SLA %s\n",
				exc.ExceptionID, exc.SeverityTier, exc.RoutingDestination,
				exc.Priority, exc.SLADeadline.UTC().Format(time.RFC3339))
		}
	}
	return b.String()
}
