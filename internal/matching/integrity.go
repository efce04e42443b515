package matching

import (
	"fmt"

	"trade-reconciliation/internal/domain"
)

// VerifySourceIntegrity checks that each record's source tag agrees with
// the store it was physically retrieved from. It runs before scoring on
// every pair; a violation short-circuits classification to DATA_ERROR.
// The returned details describe each misplaced record.
func VerifySourceIntegrity(records ...domain.RetrievedRecord) (ok bool, details []string) {
	for _, rr := range records {
		if rr.Record.Source != rr.Store {
			details = append(details, fmt.Sprintf(
				"record %s tagged %s found in %s store",
				rr.Record.TradeID, rr.Record.Source, rr.Store))
		}
	}
	return len(details) == 0, details
}
