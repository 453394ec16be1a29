package reports

import (
	"sort"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RunningBalances computes the chronological running balance over a
// transaction set, seeded with the supplied opening balance. The result maps
// each transaction ID to the balance after applying that transaction.
//
// Transactions are walked in ascending date order using a stable sort, so two
// entries sharing the exact same date keep their input (insertion) order and
// the result is deterministic across repeated calls. Entries with a zero date
// (the malformed-date sentinel) sort last rather than aborting the pass.
//
// Callers re-attach balances to transactions sorted however the display
// requires; the ascending pass here must not be conflated with display order.
func RunningBalances(txns []domain.Transaction, opening decimal.Decimal) map[string]decimal.Decimal {
	ordered := make([]domain.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return dateBefore(ordered[i].Date, ordered[j].Date)
	})

	balances := make(map[string]decimal.Decimal, len(ordered))
	running := opening
	for _, t := range ordered {
		if t.Type == domain.CashIn {
			running = running.Add(t.Amount)
		} else {
			running = running.Sub(t.Amount)
		}
		balances[t.TransactionID] = running
	}
	return balances
}

// dateBefore orders dates ascending with zero (malformed) dates last.
func dateBefore(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return !a.IsZero() && b.IsZero()
	}
	return a.Before(b)
}
