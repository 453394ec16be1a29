package reports_test

import (
	"testing"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/rupeebook/rupeebook_backend/internal/core/reports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(id string, date time.Time, entryType domain.EntryType, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Date:          date,
		Type:          entryType,
		Amount:        decimal.NewFromInt(amount),
	}
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 10, 0, 0, 0, time.UTC)
}

func TestRunningBalances_ChronologicalWalk(t *testing.T) {
	// Input deliberately out of date order; the pass must sort ascending.
	txns := []domain.Transaction{
		txn("t3", day(3), domain.CashOut, 30),
		txn("t1", day(1), domain.CashIn, 100),
		txn("t2", day(2), domain.CashOut, 40),
	}

	balances := reports.RunningBalances(txns, decimal.Zero)

	require.Len(t, balances, 3)
	assert.True(t, balances["t1"].Equal(decimal.NewFromInt(100)))
	assert.True(t, balances["t2"].Equal(decimal.NewFromInt(60)))
	assert.True(t, balances["t3"].Equal(decimal.NewFromInt(30)))
}

func TestRunningBalances_OpeningBalanceSeedsFirstEntry(t *testing.T) {
	txns := []domain.Transaction{txn("t1", day(1), domain.CashOut, 25)}

	balances := reports.RunningBalances(txns, decimal.NewFromInt(100))

	assert.True(t, balances["t1"].Equal(decimal.NewFromInt(75)))
}

func TestRunningBalances_StepInvariant(t *testing.T) {
	// Balance after entry n equals balance after n-1 plus/minus amount per type.
	txns := []domain.Transaction{
		txn("a", day(1), domain.CashIn, 10),
		txn("b", day(2), domain.CashIn, 20),
		txn("c", day(3), domain.CashOut, 5),
		txn("d", day(4), domain.CashIn, 7),
	}
	opening := decimal.NewFromInt(3)

	balances := reports.RunningBalances(txns, opening)

	prev := opening
	for _, tr := range txns {
		want := prev.Add(tr.Amount)
		if tr.Type == domain.CashOut {
			want = prev.Sub(tr.Amount)
		}
		assert.True(t, balances[tr.TransactionID].Equal(want), "balance after %s", tr.TransactionID)
		prev = balances[tr.TransactionID]
	}
}

func TestRunningBalances_IdenticalDatesAreStableAndDeterministic(t *testing.T) {
	same := day(5)
	txns := []domain.Transaction{
		txn("first", same, domain.CashIn, 100),
		txn("second", same, domain.CashOut, 60),
		txn("third", same, domain.CashIn, 10),
	}

	// Repeated calls on the same input must agree exactly; ties keep
	// insertion order, so the intermediate balances are fixed.
	for i := 0; i < 5; i++ {
		balances := reports.RunningBalances(txns, decimal.Zero)
		assert.True(t, balances["first"].Equal(decimal.NewFromInt(100)))
		assert.True(t, balances["second"].Equal(decimal.NewFromInt(40)))
		assert.True(t, balances["third"].Equal(decimal.NewFromInt(50)))
	}
}

func TestRunningBalances_ZeroDateSortsLastWithoutAborting(t *testing.T) {
	txns := []domain.Transaction{
		txn("bad", time.Time{}, domain.CashOut, 5),
		txn("good", day(1), domain.CashIn, 50),
	}

	balances := reports.RunningBalances(txns, decimal.Zero)

	require.Len(t, balances, 2)
	assert.True(t, balances["good"].Equal(decimal.NewFromInt(50)))
	assert.True(t, balances["bad"].Equal(decimal.NewFromInt(45)))
}

func TestRunningBalances_EmptyInput(t *testing.T) {
	balances := reports.RunningBalances(nil, decimal.NewFromInt(42))
	assert.Empty(t, balances)
}
