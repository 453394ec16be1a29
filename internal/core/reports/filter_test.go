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

func sampleTxns() []domain.Transaction {
	groceries := txn("t1", day(1), domain.CashIn, 100)
	groceries.Category = "Groceries"
	groceries.Subcategory = "Vegetables"
	groceries.Remark = "weekly market run"
	groceries.MemberID = "m2"

	fuel := txn("t2", day(2), domain.CashOut, 40)
	fuel.Category = "Fuel"
	fuel.Remark = "Diesel top-up"
	fuel.MemberID = "m3"

	legacy := txn("t3", day(3), domain.CashOut, 1250)
	legacy.Category = "Rent"
	// No MemberID and no subcategory: legacy entry.

	return []domain.Transaction{groceries, fuel, legacy}
}

func TestFilterEntries_EmptyFilterIsIdentity(t *testing.T) {
	txns := sampleTxns()

	got := reports.FilterEntries(txns, reports.Filter{})

	require.Len(t, got, len(txns))
	assert.Equal(t, txns, got)
	assert.True(t, reports.Filter{}.IsZero())
	assert.True(t, reports.Filter{Type: reports.TypeAll, SearchTerm: ""}.IsZero())
}

func TestFilterEntries_TypePredicate(t *testing.T) {
	txns := sampleTxns()

	in := reports.FilterEntries(txns, reports.Filter{Type: reports.TypeIn})
	out := reports.FilterEntries(txns, reports.Filter{Type: reports.TypeOut})

	require.Len(t, in, 1)
	assert.Equal(t, "t1", in[0].TransactionID)
	require.Len(t, out, 2)
}

func TestFilterEntries_CategoryMembership(t *testing.T) {
	txns := sampleTxns()

	got := reports.FilterEntries(txns, reports.Filter{Categories: []string{"Fuel", "Rent"}})

	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[0].TransactionID)
	assert.Equal(t, "t3", got[1].TransactionID)
}

func TestFilterEntries_NoMatchYieldsEmptyNotError(t *testing.T) {
	got := reports.FilterEntries(sampleTxns(), reports.Filter{Categories: []string{"Food"}})
	assert.Empty(t, got)
}

func TestFilterEntries_SubcategoryRequiresPresence(t *testing.T) {
	txns := sampleTxns()

	got := reports.FilterEntries(txns, reports.Filter{Subcategories: []string{"Vegetables"}})

	// Entries without a subcategory never match a non-empty subcategory filter.
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].TransactionID)
}

func TestFilterEntries_MemberRequiresPresence(t *testing.T) {
	txns := sampleTxns()

	got := reports.FilterEntries(txns, reports.Filter{Members: []string{"m2", "m9"}})

	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].TransactionID)

	// The legacy entry (absent memberId) is excluded by any member filter.
	none := reports.FilterEntries(txns, reports.Filter{Members: []string{""}})
	assert.Empty(t, none)
}

func TestFilterEntries_DateRangeIsDayInclusive(t *testing.T) {
	txns := sampleTxns()
	// Bound set to midday; the whole calendar day must still match.
	from := time.Date(2024, time.January, 2, 12, 30, 0, 0, time.UTC)
	to := from

	got := reports.FilterEntries(txns, reports.Filter{DateFrom: &from, DateTo: &to})

	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].TransactionID)
}

func TestFilterEntries_OpenEndedDateBounds(t *testing.T) {
	txns := sampleTxns()
	from := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	got := reports.FilterEntries(txns, reports.Filter{DateFrom: &from})
	assert.Len(t, got, 2)

	to := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	got = reports.FilterEntries(txns, reports.Filter{DateTo: &to})
	assert.Len(t, got, 1)
}

func TestFilterEntries_SearchTermRemarkCaseInsensitive(t *testing.T) {
	txns := sampleTxns()

	got := reports.FilterEntries(txns, reports.Filter{SearchTerm: "dIeSeL"})

	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].TransactionID)
}

func TestFilterEntries_SearchTermMatchesAmountDigits(t *testing.T) {
	txns := sampleTxns()

	got := reports.FilterEntries(txns, reports.Filter{SearchTerm: "1250"})

	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].TransactionID)
}

func TestFilterEntries_PredicatesCombineWithAnd(t *testing.T) {
	txns := sampleTxns()

	got := reports.FilterEntries(txns, reports.Filter{
		Type:       reports.TypeOut,
		Categories: []string{"Fuel"},
		Members:    []string{"m3"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].TransactionID)

	// Flipping one predicate empties the result.
	got = reports.FilterEntries(txns, reports.Filter{
		Type:       reports.TypeIn,
		Categories: []string{"Fuel"},
	})
	assert.Empty(t, got)
}

func TestFilterEntries_PreservesInputOrder(t *testing.T) {
	txns := []domain.Transaction{
		txn("late", day(9), domain.CashIn, 1),
		txn("early", day(1), domain.CashIn, 1),
		txn("mid", day(5), domain.CashIn, 1),
	}

	got := reports.FilterEntries(txns, reports.Filter{Type: reports.TypeIn})

	require.Len(t, got, 3)
	assert.Equal(t, "late", got[0].TransactionID)
	assert.Equal(t, "early", got[1].TransactionID)
	assert.Equal(t, "mid", got[2].TransactionID)
}

func TestMemberResolver_FallbackRules(t *testing.T) {
	resolver := reports.NewMemberResolver([]domain.Member{
		{MemberID: "m1", Name: "GADHIYAJATIN"},
		{MemberID: "m2", Name: "Asha"},
	})

	assert.Equal(t, "Asha", resolver.DisplayName("m2"))
	assert.Equal(t, reports.LegacyOwnerName, resolver.DisplayName(""))
	assert.Equal(t, reports.LegacyOwnerName, resolver.DisplayName("missing"))
	// The pre-rename owner spelling normalizes to the canonical identity.
	assert.Equal(t, reports.LegacyOwnerName, resolver.DisplayName("m1"))
}

func TestFilterEntries_AmountSearchUsesDecimalString(t *testing.T) {
	exact := txn("d1", day(1), domain.CashIn, 0)
	exact.Amount = decimal.RequireFromString("99.50")

	got := reports.FilterEntries([]domain.Transaction{exact}, reports.Filter{SearchTerm: "99.5"})
	assert.Len(t, got, 1)
}
