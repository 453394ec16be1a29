package reports

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrUnknownReportType is returned when a caller requests a report shape the
// engine does not know. This is a programmer error, never defaulted around.
var ErrUnknownReportType = errors.New("unknown report type")

const dayKeyFormat = "2006-01-02"
const filterDateFormat = "02 Jan 2006"

// Input is the complete value snapshot a report is generated from. The engine
// performs no I/O; callers fetch transactions and members up front.
type Input struct {
	Transactions []domain.Transaction
	Members      []domain.Member
	ReportType   ReportType
	Filter       Filter
	BookName     string
	GeneratedBy  string // Display name of the requesting member
	// OpeningBalance seeds the running-balance pass. Balances in a filtered
	// report reflect only the filtered subset's cumulative effect, not the
	// ledger's true historical balance at each entry.
	OpeningBalance decimal.Decimal
}

// AppliedFilter is a display label/value pair describing one active filter.
type AppliedFilter struct {
	FilterName string `json:"filterName"`
	Value      string `json:"value"`
}

// EntryRow is one all-entries report row: a transaction with its resolved
// author name and running balance.
type EntryRow struct {
	domain.Transaction
	MemberName string          `json:"memberName"`
	Balance    decimal.Decimal `json:"balance"`
}

// DayRow is one day-wise report row. Balance is the running balance through
// the end of that calendar day.
type DayRow struct {
	Date    string          `json:"date"` // yyyy-MM-dd key
	CashIn  decimal.Decimal `json:"cashIn"`
	CashOut decimal.Decimal `json:"cashOut"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryRow is one category-wise report row. Balance is cashIn minus
// cashOut for the category alone; category rows are independent, not
// chronological.
type CategoryRow struct {
	Category string          `json:"category"`
	CashIn   decimal.Decimal `json:"cashIn"`
	CashOut  decimal.Decimal `json:"cashOut"`
	Balance  decimal.Decimal `json:"balance"`
}

// Report is the derived, ephemeral result of a generation run. It is never
// persisted; identical inputs always recompute identical reports. Exactly one
// of Entries, Days, Categories is populated, matching ReportType.
type Report struct {
	ReportTitle    string          `json:"reportTitle"`
	GeneratedFor   string          `json:"generatedFor"`
	GeneratedBy    string          `json:"generatedBy"`
	ReportType     ReportType      `json:"reportType"`
	FiltersApplied []AppliedFilter `json:"filtersApplied"`
	Entries        []EntryRow      `json:"entries,omitempty"`
	Days           []DayRow        `json:"days,omitempty"`
	Categories     []CategoryRow   `json:"categories,omitempty"`
	Summary        Summary         `json:"summary"`
	// SkippedEntries counts transactions excluded for unusable dates, so a
	// single corrupt record never blocks reporting on a healthy ledger while
	// still being observable to the caller.
	SkippedEntries int `json:"skippedEntries"`
}

// Generate transforms a transaction snapshot plus a filter/report
// specification into a fully aggregated report. Zero transactions after
// filtering is a valid result with zero totals, not an error.
func Generate(in Input) (*Report, error) {
	if _, err := ParseReportType(string(in.ReportType)); err != nil {
		return nil, err
	}

	valid, skipped := splitUsable(in.Transactions)
	filtered := FilterEntries(valid, in.Filter)
	resolver := NewMemberResolver(in.Members)

	report := &Report{
		ReportTitle:    in.ReportType.Title(),
		GeneratedFor:   in.BookName,
		GeneratedBy:    in.GeneratedBy,
		ReportType:     in.ReportType,
		FiltersApplied: appliedFilters(in.Filter),
		SkippedEntries: skipped,
	}

	switch in.ReportType {
	case AllEntries:
		report.Entries, report.Summary = allEntriesRows(filtered, resolver, in.OpeningBalance)
	case DayWise:
		report.Days, report.Summary = dayWiseRows(filtered, in.OpeningBalance)
	case CategoryWise:
		report.Categories, report.Summary = categoryWiseRows(filtered)
	}
	return report, nil
}

// splitUsable separates transactions with a usable date from those without.
// A zero date marks an entry whose date could not be parsed upstream.
func splitUsable(txns []domain.Transaction) ([]domain.Transaction, int) {
	usable := make([]domain.Transaction, 0, len(txns))
	skipped := 0
	for _, t := range txns {
		if t.Date.IsZero() {
			skipped++
			continue
		}
		usable = append(usable, t)
	}
	return usable, skipped
}

// allEntriesRows builds one row per transaction, sorted descending by date
// for display. The balance attached to each row comes from an independent
// ascending pass; the two orderings are deliberately separate.
func allEntriesRows(txns []domain.Transaction, resolver MemberResolver, opening decimal.Decimal) ([]EntryRow, Summary) {
	balances := RunningBalances(txns, opening)

	ordered := make([]domain.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[j].Date.Before(ordered[i].Date)
	})

	rows := make([]EntryRow, len(ordered))
	for i, t := range ordered {
		rows[i] = EntryRow{
			Transaction: t,
			MemberName:  resolver.DisplayName(t.MemberID),
			Balance:     balances[t.TransactionID],
		}
	}
	return rows, summarize(txns)
}

// dayWiseRows groups by calendar day, sums per-day cash in/out, and runs a
// balance across days in ascending date order.
func dayWiseRows(txns []domain.Transaction, opening decimal.Decimal) ([]DayRow, Summary) {
	type daily struct{ cashIn, cashOut decimal.Decimal }
	perDay := make(map[string]*daily)
	for _, t := range txns {
		key := t.Date.Format(dayKeyFormat)
		d, ok := perDay[key]
		if !ok {
			d = &daily{cashIn: decimal.Zero, cashOut: decimal.Zero}
			perDay[key] = d
		}
		if t.Type == domain.CashIn {
			d.cashIn = d.cashIn.Add(t.Amount)
		} else {
			d.cashOut = d.cashOut.Add(t.Amount)
		}
	}

	keys := make([]string, 0, len(perDay))
	for k := range perDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]DayRow, len(keys))
	running := opening
	for i, key := range keys {
		d := perDay[key]
		running = running.Add(d.cashIn).Sub(d.cashOut)
		rows[i] = DayRow{Date: key, CashIn: d.cashIn, CashOut: d.cashOut, Balance: running}
	}
	return rows, summarize(txns)
}

// categoryWiseRows groups by category in first-appearance order. Rows are
// independent of each other; Balance is each category's own net.
func categoryWiseRows(txns []domain.Transaction) ([]CategoryRow, Summary) {
	index := make(map[string]int)
	rows := make([]CategoryRow, 0)
	for _, t := range txns {
		category := t.Category
		if category == "" {
			category = FallbackCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(rows)
			index[category] = i
			rows = append(rows, CategoryRow{Category: category, CashIn: decimal.Zero, CashOut: decimal.Zero})
		}
		if t.Type == domain.CashIn {
			rows[i].CashIn = rows[i].CashIn.Add(t.Amount)
		} else {
			rows[i].CashOut = rows[i].CashOut.Add(t.Amount)
		}
	}
	for i := range rows {
		rows[i].Balance = rows[i].CashIn.Sub(rows[i].CashOut)
	}
	return rows, summarize(txns)
}

// summarize computes the totals over the filtered set. Identical shape for
// every report type: totalCashIn - totalCashOut == netBalance always holds.
func summarize(txns []domain.Transaction) Summary {
	totalIn := decimal.Zero
	totalOut := decimal.Zero
	for _, t := range txns {
		if t.Type == domain.CashIn {
			totalIn = totalIn.Add(t.Amount)
		} else {
			totalOut = totalOut.Add(t.Amount)
		}
	}
	return Summary{
		TotalCashIn:  totalIn,
		TotalCashOut: totalOut,
		NetBalance:   totalIn.Sub(totalOut),
	}
}

// appliedFilters renders the active filters as display label/value pairs.
// Both date bounds present collapse into a single "Date Range" entry placed
// first; a lone lower bound renders as "Date".
func appliedFilters(f Filter) []AppliedFilter {
	applied := make([]AppliedFilter, 0, 6)

	if f.DateFrom != nil && f.DateTo != nil {
		applied = append(applied, AppliedFilter{
			FilterName: "Date Range",
			Value:      fmt.Sprintf("%s to %s", f.DateFrom.Format(filterDateFormat), f.DateTo.Format(filterDateFormat)),
		})
	} else if f.DateFrom != nil {
		applied = append(applied, AppliedFilter{FilterName: "Date", Value: f.DateFrom.Format(filterDateFormat)})
	} else if f.DateTo != nil {
		applied = append(applied, AppliedFilter{FilterName: "End Date", Value: f.DateTo.Format(filterDateFormat)})
	}

	if f.Type != "" && f.Type != TypeAll {
		applied = append(applied, AppliedFilter{FilterName: "Entry Type", Value: string(f.Type)})
	}
	if len(f.Categories) > 0 {
		applied = append(applied, AppliedFilter{FilterName: "Categories", Value: strings.Join(f.Categories, ", ")})
	}
	if len(f.Subcategories) > 0 {
		applied = append(applied, AppliedFilter{FilterName: "Subcategories", Value: strings.Join(f.Subcategories, ", ")})
	}
	if len(f.Members) > 0 {
		applied = append(applied, AppliedFilter{FilterName: "Members", Value: strings.Join(f.Members, ", ")})
	}
	if f.SearchTerm != "" {
		applied = append(applied, AppliedFilter{FilterName: "Search Term", Value: f.SearchTerm})
	}
	return applied
}
