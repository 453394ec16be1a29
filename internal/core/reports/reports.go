// Package reports implements the ledger aggregation engine: running-balance
// computation, multi-dimensional transaction filtering, and report generation
// (all-entries, day-wise, category-wise). The package is pure and stateless;
// it reads transaction snapshots and produces derived views, never mutating
// its inputs. Both the interactive ledger listing and the export pipeline go
// through this package so the two surfaces cannot drift apart.
package reports

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReportType selects the shape of a generated report.
type ReportType string

const (
	AllEntries   ReportType = "all-entries"
	DayWise      ReportType = "day-wise"
	CategoryWise ReportType = "category-wise"
)

// FallbackCategory is the label used for entries without a category.
// Exported so every consumer (ledger view, reports, exports) agrees on it.
const FallbackCategory = "No Category"

// ParseReportType validates a raw report type string.
// Unknown values are a caller error and fail fast; the engine never silently
// defaults to a report shape.
func ParseReportType(s string) (ReportType, error) {
	switch ReportType(s) {
	case AllEntries, DayWise, CategoryWise:
		return ReportType(s), nil
	}
	return "", fmt.Errorf("%w: unknown report type %q", ErrUnknownReportType, s)
}

// Title returns the human-readable report title, e.g. "All Entries Report".
func (rt ReportType) Title() string {
	switch rt {
	case AllEntries:
		return "All Entries Report"
	case DayWise:
		return "Day Wise Report"
	case CategoryWise:
		return "Category Wise Report"
	}
	return "Report"
}

// Summary carries the totals common to all report shapes.
type Summary struct {
	TotalCashIn  decimal.Decimal `json:"totalCashIn"`
	TotalCashOut decimal.Decimal `json:"totalCashOut"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}
