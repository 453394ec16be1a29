// Package export renders generated reports into tabular form for CSV
// download and spreadsheet export.
package export

import (
	"strings"
	"time"
	"unicode"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/rupeebook/rupeebook_backend/internal/core/reports"
)

const exportDateFormat = "2006-01-02"

// Column headers are part of the download contract; existing spreadsheets
// and import tooling key on these exact strings.
var (
	allEntriesHeader   = []string{"Date", "Remark", "Category", "Subcategory", "Entry By", "Cash In", "Cash Out", "Balance"}
	dayWiseHeader      = []string{"Date", "Cash In", "Cash Out", "Balance"}
	categoryWiseHeader = []string{"Category", "Cash In", "Cash Out", "Balance"}
)

// Options controls the rendered layout. The zero value produces the bare
// header/data/totals table the CSV import round-trips.
type Options struct {
	// IncludeTitle prepends the report title and book name.
	IncludeTitle bool
	// IncludeFilters prepends one row per applied filter.
	IncludeFilters bool
	// Columns restricts all-entries output to the named header columns, in
	// header order. Unknown names are ignored; empty keeps every column.
	Columns []string
}

// Rows renders a report as a header row followed by data rows and a totals
// row.
func Rows(r *reports.Report) [][]string {
	return RowsWithOptions(r, Options{})
}

// RowsWithOptions renders a report honoring the given layout options.
func RowsWithOptions(r *reports.Report, opts Options) [][]string {
	rows := table(r)
	if len(opts.Columns) > 0 && r.ReportType != reports.DayWise && r.ReportType != reports.CategoryWise {
		rows = projectColumns(rows, opts.Columns)
	}

	var preamble [][]string
	if opts.IncludeTitle {
		preamble = append(preamble, []string{r.ReportTitle + " - " + r.GeneratedFor})
	}
	if opts.IncludeFilters {
		for _, f := range r.FiltersApplied {
			preamble = append(preamble, []string{f.FilterName, f.Value})
		}
	}
	if len(preamble) > 0 {
		preamble = append(preamble, []string{})
		rows = append(preamble, rows...)
	}
	return rows
}

// table builds the header/data/totals rows for the report's shape.
func table(r *reports.Report) [][]string {
	var rows [][]string
	switch r.ReportType {
	case reports.DayWise:
		rows = append(rows, dayWiseHeader)
		for _, d := range r.Days {
			rows = append(rows, []string{d.Date, d.CashIn.String(), d.CashOut.String(), d.Balance.String()})
		}
	case reports.CategoryWise:
		rows = append(rows, categoryWiseHeader)
		for _, c := range r.Categories {
			rows = append(rows, []string{c.Category, c.CashIn.String(), c.CashOut.String(), c.Balance.String()})
		}
	default:
		rows = append(rows, allEntriesHeader)
		for _, e := range r.Entries {
			cashIn, cashOut := "", ""
			if e.Type == domain.CashIn {
				cashIn = e.Amount.String()
			} else {
				cashOut = e.Amount.String()
			}
			rows = append(rows, []string{
				e.Date.Format(exportDateFormat),
				e.Remark,
				displayCategory(e.Category),
				e.Subcategory,
				e.MemberName,
				cashIn,
				cashOut,
				e.Balance.String(),
			})
		}
	}

	total := []string{"Total", r.Summary.TotalCashIn.String(), r.Summary.TotalCashOut.String(), r.Summary.NetBalance.String()}
	if r.ReportType != reports.DayWise && r.ReportType != reports.CategoryWise {
		// Pad so totals line up under the Cash In/Cash Out/Balance columns.
		total = []string{"Total", "", "", "", "", r.Summary.TotalCashIn.String(), r.Summary.TotalCashOut.String(), r.Summary.NetBalance.String()}
	}
	rows = append(rows, total)
	return rows
}

// projectColumns keeps only the selected all-entries columns, preserving
// header order. The Balance cell of the totals row follows its column.
func projectColumns(rows [][]string, selected []string) [][]string {
	keep := make([]int, 0, len(allEntriesHeader))
	for i, name := range allEntriesHeader {
		for _, s := range selected {
			if strings.EqualFold(s, name) {
				keep = append(keep, i)
				break
			}
		}
	}
	if len(keep) == 0 {
		return rows
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		projected := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(row) {
				projected = append(projected, row[i])
			}
		}
		out = append(out, projected)
	}
	return out
}

// displayCategory substitutes the uncategorized label for empty categories.
func displayCategory(category string) string {
	if category == "" {
		return reports.FallbackCategory
	}
	return category
}

// Filename builds a safe download filename for a report.
func Filename(bookName string, reportType reports.ReportType, now time.Time) string {
	base := sanitize(bookName)
	if base == "" {
		base = "report"
	}
	return base + "-" + string(reportType) + "-" + now.Format("20060102") + ".csv"
}

// sanitize keeps letters, digits, dashes and underscores; everything else
// collapses to a single dash.
func sanitize(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
