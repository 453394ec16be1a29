package dto

import (
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/reports"
	"github.com/shopspring/decimal"
)

// GenerateReportRequest asks for a filtered report over a book's entries.
// Filters use the same dimensions as the interactive ledger.
type GenerateReportRequest struct {
	ReportType    string   `json:"reportType" binding:"required,reporttype"`
	Type          string   `json:"type,omitempty" binding:"omitempty,oneof=all in out"`
	Categories    []string `json:"categories,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
	Members       []string `json:"members,omitempty"`
	DateFrom      string   `json:"dateFrom,omitempty" binding:"omitempty,datetime=2006-01-02"`
	DateTo        string   `json:"dateTo,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Search        string   `json:"search,omitempty"`

	// Export layout settings, honored by the CSV and sheet export endpoints
	// and ignored by plain report generation.
	Export *ExportOptionsRequest `json:"export,omitempty"`
}

// ExportOptionsRequest selects the layout of an exported report.
type ExportOptionsRequest struct {
	ShowTitle   bool     `json:"showTitle,omitempty"`
	ShowFilters bool     `json:"showFilters,omitempty"`
	Columns     []string `json:"columns,omitempty"`
}

// ReportEntryResponse is one all-entries report row.
type ReportEntryResponse struct {
	TransactionID string          `json:"transactionId"`
	Date          string          `json:"date"`
	Remark        string          `json:"remark,omitempty"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	MemberName    string          `json:"memberName"`
	CashIn        decimal.Decimal `json:"cashIn"`
	CashOut       decimal.Decimal `json:"cashOut"`
	Balance       decimal.Decimal `json:"balance"`
}

// ReportDayResponse is one day-wise report row.
type ReportDayResponse struct {
	Date    string          `json:"date"`
	CashIn  decimal.Decimal `json:"cashIn"`
	CashOut decimal.Decimal `json:"cashOut"`
	Balance decimal.Decimal `json:"balance"`
}

// ReportCategoryResponse is one category-wise report row.
type ReportCategoryResponse struct {
	Category string          `json:"category"`
	CashIn   decimal.Decimal `json:"cashIn"`
	CashOut  decimal.Decimal `json:"cashOut"`
	Balance  decimal.Decimal `json:"balance"`
}

// ReportResponse is the wire representation of a generated report. Exactly one
// of Entries, Days or Categories is populated, matching ReportType.
type ReportResponse struct {
	ReportTitle    string                   `json:"reportTitle"`
	GeneratedFor   string                   `json:"generatedFor"`
	GeneratedBy    string                   `json:"generatedBy"`
	ReportType     string                   `json:"reportType"`
	FiltersApplied []AppliedFilterResponse  `json:"filtersApplied"`
	Entries        []ReportEntryResponse    `json:"entries,omitempty"`
	Days           []ReportDayResponse      `json:"days,omitempty"`
	Categories     []ReportCategoryResponse `json:"categories,omitempty"`
	TotalCashIn    decimal.Decimal          `json:"totalCashIn"`
	TotalCashOut   decimal.Decimal          `json:"totalCashOut"`
	NetBalance     decimal.Decimal          `json:"netBalance"`
	SkippedEntries int                      `json:"skippedEntries,omitempty"`
}

// AppliedFilterResponse is one human-readable filter label on a report.
type AppliedFilterResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ToReportResponse maps an engine report to the wire form. Entry dates are
// rendered as yyyy-MM-dd to match day-wise keys.
func ToReportResponse(r *reports.Report) ReportResponse {
	out := ReportResponse{
		ReportTitle:    r.ReportTitle,
		GeneratedFor:   r.GeneratedFor,
		GeneratedBy:    r.GeneratedBy,
		ReportType:     string(r.ReportType),
		FiltersApplied: make([]AppliedFilterResponse, 0, len(r.FiltersApplied)),
		TotalCashIn:    r.Summary.TotalCashIn,
		TotalCashOut:   r.Summary.TotalCashOut,
		NetBalance:     r.Summary.NetBalance,
		SkippedEntries: r.SkippedEntries,
	}
	for _, f := range r.FiltersApplied {
		out.FiltersApplied = append(out.FiltersApplied, AppliedFilterResponse{Label: f.FilterName, Value: f.Value})
	}
	for _, e := range r.Entries {
		out.Entries = append(out.Entries, ReportEntryResponse{
			TransactionID: e.TransactionID,
			Date:          e.Date.Format("2006-01-02"),
			Remark:        e.Remark,
			Category:      e.Category,
			Subcategory:   e.Subcategory,
			MemberName:    e.MemberName,
			CashIn:        cashIn(e),
			CashOut:       cashOut(e),
			Balance:       e.Balance,
		})
	}
	for _, d := range r.Days {
		out.Days = append(out.Days, ReportDayResponse{Date: d.Date, CashIn: d.CashIn, CashOut: d.CashOut, Balance: d.Balance})
	}
	for _, c := range r.Categories {
		out.Categories = append(out.Categories, ReportCategoryResponse{Category: c.Category, CashIn: c.CashIn, CashOut: c.CashOut, Balance: c.Balance})
	}
	return out
}

func cashIn(e reports.EntryRow) decimal.Decimal {
	if e.Type == "in" {
		return e.Amount
	}
	return decimal.Zero
}

func cashOut(e reports.EntryRow) decimal.Decimal {
	if e.Type == "out" {
		return e.Amount
	}
	return decimal.Zero
}

// ToFilter converts the request's filter dimensions to the engine's filter
// value, interpreting date bounds as whole days in the given location.
func (r GenerateReportRequest) ToFilter(loc *time.Location) (reports.Filter, error) {
	q := LedgerFilterQuery{
		Type:          r.Type,
		Categories:    r.Categories,
		Subcategories: r.Subcategories,
		Members:       r.Members,
		DateFrom:      r.DateFrom,
		DateTo:        r.DateTo,
		Search:        r.Search,
	}
	return q.ToFilter(loc)
}
