package services

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// ReportSvcFacade generates filtered reports over a book's entries and
// exports them.
type ReportSvcFacade interface {
	GenerateReport(ctx context.Context, memberID, bookID string, req dto.GenerateReportRequest) (*dto.ReportResponse, error)
	// ExportCSV renders the report as CSV and returns the bytes together
	// with a sanitized download filename.
	ExportCSV(ctx context.Context, memberID, bookID string, req dto.GenerateReportRequest) ([]byte, string, error)
	// ExportToSheet writes the report to a new Google Sheets spreadsheet
	// and returns its URL.
	ExportToSheet(ctx context.Context, memberID, bookID string, req dto.GenerateReportRequest) (string, error)
}
