package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/core/reports"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
	"github.com/rupeebook/rupeebook_backend/internal/export"
)

// ReportSheetWriter pushes rendered report rows to an external spreadsheet
// and returns its URL. Nil when sheet export is disabled.
type ReportSheetWriter interface {
	WriteReport(ctx context.Context, title string, rows [][]string) (string, error)
}

// reportService generates filtered reports through the aggregation engine and
// renders them for download or spreadsheet export.
type reportService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	bookRepo        portsrepo.BookRepositoryFacade
	memberRepo      portsrepo.MemberRepositoryFacade
	sheetWriter     ReportSheetWriter
	loc             *time.Location
}

// ReportServiceOption configures the report service.
type ReportServiceOption func(*reportService)

// WithReportBookAuthorizer wires the book authorizer.
func WithReportBookAuthorizer(authorizer portssvc.BookAuthorizerSvc) ReportServiceOption {
	return func(s *reportService) {
		s.BookAuthorizer = authorizer
	}
}

// WithSheetWriter enables Google Sheets export.
func WithSheetWriter(w ReportSheetWriter) ReportServiceOption {
	return func(s *reportService) {
		s.sheetWriter = w
	}
}

// NewReportService creates a new report service. Date-only filter bounds are
// interpreted in loc.
func NewReportService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	bookRepo portsrepo.BookRepositoryFacade,
	memberRepo portsrepo.MemberRepositoryFacade,
	loc *time.Location,
	opts ...ReportServiceOption,
) portssvc.ReportSvcFacade {
	svc := &reportService{
		transactionRepo: transactionRepo,
		bookRepo:        bookRepo,
		memberRepo:      memberRepo,
		loc:             loc,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// GenerateReport runs the aggregation engine over the book's entries.
func (s *reportService) GenerateReport(ctx context.Context, memberID, bookID string, req dto.GenerateReportRequest) (*dto.ReportResponse, error) {
	report, err := s.generate(ctx, memberID, bookID, req)
	if err != nil {
		return nil, err
	}
	resp := dto.ToReportResponse(report)
	return &resp, nil
}

// ExportCSV renders the report as CSV bytes with a download filename.
func (s *reportService) ExportCSV(ctx context.Context, memberID, bookID string, req dto.GenerateReportRequest) ([]byte, string, error) {
	report, err := s.generate(ctx, memberID, bookID, req)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, export.RowsWithOptions(report, exportOptions(req))); err != nil {
		return nil, "", fmt.Errorf("failed to render csv: %w", err)
	}
	filename := export.Filename(report.GeneratedFor, report.ReportType, time.Now().In(s.loc))
	return buf.Bytes(), filename, nil
}

// ExportToSheet writes the report to a new spreadsheet and returns its URL.
func (s *reportService) ExportToSheet(ctx context.Context, memberID, bookID string, req dto.GenerateReportRequest) (string, error) {
	if s.sheetWriter == nil {
		return "", fmt.Errorf("%w: sheet export is not configured", apperrors.ErrValidation)
	}
	report, err := s.generate(ctx, memberID, bookID, req)
	if err != nil {
		return "", err
	}
	url, err := s.sheetWriter.WriteReport(ctx, report.ReportTitle+" - "+report.GeneratedFor, export.RowsWithOptions(report, exportOptions(req)))
	if err != nil {
		s.LogError(ctx, err, "failed to export report to sheet", slog.String("book_id", bookID))
		return "", err
	}
	s.LogInfo(ctx, "report exported to sheet", slog.String("book_id", bookID), slog.String("url", url))
	return url, nil
}

// exportOptions maps the request's export settings to the formatter's options.
func exportOptions(req dto.GenerateReportRequest) export.Options {
	if req.Export == nil {
		return export.Options{}
	}
	return export.Options{
		IncludeTitle:   req.Export.ShowTitle,
		IncludeFilters: req.Export.ShowFilters,
		Columns:        req.Export.Columns,
	}
}

// generate performs access checks, gathers the snapshot and runs the engine.
// Data operators with reports hidden are rejected outright; operators with
// entry visibility restricted see only their own entries reflected.
func (s *reportService) generate(ctx context.Context, memberID, bookID string, req dto.GenerateReportRequest) (*reports.Report, error) {
	role, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}

	caller, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	filter, err := req.ToFilter(s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if role == domain.RoleDataOperator {
		settings := domain.DefaultDataOperatorSettings()
		if caller.DataOperatorSettings != nil {
			settings = *caller.DataOperatorSettings
		}
		if settings.HideNetBalanceAndReports {
			return nil, apperrors.ErrForbidden
		}
		if settings.HideEntriesByOtherMembers {
			filter.Members = []string{memberID}
		}
	}

	reportType, err := reports.ParseReportType(req.ReportType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	txns, err := s.transactionRepo.ListTransactionsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	members, err := s.membersForTransactions(ctx, txns)
	if err != nil {
		return nil, err
	}

	return reports.Generate(reports.Input{
		Transactions:   txns,
		Members:        members,
		ReportType:     reportType,
		Filter:         filter,
		BookName:       book.Name,
		GeneratedBy:    caller.Name,
		OpeningBalance: book.BalanceBefore,
	})
}

func (s *reportService) membersForTransactions(ctx context.Context, txns []domain.Transaction) ([]domain.Member, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, t := range txns {
		if t.MemberID == "" || seen[t.MemberID] {
			continue
		}
		seen[t.MemberID] = true
		ids = append(ids, t.MemberID)
	}
	byID, err := s.memberRepo.FindMembersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(byID))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			members = append(members, m)
		}
	}
	return members, nil
}
