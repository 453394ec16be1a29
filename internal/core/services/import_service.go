package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
	"github.com/rupeebook/rupeebook_backend/internal/importer"
	"github.com/shopspring/decimal"
)

// importService bulk-loads cash entries from uploaded CSV files.
type importService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	bookRepo        portsrepo.BookRepositoryFacade
	activitySvc     portssvc.ActivitySvcFacade
	loc             *time.Location
}

// ImportServiceOption configures the import service.
type ImportServiceOption func(*importService)

// WithImportBookAuthorizer wires the book authorizer.
func WithImportBookAuthorizer(authorizer portssvc.BookAuthorizerSvc) ImportServiceOption {
	return func(s *importService) {
		s.BookAuthorizer = authorizer
	}
}

// NewImportService creates a new import service. Dates without timezone
// information are interpreted in loc.
func NewImportService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	bookRepo portsrepo.BookRepositoryFacade,
	activitySvc portssvc.ActivitySvcFacade,
	loc *time.Location,
	opts ...ImportServiceOption,
) portssvc.ImportSvcFacade {
	svc := &importService{
		transactionRepo: transactionRepo,
		bookRepo:        bookRepo,
		activitySvc:     activitySvc,
		loc:             loc,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// ImportCSV parses the upload, batch-inserts the valid rows and adjusts the
// book balance once for the whole batch. Requires admin on the book.
func (s *importService) ImportCSV(ctx context.Context, memberID, bookID string, r io.Reader) (*dto.ImportResultResponse, error) {
	if _, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	parsed, rowErrs, err := importer.ParseCSV(r, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now()
	net := decimal.Zero
	txns := make([]domain.Transaction, 0, len(parsed))
	for _, txn := range parsed {
		txn.TransactionID = uuid.NewString()
		txn.BookID = bookID
		txn.MemberID = memberID
		txn.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     memberID,
			LastUpdatedAt: now,
			LastUpdatedBy: memberID,
		}
		txns = append(txns, txn)
		net = net.Add(signedAmount(txn))
	}

	if len(txns) > 0 {
		if err := s.transactionRepo.SaveTransactions(ctx, txns); err != nil {
			s.LogError(ctx, err, "failed to import transactions", slog.String("book_id", bookID))
			return nil, err
		}
		if err := s.bookRepo.AdjustBalance(ctx, bookID, net); err != nil {
			s.LogError(ctx, err, "failed to adjust book balance after import", slog.String("book_id", bookID))
			return nil, err
		}
	}

	if s.activitySvc != nil {
		if err := s.activitySvc.RecordActivity(ctx, bookID, memberID, domain.ActivityImport, map[string]string{
			"imported": fmt.Sprintf("%d", len(txns)),
			"skipped":  fmt.Sprintf("%d", len(rowErrs)),
		}); err != nil {
			s.LogError(ctx, err, "failed to record import activity", slog.String("book_id", bookID))
		}
	}

	resp := &dto.ImportResultResponse{Imported: len(txns), Skipped: len(rowErrs)}
	for _, re := range rowErrs {
		resp.Errors = append(resp.Errors, dto.ImportRowError{Row: re.Row, Reason: re.Reason})
	}
	s.LogInfo(ctx, "csv import completed",
		slog.String("book_id", bookID),
		slog.Int("imported", resp.Imported),
		slog.Int("skipped", resp.Skipped))
	return resp, nil
}
