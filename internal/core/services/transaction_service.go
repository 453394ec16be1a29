package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/core/reports"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionService manages cash entries, keeps the denormalized book
// balance in step and serves the interactive ledger view through the
// aggregation engine.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	bookRepo        portsrepo.BookRepositoryFacade
	memberRepo      portsrepo.MemberRepositoryFacade
	activitySvc     portssvc.ActivitySvcFacade
	loc             *time.Location
}

// TransactionServiceOption configures the transaction service.
type TransactionServiceOption func(*transactionService)

// WithTransactionBookAuthorizer wires the book authorizer.
func WithTransactionBookAuthorizer(authorizer portssvc.BookAuthorizerSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.BookAuthorizer = authorizer
	}
}

// NewTransactionService creates a new transaction service. Date-only policy
// checks are evaluated in loc.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	bookRepo portsrepo.BookRepositoryFacade,
	memberRepo portsrepo.MemberRepositoryFacade,
	activitySvc portssvc.ActivitySvcFacade,
	loc *time.Location,
	opts ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		transactionRepo: transactionRepo,
		bookRepo:        bookRepo,
		memberRepo:      memberRepo,
		activitySvc:     activitySvc,
		loc:             loc,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a cash entry and adjusts the book balance.
// Viewers cannot write; data operators are subject to their backdating
// policy.
func (s *transactionService) CreateTransaction(ctx context.Context, memberID, bookID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	role, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleViewer {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if role == domain.RoleDataOperator {
		settings, err := s.operatorSettings(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if err := s.checkBackdatePolicy(req.Date, settings.AllowBackdatedEntries); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	txn := req.ToTransaction(bookID, memberID)
	txn.TransactionID = uuid.NewString()
	txn.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     memberID,
		LastUpdatedAt: now,
		LastUpdatedBy: memberID,
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to save transaction", slog.String("book_id", bookID))
		return nil, err
	}
	if err := s.bookRepo.AdjustBalance(ctx, bookID, signedAmount(txn)); err != nil {
		s.LogError(ctx, err, "failed to adjust book balance", slog.String("book_id", bookID))
		return nil, err
	}
	s.recordActivity(ctx, bookID, memberID, domain.ActivityCreate, map[string]string{
		"transactionId": txn.TransactionID,
		"type":          string(txn.Type),
		"amount":        txn.Amount.String(),
	})

	return s.toResponse(ctx, bookID, txn)
}

// UpdateTransaction edits an existing entry, re-checking write policy and
// applying the balance delta.
func (s *transactionService) UpdateTransaction(ctx context.Context, memberID, bookID, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	role, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.BookID != bookID {
		return nil, apperrors.ErrNotFound
	}
	if err := s.checkWriteAccess(ctx, role, memberID, *txn); err != nil {
		return nil, err
	}

	oldEffect := signedAmount(*txn)
	if req.Date != nil {
		if role == domain.RoleDataOperator {
			settings, err := s.operatorSettings(ctx, memberID)
			if err != nil {
				return nil, err
			}
			if err := s.checkBackdatePolicy(*req.Date, settings.AllowBackdatedEntries); err != nil {
				return nil, err
			}
		}
		txn.Date = *req.Date
	}
	if req.Type != nil {
		txn.Type = domain.EntryType(*req.Type)
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Subcategory != nil {
		txn.Subcategory = *req.Subcategory
	}
	if req.Remark != nil {
		txn.Remark = *req.Remark
	}
	if req.AttachmentURL != nil {
		txn.AttachmentURL = *req.AttachmentURL
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = memberID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	delta := signedAmount(*txn).Sub(oldEffect)
	if !delta.IsZero() {
		if err := s.bookRepo.AdjustBalance(ctx, bookID, delta); err != nil {
			s.LogError(ctx, err, "failed to adjust book balance", slog.String("book_id", bookID))
			return nil, err
		}
	}
	s.recordActivity(ctx, bookID, memberID, domain.ActivityUpdate, map[string]string{
		"transactionId": txn.TransactionID,
	})

	return s.toResponse(ctx, bookID, *txn)
}

// DeleteTransactions removes a set of entries and reverses their balance
// effect.
func (s *transactionService) DeleteTransactions(ctx context.Context, memberID, bookID string, req dto.DeleteTransactionsRequest) (*dto.DeleteTransactionsResponse, error) {
	role, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	txns, err := s.transactionRepo.FindTransactionsByIDs(ctx, bookID, req.TransactionIDs)
	if err != nil {
		return nil, err
	}
	if len(txns) != len(req.TransactionIDs) {
		return nil, fmt.Errorf("%w: one or more transactions not found in book", apperrors.ErrNotFound)
	}
	net := decimal.Zero
	for _, txn := range txns {
		if err := s.checkWriteAccess(ctx, role, memberID, txn); err != nil {
			return nil, err
		}
		net = net.Add(signedAmount(txn))
	}

	deleted, err := s.transactionRepo.DeleteTransactions(ctx, bookID, req.TransactionIDs)
	if err != nil {
		s.LogError(ctx, err, "failed to delete transactions", slog.String("book_id", bookID))
		return nil, err
	}
	if err := s.bookRepo.AdjustBalance(ctx, bookID, net.Neg()); err != nil {
		s.LogError(ctx, err, "failed to adjust book balance", slog.String("book_id", bookID))
		return nil, err
	}
	s.recordActivity(ctx, bookID, memberID, domain.ActivityDelete, map[string]string{
		"count": fmt.Sprintf("%d", deleted),
	})
	return &dto.DeleteTransactionsResponse{Deleted: deleted}, nil
}

// DeleteAllTransactions wipes every entry in a book. Owner only.
func (s *transactionService) DeleteAllTransactions(ctx context.Context, memberID, bookID string) (*dto.DeleteTransactionsResponse, error) {
	if _, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleOwner); err != nil {
		return nil, err
	}
	deleted, err := s.transactionRepo.DeleteAllTransactions(ctx, bookID)
	if err != nil {
		s.LogError(ctx, err, "failed to delete all transactions", slog.String("book_id", bookID))
		return nil, err
	}
	if err := s.bookRepo.SetBalance(ctx, bookID, decimal.Zero); err != nil {
		s.LogError(ctx, err, "failed to reset book balance", slog.String("book_id", bookID))
		return nil, err
	}
	s.recordActivity(ctx, bookID, memberID, domain.ActivityDeleteAll, map[string]string{
		"count": fmt.Sprintf("%d", deleted),
	})
	return &dto.DeleteTransactionsResponse{Deleted: deleted}, nil
}

// CopyTransactions duplicates entries into another book the caller can
// administer. The originals are untouched.
func (s *transactionService) CopyTransactions(ctx context.Context, memberID, bookID string, req dto.TransferTransactionsRequest) error {
	txns, err := s.authorizeTransfer(ctx, memberID, bookID, req)
	if err != nil {
		return err
	}

	now := time.Now()
	net := decimal.Zero
	copies := make([]domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		dup := txn
		dup.TransactionID = uuid.NewString()
		dup.BookID = req.TargetBookID
		dup.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     memberID,
			LastUpdatedAt: now,
			LastUpdatedBy: memberID,
		}
		copies = append(copies, dup)
		net = net.Add(signedAmount(dup))
	}

	if err := s.transactionRepo.CopyTransactions(ctx, bookID, req.TargetBookID, req.TransactionIDs, copies); err != nil {
		s.LogError(ctx, err, "failed to copy transactions", slog.String("book_id", bookID), slog.String("target_book_id", req.TargetBookID))
		return err
	}
	if err := s.bookRepo.AdjustBalance(ctx, req.TargetBookID, net); err != nil {
		s.LogError(ctx, err, "failed to adjust target book balance", slog.String("book_id", req.TargetBookID))
		return err
	}
	s.recordActivity(ctx, bookID, memberID, domain.ActivityCopy, map[string]string{
		"count":        fmt.Sprintf("%d", len(copies)),
		"targetBookId": req.TargetBookID,
	})
	return nil
}

// MoveTransactions relocates entries to another book, adjusting both
// balances.
func (s *transactionService) MoveTransactions(ctx context.Context, memberID, bookID string, req dto.TransferTransactionsRequest) error {
	txns, err := s.authorizeTransfer(ctx, memberID, bookID, req)
	if err != nil {
		return err
	}
	net := decimal.Zero
	for _, txn := range txns {
		net = net.Add(signedAmount(txn))
	}

	if err := s.transactionRepo.MoveTransactions(ctx, bookID, req.TargetBookID, req.TransactionIDs); err != nil {
		s.LogError(ctx, err, "failed to move transactions", slog.String("book_id", bookID), slog.String("target_book_id", req.TargetBookID))
		return err
	}
	if err := s.bookRepo.AdjustBalance(ctx, bookID, net.Neg()); err != nil {
		s.LogError(ctx, err, "failed to adjust source book balance", slog.String("book_id", bookID))
		return err
	}
	if err := s.bookRepo.AdjustBalance(ctx, req.TargetBookID, net); err != nil {
		s.LogError(ctx, err, "failed to adjust target book balance", slog.String("book_id", req.TargetBookID))
		return err
	}
	s.recordActivity(ctx, bookID, memberID, domain.ActivityMove, map[string]string{
		"count":        fmt.Sprintf("%d", len(txns)),
		"targetBookId": req.TargetBookID,
	})
	return nil
}

// ListLedger returns the filtered entries of a book newest first with running
// balances, honoring data-operator visibility restrictions.
func (s *transactionService) ListLedger(ctx context.Context, memberID, bookID string, query dto.LedgerFilterQuery) (*dto.LedgerResponse, error) {
	role, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	filter, err := query.ToFilter(s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var settings *domain.DataOperatorSettings
	if role == domain.RoleDataOperator {
		settings, err = s.operatorSettings(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if settings.HideEntriesByOtherMembers {
			filter.Members = []string{memberID}
		}
	}

	txns, err := s.transactionRepo.ListTransactionsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	members, err := s.membersForTransactions(ctx, txns)
	if err != nil {
		return nil, err
	}

	report, err := reports.Generate(reports.Input{
		Transactions:   txns,
		Members:        members,
		ReportType:     reports.AllEntries,
		Filter:         filter,
		BookName:       book.Name,
		OpeningBalance: book.BalanceBefore,
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ToLedgerResponse(report.Entries, report.Summary)
	if settings != nil && settings.HideNetBalanceAndReports {
		resp.TotalCashIn = decimal.Zero
		resp.TotalCashOut = decimal.Zero
		resp.NetBalance = decimal.Zero
		for i := range resp.Entries {
			resp.Entries[i].Balance = decimal.Zero
		}
	}
	return &resp, nil
}

// authorizeTransfer validates a copy/move request: admin on both books, all
// entries present in the source.
func (s *transactionService) authorizeTransfer(ctx context.Context, memberID, bookID string, req dto.TransferTransactionsRequest) ([]domain.Transaction, error) {
	if bookID == req.TargetBookID {
		return nil, fmt.Errorf("%w: target book is the source book", apperrors.ErrValidation)
	}
	if _, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, req.TargetBookID, memberID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	txns, err := s.transactionRepo.FindTransactionsByIDs(ctx, bookID, req.TransactionIDs)
	if err != nil {
		return nil, err
	}
	if len(txns) != len(req.TransactionIDs) {
		return nil, fmt.Errorf("%w: one or more transactions not found in book", apperrors.ErrNotFound)
	}
	return txns, nil
}

// checkWriteAccess enforces per-role edit rules on an existing entry.
func (s *transactionService) checkWriteAccess(ctx context.Context, role domain.Role, memberID string, txn domain.Transaction) error {
	switch role {
	case domain.RoleOwner, domain.RoleAdmin:
		return nil
	case domain.RoleDataOperator:
		if txn.MemberID != memberID {
			return apperrors.ErrForbidden
		}
		settings, err := s.operatorSettings(ctx, memberID)
		if err != nil {
			return err
		}
		if !settings.AllowEntryEditing {
			return apperrors.ErrForbidden
		}
		return nil
	default:
		return apperrors.ErrForbidden
	}
}

// checkBackdatePolicy rejects entry dates outside the operator's allowed
// window. Policy windows are calendar days in the service's location.
func (s *transactionService) checkBackdatePolicy(date time.Time, policy domain.BackdatePolicy) error {
	if date.IsZero() {
		return fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	now := time.Now().In(s.loc)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, s.loc)

	switch policy {
	case domain.BackdateNever:
		if date.In(s.loc).Before(today) {
			return fmt.Errorf("%w: backdated entries are not allowed", apperrors.ErrValidation)
		}
	case domain.BackdateOneDayBefore:
		if date.In(s.loc).Before(today.AddDate(0, 0, -1)) {
			return fmt.Errorf("%w: entries may be dated at most one day back", apperrors.ErrValidation)
		}
	}
	return nil
}

// operatorSettings loads the caller's data-operator settings, defaulting when
// unset.
func (s *transactionService) operatorSettings(ctx context.Context, memberID string) (*domain.DataOperatorSettings, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.DataOperatorSettings == nil {
		defaults := domain.DefaultDataOperatorSettings()
		return &defaults, nil
	}
	return member.DataOperatorSettings, nil
}

// membersForTransactions loads the distinct authors of a transaction set for
// name resolution.
func (s *transactionService) membersForTransactions(ctx context.Context, txns []domain.Transaction) ([]domain.Member, error) {
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

// toResponse builds the single-entry response. Balance carries the book's
// balance after the mutation.
func (s *transactionService) toResponse(ctx context.Context, bookID string, txn domain.Transaction) (*dto.TransactionResponse, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	name := ""
	if txn.MemberID != "" {
		if member, err := s.memberRepo.FindMemberByID(ctx, txn.MemberID); err == nil {
			name = member.Name
		}
	}
	row := reports.EntryRow{Transaction: txn, MemberName: name, Balance: book.Balance}
	resp := dto.ToTransactionResponse(row)
	return &resp, nil
}

// recordActivity logs the mutation; activity failures never abort the
// originating operation.
func (s *transactionService) recordActivity(ctx context.Context, bookID, memberID string, activityType domain.ActivityType, details map[string]string) {
	if s.activitySvc == nil {
		return
	}
	if err := s.activitySvc.RecordActivity(ctx, bookID, memberID, activityType, details); err != nil {
		s.LogError(ctx, err, "failed to record activity", slog.String("book_id", bookID), slog.String("type", string(activityType)))
	}
}

// signedAmount maps an entry to its effect on the book balance.
func signedAmount(t domain.Transaction) decimal.Decimal {
	if t.Type == domain.CashOut {
		return t.Amount.Neg()
	}
	return t.Amount
}
