package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// bookService manages books, their category vocabularies and memberships.
// It also acts as the authorizer other services consult for book access.
type bookService struct {
	BaseService
	bookRepo     portsrepo.BookRepositoryFacade
	businessRepo portsrepo.BusinessRepositoryFacade
	memberRepo   portsrepo.MemberRepositoryFacade
}

// NewBookService creates a new book service.
func NewBookService(bookRepo portsrepo.BookRepositoryFacade, businessRepo portsrepo.BusinessRepositoryFacade, memberRepo portsrepo.MemberRepositoryFacade) portssvc.BookSvcFacade {
	return &bookService{bookRepo: bookRepo, businessRepo: businessRepo, memberRepo: memberRepo}
}

var _ portssvc.BookSvcFacade = (*bookService)(nil)
var _ portssvc.BookAuthorizerSvc = (*bookService)(nil)

// AuthorizeBookAction returns the member's role on the book when it satisfies
// the required role. The book owner always holds RoleOwner regardless of
// membership rows.
func (s *bookService) AuthorizeBookAction(ctx context.Context, bookID, memberID string, required domain.Role) (domain.Role, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if book.OwnerID == memberID {
		return domain.RoleOwner, nil
	}
	bm, err := s.bookRepo.FindBookMember(ctx, bookID, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrForbidden
		}
		return "", err
	}
	if !bm.Role.Satisfies(required) {
		return "", apperrors.ErrForbidden
	}
	return bm.Role, nil
}

// CreateBook creates a cash book inside a business the caller owns. The
// creator is recorded as the book owner and added as an owner member.
func (s *bookService) CreateBook(ctx context.Context, memberID, businessID string, req dto.CreateBookRequest) (*dto.BookResponse, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerID != memberID {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	book := domain.Book{
		BookID:        uuid.NewString(),
		Name:          req.Name,
		BusinessID:    businessID,
		OwnerID:       memberID,
		Categories:    req.Categories,
		Subcategories: req.Subcategories,
		Balance:       decimal.Zero,
		BalanceBefore: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     memberID,
			LastUpdatedAt: now,
			LastUpdatedBy: memberID,
		},
	}
	members := []domain.BookMember{{
		BookID:     book.BookID,
		MemberID:   memberID,
		Role:       domain.RoleOwner,
		LastViewed: now,
	}}

	if err := s.bookRepo.SaveBook(ctx, book, members); err != nil {
		s.LogError(ctx, err, "failed to save book", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "book created", slog.String("book_id", book.BookID), slog.String("business_id", businessID))
	resp := dto.ToBookResponse(book)
	return &resp, nil
}

// GetBook returns a book visible to the caller and records the visit time.
func (s *bookService) GetBook(ctx context.Context, memberID, bookID string) (*dto.BookResponse, error) {
	if _, err := s.AuthorizeBookAction(ctx, bookID, memberID, domain.RoleViewer); err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.TouchLastViewed(ctx, bookID, memberID, time.Now()); err != nil {
		s.LogDebug(ctx, "failed to record book visit", slog.String("book_id", bookID), slog.String("error", err.Error()))
	}
	resp := dto.ToBookResponse(*book)
	return &resp, nil
}

// ListBooks returns the books visible to the caller, optionally restricted to
// one business.
func (s *bookService) ListBooks(ctx context.Context, memberID, businessID string) (*dto.ListBooksResponse, error) {
	books, err := s.bookRepo.ListBooksByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if businessID != "" {
		filtered := books[:0]
		for _, b := range books {
			if b.BusinessID == businessID {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}
	resp := dto.ToListBooksResponse(books)
	return &resp, nil
}

// UpdateBook renames a book or replaces its category lists. Requires admin.
func (s *bookService) UpdateBook(ctx context.Context, memberID, bookID string, req dto.UpdateBookRequest) (*dto.BookResponse, error) {
	if _, err := s.AuthorizeBookAction(ctx, bookID, memberID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		book.Name = *req.Name
	}
	if req.Categories != nil {
		book.Categories = *req.Categories
	}
	if req.Subcategories != nil {
		book.Subcategories = *req.Subcategories
	}
	book.LastUpdatedAt = time.Now()
	book.LastUpdatedBy = memberID

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		s.LogError(ctx, err, "failed to update book", slog.String("book_id", bookID))
		return nil, err
	}
	resp := dto.ToBookResponse(*book)
	return &resp, nil
}

// MoveBook moves a book to another business of the same owner. Only the book
// owner may move it.
func (s *bookService) MoveBook(ctx context.Context, memberID, bookID string, req dto.MoveBookRequest) (*dto.BookResponse, error) {
	if _, err := s.AuthorizeBookAction(ctx, bookID, memberID, domain.RoleOwner); err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	target, err := s.businessRepo.FindBusinessByID(ctx, req.TargetBusinessID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID != book.OwnerID {
		return nil, fmt.Errorf("%w: target business belongs to a different owner", apperrors.ErrValidation)
	}
	if book.BusinessID == target.BusinessID {
		resp := dto.ToBookResponse(*book)
		return &resp, nil
	}

	book.BusinessID = target.BusinessID
	book.LastUpdatedAt = time.Now()
	book.LastUpdatedBy = memberID
	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		s.LogError(ctx, err, "failed to move book", slog.String("book_id", bookID))
		return nil, err
	}
	s.LogInfo(ctx, "book moved", slog.String("book_id", bookID), slog.String("target_business_id", target.BusinessID))
	resp := dto.ToBookResponse(*book)
	return &resp, nil
}

// DeleteBook removes a book and everything in it. Owner only.
func (s *bookService) DeleteBook(ctx context.Context, memberID, bookID string) error {
	if _, err := s.AuthorizeBookAction(ctx, bookID, memberID, domain.RoleOwner); err != nil {
		return err
	}
	if err := s.bookRepo.DeleteBook(ctx, bookID); err != nil {
		s.LogError(ctx, err, "failed to delete book", slog.String("book_id", bookID))
		return err
	}
	s.LogInfo(ctx, "book deleted", slog.String("book_id", bookID), slog.String("deleted_by", memberID))
	return nil
}

// ListBookMembers returns the book's membership rows with display names.
func (s *bookService) ListBookMembers(ctx context.Context, memberID, bookID string) (*dto.ListBookMembersResponse, error) {
	if _, err := s.AuthorizeBookAction(ctx, bookID, memberID, domain.RoleViewer); err != nil {
		return nil, err
	}
	bookMembers, err := s.bookRepo.FindBookMembers(ctx, bookID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(bookMembers))
	for _, bm := range bookMembers {
		ids = append(ids, bm.MemberID)
	}
	names, err := s.memberRepo.FindMembersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListBookMembersResponse{Members: make([]dto.BookMemberResponse, 0, len(bookMembers))}
	for _, bm := range bookMembers {
		resp.Members = append(resp.Members, dto.ToBookMemberResponse(bm, names[bm.MemberID].Name))
	}
	return resp, nil
}

// UpsertBookMember adds a member to the book or changes their role. Requires
// admin; the owner's row cannot be demoted.
func (s *bookService) UpsertBookMember(ctx context.Context, memberID, bookID string, req dto.UpsertBookMemberRequest) error {
	if _, err := s.AuthorizeBookAction(ctx, bookID, memberID, domain.RoleAdmin); err != nil {
		return err
	}
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return err
	}
	if req.MemberID == book.OwnerID && domain.Role(req.Role) != domain.RoleOwner {
		return fmt.Errorf("%w: cannot demote the book owner", apperrors.ErrValidation)
	}
	if _, err := s.memberRepo.FindMemberByID(ctx, req.MemberID); err != nil {
		return err
	}

	bm := domain.BookMember{
		BookID:   bookID,
		MemberID: req.MemberID,
		Role:     domain.Role(req.Role),
	}
	if err := s.bookRepo.UpsertBookMember(ctx, bm); err != nil {
		s.LogError(ctx, err, "failed to upsert book member", slog.String("book_id", bookID), slog.String("member_id", req.MemberID))
		return err
	}
	s.LogInfo(ctx, "book member upserted", slog.String("book_id", bookID), slog.String("member_id", req.MemberID), slog.String("role", req.Role))
	return nil
}

// RemoveBookMember removes a member from the book. Requires admin; the book
// owner cannot be removed.
func (s *bookService) RemoveBookMember(ctx context.Context, memberID, bookID, targetMemberID string) error {
	if _, err := s.AuthorizeBookAction(ctx, bookID, memberID, domain.RoleAdmin); err != nil {
		return err
	}
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return err
	}
	if targetMemberID == book.OwnerID {
		return fmt.Errorf("%w: cannot remove the book owner", apperrors.ErrValidation)
	}
	if err := s.bookRepo.RemoveBookMember(ctx, bookID, targetMemberID); err != nil {
		s.LogError(ctx, err, "failed to remove book member", slog.String("book_id", bookID), slog.String("member_id", targetMemberID))
		return err
	}
	return nil
}
