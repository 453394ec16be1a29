package services

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// BookAuthorizerSvc resolves a member's role on a book and enforces a
// minimum role. Other services depend on this narrow interface rather than
// the full book service.
type BookAuthorizerSvc interface {
	// AuthorizeBookAction returns the member's role when it satisfies the
	// required one, apperrors.ErrForbidden otherwise.
	AuthorizeBookAction(ctx context.Context, bookID, memberID string, required domain.Role) (domain.Role, error)
}

// BookSvcFacade manages books, their category lists and their memberships.
type BookSvcFacade interface {
	BookAuthorizerSvc

	CreateBook(ctx context.Context, memberID, businessID string, req dto.CreateBookRequest) (*dto.BookResponse, error)
	GetBook(ctx context.Context, memberID, bookID string) (*dto.BookResponse, error)
	ListBooks(ctx context.Context, memberID, businessID string) (*dto.ListBooksResponse, error)
	UpdateBook(ctx context.Context, memberID, bookID string, req dto.UpdateBookRequest) (*dto.BookResponse, error)
	MoveBook(ctx context.Context, memberID, bookID string, req dto.MoveBookRequest) (*dto.BookResponse, error)
	DeleteBook(ctx context.Context, memberID, bookID string) error

	ListBookMembers(ctx context.Context, memberID, bookID string) (*dto.ListBookMembersResponse, error)
	UpsertBookMember(ctx context.Context, memberID, bookID string, req dto.UpsertBookMemberRequest) error
	RemoveBookMember(ctx context.Context, memberID, bookID, targetMemberID string) error
}
