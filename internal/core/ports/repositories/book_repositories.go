package repositories

import (
	"context"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BookRepositoryFacade defines persistence operations for books and their
// membership rows.
type BookRepositoryFacade interface {
	SaveBook(ctx context.Context, book domain.Book, members []domain.BookMember) error
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	ListBooksByMember(ctx context.Context, memberID string) ([]domain.Book, error)
	ListBooksByBusiness(ctx context.Context, businessID string) ([]domain.Book, error)
	UpdateBook(ctx context.Context, book domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error

	FindBookMembers(ctx context.Context, bookID string) ([]domain.BookMember, error)
	FindBookMember(ctx context.Context, bookID, memberID string) (*domain.BookMember, error)
	UpsertBookMember(ctx context.Context, member domain.BookMember) error
	RemoveBookMember(ctx context.Context, bookID, memberID string) error
	TouchLastViewed(ctx context.Context, bookID, memberID string, viewedAt time.Time) error

	// AdjustBalance atomically applies a signed delta to the book's
	// denormalized balance.
	AdjustBalance(ctx context.Context, bookID string, delta decimal.Decimal) error
	SetBalance(ctx context.Context, bookID string, balance decimal.Decimal) error
}
