package repositories

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// TransactionRepositoryFacade defines persistence operations for cash entries.
// Copy and move are repository-level so they execute inside one database
// transaction together with the balance adjustments on both books.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	FindTransactionsByIDs(ctx context.Context, bookID string, transactionIDs []string) ([]domain.Transaction, error)
	// ListTransactionsByBook returns the full entry snapshot of a book in
	// creation order; filtering and balance attachment happen in the
	// aggregation engine, not in SQL.
	ListTransactionsByBook(ctx context.Context, bookID string) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransactions(ctx context.Context, bookID string, transactionIDs []string) (int, error)
	DeleteAllTransactions(ctx context.Context, bookID string) (int, error)
	// CopyTransactions inserts fresh copies of the given entries into the
	// target book. MoveTransactions additionally removes the originals.
	CopyTransactions(ctx context.Context, sourceBookID, targetBookID string, transactionIDs []string, copies []domain.Transaction) error
	MoveTransactions(ctx context.Context, sourceBookID, targetBookID string, transactionIDs []string) error
}
