package services

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// TransactionSvcFacade manages cash entries and serves the interactive
// ledger view.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, memberID, bookID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	UpdateTransaction(ctx context.Context, memberID, bookID, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	DeleteTransactions(ctx context.Context, memberID, bookID string, req dto.DeleteTransactionsRequest) (*dto.DeleteTransactionsResponse, error)
	DeleteAllTransactions(ctx context.Context, memberID, bookID string) (*dto.DeleteTransactionsResponse, error)
	CopyTransactions(ctx context.Context, memberID, bookID string, req dto.TransferTransactionsRequest) error
	MoveTransactions(ctx context.Context, memberID, bookID string, req dto.TransferTransactionsRequest) error
	// ListLedger returns the filtered entries of a book newest first with
	// running balances and totals over the filtered subset.
	ListLedger(ctx context.Context, memberID, bookID string, query dto.LedgerFilterQuery) (*dto.LedgerResponse, error)
}
