package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
)

// TransactionRepository persists cash entries in PostgreSQL.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

const transactionColumns = `transaction_id, book_id, entry_date, type, amount,
		category, subcategory, remark, attachment_url, member_id,
		created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
        INSERT INTO transactions (transaction_id, book_id, entry_date, type, amount,
            category, subcategory, remark, attachment_url, member_id,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `

func transactionArgs(t domain.Transaction) []any {
	return []any{
		t.TransactionID,
		t.BookID,
		t.Date,
		t.Type,
		t.Amount,
		t.Category,
		t.Subcategory,
		t.Remark,
		t.AttachmentURL,
		t.MemberID,
		t.CreatedAt,
		t.CreatedBy,
		t.LastUpdatedAt,
		t.LastUpdatedBy,
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.BookID,
		&t.Date,
		&t.Type,
		&t.Amount,
		&t.Category,
		&t.Subcategory,
		&t.Remark,
		&t.AttachmentURL,
		&t.MemberID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, err := r.db.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SaveTransactions bulk-inserts entries in one batch round trip.
func (r *TransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(insertTransactionQuery, transactionArgs(txn)...)
	}
	results := r.db.SendBatch(ctx, batch)
	for range txns {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to save transactions batch: %w", err)
		}
	}
	return results.Close()
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) FindTransactionsByIDs(ctx context.Context, bookID string, transactionIDs []string) ([]domain.Transaction, error) {
	if len(transactionIDs) == 0 {
		return []domain.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + `
        FROM transactions
        WHERE book_id = $1 AND transaction_id = ANY($2);`
	return r.queryTransactions(ctx, query, bookID, transactionIDs)
}

// ListTransactionsByBook returns every entry of the book in creation order.
func (r *TransactionRepository) ListTransactionsByBook(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
        FROM transactions
        WHERE book_id = $1
        ORDER BY created_at ASC, transaction_id ASC;`
	return r.queryTransactions(ctx, query, bookID)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        UPDATE transactions SET
            entry_date = $2,
            type = $3,
            amount = $4,
            category = $5,
            subcategory = $6,
            remark = $7,
            attachment_url = $8,
            last_updated_at = $9,
            last_updated_by = $10
        WHERE transaction_id = $1;
    `
	tag, err := r.db.Exec(ctx, query,
		txn.TransactionID,
		txn.Date,
		txn.Type,
		txn.Amount,
		txn.Category,
		txn.Subcategory,
		txn.Remark,
		txn.AttachmentURL,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteTransactions(ctx context.Context, bookID string, transactionIDs []string) (int, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE book_id = $1 AND transaction_id = ANY($2);`,
		bookID, transactionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *TransactionRepository) DeleteAllTransactions(ctx context.Context, bookID string) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE book_id = $1;`, bookID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete all transactions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CopyTransactions inserts pre-built copies into the target book in one
// database transaction.
func (r *TransactionRepository) CopyTransactions(ctx context.Context, sourceBookID, targetBookID string, transactionIDs []string, copies []domain.Transaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	batch := &pgx.Batch{}
	for _, dup := range copies {
		batch.Queue(insertTransactionQuery, transactionArgs(dup)...)
	}
	results := tx.SendBatch(ctx, batch)
	for range copies {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to copy transactions: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}
	return tx.Commit(ctx)
}

// MoveTransactions reassigns entries to the target book atomically.
func (r *TransactionRepository) MoveTransactions(ctx context.Context, sourceBookID, targetBookID string, transactionIDs []string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET book_id = $2 WHERE book_id = $1 AND transaction_id = ANY($3);`,
		sourceBookID, targetBookID, transactionIDs)
	if err != nil {
		return fmt.Errorf("failed to move transactions: %w", err)
	}
	if int(tag.RowsAffected()) != len(transactionIDs) {
		return fmt.Errorf("moved %d of %d transactions: %w", tag.RowsAffected(), len(transactionIDs), apperrors.ErrNotFound)
	}
	return nil
}
