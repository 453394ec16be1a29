package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
)

// BookRepository persists books and their membership rows in PostgreSQL.
type BookRepository struct {
	db *pgxpool.Pool
}

func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{db: db}
}

var _ portsrepo.BookRepositoryFacade = (*BookRepository)(nil)

const bookColumns = `book_id, name, business_id, owner_id, categories, subcategories,
		balance, balance_before, created_at, created_by, last_updated_at, last_updated_by`

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.BookID,
		&b.Name,
		&b.BusinessID,
		&b.OwnerID,
		&b.Categories,
		&b.Subcategories,
		&b.Balance,
		&b.BalanceBefore,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SaveBook inserts the book and its initial membership rows atomically.
func (r *BookRepository) SaveBook(ctx context.Context, book domain.Book, members []domain.BookMember) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	bookQuery := `
        INSERT INTO books (book_id, name, business_id, owner_id, categories, subcategories,
            balance, balance_before, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, bookQuery,
		book.BookID,
		book.Name,
		book.BusinessID,
		book.OwnerID,
		book.Categories,
		book.Subcategories,
		book.Balance,
		book.BalanceBefore,
		book.CreatedAt,
		book.CreatedBy,
		book.LastUpdatedAt,
		book.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}

	batch := &pgx.Batch{}
	for _, bm := range members {
		batch.Queue(`INSERT INTO book_members (book_id, member_id, role, last_viewed) VALUES ($1, $2, $3, $4);`,
			bm.BookID, bm.MemberID, bm.Role, bm.LastViewed)
	}
	results := tx.SendBatch(ctx, batch)
	for range members {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to save book member: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *BookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = $1;`
	book, err := scanBook(r.db.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID: %w", err)
	}
	return book, nil
}

func (r *BookRepository) ListBooksByMember(ctx context.Context, memberID string) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + `
        FROM books b
        WHERE b.owner_id = $1
           OR EXISTS (SELECT 1 FROM book_members bm WHERE bm.book_id = b.book_id AND bm.member_id = $1)
        ORDER BY b.created_at ASC;`
	return r.queryBooks(ctx, query, memberID)
}

func (r *BookRepository) ListBooksByBusiness(ctx context.Context, businessID string) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books b WHERE b.business_id = $1 ORDER BY b.created_at ASC;`
	return r.queryBooks(ctx, query, businessID)
}

func (r *BookRepository) queryBooks(ctx context.Context, query string, arg any) ([]domain.Book, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

func (r *BookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	query := `
        UPDATE books SET
            name = $2,
            business_id = $3,
            categories = $4,
            subcategories = $5,
            last_updated_at = $6,
            last_updated_by = $7
        WHERE book_id = $1;
    `
	tag, err := r.db.Exec(ctx, query,
		book.BookID,
		book.Name,
		book.BusinessID,
		book.Categories,
		book.Subcategories,
		book.LastUpdatedAt,
		book.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBook removes the book; entries, memberships and activity follow via
// ON DELETE CASCADE.
func (r *BookRepository) DeleteBook(ctx context.Context, bookID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE book_id = $1;`, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BookRepository) FindBookMembers(ctx context.Context, bookID string) ([]domain.BookMember, error) {
	query := `SELECT book_id, member_id, role, last_viewed FROM book_members WHERE book_id = $1 ORDER BY last_viewed DESC;`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query book members: %w", err)
	}
	defer rows.Close()

	members := []domain.BookMember{}
	for rows.Next() {
		var bm domain.BookMember
		if err := rows.Scan(&bm.BookID, &bm.MemberID, &bm.Role, &bm.LastViewed); err != nil {
			return nil, fmt.Errorf("failed to scan book member row: %w", err)
		}
		members = append(members, bm)
	}
	return members, rows.Err()
}

func (r *BookRepository) FindBookMember(ctx context.Context, bookID, memberID string) (*domain.BookMember, error) {
	query := `SELECT book_id, member_id, role, last_viewed FROM book_members WHERE book_id = $1 AND member_id = $2;`
	var bm domain.BookMember
	err := r.db.QueryRow(ctx, query, bookID, memberID).Scan(&bm.BookID, &bm.MemberID, &bm.Role, &bm.LastViewed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book member: %w", err)
	}
	return &bm, nil
}

func (r *BookRepository) UpsertBookMember(ctx context.Context, member domain.BookMember) error {
	query := `
        INSERT INTO book_members (book_id, member_id, role, last_viewed)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (book_id, member_id) DO UPDATE SET role = EXCLUDED.role;
    `
	if _, err := r.db.Exec(ctx, query, member.BookID, member.MemberID, member.Role); err != nil {
		return fmt.Errorf("failed to upsert book member: %w", err)
	}
	return nil
}

func (r *BookRepository) RemoveBookMember(ctx context.Context, bookID, memberID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM book_members WHERE book_id = $1 AND member_id = $2;`, bookID, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove book member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BookRepository) TouchLastViewed(ctx context.Context, bookID, memberID string, viewedAt time.Time) error {
	query := `UPDATE book_members SET last_viewed = $3 WHERE book_id = $1 AND member_id = $2;`
	if _, err := r.db.Exec(ctx, query, bookID, memberID, viewedAt); err != nil {
		return fmt.Errorf("failed to touch last viewed: %w", err)
	}
	return nil
}

func (r *BookRepository) AdjustBalance(ctx context.Context, bookID string, delta decimal.Decimal) error {
	query := `UPDATE books SET balance = balance + $2 WHERE book_id = $1;`
	tag, err := r.db.Exec(ctx, query, bookID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust book balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BookRepository) SetBalance(ctx context.Context, bookID string, balance decimal.Decimal) error {
	query := `UPDATE books SET balance = $2 WHERE book_id = $1;`
	tag, err := r.db.Exec(ctx, query, bookID, balance)
	if err != nil {
		return fmt.Errorf("failed to set book balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
