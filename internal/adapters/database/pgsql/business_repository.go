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

// BusinessRepository persists businesses in PostgreSQL.
type BusinessRepository struct {
	db *pgxpool.Pool
}

func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{db: db}
}

var _ portsrepo.BusinessRepositoryFacade = (*BusinessRepository)(nil)

const businessColumns = `business_id, name, owner_id, type, sort_order,
		created_at, created_by, last_updated_at, last_updated_by`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var b domain.Business
	err := row.Scan(
		&b.BusinessID,
		&b.Name,
		&b.OwnerID,
		&b.Type,
		&b.SortOrder,
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

func (r *BusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	query := `
        INSERT INTO businesses (business_id, name, owner_id, type, sort_order,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		business.BusinessID,
		business.Name,
		business.OwnerID,
		business.Type,
		business.SortOrder,
		business.CreatedAt,
		business.CreatedBy,
		business.LastUpdatedAt,
		business.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save business: %w", err)
	}
	return nil
}

func (r *BusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1;`
	business, err := scanBusiness(r.db.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business by ID: %w", err)
	}
	return business, nil
}

func (r *BusinessRepository) ListBusinessesByOwner(ctx context.Context, ownerID string) ([]domain.Business, error) {
	query := `SELECT ` + businessColumns + `
        FROM businesses
        WHERE owner_id = $1
        ORDER BY sort_order ASC, created_at ASC;`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, *business)
	}
	return businesses, rows.Err()
}

func (r *BusinessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	query := `
        UPDATE businesses SET
            name = $2,
            type = $3,
            sort_order = $4,
            last_updated_at = $5,
            last_updated_by = $6
        WHERE business_id = $1;
    `
	tag, err := r.db.Exec(ctx, query,
		business.BusinessID,
		business.Name,
		business.Type,
		business.SortOrder,
		business.LastUpdatedAt,
		business.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BusinessRepository) UpdateBusinessOrder(ctx context.Context, ownerID string, orderedIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	batch := &pgx.Batch{}
	for i, id := range orderedIDs {
		batch.Queue(`UPDATE businesses SET sort_order = $1 WHERE business_id = $2 AND owner_id = $3;`, i, id, ownerID)
	}
	results := tx.SendBatch(ctx, batch)
	for range orderedIDs {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to update business order: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *BusinessRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM businesses WHERE business_id = $1;`, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
