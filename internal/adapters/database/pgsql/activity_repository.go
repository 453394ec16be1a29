package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	"github.com/rupeebook/rupeebook_backend/internal/utils/pagination"
)

// ActivityRepository persists book activity logs in PostgreSQL.
type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var _ portsrepo.ActivityRepositoryFacade = (*ActivityRepository)(nil)

func (r *ActivityRepository) SaveActivity(ctx context.Context, activity domain.ActivityLog) error {
	query := `
        INSERT INTO activities (activity_id, book_id, member_id, occurred_at, type, details)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		activity.ActivityID,
		activity.BookID,
		activity.MemberID,
		activity.Timestamp,
		activity.Type,
		activity.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

// ListActivitiesByBook pages newest first using an occurred_at keyset cursor.
func (r *ActivityRepository) ListActivitiesByBook(ctx context.Context, bookID string, limit int, nextToken *string) ([]domain.ActivityLog, *string, error) {
	query := `
        SELECT activity_id, book_id, member_id, occurred_at, type, details
        FROM activities
        WHERE book_id = $1
    `
	args := []any{bookID}
	if nextToken != nil {
		cursor, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid activity pagination token: %w", err)
		}
		query += ` AND occurred_at < $2`
		args = append(args, cursor)
	}
	query += fmt.Sprintf(` ORDER BY occurred_at DESC, activity_id DESC LIMIT %d;`, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []domain.ActivityLog{}
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, *activity)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(activities) > limit {
		activities = activities[:limit]
		t := pagination.EncodeDateBasedToken(activities[len(activities)-1].Timestamp)
		token = &t
	}
	return activities, token, nil
}

func scanActivity(row pgx.Row) (*domain.ActivityLog, error) {
	var a domain.ActivityLog
	err := row.Scan(
		&a.ActivityID,
		&a.BookID,
		&a.MemberID,
		&a.Timestamp,
		&a.Type,
		&a.Details,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
