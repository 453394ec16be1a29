package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
)

// MemberRepository persists members and refresh tokens in PostgreSQL.
type MemberRepository struct {
	db *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{db: db}
}

var _ portsrepo.MemberRepositoryFacade = (*MemberRepository)(nil)

const memberColumns = `member_id, name, pin_hash, role, owner_id, last_viewed_book_id,
		failed_pin_attempts, locked_until, data_operator_settings,
		created_at, created_by, last_updated_at, last_updated_by`

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.MemberID,
		&m.Name,
		&m.PinHash,
		&m.Role,
		&m.OwnerID,
		&m.LastViewedBookID,
		&m.FailedPinAttempts,
		&m.LockedUntil,
		&m.DataOperatorSettings,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	query := `
        INSERT INTO members (member_id, name, pin_hash, role, owner_id, last_viewed_book_id,
            failed_pin_attempts, locked_until, data_operator_settings,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		member.MemberID,
		member.Name,
		member.PinHash,
		member.Role,
		member.OwnerID,
		member.LastViewedBookID,
		member.FailedPinAttempts,
		member.LockedUntil,
		member.DataOperatorSettings,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member name already taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

func (r *MemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	member, err := scanMember(r.db.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID: %w", err)
	}
	return member, nil
}

func (r *MemberRepository) FindMemberByName(ctx context.Context, name string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE name = $1;`
	member, err := scanMember(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by name: %w", err)
	}
	return member, nil
}

func (r *MemberRepository) FindMembersByIDs(ctx context.Context, memberIDs []string) (map[string]domain.Member, error) {
	result := make(map[string]domain.Member, len(memberIDs))
	if len(memberIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query members by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		result[member.MemberID] = *member
	}
	return result, rows.Err()
}

func (r *MemberRepository) ListMembers(ctx context.Context, ownerID string) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + `
        FROM members
        WHERE member_id = $1 OR owner_id = $1
        ORDER BY created_at ASC;`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, *member)
	}
	return members, rows.Err()
}

func (r *MemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	query := `
        UPDATE members SET
            name = $2,
            pin_hash = $3,
            role = $4,
            last_viewed_book_id = $5,
            data_operator_settings = $6,
            last_updated_at = $7,
            last_updated_by = $8
        WHERE member_id = $1;
    `
	tag, err := r.db.Exec(ctx, query,
		member.MemberID,
		member.Name,
		member.PinHash,
		member.Role,
		member.LastViewedBookID,
		member.DataOperatorSettings,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member name already taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM members WHERE member_id = $1;`, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) UpdatePinState(ctx context.Context, memberID string, failedAttempts int, lockedUntil *time.Time) error {
	query := `UPDATE members SET failed_pin_attempts = $2, locked_until = $3 WHERE member_id = $1;`
	tag, err := r.db.Exec(ctx, query, memberID, failedAttempts, lockedUntil)
	if err != nil {
		return fmt.Errorf("failed to update pin state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) SaveRefreshToken(ctx context.Context, memberID string, tokenHash string, expiresAt time.Time) error {
	query := `
        INSERT INTO refresh_tokens (token_hash, member_id, expires_at, created_at)
        VALUES ($1, $2, $3, NOW());
    `
	if _, err := r.db.Exec(ctx, query, tokenHash, memberID, expiresAt); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *MemberRepository) FindRefreshToken(ctx context.Context, tokenHash string) (string, time.Time, error) {
	query := `SELECT member_id, expires_at FROM refresh_tokens WHERE token_hash = $1;`
	var (
		memberID  string
		expiresAt time.Time
	)
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(&memberID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.ErrNotFound
		}
		return "", time.Time{}, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return memberID, expiresAt, nil
}

func (r *MemberRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1;`, tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
