package repositories

import (
	"context"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// MemberRepositoryFacade defines persistence operations for members and their
// refresh tokens.
type MemberRepositoryFacade interface {
	SaveMember(ctx context.Context, member domain.Member) error
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
	FindMemberByName(ctx context.Context, name string) (*domain.Member, error)
	FindMembersByIDs(ctx context.Context, memberIDs []string) (map[string]domain.Member, error)
	ListMembers(ctx context.Context, ownerID string) ([]domain.Member, error)
	UpdateMember(ctx context.Context, member domain.Member) error
	DeleteMember(ctx context.Context, memberID string) error

	// UpdatePinState persists the failed-attempt counter and lockout window
	// after a PIN verification attempt.
	UpdatePinState(ctx context.Context, memberID string, failedAttempts int, lockedUntil *time.Time) error

	SaveRefreshToken(ctx context.Context, memberID string, tokenHash string, expiresAt time.Time) error
	FindRefreshToken(ctx context.Context, tokenHash string) (memberID string, expiresAt time.Time, err error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
}
