package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
	"github.com/rupeebook/rupeebook_backend/internal/utils"
	"github.com/rupeebook/rupeebook_backend/pkg/config"
)

const refreshTokenEntropyBytes = 32

// tokenService authenticates members by PIN and manages token pairs.
// Refresh tokens are opaque random strings stored hashed; access tokens are
// short-lived JWTs.
type tokenService struct {
	BaseService
	cfg        *config.Config
	memberRepo portsrepo.MemberRepositoryFacade
}

// NewTokenService creates the auth service.
func NewTokenService(cfg *config.Config, memberRepo portsrepo.MemberRepositoryFacade) portssvc.AuthSvcFacade {
	return &tokenService{
		cfg:        cfg,
		memberRepo: memberRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*tokenService)(nil)

// Login verifies the member's PIN and issues a token pair. After
// cfg.PinMaxAttempts consecutive failures the account locks for
// cfg.PinLockoutDuration; attempts during the lockout window are rejected
// without touching the counter.
func (s *tokenService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	member, err := s.memberRepo.FindMemberByName(ctx, req.Name)
	if err != nil {
		// Do not reveal whether the name exists.
		return nil, apperrors.ErrUnauthorized
	}

	now := time.Now()
	if member.LockedUntil != nil && member.LockedUntil.After(now) {
		s.LogInfo(ctx, "login rejected, account locked",
			slog.String("member_id", member.MemberID),
			slog.Time("locked_until", *member.LockedUntil))
		return nil, apperrors.ErrPinLocked
	}

	if !utils.CheckPinHash(req.Pin, member.PinHash) {
		attempts := member.FailedPinAttempts + 1
		var lockedUntil *time.Time
		if attempts >= s.cfg.PinMaxAttempts {
			until := now.Add(s.cfg.PinLockoutDuration)
			lockedUntil = &until
			attempts = 0
		}
		if updErr := s.memberRepo.UpdatePinState(ctx, member.MemberID, attempts, lockedUntil); updErr != nil {
			s.LogError(ctx, updErr, "failed to record failed pin attempt", slog.String("member_id", member.MemberID))
		}
		if lockedUntil != nil {
			return nil, apperrors.ErrPinLocked
		}
		return nil, apperrors.ErrUnauthorized
	}

	if member.FailedPinAttempts > 0 || member.LockedUntil != nil {
		if updErr := s.memberRepo.UpdatePinState(ctx, member.MemberID, 0, nil); updErr != nil {
			s.LogError(ctx, updErr, "failed to reset pin state", slog.String("member_id", member.MemberID))
		}
	}

	access, refresh, err := s.issueTokenPair(ctx, member.MemberID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToMemberResponse(*member)
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Member:       resp,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *tokenService) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	hash := hashRefreshToken(req.RefreshToken)
	memberID, expiresAt, err := s.memberRepo.FindRefreshToken(ctx, hash)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(expiresAt) {
		_ = s.memberRepo.RevokeRefreshToken(ctx, hash)
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.memberRepo.RevokeRefreshToken(ctx, hash); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	access, refresh, err := s.issueTokenPair(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshTokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the presented refresh token. Unknown tokens are not an error.
func (s *tokenService) Logout(ctx context.Context, req dto.LogoutRequest) error {
	return s.memberRepo.RevokeRefreshToken(ctx, hashRefreshToken(req.RefreshToken))
}

func (s *tokenService) issueTokenPair(ctx context.Context, memberID string) (access string, refresh string, err error) {
	access, err = utils.GenerateJWT(memberID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err = utils.GenerateSecureRandomString(refreshTokenEntropyBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	expiresAt := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err = s.memberRepo.SaveRefreshToken(ctx, memberID, hashRefreshToken(refresh), expiresAt); err != nil {
		return "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return access, refresh, nil
}

// hashRefreshToken stores only a digest of the opaque refresh token so a
// database leak does not expose usable credentials.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
