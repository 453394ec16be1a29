package services

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// AuthSvcFacade issues and rotates token pairs for PIN-authenticated members.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
}
