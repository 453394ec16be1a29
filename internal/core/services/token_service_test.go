package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/core/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
	"github.com/rupeebook/rupeebook_backend/internal/utils"
	"github.com/rupeebook/rupeebook_backend/pkg/config"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mockMemberRepo *MockMemberRepository
	service        portssvc.AuthSvcFacade
	cfg            *config.Config
	pinHash        string
}

func (suite *TokenServiceTestSuite) SetupSuite() {
	// bcrypt is slow, hash the test PIN once for the whole suite.
	hash, err := utils.HashPin("1234")
	suite.Require().NoError(err)
	suite.pinHash = hash
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "rupeebook-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
		PinMaxAttempts:             3,
		PinLockoutDuration:         15 * time.Minute,
	}
	suite.service = services.NewTokenService(suite.cfg, suite.mockMemberRepo)
}

func (suite *TokenServiceTestSuite) member() *domain.Member {
	return &domain.Member{
		MemberID: uuid.NewString(),
		Name:     "asha",
		PinHash:  suite.pinHash,
		Role:     domain.RoleOwner,
	}
}

func (suite *TokenServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	member := suite.member()

	suite.mockMemberRepo.On("FindMemberByName", ctx, "asha").Return(member, nil).Once()
	suite.mockMemberRepo.On("SaveRefreshToken", ctx, member.MemberID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Name: "asha", Pin: "1234"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(member.MemberID, resp.Member.MemberID)
	suite.mockMemberRepo.AssertExpectations(suite.T())

	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(member.MemberID, claims.Subject)
}

func (suite *TokenServiceTestSuite) TestLogin_UnknownNameNotDisclosed() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByName", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Name: "ghost", Pin: "1234"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestLogin_WrongPinIncrementsCounter() {
	ctx := context.Background()
	member := suite.member()
	member.FailedPinAttempts = 1

	suite.mockMemberRepo.On("FindMemberByName", ctx, "asha").Return(member, nil).Once()
	suite.mockMemberRepo.On("UpdatePinState", ctx, member.MemberID, 2, (*time.Time)(nil)).Return(nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Name: "asha", Pin: "9999"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestLogin_FinalFailureLocksAccount() {
	ctx := context.Background()
	member := suite.member()
	member.FailedPinAttempts = 2 // next failure reaches PinMaxAttempts

	suite.mockMemberRepo.On("FindMemberByName", ctx, "asha").Return(member, nil).Once()
	suite.mockMemberRepo.On("UpdatePinState", ctx, member.MemberID, 0, mock.MatchedBy(func(lockedUntil *time.Time) bool {
		return lockedUntil != nil && lockedUntil.After(time.Now())
	})).Return(nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Name: "asha", Pin: "9999"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrPinLocked)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestLogin_LockedAccountRejectedEvenWithCorrectPin() {
	ctx := context.Background()
	member := suite.member()
	lockedUntil := time.Now().Add(10 * time.Minute)
	member.LockedUntil = &lockedUntil

	suite.mockMemberRepo.On("FindMemberByName", ctx, "asha").Return(member, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Name: "asha", Pin: "1234"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrPinLocked)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdatePinState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestLogin_ExpiredLockClearsOnSuccess() {
	ctx := context.Background()
	member := suite.member()
	expired := time.Now().Add(-time.Minute)
	member.LockedUntil = &expired
	member.FailedPinAttempts = 2

	suite.mockMemberRepo.On("FindMemberByName", ctx, "asha").Return(member, nil).Once()
	suite.mockMemberRepo.On("UpdatePinState", ctx, member.MemberID, 0, (*time.Time)(nil)).Return(nil).Once()
	suite.mockMemberRepo.On("SaveRefreshToken", ctx, member.MemberID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Name: "asha", Pin: "1234"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefresh_RotatesToken() {
	ctx := context.Background()
	memberID := uuid.NewString()
	var savedHash string

	suite.mockMemberRepo.On("FindRefreshToken", ctx, mock.AnythingOfType("string")).
		Return(memberID, time.Now().Add(time.Hour), nil).Once()
	suite.mockMemberRepo.On("RevokeRefreshToken", ctx, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockMemberRepo.On("SaveRefreshToken", ctx, memberID, mock.MatchedBy(func(hash string) bool {
		savedHash = hash
		return true
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.Refresh(ctx, dto.RefreshTokenRequest{RefreshToken: "old-token"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.NotEmpty(savedHash)
	suite.NotEqual("old-token", resp.RefreshToken)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefresh_ExpiredTokenRevoked() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindRefreshToken", ctx, mock.AnythingOfType("string")).
		Return(uuid.NewString(), time.Now().Add(-time.Minute), nil).Once()
	suite.mockMemberRepo.On("RevokeRefreshToken", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	resp, err := suite.service.Refresh(ctx, dto.RefreshTokenRequest{RefreshToken: "stale"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestLogout_RevokesToken() {
	ctx := context.Background()

	suite.mockMemberRepo.On("RevokeRefreshToken", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	err := suite.service.Logout(ctx, dto.LogoutRequest{RefreshToken: "some-token"})

	suite.Require().NoError(err)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
