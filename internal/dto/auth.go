package dto

// LoginRequest authenticates a member by name and PIN.
type LoginRequest struct {
	Name string `json:"name" binding:"required"`
	Pin  string `json:"pin" binding:"required,len=4,numeric"`
}

// LoginResponse carries the issued token pair and the member profile.
type LoginResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	Member       MemberResponse `json:"member"`
}

// RefreshTokenRequest exchanges a refresh token for a fresh pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse carries the rotated token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest revokes the supplied refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
