package dto

import (
	"galpao/infras/jwt"
	"time"
)

type StudentLoginRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
	Name         string `json:"name"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, identity jwt.Identity) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
	l.Role = identity.Role
	l.Name = identity.Name
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

// Session identifies the access token of the current request.
type Session struct {
	TokenID   string
	ExpiresAt time.Time
}

// TTLSeconds is the time left on the token, rounded up to whole seconds.
func (s Session) TTLSeconds(now time.Time) int {
	remaining := s.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	return int((remaining + time.Second - 1) / time.Second)
}
