package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"galpao/infras/jwt"
	"galpao/internal/domains/auth/model/dto"
	"galpao/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, jwt.Identity{UserID: "id-ana", Name: "Ana", Role: constant.RoleStudent})

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, constant.RoleStudent, response.Role)
	assert.Equal(t, "Ana", response.Name)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestSession_TTLSeconds(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      int
	}{
		{name: "whole seconds", expiresAt: now.Add(15 * time.Minute), want: 900},
		{name: "rounds up", expiresAt: now.Add(1500 * time.Millisecond), want: 2},
		{name: "expired", expiresAt: now.Add(-time.Second), want: 0},
		{name: "zero expiry", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.Session{TokenID: "jti", ExpiresAt: tt.expiresAt}.TTLSeconds(now))
		})
	}
}
