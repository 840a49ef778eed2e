package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"galpao/config"
	"galpao/infras/jwt"
	jwtMocks "galpao/infras/jwt/mocks"
	"galpao/infras/otel/mocks"
	adminMocks "galpao/internal/domains/admin/mocks"
	adminDto "galpao/internal/domains/admin/model/dto"
	"galpao/internal/domains/auth/model/dto"
	"galpao/internal/domains/auth/service"
	studentMocks "galpao/internal/domains/student/mocks"
	studentModel "galpao/internal/domains/student/model"
	cacheMocks "galpao/shared/cache/mocks"
	"galpao/shared/constant"
	"galpao/shared/failure"
	"galpao/shared/password"
	"galpao/shared/timezone"
)

type deps struct {
	students *studentMocks.MockStudent
	admin    *adminMocks.MockAdminService
	cache    *cacheMocks.MockRedisCache
	jwt      *jwtMocks.MockJWT
}

func newService(t *testing.T) (service.Auth, deps) {
	ctrl := gomock.NewController(t)

	d := deps{
		students: studentMocks.NewMockStudent(ctrl),
		admin:    adminMocks.NewMockAdminService(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}

	svc := service.New(d.students, d.admin, &config.Config{}, d.cache, mocks.NewOtel(), d.jwt)

	return svc, d
}

func ana(t *testing.T) studentModel.Student {
	hashed, err := password.Hash("ana")
	require.NoError(t, err)

	return studentModel.Student{ID: "id-ana", Name: "Ana", Password: hashed, Credits: 3}
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}
}

func TestAuthService_StudentLogin(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.StudentLoginRequest
		setup    func(t *testing.T, d deps)
		wantCode int
	}{
		{
			name: "successful login",
			req:  dto.StudentLoginRequest{Name: "Ana", Password: "ana"},
			setup: func(t *testing.T, d deps) {
				d.students.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ana(t), nil)
				d.jwt.EXPECT().
					GenerateTokenPair(jwt.Identity{UserID: "id-ana", Name: "Ana", Role: constant.RoleStudent}).
					Return(tokenPair(), nil)
			},
		},
		{
			name: "unknown student",
			req:  dto.StudentLoginRequest{Name: "Ghost", Password: "ghost"},
			setup: func(_ *testing.T, d deps) {
				d.students.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studentModel.Student{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "wrong password",
			req:  dto.StudentLoginRequest{Name: "Ana", Password: "wrong"},
			setup: func(t *testing.T, d deps) {
				d.students.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ana(t), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.StudentLoginRequest{Name: "Ana", Password: "ana"},
			setup: func(_ *testing.T, d deps) {
				d.students.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studentModel.Student{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)
			tt.setup(t, d)

			res, err := svc.StudentLogin(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, constant.RoleStudent, res.Role)
				assert.Equal(t, "Ana", res.Name)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	t.Run("issues admin tokens", func(t *testing.T) {
		svc, d := newService(t)

		d.admin.EXPECT().Login(gomock.Any(), "bolinha").Return(nil)
		d.jwt.EXPECT().
			GenerateTokenPair(jwt.Identity{UserID: constant.RoleAdmin, Name: constant.RoleAdmin, Role: constant.RoleAdmin}).
			Return(tokenPair(), nil)

		res, err := svc.AdminLogin(context.Background(), adminDto.LoginRequest{Password: "bolinha"})

		require.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, d := newService(t)

		d.admin.EXPECT().Login(gomock.Any(), "bola").Return(failure.Unauthorized("wrong administrator password"))

		_, err := svc.AdminLogin(context.Background(), adminDto.LoginRequest{Password: "bola"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func refreshClaims(role string) *jwt.Claims {
	return &jwt.Claims{
		UserID:  "id-ana",
		Name:    "Ana",
		Role:    role,
		TokenID: "refresh-jti",
		Type:    jwt.RefreshToken,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(timezone.Now().Add(time.Hour)),
		},
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	revokedKey := constant.CacheKeyRevokedToken + ":refresh-jti"

	t.Run("rotates and revokes the old refresh token", func(t *testing.T) {
		svc, d := newService(t)

		d.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(refreshClaims(constant.RoleStudent), nil)
		d.cache.EXPECT().Exists(gomock.Any(), revokedKey).Return(false, nil)
		d.students.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ana(t), nil)
		d.cache.EXPECT().Save(gomock.Any(), revokedKey, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ any, ttl int) error {
				assert.InDelta(t, 3600, ttl, 5)

				return nil
			})
		d.jwt.EXPECT().
			GenerateTokenPair(jwt.Identity{UserID: "id-ana", Name: "Ana", Role: constant.RoleStudent}).
			Return(tokenPair(), nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, "refresh", res.RefreshToken)
	})

	t.Run("reused refresh token", func(t *testing.T) {
		svc, d := newService(t)

		d.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(refreshClaims(constant.RoleAdmin), nil)
		d.cache.EXPECT().Exists(gomock.Any(), revokedKey).Return(true, nil)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("student removed since login", func(t *testing.T) {
		svc, d := newService(t)

		d.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(refreshClaims(constant.RoleStudent), nil)
		d.cache.EXPECT().Exists(gomock.Any(), revokedKey).Return(false, nil)
		d.students.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studentModel.Student{}, nil)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, d := newService(t)

		d.jwt.EXPECT().ValidateToken("bogus", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bogus"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the access token", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().
			Save(gomock.Any(), constant.CacheKeyRevokedToken+":access-jti", gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Logout(context.Background(), dto.Session{TokenID: "access-jti", ExpiresAt: timezone.Now().Add(10 * time.Minute)})

		assert.NoError(t, err)
	})

	t.Run("expired token needs no revocation", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Logout(context.Background(), dto.Session{TokenID: "access-jti", ExpiresAt: timezone.Now().Add(-time.Minute)})

		assert.NoError(t, err)
	})

	t.Run("missing token id", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Logout(context.Background(), dto.Session{})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("cache failure", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		err := svc.Logout(context.Background(), dto.Session{TokenID: "access-jti", ExpiresAt: timezone.Now().Add(time.Minute)})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_IsRevoked(t *testing.T) {
	svc, d := newService(t)

	d.cache.EXPECT().Exists(gomock.Any(), constant.CacheKeyRevokedToken+":jti").Return(true, nil)

	revoked, err := svc.IsRevoked(context.Background(), "jti")

	require.NoError(t, err)
	assert.True(t, revoked)
}
