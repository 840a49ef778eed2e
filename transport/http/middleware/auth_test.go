package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"galpao/config"
	"galpao/infras/jwt"
	jwtMocks "galpao/infras/jwt/mocks"
	"galpao/infras/otel/mocks"
	authMocks "galpao/internal/domains/auth/mocks"
	"galpao/permissions"
	"galpao/shared/constant"
	"galpao/transport/http/middleware"
)

type fixture struct {
	router http.Handler
	jwt    *jwtMocks.MockJWT
	auth   *authMocks.MockAuth
	seen   map[string]any
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		jwt:  jwtMocks.NewMockJWT(ctrl),
		auth: authMocks.NewMockAuth(ctrl),
		seen: map[string]any{},
	}

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	perms, err := permissions.Parse([]byte(`{"endpoints": [
		{"path": "/usuario", "method": "POST", "skip": true},
		{"path": "/admin", "method": "GET", "permissions": ["admin"]},
		{"path": "/checkin/{slot}", "method": "GET", "permissions": ["student"]}
	]}`))
	require.NoError(t, err)

	m := middleware.NewAuthRoleMiddleware(f.jwt, f.auth, mocks.NewOtel(), perms, cfg)

	record := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f.seen["name"] = ctx.Value(constant.ContextKeyUserName)
		f.seen["role"] = ctx.Value(constant.ContextKeyUserRole)
		f.seen["token"] = ctx.Value(constant.ContextKeyTokenID)
		f.seen["expires"] = ctx.Value(constant.ContextKeyExpiresAt)

		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Use(m.APIKey, m.Auth, m.RBAC)
	router.Post("/usuario", record)
	router.Get("/admin", record)
	router.Get("/checkin/{slot}", record)

	f.router = router

	return f
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{
		UserID:  "id-ana",
		Name:    "Ana",
		Role:    role,
		TokenID: "jti-1",
		Type:    jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func TestAuth_PublicRouteSkipsToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/usuario", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/checkin/18:00-20:00", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

	rec := f.do(http.MethodGet, "/checkin/18:00-20:00", "expired")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestAuth_StudentReachesOwnRoute(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().ValidateToken("good", jwt.AccessToken).Return(claims(constant.RoleStudent), nil)
	f.auth.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(false, nil)

	rec := f.do(http.MethodGet, "/checkin/18:00-20:00", "good")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Ana", f.seen["name"])
	assert.Equal(t, constant.RoleStudent, f.seen["role"])
	assert.Equal(t, "jti-1", f.seen["token"])
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), f.seen["expires"].(time.Time).UTC())
}

func TestAuth_StudentForbiddenOnAdminRoute(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().ValidateToken("good", jwt.AccessToken).Return(claims(constant.RoleStudent), nil)
	f.auth.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(false, nil)

	rec := f.do(http.MethodGet, "/admin", "good")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_RevokedToken(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().ValidateToken("old", jwt.AccessToken).Return(claims(constant.RoleAdmin), nil)
	f.auth.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(true, nil)

	rec := f.do(http.MethodGet, "/admin", "old")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestAuth_RevocationLookupFails(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().ValidateToken("good", jwt.AccessToken).Return(claims(constant.RoleAdmin), nil)
	f.auth.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(false, errors.New("redis down"))

	rec := f.do(http.MethodGet, "/admin", "good")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAPIKey(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, "internal-key")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	req.Header.Set(constant.RequestHeaderAPIKey, "wrong")

	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
