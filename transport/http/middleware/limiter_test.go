package middleware_test

import (
	"errors"
	"galpao/config"
	otelMocks "galpao/infras/otel/mocks"
	cacheMocks "galpao/shared/cache/mocks"
	"galpao/shared/constant"
	"galpao/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLimited(t *testing.T, enable bool) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cache)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	return app.RateLimit()(ok), cache
}

func limitedRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/painel_usuario", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	req.Header.Set(constant.RequestHeaderUserAgent, "curl/8")

	return req
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		count         int64
		wantCode      int
		wantRemaining string
	}{
		{"first request", 1, http.StatusOK, "1"},
		{"last allowed", 2, http.StatusOK, "0"},
		{"over the limit", 3, http.StatusTooManyRequests, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, cache := newLimited(t, true)
			cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7:curl/8", 60).Return(tt.count, nil)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, limitedRequest())

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestRateLimit_CacheDownLetsRequestThrough(t *testing.T) {
	handler, cache := newLimited(t, true)
	cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("redis down"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, limitedRequest())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
}

func TestRateLimit_Disabled(t *testing.T) {
	handler, _ := newLimited(t, false)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, limitedRequest())

	assert.Equal(t, http.StatusOK, rec.Code)
}
