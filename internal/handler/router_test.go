package handler

import (
	"net/http"
	"testing"
	"time"

	"redirector/internal/config"
	"redirector/internal/mocks"
	"redirector/internal/model"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug", BaseURL: testBaseURL, AllowedOrigins: []string{"*"}},
		Geo:    config.GeoConfig{EdgeHeader: "CF-IPCountry"},
		RateLimit: config.RateLimitConfig{
			CreateLimit:  100,
			CreateWindow: time.Minute,
			TrackLimit:   60,
			TrackWindow:  time.Minute,
		},
	}
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	links := mocks.NewMockLinkServiceInterface(ctrl)
	keys := mocks.NewMockAPIKeyServiceInterface(ctrl)
	limiter := mocks.NewMockRateLimiterInterface(ctrl)

	router := NewRouter(testConfig(), Services{
		Links:      links,
		Recorder:   mocks.NewMockClickRecorderInterface(ctrl),
		Geo:        mocks.NewMockGeoResolverInterface(ctrl),
		Limiter:    limiter,
		Reconciler: mocks.NewMockReconcilerInterface(ctrl),
		APIKeys:    keys,
		Bloom:      mocks.NewMockBloomServiceInterface(ctrl),
		DB:         mocks.NewMockPinger(ctrl),
		Redis:      mocks.NewMockPinger(ctrl),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("# metrics"))
		}),
	})

	t.Run("admin routes need a key", func(t *testing.T) {
		for _, route := range []struct{ method, path string }{
			{"GET", "/api/v1/links"},
			{"POST", "/api/v1/links"},
			{"PATCH", "/api/v1/links/abc123"},
			{"DELETE", "/api/v1/links/abc123"},
			{"GET", "/api/v1/stats"},
			{"POST", "/api/v1/sync"},
			{"GET", "/api/v1/sync"},
		} {
			w := serve(router, route.method, route.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
		}
	})

	t.Run("create is limited per app", func(t *testing.T) {
		key := &model.APIKey{Name: "tv_app_wp", CanCreate: true, IsActive: true}
		keys.EXPECT().Validate(gomock.Any(), "k").Return(&model.APIKeyValidation{Valid: true, AppName: key.Name, Key: key}, nil)
		limiter.EXPECT().Check(gomock.Any(), "api:tv_app_wp", 100, time.Minute).
			Return(model.RateLimitResult{Allowed: false, ResetIn: 30 * time.Second})

		w := serve(router, "POST", "/api/v1/links", `{"targetUrl":"https://example.com"}`, map[string]string{APIKeyHeader: "k"})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
	})

	t.Run("public routes", func(t *testing.T) {
		links.EXPECT().Resolve(gomock.Any(), "abc123").Return(&model.Link{ID: 1, Code: "abc123"}, nil)

		w := serve(router, "GET", "/api/v1/links/abc123", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

		w = serve(router, "GET", "/metrics", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "# metrics", w.Body.String())
	})
}
