package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"coreselect/internal/parts"
	"coreselect/internal/recommend"
	"coreselect/internal/services/home"
	"coreselect/internal/shared/config"
	"coreselect/internal/shared/server/middleware"
	"coreselect/internal/users"
)

func newTestRouter(t *testing.T, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	catalog, err := parts.Sample()
	if err != nil {
		t.Fatalf("parts.Sample: %v", err)
	}
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config: config.Config{
			Env:             "dev",
			CORSAllowOrigin: []string{"*"},
			RecommendRate:   0.001,
			RecommendBurst:  burst,
		},
		Home:             home.NewService(),
		UserHandler:      users.NewHandler(users.NewService(users.NewMemoryRepo(users.SampleUsers()...))),
		PartsHandler:     parts.NewHandler(catalog),
		RecommendHandler: recommend.NewHandler(recommend.NewService(recommend.NewMemoryRepo(), catalog, recommend.CatalogPicker{})),
		Limiter:          middleware.NewRateLimiter(func() time.Time { return now }),
	})
}

func TestRouterMountsAllRoutes(t *testing.T) {
	router := newTestRouter(t, 5)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/users/", "", http.StatusOK},
		{http.MethodGet, "/users/1", "", http.StatusOK},
		{http.MethodPost, "/user/", `{"name":"Ada","major":"CS"}`, http.StatusCreated},
		{http.MethodGet, "/parts/cpus", "", http.StatusOK},
		{http.MethodGet, "/parts/keyboards", "", http.StatusBadRequest},
		{http.MethodPost, "/recommend", `{"budget":1500,"priorities":["Gaming Performance"]}`, http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.want, resp.Code, resp.Body.String())
		}
	}
}

func TestRouterRateLimitsRecommend(t *testing.T) {
	router := newTestRouter(t, 1)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(`{"budget":1500,"priorities":["Programming"]}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}
	if code := send(); code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("other routes should not be throttled, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	if Addr("") != ":5000" || Addr("8080") != ":8080" || Addr(":9000") != ":9000" {
		t.Fatalf("unexpected Addr normalization")
	}
}
