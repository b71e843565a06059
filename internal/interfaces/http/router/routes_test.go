package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/infrastructure/auth"
	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/sellaids/backend/internal/interfaces/http/handler"
	"github.com/sellaids/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "sellaids-test",
		MaxRefreshCount:        3,
	})
}

// mountedEngine wires handlers without services. Requests that reach a
// handler are out of scope here; only routing and guards are exercised.
func mountedEngine(t *testing.T, jwtService *auth.JWTService, mutate func(*Handlers)) *gin.Engine {
	t.Helper()
	engine := gin.New()
	engine.Use(middleware.RequestID())

	h := Handlers{
		Auth:           handler.NewAuthHandler(nil),
		Vendor:         handler.NewVendorHandler(nil),
		Product:        handler.NewProductHandler(nil),
		Ticket:         handler.NewTicketHandler(nil),
		Review:         handler.NewReviewHandler(nil),
		Notification:   handler.NewNotificationHandler(nil),
		Setting:        handler.NewSettingHandler(nil),
		Health:         handler.NewHealthHandler(pingerFunc(func() error { return nil })),
		Static:         handler.NewStaticHandler(""),
		JWTService:     jwtService,
		TokenBlacklist: auth.NewInMemoryTokenBlacklist(),
		Swagger:        middleware.SwaggerConfig{Enabled: true},
	}
	if mutate != nil {
		mutate(&h)
	}
	Mount(engine, h, WithAPIVersion("v1"))
	return engine
}

func accessToken(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	input := auth.GenerateTokenInput{UserID: uuid.New(), Email: role + "@sellaids.test", Role: role}
	if role == RoleVendor {
		vendorID := uuid.New()
		input.VendorID = &vendorID
	}
	pair, err := jwtService.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestMountRegistersMarketplaceRoutes(t *testing.T) {
	engine := mountedEngine(t, testJWTService(), nil)

	got := make(map[string]bool)
	for _, r := range engine.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /swagger/*any",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"POST /api/v1/vendors/register",
		"POST /api/v1/vendors/register/steps/:step",
		"GET /api/v1/products",
		"GET /api/v1/products/:id",
		"GET /api/v1/products/:id/reviews",
		"POST /api/v1/products/:id/reviews",
		"POST /api/v1/contact",
		"POST /api/v1/tickets",
		"GET /api/v1/vendor/profile",
		"PUT /api/v1/vendor/profile",
		"GET /api/v1/vendor/dashboard",
		"GET /api/v1/vendor/tickets",
		"GET /api/v1/vendor/products",
		"POST /api/v1/vendor/products",
		"POST /api/v1/vendor/products/upload-url",
		"GET /api/v1/vendor/products/:id",
		"PUT /api/v1/vendor/products/:id",
		"DELETE /api/v1/vendor/products/:id",
		"GET /api/v1/admin/vendors",
		"GET /api/v1/admin/vendors/:id",
		"POST /api/v1/admin/vendors/:id/approve",
		"POST /api/v1/admin/vendors/:id/reject",
		"POST /api/v1/admin/vendors/:id/suspend",
		"GET /api/v1/admin/products",
		"GET /api/v1/admin/products/:id",
		"POST /api/v1/admin/products/:id/approve",
		"POST /api/v1/admin/products/:id/reject",
		"DELETE /api/v1/admin/products/:id",
		"GET /api/v1/admin/tickets",
		"GET /api/v1/admin/tickets/:id",
		"PUT /api/v1/admin/tickets/:id",
		"DELETE /api/v1/admin/tickets/:id",
		"GET /api/v1/admin/reviews",
		"GET /api/v1/admin/reviews/export",
		"DELETE /api/v1/admin/reviews/:id",
		"GET /api/v1/admin/notifications",
		"GET /api/v1/admin/notifications/unread-count",
		"POST /api/v1/admin/notifications/read-all",
		"POST /api/v1/admin/notifications/sms",
		"POST /api/v1/admin/notifications/:id/read",
		"DELETE /api/v1/admin/notifications/:id",
		"GET /api/v1/admin/settings",
		"GET /api/v1/admin/settings/:group",
		"PUT /api/v1/admin/settings/:group",
	}

	var missing []string
	for _, route := range want {
		if !got[route] {
			missing = append(missing, route)
		}
	}
	sort.Strings(missing)
	assert.Empty(t, missing)
	assert.Len(t, got, len(want))
}

func TestMountGuards(t *testing.T) {
	jwtService := testJWTService()
	engine := mountedEngine(t, jwtService, nil)
	adminToken := accessToken(t, jwtService, RoleAdmin)
	vendorToken := accessToken(t, jwtService, RoleVendor)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"vendor area needs a token", http.MethodGet, "/api/v1/vendor/profile", "", http.StatusUnauthorized},
		{"admin area needs a token", http.MethodGet, "/api/v1/admin/vendors", "", http.StatusUnauthorized},
		{"vendor cannot reach admin", http.MethodGet, "/api/v1/admin/settings", vendorToken, http.StatusForbidden},
		{"admin cannot reach vendor area", http.MethodGet, "/api/v1/vendor/dashboard", adminToken, http.StatusForbidden},
		{"garbage token", http.MethodGet, "/api/v1/admin/reviews", "not-a-token", http.StatusUnauthorized},
		{"logout needs a token", http.MethodPost, "/api/v1/auth/logout", "", http.StatusUnauthorized},
		{"me needs a token", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestMountHealthAndFallback(t *testing.T) {
	engine := mountedEngine(t, testJWTService(), func(h *Handlers) {
		h.Health = handler.NewHealthHandler(pingerFunc(func() error { return errors.New("down") }))
	})

	assert.Equal(t, http.StatusServiceUnavailable, serve(engine, http.MethodGet, "/health").Code)

	w := serve(engine, http.MethodGet, "/api/v1/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestMountSwaggerProtection(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		engine := mountedEngine(t, testJWTService(), func(h *Handlers) {
			h.Swagger = middleware.SwaggerConfig{Enabled: false}
		})
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/swagger/index.html").Code)
	})

	t.Run("outside allowlist", func(t *testing.T) {
		engine := mountedEngine(t, testJWTService(), func(h *Handlers) {
			h.Swagger = middleware.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}
		})
		// httptest requests come from 192.0.2.1
		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/swagger/index.html").Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		jwtService := testJWTService()
		engine := mountedEngine(t, jwtService, func(h *Handlers) {
			h.Swagger = middleware.SwaggerConfig{Enabled: true, RequireAuth: true}
		})
		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/swagger/index.html").Code)

		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, RoleAdmin))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.NotEqual(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "'unsafe-inline'")
	})
}

func TestMountLoginRateLimit(t *testing.T) {
	engine := mountedEngine(t, testJWTService(), func(h *Handlers) {
		h.LoginLimiter = middleware.NewRateLimiter(1, time.Minute)
	})

	// The first attempt passes the limiter and fails binding on the empty body.
	first := serve(engine, http.MethodPost, "/api/v1/auth/login")
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	second := serve(engine, http.MethodPost, "/api/v1/auth/login")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "ERR_RATE_LIMITED")

	// Other routes are not throttled by the login limiter.
	assert.NotEqual(t, http.StatusTooManyRequests, serve(engine, http.MethodPost, "/api/v1/auth/refresh").Code)
}
