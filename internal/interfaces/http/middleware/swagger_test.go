package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func swaggerRequest(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestSwaggerProtection_Disabled(t *testing.T) {
	router := newTestRouter(SwaggerProtection(SwaggerConfig{Enabled: false}, nil))

	w := serve(router, swaggerRequest("127.0.0.1:1234"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestSwaggerProtection_Allowlist(t *testing.T) {
	router := newTestRouter(SwaggerProtection(SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"10.0.0.0/8", "192.168.1.5", "::1", "not-an-ip"},
	}, nil))

	tests := []struct {
		remote string
		want   int
	}{
		{"10.20.30.40:5000", http.StatusOK},
		{"192.168.1.5:5000", http.StatusOK},
		{"[::1]:5000", http.StatusOK},
		{"192.168.1.6:5000", http.StatusForbidden},
		{"8.8.8.8:5000", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(router, swaggerRequest(tt.remote)).Code)
		})
	}
}

func TestSwaggerProtection_EmptyAllowlistAllowsAll(t *testing.T) {
	router := newTestRouter(SwaggerProtection(SwaggerConfig{Enabled: true}, nil))
	assert.Equal(t, http.StatusOK, serve(router, swaggerRequest("8.8.8.8:5000")).Code)
}

func TestSwaggerProtection_RequireAuth(t *testing.T) {
	svc := newTestJWTService()
	router := newTestRouter(SwaggerProtection(SwaggerConfig{Enabled: true, RequireAuth: true}, JWTAuthMiddleware(svc)))

	assert.Equal(t, http.StatusUnauthorized, serve(router, swaggerRequest("127.0.0.1:1")).Code)

	pair, _ := newVendorToken(t, svc)
	req := swaggerRequest("127.0.0.1:1")
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	assert.Equal(t, http.StatusOK, serve(router, req).Code)
}

func TestParseAllowlist(t *testing.T) {
	prefixes := parseAllowlist([]string{" 10.0.0.0/8 ", "1.2.3.4", "bad/99", "junk"})
	assert.Len(t, prefixes, 2)
	assert.True(t, ipAllowed("10.1.1.1", prefixes))
	assert.False(t, ipAllowed("garbage", prefixes))
}
