package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func reply(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(NewDomainGroup("storefront", "/products").GET("", reply("list")))
	require.Len(t, r.registrars, 1)
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v2/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/products").Code)
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", reply("ok"))

	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})
	r.Register(NewDomainGroup("auth", "/auth").GET("/me", reply("me")))
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/auth/me")
	assert.Equal(t, "1", w.Header().Get("X-Api"))

	w = serve(engine, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Api"))
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("tickets", "/tickets").
		GET("", reply("get")).
		POST("", reply("post")).
		PUT("/:id", reply("put")).
		PATCH("/:id", reply("patch")).
		DELETE("/:id", reply("delete"))
	assert.Equal(t, "tickets", g.Name())
	assert.Equal(t, "/tickets", g.Prefix())

	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/tickets", "get"},
		{http.MethodPost, "/api/v1/tickets", "post"},
		{http.MethodPut, "/api/v1/tickets/7", "put"},
		{http.MethodPatch, "/api/v1/tickets/7", "patch"},
		{http.MethodDelete, "/api/v1/tickets/7", "delete"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestDomainGroupMiddlewareAndSubgroups(t *testing.T) {
	engine := gin.New()
	blocked := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}

	admin := NewDomainGroup("admin", "/admin").Use(blocked)
	admin.Group("reviews", "/reviews").
		GET("", reply("reviews")).
		GET("/export", reply("export"))
	admin.Group("settings", "/settings").GET("/:group", reply("group"))
	admin.RegisterRoutes(engine.Group("/api/v1"))

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/admin/reviews").Code)

	for path, want := range map[string]string{
		"/api/v1/admin/reviews":          "reviews",
		"/api/v1/admin/reviews/export":   "export",
		"/api/v1/admin/settings/general": "group",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer x")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, want, w.Body.String(), path)
	}
}
