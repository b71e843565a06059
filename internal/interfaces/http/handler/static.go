package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sellaids/backend/internal/interfaces/http/dto"
)

// StaticHandler serves the built storefront and admin SPA. Unknown non-API
// paths fall back to index.html so client-side routes survive a reload.
type StaticHandler struct {
	BaseHandler
	root string
}

// NewStaticHandler creates a StaticHandler rooted at dir
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{root: filepath.Clean(dir)}
}

// NoRoute is installed as the router's fallback
func (h *StaticHandler) NoRoute(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || path == "/api" || h.root == "" || h.root == "." {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Route not found")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Route not found")
		return
	}

	if file, ok := h.resolve(path); ok {
		c.File(file)
		return
	}
	c.File(filepath.Join(h.root, "index.html"))
}

// resolve maps a URL path to a regular file inside root
func (h *StaticHandler) resolve(urlPath string) (string, bool) {
	rel := filepath.FromSlash(filepath.Clean("/" + urlPath))
	full := filepath.Join(h.root, rel)
	if !strings.HasPrefix(full, h.root+string(filepath.Separator)) {
		return "", false
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
