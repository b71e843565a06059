package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/", "")
		c.Set(RequestIDKey, "ctx-id")
		c.Request.Header.Set("X-Request-ID", "header-id")
		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("falls back to the header", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/", "")
		c.Request.Header.Set("X-Request-ID", "header-id")
		assert.Equal(t, "header-id", getRequestID(c))
	})
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.NewDomainError("ALREADY_EXISTS", "dup"), http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"validation", shared.NewDomainError("VALIDATION_ERROR", "bad"), http.StatusBadRequest, dto.ErrCodeValidation},
		{"field error", shared.NewDomainError("INVALID_PRICE", "bad price"), http.StatusBadRequest, "ERR_INVALID_PRICE"},
		{"invalid state", shared.NewDomainError("INVALID_STATE", "nope"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"unlisted business rule", shared.NewDomainError("REVIEW_CLOSED", "closed"), http.StatusUnprocessableEntity, "ERR_REVIEW_CLOSED"},
		{"terms", shared.NewDomainError("TERMS_NOT_ACCEPTED", "terms"), http.StatusBadRequest, dto.ErrCodeTermsNotAccepted},
		{"vendor not approved", shared.NewDomainError("VENDOR_NOT_APPROVED", "wait"), http.StatusForbidden, dto.ErrCodeVendorNotApproved},
		{"gateway", shared.WrapDomainError("BAD_GATEWAY", "sms", errors.New("503")), http.StatusBadGateway, dto.ErrCodeBadGateway},
		{"wrapped domain error", fmt.Errorf("save: %w", shared.ErrForbidden), http.StatusForbidden, dto.ErrCodeForbidden},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/", "")
			c.Set(RequestIDKey, "req-1")
			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}

	t.Run("plain errors do not leak details", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		h.HandleDomainError(c, errors.New("pq: password authentication failed"))
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestBaseHandler_BindError(t *testing.T) {
	type payload struct {
		Name  string `json:"name" binding:"required"`
		Count int    `json:"count"`
	}
	h := &BaseHandler{}

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"validation", `{}`, dto.ErrCodeValidation},
		{"syntax", `{"name":`, dto.ErrCodeInvalidJSON},
		{"empty body", ``, dto.ErrCodeInvalidJSON},
		{"wrong type", `{"name":"x","count":"many"}`, dto.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodPost, "/", tt.body)
			var p payload
			err := c.ShouldBindJSON(&p)
			require.Error(t, err)

			h.BindError(c, err)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestPaginated(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/", "")
	Paginated(c, shared.Paginated[string]{Total: 0, Page: 1, PageSize: 20})

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []string `json:"data"`
		Meta dto.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
	assert.Equal(t, 20, body.Meta.PageSize)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestBaseHandler_ParseID(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/", "")
		id := uuid.New()
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		got, ok := h.parseID(c, "id")
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("malformed", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		_, ok := h.parseID(c, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, errorCode(t, w))
	})
}

func TestBaseHandler_CurrentVendorID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")
	_, ok := h.currentVendorID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
