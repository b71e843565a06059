package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/sellaids/backend/internal/application/catalog"
	"github.com/sellaids/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_VendorListings(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.approvedVendor("meera@example.com")

	var created catalogapp.ProductResponse
	t.Run("create goes to moderation", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/vendor/products", token, productBody("Classic Flap"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		decodeData(t, w, &created)
		assert.Equal(t, "pending", created.ApprovalStatus)
		assert.Equal(t, "Active", created.Status)
		assert.Equal(t, 50, created.DiscountPercent)
		assert.Equal(t, "245000", created.Price.String())
	})

	t.Run("domain rules surface as 400", func(t *testing.T) {
		body := productBody("Cheap Flap")
		body["price"] = "0"
		w := env.do(http.MethodPost, "/api/v1/vendor/products", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_PRICE", errorCode(t, w))
	})

	t.Run("binding rules", func(t *testing.T) {
		body := productBody("Flap")
		body["condition"] = "battered"
		w := env.do(http.MethodPost, "/api/v1/vendor/products", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})

	t.Run("wrong type names the field", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/vendor/products", token, `{"name":"Flap","stock":"one"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "stock")
	})

	t.Run("list own", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/vendor/products?approval_status=pending", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var items []catalogapp.ProductResponse
		decodeData(t, w, &items)
		require.Len(t, items, 1)
		assert.Equal(t, created.ID, items[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		body := productBody("Classic Flap Medium")
		body["stock"] = 0
		w := env.do(http.MethodPut, "/api/v1/vendor/products/"+created.ID.String(), token, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated catalogapp.ProductResponse
		decodeData(t, w, &updated)
		assert.Equal(t, "Classic Flap Medium", updated.Name)
		assert.Equal(t, 0, updated.Stock)
		assert.Equal(t, "Active", updated.Status, "status is derived once at creation")
	})

	t.Run("other vendors cannot see it", func(t *testing.T) {
		_, otherToken := env.approvedVendor("ria@example.com")
		w := env.do(http.MethodGet, "/api/v1/vendor/products/"+created.ID.String(), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = env.do(http.MethodDelete, "/api/v1/vendor/products/"+created.ID.String(), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/api/v1/vendor/products/"+created.ID.String(), token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = env.do(http.MethodGet, "/api/v1/vendor/products/"+created.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_PendingVendorIsBlocked(t *testing.T) {
	env := newTestEnv(t)
	env.registerVendor("meera@example.com")
	token := env.login("meera@example.com", testVendorPass)

	w := env.do(http.MethodPost, "/api/v1/vendor/products", token, productBody("Classic Flap"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeVendorNotApproved, errorCode(t, w))

	w = env.do(http.MethodPost, "/api/v1/vendor/products/upload-url", token, gin.H{"filename": "a.jpg", "content_type": "image/jpeg"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProductHandler_UploadURL(t *testing.T) {
	env := newTestEnv(t)
	v, token := env.approvedVendor("meera@example.com")

	t.Run("presigns under the vendor prefix", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/vendor/products/upload-url", token, gin.H{"filename": "flap.JPG", "content_type": "image/jpeg"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var result catalogapp.UploadURLResult
		decodeData(t, w, &result)
		assert.Equal(t, http.MethodPut, result.Method)
		assert.True(t, strings.HasPrefix(result.Key, "products/"+v.ID.String()+"/"), result.Key)
		assert.True(t, strings.HasSuffix(result.Key, ".jpg"), result.Key)
		assert.Equal(t, "https://cdn.sellaids.test/"+result.Key, result.PublicURL)
	})

	t.Run("rejects non-image content types", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/vendor/products/upload-url", token, gin.H{"filename": "a.pdf", "content_type": "application/pdf"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_CONTENT_TYPE", errorCode(t, w))
	})
}

func TestProductHandler_ModerationAndStorefront(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken()
	_, token := env.approvedVendor("meera@example.com")

	published := env.publishedProduct(token, "Classic Flap")
	assert.Equal(t, "approved", published.ApprovalStatus)

	w := env.do(http.MethodPost, "/api/v1/vendor/products", token, productBody("Kelly 28"))
	require.Equal(t, http.StatusCreated, w.Code)
	var pending catalogapp.ProductResponse
	decodeData(t, w, &pending)

	t.Run("admin list filters by approval", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/admin/products?approval_status=pending", admin, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.EqualValues(t, 1, resp.Meta.Total)
	})

	t.Run("storefront only shows approved listings", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/products", "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var items []catalogapp.ProductResponse
		decodeData(t, w, &items)
		require.Len(t, items, 1)
		assert.Equal(t, published.ID, items[0].ID)

		w = env.do(http.MethodGet, "/api/v1/products/"+pending.ID.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = env.do(http.MethodGet, "/api/v1/products/"+published.ID.String(), "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("storefront search", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/products?search=kelly", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var items []catalogapp.ProductResponse
		decodeData(t, w, &items)
		assert.Empty(t, items)
	})

	t.Run("reject with reason", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/admin/products/"+pending.ID.String()+"/reject", admin, gin.H{"reason": "Authenticity photos missing"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var rejected catalogapp.ProductResponse
		decodeData(t, w, &rejected)
		assert.Equal(t, "rejected", rejected.ApprovalStatus)
		assert.Equal(t, "Authenticity photos missing", rejected.RejectionReason)

		w = env.do(http.MethodPost, "/api/v1/admin/products/"+pending.ID.String()+"/approve", admin, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("admin delete", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/api/v1/admin/products/"+published.ID.String(), admin, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = env.do(http.MethodGet, "/api/v1/admin/products/"+published.ID.String(), admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("vendor routes need a vendor token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/vendor/products", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		w = env.do(http.MethodGet, "/api/v1/vendor/products", admin, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
