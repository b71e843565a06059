package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/sellaids/backend/internal/application/catalog"
)

// ProductHandler serves the vendor listing dashboard, admin moderation and
// the public storefront catalog.
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Vendor dashboard

// ListOwn godoc
// @Summary      List own products
// @Tags         vendor-products
// @Produce      json
// @Param        search query string false "Name, brand or category"
// @Param        approval_status query string false "pending, approved or rejected"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /vendor/products [get]
func (h *ProductHandler) ListOwn(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	var query catalogapp.ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.productService.ListForVendor(c.Request.Context(), vendorID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// CreateOwn godoc
// @Summary      Create product
// @Description  New listings start pending; status is derived from stock
// @Tags         vendor-products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ProductInput true "Listing"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor/products [post]
func (h *ProductHandler) CreateOwn(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	var req catalogapp.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.productService.CreateForVendor(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// GetOwn godoc
// @Summary      Get own product
// @Tags         vendor-products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor/products/{id} [get]
func (h *ProductHandler) GetOwn(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.productService.GetForVendor(c.Request.Context(), vendorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// UpdateOwn godoc
// @Summary      Update own product
// @Description  Editing an approved or rejected listing sends it back to moderation
// @Tags         vendor-products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalogapp.ProductInput true "Listing"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor/products/{id} [put]
func (h *ProductHandler) UpdateOwn(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.productService.UpdateForVendor(c.Request.Context(), vendorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// DeleteOwn godoc
// @Summary      Delete own product
// @Tags         vendor-products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor/products/{id} [delete]
func (h *ProductHandler) DeleteOwn(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.DeleteForVendor(c.Request.Context(), vendorID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadURL godoc
// @Summary      Presign an image upload
// @Description  Only image/jpeg, image/png and image/webp are accepted
// @Tags         vendor-products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.UploadURLInput true "File to upload"
// @Success      200 {object} dto.Response{data=catalogapp.UploadURLResult}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor/products/upload-url [post]
func (h *ProductHandler) UploadURL(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	var req catalogapp.UploadURLInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	result, err := h.productService.CreateUploadURL(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Admin moderation

// List godoc
// @Summary      List products
// @Tags         admin-products
// @Produce      json
// @Param        approval_status query string false "pending, approved or rejected"
// @Param        vendor_id query string false "Vendor ID"
// @Param        search query string false "Name, brand or category"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var query catalogapp.ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @Summary      Get product
// @Tags         admin-products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Approve godoc
// @Summary      Approve product
// @Tags         admin-products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id}/approve [post]
func (h *ProductHandler) Approve(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.productService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Reject godoc
// @Summary      Reject product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalogapp.RejectInput true "Rejection reason"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id}/reject [post]
func (h *ProductHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.RejectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.productService.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @Summary      Delete product
// @Tags         admin-products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Storefront

// ListPublished godoc
// @Summary      Browse products
// @Description  Approved listings only
// @Tags         storefront
// @Produce      json
// @Param        search query string false "Name, brand or category"
// @Param        category query string false "Category"
// @Param        brand query string false "Brand"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Router       /products [get]
func (h *ProductHandler) ListPublished(c *gin.Context) {
	var query catalogapp.ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.productService.ListPublished(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetPublished godoc
// @Summary      Product detail
// @Description  404 unless the product is approved
// @Tags         storefront
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetPublished(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.productService.GetPublished(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
