package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	reviewapp "github.com/sellaids/backend/internal/application/review"
	"github.com/sellaids/backend/internal/infrastructure/export"
)

// ReviewHandler serves storefront reviews and admin review management
type ReviewHandler struct {
	BaseHandler
	reviewService *reviewapp.ReviewService
	now           func() time.Time
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, now: time.Now}
}

// Post godoc
// @Summary      Review a product
// @Description  The product must be approved
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body reviewapp.PostReviewInput true "Review"
// @Success      201 {object} dto.Response{data=reviewapp.ReviewResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/reviews [post]
func (h *ReviewHandler) Post(c *gin.Context) {
	productID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req reviewapp.PostReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	r, err := h.reviewService.Post(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// ListForProduct godoc
// @Summary      Product reviews
// @Tags         storefront
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=[]reviewapp.PublicReviewResponse,meta=dto.Meta}
// @Router       /products/{id}/reviews [get]
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	productID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var query reviewapp.ReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.reviewService.ListForProduct(c.Request.Context(), productID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// List godoc
// @Summary      List reviews
// @Tags         admin-reviews
// @Produce      json
// @Param        search query string false "Product, customer or comment"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]reviewapp.ReviewResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /admin/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var query reviewapp.ReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.reviewService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Delete godoc
// @Summary      Delete review
// @Tags         admin-reviews
// @Param        id path string true "Review ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Export godoc
// @Summary      Export reviews
// @Description  Downloads the reviews matching search as an .xlsx workbook
// @Tags         admin-reviews
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search query string false "Product, customer or comment"
// @Success      200 {file} file
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/reviews/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	count, err := h.reviewService.Export(c.Request.Context(), &buf, c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := export.ReviewFilename(h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("X-Total-Count", strconv.Itoa(count))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
