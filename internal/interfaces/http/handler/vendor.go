package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	vendorapp "github.com/sellaids/backend/internal/application/vendor"
)

// VendorHandler serves the registration wizard, vendor self-service and
// admin vendor moderation.
type VendorHandler struct {
	BaseHandler
	vendorService *vendorapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *vendorapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// ValidateStep godoc
// @Summary      Validate a registration step
// @Description  Validates one wizard step (1 account, 2 business, 3 address, 4 bank, 5 store, 6 agreement). Nothing is stored.
// @Tags         vendor-registration
// @Accept       json
// @Produce      json
// @Param        step path int true "Wizard step (1-6)"
// @Param        request body object true "Step payload"
// @Success      200 {object} dto.Response{data=vendorapp.StepResult}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /vendors/register/steps/{step} [post]
func (h *VendorHandler) ValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		step = 0
	}
	payload, err := vendorapp.StepPayload(step)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := c.ShouldBindJSON(payload); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.vendorService.ValidateStep(c.Request.Context(), step, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Register godoc
// @Summary      Register a vendor
// @Description  Submits the full wizard payload, creating a vendor login and a pending vendor
// @Tags         vendor-registration
// @Accept       json
// @Produce      json
// @Param        request body vendorapp.RegistrationInput true "All wizard steps"
// @Success      201 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /vendors/register [post]
func (h *VendorHandler) Register(c *gin.Context) {
	var req vendorapp.RegistrationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	v, err := h.vendorService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, v)
}

// GetProfile godoc
// @Summary      Vendor profile
// @Tags         vendor
// @Produce      json
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor/profile [get]
func (h *VendorHandler) GetProfile(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	v, err := h.vendorService.GetProfile(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// UpdateProfile godoc
// @Summary      Update vendor profile
// @Description  Replaces the business, address, bank and store sections
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Param        request body vendorapp.ProfileInput true "Profile sections"
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor/profile [put]
func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	var req vendorapp.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	v, err := h.vendorService.UpdateProfile(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Dashboard godoc
// @Summary      Vendor dashboard
// @Description  Product counts by approval status and by stock status
// @Tags         vendor
// @Produce      json
// @Success      200 {object} dto.Response{data=vendorapp.DashboardResponse}
// @Security     BearerAuth
// @Router       /vendor/dashboard [get]
func (h *VendorHandler) Dashboard(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	d, err := h.vendorService.Dashboard(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// List godoc
// @Summary      List vendors
// @Tags         admin-vendors
// @Produce      json
// @Param        status query string false "pending, approved, rejected or suspended"
// @Param        search query string false "Matches store, business, owner or email"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]vendorapp.VendorResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /admin/vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	var query vendorapp.VendorListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.vendorService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @Summary      Get vendor
// @Tags         admin-vendors
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/vendors/{id} [get]
func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	v, err := h.vendorService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Approve godoc
// @Summary      Approve vendor
// @Description  Allowed from pending or suspended
// @Tags         admin-vendors
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/approve [post]
func (h *VendorHandler) Approve(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	v, err := h.vendorService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Reject godoc
// @Summary      Reject vendor
// @Description  Allowed from pending; the reason is shown to the vendor
// @Tags         admin-vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Param        request body vendorapp.RejectInput true "Rejection reason"
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/reject [post]
func (h *VendorHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req vendorapp.RejectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	v, err := h.vendorService.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Suspend godoc
// @Summary      Suspend vendor
// @Description  Allowed from approved; revokes the vendor's sessions
// @Tags         admin-vendors
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/suspend [post]
func (h *VendorHandler) Suspend(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	v, err := h.vendorService.Suspend(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}
