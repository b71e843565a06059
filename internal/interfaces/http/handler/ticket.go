package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	supportapp "github.com/sellaids/backend/internal/application/support"
	"github.com/sellaids/backend/internal/interfaces/http/middleware"
)

// TicketHandler serves support tickets and the storefront contact form
type TicketHandler struct {
	BaseHandler
	ticketService *supportapp.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *supportapp.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create godoc
// @Summary      Open a support ticket
// @Description  Public; a vendor panel ticket needs a vendor token and is tied to that vendor
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request body supportapp.CreateTicketInput true "Ticket"
// @Success      201 {object} dto.Response{data=supportapp.TicketResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	var req supportapp.CreateTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var vendorID *uuid.UUID
	if id, ok := middleware.GetJWTVendorID(c); ok {
		vendorID = &id
	}

	t, err := h.ticketService.Create(c.Request.Context(), req, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Contact godoc
// @Summary      Contact form
// @Description  Creates a user panel ticket from the storefront contact page
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        request body supportapp.ContactInput true "Message"
// @Success      201 {object} dto.Response{data=supportapp.TicketResponse}
// @Failure      400 {object} ErrorResponse
// @Router       /contact [post]
func (h *TicketHandler) Contact(c *gin.Context) {
	var req supportapp.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	t, err := h.ticketService.Contact(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// ListOwn godoc
// @Summary      List own tickets
// @Tags         vendor
// @Produce      json
// @Param        status query string false "open, in_progress, resolved or closed"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=[]supportapp.TicketResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /vendor/tickets [get]
func (h *TicketHandler) ListOwn(c *gin.Context) {
	vendorID, ok := h.currentVendorID(c)
	if !ok {
		return
	}
	var query supportapp.TicketListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.ticketService.ListForVendor(c.Request.Context(), vendorID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// List godoc
// @Summary      List tickets
// @Tags         admin-tickets
// @Produce      json
// @Param        panel_type query string false "user or vendor"
// @Param        status query string false "open, in_progress, resolved or closed"
// @Param        search query string false "Subject, name or email"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=[]supportapp.TicketResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /admin/tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	var query supportapp.TicketListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.ticketService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @Summary      Get ticket
// @Tags         admin-tickets
// @Produce      json
// @Param        id path string true "Ticket ID"
// @Success      200 {object} dto.Response{data=supportapp.TicketResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/tickets/{id} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.ticketService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Update godoc
// @Summary      Update ticket
// @Description  Changes status and/or the admin note
// @Tags         admin-tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID"
// @Param        request body supportapp.UpdateTicketInput true "Changes"
// @Success      200 {object} dto.Response{data=supportapp.TicketResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req supportapp.UpdateTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	t, err := h.ticketService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Delete godoc
// @Summary      Delete ticket
// @Tags         admin-tickets
// @Param        id path string true "Ticket ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ticketService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
