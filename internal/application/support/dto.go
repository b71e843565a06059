package support

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/support"
)

// CreateTicketInput is a ticket raised from the user or vendor panel.
// Vendor tickets may omit contact details; they are taken from the vendor.
type CreateTicketInput struct {
	PanelType string `json:"panel_type" binding:"required,oneof=user vendor"`
	Name      string `json:"name" binding:"max=200"`
	Email     string `json:"email" binding:"omitempty,email,max=200"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	Subject   string `json:"subject" binding:"required,min=1,max=200"`
	Message   string `json:"message" binding:"required,min=1,max=5000"`
}

// ContactInput is the storefront contact form
type ContactInput struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Phone   string `json:"phone" binding:"omitempty,phone"`
	Subject string `json:"subject" binding:"required,min=1,max=200"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

// UpdateTicketInput changes a ticket's status and/or admin note
type UpdateTicketInput struct {
	Status    *string `json:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	AdminNote *string `json:"admin_note" binding:"omitempty,max=2000"`
}

// TicketListQuery holds list filters
type TicketListQuery struct {
	PanelType string `form:"panel_type" binding:"omitempty,oneof=user vendor"`
	Status    string `form:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	Search    string `form:"search" binding:"max=100"`
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID        uuid.UUID  `json:"id"`
	PanelType string     `json:"panel_type"`
	VendorID  *uuid.UUID `json:"vendor_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	AdminNote string     `json:"admin_note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToTicketResponse converts a domain Ticket to TicketResponse
func ToTicketResponse(t *support.Ticket) TicketResponse {
	return TicketResponse{
		ID:        t.ID,
		PanelType: string(t.PanelType),
		VendorID:  t.VendorID,
		Name:      t.Name,
		Email:     t.Email,
		Phone:     t.Phone,
		Subject:   t.Subject,
		Message:   t.Message,
		Status:    string(t.Status),
		AdminNote: t.AdminNote,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTicketResponses converts a slice of domain Tickets
func ToTicketResponses(tickets []support.Ticket) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i := range tickets {
		out[i] = ToTicketResponse(&tickets[i])
	}
	return out
}
