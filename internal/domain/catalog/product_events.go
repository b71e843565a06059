package catalog

import (
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

// Aggregate type constant for Product
const AggregateTypeProduct = "Product"

// Product domain event types
const (
	EventTypeProductSubmitted = "ProductSubmitted"
	EventTypeProductApproved  = "ProductApproved"
	EventTypeProductRejected  = "ProductRejected"
)

// ProductSubmittedEvent is published when a listing enters the approval queue
type ProductSubmittedEvent struct {
	shared.BaseDomainEvent
	VendorID    uuid.UUID `json:"vendor_id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Resubmitted bool      `json:"resubmitted"`
}

// NewProductSubmittedEvent creates a new ProductSubmittedEvent
func NewProductSubmittedEvent(p *Product, resubmitted bool) *ProductSubmittedEvent {
	return &ProductSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductSubmitted, AggregateTypeProduct, p.ID),
		VendorID:        p.VendorID,
		Name:            p.Name,
		Brand:           p.Brand,
		Resubmitted:     resubmitted,
	}
}

// ProductModeratedEvent is published when an admin approves or rejects a listing
type ProductModeratedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID      `json:"vendor_id"`
	Name     string         `json:"name"`
	Approval ApprovalStatus `json:"approval_status"`
	Reason   string         `json:"reason,omitempty"`
}

// NewProductModeratedEvent creates a moderation event of the given type
func NewProductModeratedEvent(p *Product, eventType string) *ProductModeratedEvent {
	return &ProductModeratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProduct, p.ID),
		VendorID:        p.VendorID,
		Name:            p.Name,
		Approval:        p.ApprovalStatus,
		Reason:          p.RejectionReason,
	}
}
