package support

import "github.com/sellaids/backend/internal/domain/shared"

const AggregateTypeTicket = "Ticket"

const EventTypeTicketCreated = "TicketCreated"

// TicketCreatedEvent is published when a ticket is opened
type TicketCreatedEvent struct {
	shared.BaseDomainEvent
	PanelType PanelType `json:"panel_type"`
	Subject   string    `json:"subject"`
	Name      string    `json:"name"`
}

// NewTicketCreatedEvent creates a new TicketCreatedEvent
func NewTicketCreatedEvent(t *Ticket) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketCreated, AggregateTypeTicket, t.ID),
		PanelType:       t.PanelType,
		Subject:         t.Subject,
		Name:            t.Name,
	}
}
