package support

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	// FindAll supports Filters keys panel_type, status and vendor_id
	FindAll(ctx context.Context, filter shared.Filter) ([]Ticket, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status TicketStatus) (int64, error)
}
