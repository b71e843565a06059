package support

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/support"
	"github.com/sellaids/backend/internal/domain/vendor"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrVendorLoginRequired is returned when a vendor-panel ticket is raised
// without a vendor token.
var ErrVendorLoginRequired = shared.NewDomainError("UNAUTHORIZED", "Vendor tickets require a signed-in vendor")

// TicketService handles support tickets from both panels
type TicketService struct {
	ticketRepo support.TicketRepository
	vendorRepo vendor.VendorRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewTicketService creates a new TicketService
func NewTicketService(
	ticketRepo support.TicketRepository,
	vendorRepo vendor.VendorRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		vendorRepo: vendorRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create opens a ticket. vendorID comes from the caller's token and is
// required for the vendor panel.
func (s *TicketService) Create(ctx context.Context, input CreateTicketInput, vendorID *uuid.UUID) (*TicketResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ticket", "create")
	defer span.End()

	in := support.NewTicketInput{
		PanelType: support.PanelType(input.PanelType),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
	}
	if in.PanelType == support.PanelVendor {
		if vendorID == nil {
			return nil, ErrVendorLoginRequired
		}
		v, err := s.vendorRepo.FindByID(ctx, *vendorID)
		if err != nil {
			return nil, err
		}
		in.VendorID = vendorID
		in.Name = firstNonEmpty(in.Name, v.OwnerName)
		in.Email = firstNonEmpty(in.Email, v.Email)
		in.Phone = firstNonEmpty(in.Phone, v.Phone)
	}
	return s.open(ctx, in)
}

// Contact records a storefront contact form submission as a user ticket
func (s *TicketService) Contact(ctx context.Context, input ContactInput) (*TicketResponse, error) {
	return s.open(ctx, support.NewTicketInput{
		PanelType: support.PanelUser,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
	})
}

func (s *TicketService) open(ctx context.Context, in support.NewTicketInput) (*TicketResponse, error) {
	ticket, err := support.NewTicket(in)
	if err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	events := ticket.PullEvents()
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish ticket events", zap.Error(err))
	}

	s.logger.Info("Ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("panel_type", string(ticket.PanelType)))

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// ListForVendor lists the tickets raised by one vendor
func (s *TicketService) ListForVendor(ctx context.Context, vendorID uuid.UUID, query TicketListQuery) (shared.Paginated[TicketResponse], error) {
	query.PanelType = string(support.PanelVendor)
	filter := query.filter()
	filter.Filters["vendor_id"] = vendorID
	return s.list(ctx, filter)
}

// List lists all tickets for the admin panel
func (s *TicketService) List(ctx context.Context, query TicketListQuery) (shared.Paginated[TicketResponse], error) {
	return s.list(ctx, query.filter())
}

func (s *TicketService) list(ctx context.Context, filter shared.Filter) (shared.Paginated[TicketResponse], error) {
	tickets, total, err := s.ticketRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[TicketResponse]{}, err
	}
	return shared.NewPaginated(ToTicketResponses(tickets), total, filter.Page, filter.PageSize), nil
}

// Get returns a ticket by ID
func (s *TicketService) Get(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// Update changes a ticket's status and admin note
func (s *TicketService) Update(ctx context.Context, id uuid.UUID, input UpdateTicketInput) (*TicketResponse, error) {
	if input.Status == nil && input.AdminNote == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Nothing to update")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		if err := ticket.ChangeStatus(support.TicketStatus(*input.Status)); err != nil {
			return nil, err
		}
	}
	if input.AdminNote != nil {
		if err := ticket.SetAdminNote(*input.AdminNote); err != nil {
			return nil, err
		}
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// Delete removes a ticket
func (s *TicketService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ticketRepo.Delete(ctx, id)
}

func (q TicketListQuery) filter() shared.Filter {
	filter := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}.Normalize()
	if q.PanelType != "" {
		filter.Filters["panel_type"] = q.PanelType
	}
	if q.Status != "" {
		filter.Filters["status"] = q.Status
	}
	return filter
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
