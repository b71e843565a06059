package support

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

// PanelType scopes a ticket to the panel it was raised from
type PanelType string

const (
	PanelUser   PanelType = "user"
	PanelVendor PanelType = "vendor"
)

// IsValid reports whether the panel type is known
func (p PanelType) IsValid() bool {
	return p == PanelUser || p == PanelVendor
}

// TicketStatus is the lifecycle state of a ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// IsValid reports whether the status is known
func (s TicketStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusOpen, TicketStatusResolved, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusOpen, TicketStatusClosed},
	TicketStatusClosed:     {TicketStatusOpen},
}

// CanTransitionTo reports whether the status may move to next
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Ticket is a support request raised from the user or vendor panel
type Ticket struct {
	shared.BaseAggregateRoot
	PanelType PanelType
	VendorID  *uuid.UUID
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Status    TicketStatus
	AdminNote string
}

// NewTicketInput holds the fields of a new ticket
type NewTicketInput struct {
	PanelType PanelType
	VendorID  *uuid.UUID
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
}

// NewTicket opens a ticket
func NewTicket(in NewTicketInput) (*Ticket, error) {
	if !in.PanelType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PANEL_TYPE", "Panel type must be user or vendor")
	}
	if in.PanelType == PanelVendor && (in.VendorID == nil || *in.VendorID == uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor tickets must reference a vendor")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required and cannot exceed 200 characters")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" {
		normalized, ok := shared.NormalizePhone(phone)
		if !ok {
			return nil, shared.NewDomainError("INVALID_PHONE", "Phone must be a valid 10 digit mobile number")
		}
		phone = normalized
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" || len(subject) > 200 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject is required and cannot exceed 200 characters")
	}
	message := strings.TrimSpace(in.Message)
	if message == "" || len(message) > 5000 {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message is required and cannot exceed 5000 characters")
	}

	t := &Ticket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PanelType:         in.PanelType,
		Name:              name,
		Email:             email,
		Phone:             phone,
		Subject:           subject,
		Message:           message,
		Status:            TicketStatusOpen,
	}
	if in.PanelType == PanelVendor {
		t.VendorID = in.VendorID
	}

	t.Record(NewTicketCreatedEvent(t))
	return t, nil
}

// ChangeStatus moves the ticket along its lifecycle
func (t *Ticket) ChangeStatus(next TicketStatus) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown ticket status")
	}
	if next == t.Status {
		return nil
	}
	if !t.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_STATE", "Ticket cannot move from "+string(t.Status)+" to "+string(next))
	}
	t.Status = next
	t.MarkChanged()
	return nil
}

// SetAdminNote records an internal note
func (t *Ticket) SetAdminNote(note string) error {
	note = strings.TrimSpace(note)
	if len(note) > 2000 {
		return shared.NewDomainError("INVALID_NOTE", "Admin note cannot exceed 2000 characters")
	}
	t.AdminNote = note
	t.Touch()
	return nil
}
