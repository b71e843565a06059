package models

import (
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/support"
)

// TicketModel is the persistence model for the support Ticket aggregate.
type TicketModel struct {
	AggregateModel
	PanelType support.PanelType    `gorm:"type:varchar(10);not null;index"`
	VendorID  *uuid.UUID           `gorm:"type:uuid;index"`
	Name      string               `gorm:"type:varchar(200);not null"`
	Email     string               `gorm:"type:varchar(254);not null"`
	Phone     string               `gorm:"type:varchar(20)"`
	Subject   string               `gorm:"type:varchar(200);not null"`
	Message   string               `gorm:"type:text;not null"`
	Status    support.TicketStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	AdminNote string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TicketModel) TableName() string {
	return "support_tickets"
}

// ToDomain converts the persistence model to a domain Ticket.
func (m *TicketModel) ToDomain() *support.Ticket {
	return &support.Ticket{
		BaseAggregateRoot: m.aggregate(),
		PanelType:         m.PanelType,
		VendorID:          m.VendorID,
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Subject:           m.Subject,
		Message:           m.Message,
		Status:            m.Status,
		AdminNote:         m.AdminNote,
	}
}

// FromDomain populates the persistence model from a domain Ticket.
func (m *TicketModel) FromDomain(t *support.Ticket) {
	m.AggregateModel = aggregateModelFrom(t.BaseAggregateRoot)
	m.PanelType = t.PanelType
	m.VendorID = t.VendorID
	m.Name = t.Name
	m.Email = t.Email
	m.Phone = t.Phone
	m.Subject = t.Subject
	m.Message = t.Message
	m.Status = t.Status
	m.AdminNote = t.AdminNote
}

// TicketModelFromDomain creates a new persistence model from a domain Ticket.
func TicketModelFromDomain(t *support.Ticket) *TicketModel {
	m := &TicketModel{}
	m.FromDomain(t)
	return m
}
