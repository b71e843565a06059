package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for admin notifications.
type NotificationModel struct {
	BaseModel
	Category    notification.Category `gorm:"type:varchar(20);not null;index"`
	Title       string                `gorm:"type:varchar(200);not null"`
	Message     string                `gorm:"type:text"`
	ReferenceID *uuid.UUID            `gorm:"type:uuid"`
	ReadAt      *time.Time            `gorm:"index"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity:  m.entity(),
		Category:    m.Category,
		Title:       m.Title,
		Message:     m.Message,
		ReferenceID: m.ReferenceID,
		ReadAt:      m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Notification.
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.BaseModel = baseModelFrom(n.BaseEntity)
	m.Category = n.Category
	m.Title = n.Title
	m.Message = n.Message
	m.ReferenceID = n.ReferenceID
	m.ReadAt = n.ReadAt
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
