package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/notification"
)

// NotificationListQuery selects a feed tab and page
type NotificationListQuery struct {
	Tab      string `form:"tab"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// SendSMSInput is a manual SMS sent from the admin panel
type SendSMSInput struct {
	Numbers []string `json:"numbers" binding:"required,min=1,max=100,dive,required"`
	Message string   `json:"message" binding:"required,max=500"`
}

// SMSResponse is the gateway acknowledgement of a manual SMS
type SMSResponse struct {
	RequestID string   `json:"request_id"`
	SentTo    []string `json:"sent_to"`
}

// UnreadCountResponse reports the number of unread notifications
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// MarkAllReadResponse reports how many notifications were marked read
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// NotificationResponse represents a feed entry in API responses
type NotificationResponse struct {
	ID          uuid.UUID  `json:"id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToNotificationResponse converts a domain Notification to NotificationResponse
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Category:    string(n.Category),
		Title:       n.Title,
		Message:     n.Message,
		ReferenceID: n.ReferenceID,
		Read:        n.IsRead(),
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of domain Notifications
func ToNotificationResponses(items []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(items))
	for i := range items {
		out[i] = ToNotificationResponse(&items[i])
	}
	return out
}
