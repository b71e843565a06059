package notification

import (
	"context"

	"github.com/google/uuid"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	FindByTab(ctx context.Context, tab Tab, page, pageSize int) ([]Notification, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	// MarkAllRead returns the number of notifications updated
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
