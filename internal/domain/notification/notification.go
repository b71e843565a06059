package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

// Category groups notifications for the admin feed tabs
type Category string

const (
	CategoryVendor  Category = "vendor"
	CategoryProduct Category = "product"
	CategoryReview  Category = "review"
	CategoryTicket  Category = "ticket"
	CategorySystem  Category = "system"
)

// Categories lists every category in display order
var Categories = []Category{CategoryVendor, CategoryProduct, CategoryReview, CategoryTicket, CategorySystem}

// IsValid reports whether the category is known
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const maxTitleLength = 200

// Notification is an entry in the admin notifications feed
type Notification struct {
	shared.BaseEntity
	Category    Category
	Title       string
	Message     string
	ReferenceID *uuid.UUID
	ReadAt      *time.Time
}

// NewNotification creates an unread notification
func NewNotification(category Category, title, message string, referenceID *uuid.UUID) (*Notification, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown notification category")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength])
	}
	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		Category:    category,
		Title:       title,
		Message:     strings.TrimSpace(message),
		ReferenceID: referenceID,
	}, nil
}

// MarkRead marks the notification as read. It is idempotent.
func (n *Notification) MarkRead() {
	if n.ReadAt != nil {
		return
	}
	now := time.Now()
	n.ReadAt = &now
	n.UpdatedAt = now
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// Tab selects a slice of the feed
type Tab struct {
	UnreadOnly bool
	Category   Category
}

const (
	TabAll    = "all"
	TabUnread = "unread"
)

// ParseTab maps the feed tab name to a filter. Empty means all.
func ParseTab(raw string) (Tab, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "", TabAll:
		return Tab{}, nil
	case TabUnread:
		return Tab{UnreadOnly: true}, nil
	}
	if c := Category(raw); c.IsValid() {
		return Tab{Category: c}, nil
	}
	return Tab{}, shared.NewDomainError("INVALID_TAB", "Unknown notification tab: "+raw)
}
