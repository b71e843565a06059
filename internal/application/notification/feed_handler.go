package notification

import (
	"context"
	"fmt"

	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/notification"
	"github.com/sellaids/backend/internal/domain/review"
	"github.com/sellaids/backend/internal/domain/setting"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/support"
	"github.com/sellaids/backend/internal/domain/vendor"
	"go.uber.org/zap"
)

// AlertSettings reads the admin's notification switches
type AlertSettings interface {
	NotificationEnabled(ctx context.Context, key string) bool
}

// FeedHandler turns marketplace events into admin feed entries
type FeedHandler struct {
	repo     notification.NotificationRepository
	settings AlertSettings
	logger   *zap.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(repo notification.NotificationRepository, settings AlertSettings, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{repo: repo, settings: settings, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *FeedHandler) EventTypes() []string {
	return []string{
		vendor.EventTypeVendorRegistered,
		vendor.EventTypeVendorApproved,
		vendor.EventTypeVendorRejected,
		vendor.EventTypeVendorSuspended,
		catalog.EventTypeProductSubmitted,
		review.EventTypeReviewPosted,
		support.EventTypeTicketCreated,
	}
}

// Handle implements shared.EventHandler
func (h *FeedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, ok := h.entryFor(ctx, event)
	if !ok {
		return nil
	}
	ref := event.AggregateID()
	n, err := notification.NewNotification(entry.category, entry.title, entry.message, &ref)
	if err != nil {
		return err
	}
	if err := h.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification for %s: %w", event.EventType(), err)
	}
	h.logger.Debug("Notification created",
		zap.String("event_type", event.EventType()),
		zap.String("notification_id", n.ID.String()))
	return nil
}

type feedEntry struct {
	category notification.Category
	title    string
	message  string
}

func (h *FeedHandler) entryFor(ctx context.Context, event shared.DomainEvent) (feedEntry, bool) {
	switch e := event.(type) {
	case *vendor.VendorRegisteredEvent:
		if !h.enabled(ctx, setting.KeyNewVendorAlert) {
			return feedEntry{}, false
		}
		return feedEntry{
			category: notification.CategoryVendor,
			title:    "New vendor registration",
			message:  fmt.Sprintf("%s (%s) registered and is awaiting approval", e.StoreName, e.OwnerName),
		}, true
	case *vendor.VendorStatusChangedEvent:
		return feedEntry{
			category: notification.CategoryVendor,
			title:    "Vendor " + string(e.Status),
			message:  fmt.Sprintf("%s is now %s", e.StoreName, e.Status),
		}, true
	case *catalog.ProductSubmittedEvent:
		title := "New product submitted"
		if e.Resubmitted {
			title = "Product resubmitted"
		}
		return feedEntry{
			category: notification.CategoryProduct,
			title:    title,
			message:  fmt.Sprintf("%s by %s is awaiting approval", e.Name, e.Brand),
		}, true
	case *review.ReviewPostedEvent:
		if !h.enabled(ctx, setting.KeyNewReviewAlert) {
			return feedEntry{}, false
		}
		return feedEntry{
			category: notification.CategoryReview,
			title:    "New review",
			message:  fmt.Sprintf("%s rated %s %d/5", e.CustomerName, e.ProductName, e.Rating),
		}, true
	case *support.TicketCreatedEvent:
		return feedEntry{
			category: notification.CategoryTicket,
			title:    "New " + string(e.PanelType) + " ticket",
			message:  fmt.Sprintf("%s: %s", e.Name, e.Subject),
		}, true
	}
	return feedEntry{}, false
}

func (h *FeedHandler) enabled(ctx context.Context, key string) bool {
	if h.settings == nil {
		return true
	}
	return h.settings.NotificationEnabled(ctx, key)
}

var _ shared.EventHandler = (*FeedHandler)(nil)
