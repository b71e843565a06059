package notification

import (
	"context"
	"errors"

	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/setting"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/vendor"
	"github.com/sellaids/backend/internal/infrastructure/logger"
	"github.com/sellaids/backend/internal/infrastructure/sms"
	"go.uber.org/zap"
)

// SMSNotifier texts vendors when their account or a listing is moderated.
// Nothing is sent unless the sms_enabled setting is on.
type SMSNotifier struct {
	sender      SMSSender
	settings    AlertSettings
	vendorRepo  vendor.VendorRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewSMSNotifier creates a new SMSNotifier
func NewSMSNotifier(
	sender SMSSender,
	settings AlertSettings,
	vendorRepo vendor.VendorRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *SMSNotifier {
	return &SMSNotifier{
		sender:      sender,
		settings:    settings,
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// EventTypes implements shared.EventHandler
func (n *SMSNotifier) EventTypes() []string {
	return []string{
		vendor.EventTypeVendorApproved,
		vendor.EventTypeVendorRejected,
		vendor.EventTypeVendorSuspended,
		catalog.EventTypeProductApproved,
	}
}

// Handle implements shared.EventHandler
func (n *SMSNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !n.settings.NotificationEnabled(ctx, setting.KeySMSEnabled) {
		return nil
	}

	phone, text, err := n.compose(ctx, event)
	if err != nil || phone == "" {
		return err
	}

	result, err := n.sender.Send(ctx, []string{phone}, text)
	if errors.Is(err, sms.ErrNotConfigured) {
		logger.ForContext(ctx, n.logger).Warn("SMS enabled but gateway is not configured",
			zap.String("event_type", event.EventType()))
		return nil
	}
	if err != nil {
		return err
	}
	logger.ForContext(ctx, n.logger).Info("Status SMS sent",
		zap.String("event_type", event.EventType()),
		zap.String("request_id", result.RequestID))
	return nil
}

func (n *SMSNotifier) compose(ctx context.Context, event shared.DomainEvent) (phone, text string, err error) {
	switch e := event.(type) {
	case *vendor.VendorStatusChangedEvent:
		switch e.EventType() {
		case vendor.EventTypeVendorApproved:
			text = sms.VendorApproved(e.OwnerName, e.StoreName)
		case vendor.EventTypeVendorRejected:
			text = sms.VendorRejected(e.OwnerName, e.StoreName, e.Reason)
		case vendor.EventTypeVendorSuspended:
			text = sms.VendorSuspended(e.OwnerName, e.StoreName)
		default:
			return "", "", nil
		}
		return e.Phone, text, nil
	case *catalog.ProductModeratedEvent:
		if e.EventType() != catalog.EventTypeProductApproved {
			return "", "", nil
		}
		product, err := n.productRepo.FindByID(ctx, e.AggregateID())
		if err != nil {
			return "", "", err
		}
		v, err := n.vendorRepo.FindByID(ctx, e.VendorID)
		if err != nil {
			return "", "", err
		}
		return v.Phone, sms.ProductApproved(product.Name, product.Price), nil
	}
	return "", "", nil
}

var _ shared.EventHandler = (*SMSNotifier)(nil)
