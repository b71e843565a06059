package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/notification"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/sms"
	"go.uber.org/zap"
)

// SMSSender delivers a text message to one or more mobile numbers
type SMSSender interface {
	Send(ctx context.Context, numbers []string, message string) (*sms.Result, error)
}

// NotificationService serves the admin notifications feed and manual SMS
type NotificationService struct {
	repo   notification.NotificationRepository
	sender SMSSender
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo notification.NotificationRepository, sender SMSSender, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, sender: sender, logger: logger}
}

// List returns one page of a feed tab
func (s *NotificationService) List(ctx context.Context, query NotificationListQuery) (shared.Paginated[NotificationResponse], error) {
	tab, err := notification.ParseTab(query.Tab)
	if err != nil {
		return shared.Paginated[NotificationResponse]{}, shared.WrapDomainError("VALIDATION_ERROR",
			"tab must be all, unread or a notification category", err)
	}
	filter := shared.DefaultFilter()
	filter.Page, filter.PageSize = query.Page, query.PageSize
	filter = filter.Normalize()

	items, total, err := s.repo.FindByTab(ctx, tab, filter.Page, filter.PageSize)
	if err != nil {
		return shared.Paginated[NotificationResponse]{}, err
	}
	return shared.NewPaginated(ToNotificationResponses(items), total, filter.Page, filter.PageSize), nil
}

// UnreadCount returns the number of unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context) (*UnreadCountResponse, error) {
	n, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Unread: n}, nil
}

// MarkRead marks one notification read. Marking it again is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsRead() {
		n.MarkRead()
		if err := s.repo.Update(ctx, n); err != nil {
			return nil, err
		}
	}
	resp := ToNotificationResponse(n)
	return &resp, nil
}

// MarkAllRead marks every unread notification read
func (s *NotificationService) MarkAllRead(ctx context.Context) (*MarkAllReadResponse, error) {
	n, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResponse{Updated: n}, nil
}

// Delete removes a notification
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SendSMS sends a manual message through the gateway
func (s *NotificationService) SendSMS(ctx context.Context, input SendSMSInput) (*SMSResponse, error) {
	result, err := s.sender.Send(ctx, input.Numbers, input.Message)
	if err != nil {
		return nil, smsError(err)
	}
	s.logger.Info("Manual SMS sent",
		zap.String("request_id", result.RequestID),
		zap.Int("recipients", len(result.SentTo)))
	return &SMSResponse{RequestID: result.RequestID, SentTo: result.SentTo}, nil
}

// smsError maps gateway client errors to domain errors
func smsError(err error) error {
	switch {
	case errors.Is(err, sms.ErrNotConfigured):
		return shared.WrapDomainError("SERVICE_UNAVAILABLE", "SMS gateway is not configured", err)
	case errors.Is(err, sms.ErrGateway):
		return shared.WrapDomainError("BAD_GATEWAY", "SMS gateway rejected the request", err)
	case errors.Is(err, sms.ErrNoRecipients),
		errors.Is(err, sms.ErrInvalidNumber),
		errors.Is(err, sms.ErrEmptyMessage),
		errors.Is(err, sms.ErrMessageLength):
		return shared.WrapDomainError("VALIDATION_ERROR", err.Error(), err)
	}
	return err
}
