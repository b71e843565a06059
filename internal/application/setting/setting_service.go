package setting

import (
	"context"
	"errors"

	"github.com/sellaids/backend/internal/domain/setting"
	"github.com/sellaids/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SettingService reads and writes admin settings over the whitelist of
// known groups and keys.
type SettingService struct {
	repo   setting.SettingRepository
	logger *zap.Logger
}

// NewSettingService creates a new SettingService
func NewSettingService(repo setting.SettingRepository, logger *zap.Logger) *SettingService {
	return &SettingService{repo: repo, logger: logger}
}

// GetAll returns every group merged with its defaults
func (s *SettingService) GetAll(ctx context.Context) ([]GroupResponse, error) {
	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	groups := setting.Groups()
	out := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		values, _ := setting.Defaults(group)
		overlay(values, stored, group)
		out = append(out, GroupResponse{Group: group, Values: values})
	}
	return out, nil
}

// GetGroup returns one group merged with its defaults
func (s *SettingService) GetGroup(ctx context.Context, group string) (*GroupResponse, error) {
	values, err := setting.Defaults(group)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.FindByGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	overlay(values, stored, group)
	return &GroupResponse{Group: group, Values: values}, nil
}

// UpdateGroup validates and upserts the given keys of a group
func (s *SettingService) UpdateGroup(ctx context.Context, group string, input UpdateSettingsInput) (*GroupResponse, error) {
	settings, err := setting.Validate(group, input.stringValues())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	s.logger.Info("Settings updated", zap.String("group", group), zap.Int("keys", len(settings)))
	return s.GetGroup(ctx, group)
}

// NotificationEnabled reads a boolean key of the notifications group.
// Read failures are treated as disabled.
func (s *SettingService) NotificationEnabled(ctx context.Context, key string) bool {
	value, err := s.value(ctx, setting.GroupNotifications, key)
	if err != nil {
		s.logger.Warn("Failed to read notification setting", zap.String("key", key), zap.Error(err))
		return false
	}
	return setting.IsEnabled(value)
}

func (s *SettingService) value(ctx context.Context, group, key string) (string, error) {
	stored, err := s.repo.Get(ctx, group, key)
	if err == nil {
		return stored.Value, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}
	defaults, err := setting.Defaults(group)
	if err != nil {
		return "", err
	}
	return defaults[key], nil
}

// overlay copies stored values of a group onto values, ignoring keys that
// are no longer part of the whitelist.
func overlay(values map[string]string, stored []setting.Setting, group string) {
	for _, st := range stored {
		if st.Group != group {
			continue
		}
		if _, known := values[st.Key]; known {
			values[st.Key] = st.Value
		}
	}
}
