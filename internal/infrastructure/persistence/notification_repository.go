package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/notification"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a notification
func (r *GormNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(models.NotificationModelFromDomain(n)).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Update persists a notification's read state
func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	model := models.NotificationModelFromDomain(n)
	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByTab returns the newest notifications first for a feed tab
func (r *GormNotificationRepository) FindByTab(ctx context.Context, tab notification.Tab, page, pageSize int) ([]notification.Notification, int64, error) {
	filter := shared.Filter{Page: page, PageSize: pageSize}.Normalize()

	query := r.db.WithContext(ctx).Model(&models.NotificationModel{})
	if tab.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if tab.Category != "" {
		query = query.Where("category = ?", tab.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.NotificationModel
	if err := applyPaging(query, filter, baseSortColumns, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]notification.Notification, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

// CountUnread counts notifications not yet read
func (r *GormNotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("read_at IS NULL").
		Count(&count).Error
	return count, err
}

// MarkAllRead stamps every unread notification as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("read_at IS NULL").
		Updates(map[string]any{"read_at": now, "updated_at": now})
	return result.RowsAffected, result.Error
}

// Delete deletes a notification by ID
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.NotificationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ notification.NotificationRepository = (*GormNotificationRepository)(nil)
