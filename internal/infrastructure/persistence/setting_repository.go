package persistence

import (
	"context"
	"errors"

	"github.com/sellaids/backend/internal/domain/setting"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository implements SettingRepository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByGroup returns the stored settings of one group
func (r *GormSettingRepository) FindByGroup(ctx context.Context, group string) ([]setting.Setting, error) {
	var rows []models.SettingModel
	if err := r.db.WithContext(ctx).
		Where("setting_group = ?", group).
		Order("setting_key").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSettings(rows), nil
}

// FindAll returns every stored setting
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]setting.Setting, error) {
	var rows []models.SettingModel
	if err := r.db.WithContext(ctx).
		Order("setting_group").
		Order("setting_key").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSettings(rows), nil
}

// Get returns a single stored setting
func (r *GormSettingRepository) Get(ctx context.Context, group, key string) (*setting.Setting, error) {
	var row models.SettingModel
	if err := r.db.WithContext(ctx).
		Where("setting_group = ? AND setting_key = ?", group, key).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	s := row.ToDomain()
	return &s, nil
}

// Upsert writes all settings in one transaction
func (r *GormSettingRepository) Upsert(ctx context.Context, settings []setting.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	rows := make([]*models.SettingModel, len(settings))
	for i, s := range settings {
		rows[i] = models.SettingModelFromDomain(s)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_group"}, {Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

func toSettings(rows []models.SettingModel) []setting.Setting {
	settings := make([]setting.Setting, len(rows))
	for i := range rows {
		settings[i] = rows[i].ToDomain()
	}
	return settings
}

// Ensure GormSettingRepository implements SettingRepository
var _ setting.SettingRepository = (*GormSettingRepository)(nil)
