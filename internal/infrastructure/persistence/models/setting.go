package models

import (
	"time"

	"github.com/sellaids/backend/internal/domain/setting"
)

// SettingModel stores one settings value keyed by group and key.
type SettingModel struct {
	Group     string    `gorm:"column:setting_group;type:varchar(50);primaryKey"`
	Key       string    `gorm:"column:setting_key;type:varchar(100);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// ToDomain converts the persistence model to a domain Setting.
func (m *SettingModel) ToDomain() setting.Setting {
	return setting.Setting{
		Group: m.Group,
		Key:   m.Key,
		Value: m.Value,
	}
}

// SettingModelFromDomain creates a new persistence model from a domain Setting.
func SettingModelFromDomain(s setting.Setting) *SettingModel {
	return &SettingModel{
		Group: s.Group,
		Key:   s.Key,
		Value: s.Value,
	}
}
