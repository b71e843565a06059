package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

// BaseModel holds the columns every table shares
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseModelFrom(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func (m BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// AggregateModel adds the change counter of aggregate roots
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func aggregateModelFrom(a shared.BaseAggregateRoot) AggregateModel {
	return AggregateModel{BaseModel: baseModelFrom(a.BaseEntity), Version: a.Version}
}

func (m AggregateModel) aggregate() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.entity(), Version: m.Version}
}

// AllModels lists every table in foreign key order
func AllModels() []any {
	return []any{
		&UserModel{},
		&VendorModel{},
		&ProductModel{},
		&TicketModel{},
		&ReviewModel{},
		&NotificationModel{},
		&SettingModel{},
	}
}
