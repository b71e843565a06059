package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/support"
	"github.com/sellaids/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTicketRepository implements TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, ticket *support.Ticket) error {
	model := models.TicketModelFromDomain(ticket)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a ticket by ID
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists tickets with filtering and pagination
func (r *GormTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]support.Ticket, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.TicketModel{})
	query = applySearch(query, filter.Search, "subject", "name", "email", "message")
	if panel, ok := filterString(filter.Filters, "panel_type"); ok {
		query = query.Where("panel_type = ?", panel)
	}
	if status, ok := filterString(filter.Filters, "status"); ok {
		query = query.Where("status = ?", status)
	}
	if vendorID, ok := filterUUID(filter.Filters, "vendor_id"); ok {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ticketModels []models.TicketModel
	if err := applyPaging(query, filter, ticketSortColumns, "created_at").Find(&ticketModels).Error; err != nil {
		return nil, 0, err
	}

	tickets := make([]support.Ticket, len(ticketModels))
	for i := range ticketModels {
		tickets[i] = *ticketModels[i].ToDomain()
	}
	return tickets, total, nil
}

// Delete deletes a ticket by ID
func (r *GormTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TicketModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus counts tickets in a status
func (r *GormTicketRepository) CountByStatus(ctx context.Context, status support.TicketStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Ensure GormTicketRepository implements TicketRepository
var _ support.TicketRepository = (*GormTicketRepository)(nil)
