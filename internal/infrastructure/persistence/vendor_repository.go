package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/vendor"
	"github.com/sellaids/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// Create inserts a new vendor
func (r *GormVendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	return translateError(r.db.WithContext(ctx).Create(models.VendorModelFromDomain(v)).Error)
}

// Update persists all vendor fields
func (r *GormVendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	return updateAll(r.db.WithContext(ctx), models.VendorModelFromDomain(v))
}

// FindByID finds a vendor by ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUserID finds the vendor owned by a user account
func (r *GormVendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*vendor.Vendor, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *GormVendorRepository) findOne(ctx context.Context, cond string, arg any) (*vendor.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists vendors with filtering and pagination
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]vendor.Vendor, int64, error) {
	filter = filter.Normalize()
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.VendorModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendorModels []models.VendorModel
	if err := applyPaging(query, filter, vendorSortColumns, "created_at").Find(&vendorModels).Error; err != nil {
		return nil, 0, err
	}

	vendors := make([]vendor.Vendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = *vendorModels[i].ToDomain()
	}
	return vendors, total, nil
}

// CountByStatus counts vendors in the given status
func (r *GormVendorRepository) CountByStatus(ctx context.Context, status vendor.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "store_name", "business_name", "owner_name", "email")
	if status, ok := filterString(filter.Filters, "status"); ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure GormVendorRepository implements VendorRepository
var _ vendor.VendorRepository = (*GormVendorRepository)(nil)
