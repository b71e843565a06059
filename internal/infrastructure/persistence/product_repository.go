package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists products with filtering and pagination
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	filter = filter.Normalize()
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productModels []models.ProductModel
	if err := applyPaging(query, filter, productSortColumns, "created_at").Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, total, nil
}

// Delete deletes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

// CountByApproval counts products per approval status, optionally for one vendor
func (r *GormProductRepository) CountByApproval(ctx context.Context, vendorID *uuid.UUID) (map[catalog.ApprovalStatus]int64, error) {
	rows, err := r.countBy(ctx, "approval_status", vendorID)
	if err != nil {
		return nil, err
	}
	counts := map[catalog.ApprovalStatus]int64{
		catalog.ApprovalPending:  0,
		catalog.ApprovalApproved: 0,
		catalog.ApprovalRejected: 0,
	}
	for _, row := range rows {
		counts[catalog.ApprovalStatus(row.GroupKey)] = row.Total
	}
	return counts, nil
}

// CountByStatus counts products per derived stock status, optionally for one vendor
func (r *GormProductRepository) CountByStatus(ctx context.Context, vendorID *uuid.UUID) (map[catalog.ProductStatus]int64, error) {
	rows, err := r.countBy(ctx, "status", vendorID)
	if err != nil {
		return nil, err
	}
	counts := map[catalog.ProductStatus]int64{
		catalog.ProductStatusActive:     0,
		catalog.ProductStatusOutOfStock: 0,
	}
	for _, row := range rows {
		counts[catalog.ProductStatus(row.GroupKey)] = row.Total
	}
	return counts, nil
}

func (r *GormProductRepository) countBy(ctx context.Context, column string, vendorID *uuid.UUID) ([]groupCount, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if vendorID != nil {
		query = query.Where("vendor_id = ?", *vendorID)
	}
	var rows []groupCount
	err := query.
		Select(column + " AS group_key, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name", "brand", "category")
	if vendorID, ok := filterUUID(filter.Filters, "vendor_id"); ok {
		query = query.Where("vendor_id = ?", vendorID)
	}
	for _, col := range []string{"approval_status", "status"} {
		if v, ok := filterString(filter.Filters, col); ok {
			query = query.Where(col+" = ?", v)
		}
	}
	// category and brand are stored title-cased; compare case-insensitively
	for _, col := range []string{"category", "brand"} {
		if v, ok := filterString(filter.Filters, col); ok {
			query = query.Where("LOWER("+col+") = LOWER(?)", v)
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
