package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/review"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var reviewSearchColumns = []string{"customer_name", "product_name", "comment", "customer_email"}

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a review
func (r *GormReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	return r.db.WithContext(ctx).Create(models.ReviewModelFromDomain(rv)).Error
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll pages through reviews matching the search
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, int64, error) {
	filter = filter.Normalize()
	query := applySearch(r.db.WithContext(ctx).Model(&models.ReviewModel{}), filter.Search, reviewSearchColumns...)
	if productID, ok := filterUUID(filter.Filters, "product_id"); ok {
		query = query.Where("product_id = ?", productID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviewModels []models.ReviewModel
	if err := applyPaging(query, filter, reviewSortColumns, "created_at").Find(&reviewModels).Error; err != nil {
		return nil, 0, err
	}
	return toReviews(reviewModels), total, nil
}

// FindAllForExport returns all matching reviews, newest first
func (r *GormReviewRepository) FindAllForExport(ctx context.Context, search string) ([]review.Review, error) {
	var reviewModels []models.ReviewModel
	err := applySearch(r.db.WithContext(ctx).Model(&models.ReviewModel{}), search, reviewSearchColumns...).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviewModels).Error
	if err != nil {
		return nil, err
	}
	return toReviews(reviewModels), nil
}

// Delete deletes a review by ID
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toReviews(reviewModels []models.ReviewModel) []review.Review {
	reviews := make([]review.Review, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = *reviewModels[i].ToDomain()
	}
	return reviews
}

// Ensure GormReviewRepository implements ReviewRepository
var _ review.ReviewRepository = (*GormReviewRepository)(nil)
