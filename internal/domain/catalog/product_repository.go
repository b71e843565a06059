package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindAll supports Filters keys vendor_id, approval_status, status, category and brand
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByApproval(ctx context.Context, vendorID *uuid.UUID) (map[ApprovalStatus]int64, error)
	CountByStatus(ctx context.Context, vendorID *uuid.UUID) (map[ProductStatus]int64, error)
}
