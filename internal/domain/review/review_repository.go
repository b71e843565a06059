package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	// FindAll pages through reviews. Search matches customer name, email,
	// product name and comment; Filters supports product_id.
	FindAll(ctx context.Context, filter shared.Filter) ([]Review, int64, error)
	// FindAllForExport returns every review matching the search, newest first
	FindAllForExport(ctx context.Context, search string) ([]Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
