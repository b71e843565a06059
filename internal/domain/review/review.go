package review

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer rating of a product
type Review struct {
	shared.BaseAggregateRoot
	ProductID     uuid.UUID
	ProductName   string
	CustomerName  string
	CustomerEmail string
	Rating        int
	Comment       string
}

// NewReviewInput holds the fields of a new review
type NewReviewInput struct {
	ProductID     uuid.UUID
	ProductName   string
	CustomerName  string
	CustomerEmail string
	Rating        int
	Comment       string
}

// NewReview creates a review. ProductName is copied so the review list
// survives product renames and deletion.
func NewReview(in NewReviewInput) (*Review, error) {
	if in.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name is required and cannot exceed 100 characters")
	}
	comment := strings.TrimSpace(in.Comment)
	if len(comment) > 2000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}

	r := &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         in.ProductID,
		ProductName:       strings.TrimSpace(in.ProductName),
		CustomerName:      name,
		CustomerEmail:     strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		Rating:            in.Rating,
		Comment:           comment,
	}
	r.Record(NewReviewPostedEvent(r))
	return r, nil
}
