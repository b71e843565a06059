package review

import (
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
)

const AggregateTypeReview = "Review"

const EventTypeReviewPosted = "ReviewPosted"

// ReviewPostedEvent is published when a customer posts a review
type ReviewPostedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
}

// NewReviewPostedEvent creates a new ReviewPostedEvent
func NewReviewPostedEvent(r *Review) *ReviewPostedEvent {
	return &ReviewPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewPosted, AggregateTypeReview, r.ID),
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		CustomerName:    r.CustomerName,
		Rating:          r.Rating,
	}
}
