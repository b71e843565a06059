package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/review"
)

// PostReviewInput is a customer review submitted from the storefront
type PostReviewInput struct {
	CustomerName  string `json:"customer_name" binding:"required,min=1,max=100"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email,max=200"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"max=2000"`
}

// ReviewListQuery holds list filters
type ReviewListQuery struct {
	Search   string `form:"search" binding:"max=100"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// PublicReviewResponse hides the customer's email on the storefront
type PublicReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

// ToReviewResponses converts a slice of domain Reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return out
}

func toPublicReviewResponses(reviews []review.Review) []PublicReviewResponse {
	out := make([]PublicReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = PublicReviewResponse{
			ID:           r.ID,
			CustomerName: r.CustomerName,
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt,
		}
	}
	return out
}
