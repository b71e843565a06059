package models

import (
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/review"
)

// ReviewModel is the persistence model for a product review.
// ProductName is a snapshot taken when the review is posted.
type ReviewModel struct {
	AggregateModel
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName   string    `gorm:"type:varchar(200);not null"`
	CustomerName  string    `gorm:"type:varchar(100);not null"`
	CustomerEmail string    `gorm:"type:varchar(254);not null"`
	Rating        int       `gorm:"not null"`
	Comment       string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review.
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseAggregateRoot: m.aggregate(),
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		CustomerName:      m.CustomerName,
		CustomerEmail:     m.CustomerEmail,
		Rating:            m.Rating,
		Comment:           m.Comment,
	}
}

// FromDomain populates the persistence model from a domain Review.
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.AggregateModel = aggregateModelFrom(r.BaseAggregateRoot)
	m.ProductID = r.ProductID
	m.ProductName = r.ProductName
	m.CustomerName = r.CustomerName
	m.CustomerEmail = r.CustomerEmail
	m.Rating = r.Rating
	m.Comment = r.Comment
}

// ReviewModelFromDomain creates a new persistence model from a domain Review.
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	m := &ReviewModel{}
	m.FromDomain(r)
	return m
}
