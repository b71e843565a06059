package models

import (
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	VendorID        uuid.UUID              `gorm:"type:uuid;not null;index"`
	Name            string                 `gorm:"type:varchar(200);not null"`
	Brand           string                 `gorm:"type:varchar(100);not null;index"`
	Category        string                 `gorm:"type:varchar(100);not null;index"`
	Condition       catalog.Condition      `gorm:"type:varchar(20);not null"`
	Description     string                 `gorm:"type:text"`
	Price           decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	OriginalPrice   decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Stock           int                    `gorm:"not null;default:0"`
	Images          []string               `gorm:"type:text;serializer:json"`
	Status          catalog.ProductStatus  `gorm:"type:varchar(20);not null;index"`
	ApprovalStatus  catalog.ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string                 `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	return &catalog.Product{
		BaseAggregateRoot: m.aggregate(),
		VendorID:          m.VendorID,
		Name:              m.Name,
		Brand:             m.Brand,
		Category:          m.Category,
		Condition:         m.Condition,
		Description:       m.Description,
		Price:             m.Price,
		OriginalPrice:     m.OriginalPrice,
		Stock:             m.Stock,
		Images:            images,
		Status:            m.Status,
		ApprovalStatus:    m.ApprovalStatus,
		RejectionReason:   m.RejectionReason,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.AggregateModel = aggregateModelFrom(p.BaseAggregateRoot)
	m.VendorID = p.VendorID
	m.Name = p.Name
	m.Brand = p.Brand
	m.Category = p.Category
	m.Condition = p.Condition
	m.Description = p.Description
	m.Price = p.Price
	m.OriginalPrice = p.OriginalPrice
	m.Stock = p.Stock
	m.Images = p.Images
	m.Status = p.Status
	m.ApprovalStatus = p.ApprovalStatus
	m.RejectionReason = p.RejectionReason
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
