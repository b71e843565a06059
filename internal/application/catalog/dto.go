package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductInput is the vendor-editable listing payload used by create and update
type ProductInput struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Brand         string           `json:"brand" binding:"required,min=1,max=100"`
	Category      string           `json:"category" binding:"required,min=1,max=100"`
	Condition     string           `json:"condition" binding:"required,oneof=new_with_tags like_new excellent good fair"`
	Description   string           `json:"description" binding:"max=5000"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Stock         int              `json:"stock" binding:"min=0"`
	Images        []string         `json:"images" binding:"max=10,dive,min=1,max=1024"`
}

func (in ProductInput) toDetails() catalog.ProductDetails {
	d := catalog.ProductDetails{
		Name:        in.Name,
		Brand:       in.Brand,
		Category:    in.Category,
		Condition:   catalog.Condition(in.Condition),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Images:      in.Images,
	}
	if in.OriginalPrice != nil {
		d.OriginalPrice = *in.OriginalPrice
	}
	return d
}

// ProductListQuery holds list filters shared by the vendor, admin and storefront listings
type ProductListQuery struct {
	Search         string `form:"search" binding:"max=100"`
	ApprovalStatus string `form:"approval_status" binding:"omitempty,oneof=pending approved rejected"`
	Status         string `form:"status" binding:"omitempty,oneof=Active 'Out of Stock'"`
	Category       string `form:"category" binding:"max=100"`
	Brand          string `form:"brand" binding:"max=100"`
	VendorID       string `form:"vendor_id" binding:"omitempty,uuid"`
	Page           int    `form:"page" binding:"min=0"`
	PageSize       int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RejectInput carries a moderation reason
type RejectInput struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// UploadURLInput requests a presigned image upload
type UploadURLInput struct {
	Filename    string `json:"filename" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResult is a presigned PUT target plus the URL to store on the product
type UploadURLResult struct {
	UploadURL string    `json:"upload_url"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID        `json:"id"`
	VendorID        uuid.UUID        `json:"vendor_id"`
	Name            string           `json:"name"`
	Brand           string           `json:"brand"`
	Category        string           `json:"category"`
	Condition       string           `json:"condition"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	Stock           int              `json:"stock"`
	Images          []string         `json:"images"`
	Status          string           `json:"status"`
	ApprovalStatus  string           `json:"approval_status"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	resp := ProductResponse{
		ID:              p.ID,
		VendorID:        p.VendorID,
		Name:            p.Name,
		Brand:           p.Brand,
		Category:        p.Category,
		Condition:       string(p.Condition),
		Description:     p.Description,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent(),
		Stock:           p.Stock,
		Images:          images,
		Status:          string(p.Status),
		ApprovalStatus:  string(p.ApprovalStatus),
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if !p.OriginalPrice.IsZero() {
		op := p.OriginalPrice
		resp.OriginalPrice = &op
	}
	return resp
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
