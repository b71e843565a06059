package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProductStatus is the storefront availability label of a product
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "Active"
	ProductStatusOutOfStock ProductStatus = "Out of Stock"
)

// StatusForStock derives the availability label from a stock count
func StatusForStock(stock int) ProductStatus {
	if stock > 0 {
		return ProductStatusActive
	}
	return ProductStatusOutOfStock
}

// ApprovalStatus tracks admin moderation of a listing
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsValid reports whether the approval status is known
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Condition grades a preloved item
type Condition string

const (
	ConditionNewWithTags Condition = "new_with_tags"
	ConditionLikeNew     Condition = "like_new"
	ConditionExcellent   Condition = "excellent"
	ConditionGood        Condition = "good"
	ConditionFair        Condition = "fair"
)

// IsValid reports whether the condition is known
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNewWithTags, ConditionLikeNew, ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

const maxImages = 10

// Product is a vendor listing
type Product struct {
	shared.BaseAggregateRoot
	VendorID        uuid.UUID
	Name            string
	Brand           string
	Category        string
	Condition       Condition
	Description     string
	Price           decimal.Decimal
	OriginalPrice   decimal.Decimal // zero when not set
	Stock           int
	Images          []string
	Status          ProductStatus
	ApprovalStatus  ApprovalStatus
	RejectionReason string
}

// ProductDetails are the vendor-editable fields of a listing
type ProductDetails struct {
	Name          string
	Brand         string
	Category      string
	Condition     Condition
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Stock         int
	Images        []string
}

// NewProduct creates a listing awaiting approval.
// Status is derived from the initial stock and is not recomputed afterwards.
func NewProduct(vendorID uuid.UUID, details ProductDetails) (*Product, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	details, err := normalizeDetails(details)
	if err != nil {
		return nil, err
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		Status:            StatusForStock(details.Stock),
		ApprovalStatus:    ApprovalPending,
	}
	p.applyDetails(details)

	p.Record(NewProductSubmittedEvent(p, false))
	return p, nil
}

// Update replaces the listing details and sends it back for approval.
// Status keeps the value derived at creation.
func (p *Product) Update(details ProductDetails) error {
	details, err := normalizeDetails(details)
	if err != nil {
		return err
	}
	p.applyDetails(details)

	resubmitted := p.ApprovalStatus != ApprovalPending
	p.ApprovalStatus = ApprovalPending
	p.RejectionReason = ""
	p.MarkChanged()

	if resubmitted {
		p.Record(NewProductSubmittedEvent(p, true))
	}
	return nil
}

// Approve publishes the listing on the storefront
func (p *Product) Approve() error {
	if p.ApprovalStatus != ApprovalPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending products can be approved")
	}
	p.ApprovalStatus = ApprovalApproved
	p.RejectionReason = ""
	p.MarkChanged()

	p.Record(NewProductModeratedEvent(p, EventTypeProductApproved))
	return nil
}

// Reject declines the listing with a reason shown to the vendor
func (p *Product) Reject(reason string) error {
	if p.ApprovalStatus != ApprovalPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending products can be rejected")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	p.ApprovalStatus = ApprovalRejected
	p.RejectionReason = reason
	p.MarkChanged()

	p.Record(NewProductModeratedEvent(p, EventTypeProductRejected))
	return nil
}

// IsPublished reports whether the product is visible on the storefront
func (p *Product) IsPublished() bool {
	return p.ApprovalStatus == ApprovalApproved
}

// BelongsTo reports whether the vendor owns the product
func (p *Product) BelongsTo(vendorID uuid.UUID) bool {
	return p.VendorID == vendorID
}

// DiscountPercent returns the rounded markdown from the original price
func (p *Product) DiscountPercent() int {
	if !p.OriginalPrice.IsPositive() || p.OriginalPrice.LessThanOrEqual(p.Price) {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

func (p *Product) applyDetails(d ProductDetails) {
	p.Name = d.Name
	p.Brand = d.Brand
	p.Category = d.Category
	p.Condition = d.Condition
	p.Description = d.Description
	p.Price = d.Price
	p.OriginalPrice = d.OriginalPrice
	p.Stock = d.Stock
	p.Images = d.Images
}

func normalizeDetails(d ProductDetails) (ProductDetails, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(d.Name) > 200 {
		return d, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	d.Brand = titleCase(d.Brand)
	if d.Brand == "" {
		return d, shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	d.Category = titleCase(d.Category)
	if d.Category == "" {
		return d, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if !d.Condition.IsValid() {
		return d, shared.NewDomainError("INVALID_CONDITION", "Unknown product condition")
	}
	d.Description = strings.TrimSpace(d.Description)
	if !d.Price.IsPositive() {
		return d, shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	if d.OriginalPrice.IsNegative() {
		return d, shared.NewDomainError("INVALID_PRICE", "Original price cannot be negative")
	}
	if !d.OriginalPrice.IsZero() && d.OriginalPrice.LessThan(d.Price) {
		return d, shared.NewDomainError("INVALID_PRICE", "Original price cannot be lower than price")
	}
	if d.Stock < 0 {
		return d, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	images := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if len(images) > maxImages {
		return d, shared.NewDomainError("INVALID_IMAGES", "A product can have at most 10 images")
	}
	d.Images = images
	return d, nil
}

// titleCase capitalizes each word but leaves acronyms such as YSL alone
func titleCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return cases.Title(language.English, cases.NoLower).String(s)
}
