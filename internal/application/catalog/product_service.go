package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/vendor"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ImageStorage is the object store holding product photos
type ImageStorage interface {
	// GenerateUploadURL returns a presigned PUT URL and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// PublicURL returns the URL the storefront uses to fetch the object
	PublicURL(storageKey string) string
	// KeyFromURL maps a public URL back to its key; ok is false for foreign URLs
	KeyFromURL(url string) (string, bool)
	DeleteObject(ctx context.Context, storageKey string) error
}

// imageExtensions is the upload whitelist
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ErrVendorNotApproved blocks listing changes until the vendor is approved
var ErrVendorNotApproved = shared.NewDomainError("VENDOR_NOT_APPROVED", "Your vendor account is awaiting approval")

// ProductService handles listing management for vendors, moderation for
// admins, and the public storefront catalog.
type ProductService struct {
	productRepo  catalog.ProductRepository
	vendorRepo   vendor.VendorRepository
	storage      ImageStorage
	publisher    shared.EventPublisher
	uploadExpiry time.Duration
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	vendorRepo vendor.VendorRepository,
	storage ImageStorage,
	publisher shared.EventPublisher,
	uploadExpiry time.Duration,
	logger *zap.Logger,
) *ProductService {
	if uploadExpiry <= 0 {
		uploadExpiry = 15 * time.Minute
	}
	return &ProductService{
		productRepo:  productRepo,
		vendorRepo:   vendorRepo,
		storage:      storage,
		publisher:    publisher,
		uploadExpiry: uploadExpiry,
		logger:       logger,
	}
}

// Vendor dashboard

// CreateForVendor lists a new product for moderation
func (s *ProductService) CreateForVendor(ctx context.Context, vendorID uuid.UUID, input ProductInput) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create",
		telemetry.WithAttribute(telemetry.SpanAttrVendorID, vendorID))
	defer span.End()

	if err := s.requireApprovedVendor(ctx, vendorID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(vendorID, input.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, product)

	s.logger.Info("Product submitted",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", vendorID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// UpdateForVendor edits an owned listing; approved or rejected listings go back to pending
func (s *ProductService) UpdateForVendor(ctx context.Context, vendorID, productID uuid.UUID, input ProductInput) (*ProductResponse, error) {
	if err := s.requireApprovedVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	product, err := s.findOwned(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.toDetails()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetForVendor returns an owned listing. Another vendor's product is reported as not found.
func (s *ProductService) GetForVendor(ctx context.Context, vendorID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.findOwned(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// DeleteForVendor removes an owned listing
func (s *ProductService) DeleteForVendor(ctx context.Context, vendorID, productID uuid.UUID) error {
	if err := s.requireApprovedVendor(ctx, vendorID); err != nil {
		return err
	}
	product, err := s.findOwned(ctx, vendorID, productID)
	if err != nil {
		return err
	}
	return s.delete(ctx, product)
}

// ListForVendor pages through the vendor's own listings
func (s *ProductService) ListForVendor(ctx context.Context, vendorID uuid.UUID, query ProductListQuery) (shared.Paginated[ProductResponse], error) {
	query.VendorID = vendorID.String()
	return s.list(ctx, query)
}

// CreateUploadURL issues a presigned upload for a product photo
func (s *ProductService) CreateUploadURL(ctx context.Context, vendorID uuid.UUID, input UploadURLInput) (*UploadURLResult, error) {
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Only JPEG, PNG and WebP images can be uploaded")
	}
	if err := s.requireApprovedVendor(ctx, vendorID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("products/%s/%s%s", vendorID, uuid.New(), ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.uploadExpiry)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, shared.WrapDomainError("SERVICE_UNAVAILABLE", "Image storage is not available", err)
	}

	return &UploadURLResult{
		UploadURL: uploadURL,
		Method:    "PUT",
		Key:       key,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt,
	}, nil
}

// Admin moderation

// List pages through every listing
func (s *ProductService) List(ctx context.Context, query ProductListQuery) (shared.Paginated[ProductResponse], error) {
	return s.list(ctx, query)
}

// Get returns any listing
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Approve publishes a pending listing
func (s *ProductService) Approve(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.moderate(ctx, productID, "approve", func(p *catalog.Product) error { return p.Approve() })
}

// Reject declines a pending listing
func (s *ProductService) Reject(ctx context.Context, productID uuid.UUID, input RejectInput) (*ProductResponse, error) {
	return s.moderate(ctx, productID, "reject", func(p *catalog.Product) error { return p.Reject(input.Reason) })
}

// Delete removes any listing
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	return s.delete(ctx, product)
}

// Storefront

// ListPublished pages through approved listings only
func (s *ProductService) ListPublished(ctx context.Context, query ProductListQuery) (shared.Paginated[ProductResponse], error) {
	query.ApprovalStatus = string(catalog.ApprovalApproved)
	query.VendorID = ""
	return s.list(ctx, query)
}

// GetPublished returns an approved listing; anything else is not found
func (s *ProductService) GetPublished(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsPublished() {
		return nil, shared.ErrNotFound
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) moderate(ctx context.Context, productID uuid.UUID, action string, apply func(*catalog.Product) error) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", action,
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID))
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := apply(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, product)

	s.logger.Info("Product moderated",
		zap.String("product_id", productID.String()),
		zap.String("approval_status", string(product.ApprovalStatus)))

	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) list(ctx context.Context, query ProductListQuery) (shared.Paginated[ProductResponse], error) {
	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	}.Normalize()
	setFilter(filter.Filters, "approval_status", query.ApprovalStatus)
	setFilter(filter.Filters, "status", query.Status)
	setFilter(filter.Filters, "category", query.Category)
	setFilter(filter.Filters, "brand", query.Brand)
	setFilter(filter.Filters, "vendor_id", query.VendorID)

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize), nil
}

func setFilter(filters map[string]any, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		filters[key] = value
	}
}

func (s *ProductService) findOwned(ctx context.Context, vendorID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.BelongsTo(vendorID) {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (s *ProductService) requireApprovedVendor(ctx context.Context, vendorID uuid.UUID) error {
	v, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrForbidden
		}
		return err
	}
	if !v.IsApproved() {
		return ErrVendorNotApproved
	}
	return nil
}

// delete removes the row, then the stored images on a best-effort basis
func (s *ProductService) delete(ctx context.Context, product *catalog.Product) error {
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}
	for _, img := range product.Images {
		key, ok := s.storage.KeyFromURL(img)
		if !ok {
			continue
		}
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("Failed to delete product image",
				zap.String("product_id", product.ID.String()),
				zap.String("key", key),
				zap.Error(err))
		}
	}
	s.logger.Info("Product deleted", zap.String("product_id", product.ID.String()))
	return nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.PullEvents()
	if len(events) == 0 || s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish product events", zap.Error(err))
	}
}
