package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/vendor"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) CountByApproval(ctx context.Context, vendorID *uuid.UUID) (map[catalog.ApprovalStatus]int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(map[catalog.ApprovalStatus]int64), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, vendorID *uuid.UUID) (map[catalog.ProductStatus]int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(map[catalog.ProductStatus]int64), args.Error(1)
}

// MockVendorRepository is a mock implementation of vendor.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*vendor.Vendor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]vendor.Vendor, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]vendor.Vendor), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRepository) CountByStatus(ctx context.Context, status vendor.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockImageStorage is a mock implementation of ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockImageStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (m *MockImageStorage) KeyFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, "https://cdn.example.com/")
}

func (m *MockImageStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type productFixture struct {
	products  *MockProductRepository
	vendors   *MockVendorRepository
	storage   *MockImageStorage
	publisher *recordingPublisher
	service   *ProductService
	vendor    *vendor.Vendor
}

func newProductFixture(status vendor.Status) *productFixture {
	f := &productFixture{
		products:  new(MockProductRepository),
		vendors:   new(MockVendorRepository),
		storage:   new(MockImageStorage),
		publisher: &recordingPublisher{},
		vendor: &vendor.Vendor{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Status:            status,
		},
	}
	f.service = NewProductService(f.products, f.vendors, f.storage, f.publisher, 10*time.Minute, zap.NewNop())
	f.vendors.On("FindByID", mock.Anything, f.vendor.ID).Return(f.vendor, nil)
	return f
}

func validInput() ProductInput {
	return ProductInput{
		Name:      "Classic Flap Bag",
		Brand:     "chanel",
		Category:  "handbags",
		Condition: "excellent",
		Price:     decimal.NewFromInt(250000),
		Stock:     1,
		Images:    []string{"https://cdn.example.com/products/a.jpg"},
	}
}

func newPendingProduct(t *testing.T, vendorID uuid.UUID, stock int) *catalog.Product {
	t.Helper()
	in := validInput()
	in.Stock = stock
	p, err := catalog.NewProduct(vendorID, in.toDetails())
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestProductService_CreateForVendor(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	ctx := context.Background()
	f.products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := f.service.CreateForVendor(ctx, f.vendor.ID, validInput())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.ApprovalStatus)
	assert.Equal(t, "Active", resp.Status)
	assert.Equal(t, "Chanel", resp.Brand)
	assert.Equal(t, "Handbags", resp.Category)
	assert.Equal(t, f.vendor.ID, resp.VendorID)
	assert.Equal(t, []string{catalog.EventTypeProductSubmitted}, f.publisher.types())
}

func TestProductService_CreateForVendor_ZeroStockIsOutOfStock(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	ctx := context.Background()
	f.products.On("Save", ctx, mock.Anything).Return(nil)

	in := validInput()
	in.Stock = 0
	resp, err := f.service.CreateForVendor(ctx, f.vendor.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Out of Stock", resp.Status)
}

func TestProductService_CreateForVendor_RequiresApprovedVendor(t *testing.T) {
	for _, status := range []vendor.Status{vendor.StatusPending, vendor.StatusRejected, vendor.StatusSuspended} {
		t.Run(string(status), func(t *testing.T) {
			f := newProductFixture(status)
			_, err := f.service.CreateForVendor(context.Background(), f.vendor.ID, validInput())
			assert.ErrorIs(t, err, ErrVendorNotApproved)
			f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_CreateForVendor_InvalidInput(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	in := validInput()
	in.Price = decimal.Zero

	_, err := f.service.CreateForVendor(context.Background(), f.vendor.ID, in)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	assert.Empty(t, f.publisher.events)
}

func TestProductService_UpdateForVendor_ResubmitsApproved(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	ctx := context.Background()
	product := newPendingProduct(t, f.vendor.ID, 3)
	require.NoError(t, product.Approve())
	product.ClearDomainEvents()

	f.products.On("FindByID", ctx, product.ID).Return(product, nil)
	f.products.On("Save", ctx, product).Return(nil)

	in := validInput()
	in.Stock = 0
	in.Name = "Classic Flap Bag (Medium)"
	resp, err := f.service.UpdateForVendor(ctx, f.vendor.ID, product.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.ApprovalStatus)
	// status is not recomputed from the edited stock
	assert.Equal(t, "Active", resp.Status)
	assert.Equal(t, 0, resp.Stock)
	assert.Equal(t, []string{catalog.EventTypeProductSubmitted}, f.publisher.types())
}

func TestProductService_OtherVendorsProductIsNotFound(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	ctx := context.Background()
	product := newPendingProduct(t, uuid.New(), 1)
	f.products.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err := f.service.GetForVendor(ctx, f.vendor.ID, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.service.UpdateForVendor(ctx, f.vendor.ID, product.ID, validInput())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = f.service.DeleteForVendor(ctx, f.vendor.ID, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_DeleteForVendor_RemovesOwnImages(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	ctx := context.Background()
	product := newPendingProduct(t, f.vendor.ID, 1)
	product.Images = []string{
		"https://cdn.example.com/products/a.jpg",
		"https://elsewhere.example.org/b.jpg",
	}

	f.products.On("FindByID", ctx, product.ID).Return(product, nil)
	f.products.On("Delete", ctx, product.ID).Return(nil)
	f.storage.On("DeleteObject", ctx, "products/a.jpg").Return(errors.New("transient"))

	require.NoError(t, f.service.DeleteForVendor(ctx, f.vendor.ID, product.ID))
	f.storage.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestProductService_ListForVendor_ScopesToVendor(t *testing.T) {
	f := newProductFixture(vendor.StatusPending)
	ctx := context.Background()
	product := newPendingProduct(t, f.vendor.ID, 1)

	f.products.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["vendor_id"] == f.vendor.ID.String() &&
			filter.Filters["approval_status"] == "pending" &&
			filter.Page == 1 && filter.PageSize == shared.DefaultPageSize
	})).Return([]catalog.Product{*product}, int64(1), nil)

	page, err := f.service.ListForVendor(ctx, f.vendor.ID, ProductListQuery{ApprovalStatus: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 1)
}

func TestProductService_CreateUploadURL(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	ctx := context.Background()
	expires := time.Now().Add(10 * time.Minute)

	f.storage.On("GenerateUploadURL", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "products/"+f.vendor.ID.String()+"/") && strings.HasSuffix(key, ".webp")
	}), "image/webp", 10*time.Minute).Return("https://s3.example.com/put?sig=1", expires, nil)

	result, err := f.service.CreateUploadURL(ctx, f.vendor.ID, UploadURLInput{Filename: "bag.WEBP", ContentType: "image/webp"})
	require.NoError(t, err)
	assert.Equal(t, "PUT", result.Method)
	assert.Equal(t, "https://cdn.example.com/"+result.Key, result.PublicURL)
	assert.Equal(t, expires, result.ExpiresAt)
}

func TestProductService_CreateUploadURL_RejectsContentType(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)

	for _, ct := range []string{"image/gif", "image/svg+xml", "application/pdf"} {
		_, err := f.service.CreateUploadURL(context.Background(), f.vendor.ID, UploadURLInput{Filename: "x", ContentType: ct})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr, ct)
		assert.Equal(t, "INVALID_CONTENT_TYPE", domainErr.Code)
	}
	f.storage.AssertNotCalled(t, "GenerateUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_ApproveAndReject(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		f := newProductFixture(vendor.StatusApproved)
		product := newPendingProduct(t, f.vendor.ID, 1)
		f.products.On("FindByID", ctx, product.ID).Return(product, nil)
		f.products.On("Save", ctx, product).Return(nil)

		resp, err := f.service.Approve(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.ApprovalStatus)
		assert.Equal(t, []string{catalog.EventTypeProductApproved}, f.publisher.types())

		_, err = f.service.Approve(ctx, product.ID)
		assert.Error(t, err)
	})

	t.Run("reject", func(t *testing.T) {
		f := newProductFixture(vendor.StatusApproved)
		product := newPendingProduct(t, f.vendor.ID, 1)
		f.products.On("FindByID", ctx, product.ID).Return(product, nil)
		f.products.On("Save", ctx, product).Return(nil)

		resp, err := f.service.Reject(ctx, product.ID, RejectInput{Reason: "Photos are blurry"})
		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.ApprovalStatus)
		assert.Equal(t, "Photos are blurry", resp.RejectionReason)
	})
}

func TestProductService_Storefront(t *testing.T) {
	f := newProductFixture(vendor.StatusApproved)
	ctx := context.Background()
	pending := newPendingProduct(t, f.vendor.ID, 1)
	approved := newPendingProduct(t, f.vendor.ID, 1)
	require.NoError(t, approved.Approve())

	f.products.On("FindByID", ctx, pending.ID).Return(pending, nil)
	f.products.On("FindByID", ctx, approved.ID).Return(approved, nil)
	f.products.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		_, scoped := filter.Filters["vendor_id"]
		return filter.Filters["approval_status"] == "approved" && !scoped
	})).Return([]catalog.Product{*approved}, int64(1), nil)

	_, err := f.service.GetPublished(ctx, pending.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	resp, err := f.service.GetPublished(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, approved.ID, resp.ID)

	// callers cannot widen the storefront listing
	page, err := f.service.ListPublished(ctx, ProductListQuery{ApprovalStatus: "pending", VendorID: uuid.NewString()})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
