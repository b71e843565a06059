package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/vendor"
	"github.com/stretchr/testify/mock"
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
