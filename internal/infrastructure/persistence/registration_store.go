package persistence

import (
	"context"

	"github.com/sellaids/backend/internal/domain/identity"
	"github.com/sellaids/backend/internal/domain/vendor"
	"gorm.io/gorm"
)

// GormRegistrationStore writes a vendor sign-up's user and vendor rows in
// one transaction so a failed vendor insert never leaves an orphan login.
type GormRegistrationStore struct {
	db *gorm.DB
}

// NewGormRegistrationStore creates a new GormRegistrationStore
func NewGormRegistrationStore(db *gorm.DB) *GormRegistrationStore {
	return &GormRegistrationStore{db: db}
}

// CreateVendorAccount inserts the user, then the vendor
func (s *GormRegistrationStore) CreateVendorAccount(ctx context.Context, user *identity.User, v *vendor.Vendor) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewGormUserRepository(tx).Create(ctx, user); err != nil {
			return err
		}
		return NewGormVendorRepository(tx).Create(ctx, v)
	})
}
