package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/vendor"
)

// VendorModel is the persistence model for the Vendor aggregate.
// Profile value objects are flattened into prefixed columns.
type VendorModel struct {
	AggregateModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OwnerName string    `gorm:"type:varchar(200);not null"`
	Email     string    `gorm:"type:varchar(254);not null"`
	Phone     string    `gorm:"type:varchar(20);not null"`

	BusinessName string              `gorm:"type:varchar(200);not null"`
	BusinessType vendor.BusinessType `gorm:"type:varchar(20);not null"`
	GSTNumber    string              `gorm:"type:varchar(15)"`
	PANNumber    string              `gorm:"type:varchar(10)"`

	AddressLine1 string `gorm:"type:varchar(255);not null"`
	AddressLine2 string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(100);not null"`
	State        string `gorm:"type:varchar(100);not null"`
	PostalCode   string `gorm:"type:varchar(6);not null"`
	Country      string `gorm:"type:varchar(100);not null"`

	BankHolderName    string `gorm:"type:varchar(200);not null"`
	BankAccountNumber string `gorm:"type:varchar(18);not null"`
	BankIFSC          string `gorm:"column:bank_ifsc;type:varchar(11);not null"`
	BankName          string `gorm:"type:varchar(200)"`

	StoreName        string   `gorm:"type:varchar(200);not null"`
	StoreDescription string   `gorm:"type:text"`
	StoreCategories  []string `gorm:"type:text;serializer:json"`

	AcceptedTermsAt time.Time     `gorm:"not null"`
	Status          vendor.Status `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string        `gorm:"type:varchar(500)"`
	ApprovedAt      *time.Time
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor aggregate.
func (m *VendorModel) ToDomain() *vendor.Vendor {
	return &vendor.Vendor{
		BaseAggregateRoot: m.aggregate(),
		UserID:            m.UserID,
		OwnerName:         m.OwnerName,
		Email:             m.Email,
		Phone:             m.Phone,
		Business: vendor.Business{
			Name:      m.BusinessName,
			Type:      m.BusinessType,
			GSTNumber: m.GSTNumber,
			PANNumber: m.PANNumber,
		},
		Address: vendor.Address{
			Line1:      m.AddressLine1,
			Line2:      m.AddressLine2,
			City:       m.City,
			State:      m.State,
			PostalCode: m.PostalCode,
			Country:    m.Country,
		},
		Bank: vendor.BankAccount{
			HolderName:    m.BankHolderName,
			AccountNumber: m.BankAccountNumber,
			IFSC:          m.BankIFSC,
			BankName:      m.BankName,
		},
		Store: vendor.Store{
			Name:        m.StoreName,
			Description: m.StoreDescription,
			Categories:  m.StoreCategories,
		},
		AcceptedTermsAt: m.AcceptedTermsAt,
		Status:          m.Status,
		RejectionReason: m.RejectionReason,
		ApprovedAt:      m.ApprovedAt,
	}
}

// FromDomain populates the persistence model from a domain Vendor aggregate.
func (m *VendorModel) FromDomain(v *vendor.Vendor) {
	m.AggregateModel = aggregateModelFrom(v.BaseAggregateRoot)
	m.UserID = v.UserID
	m.OwnerName = v.OwnerName
	m.Email = v.Email
	m.Phone = v.Phone
	m.BusinessName = v.Business.Name
	m.BusinessType = v.Business.Type
	m.GSTNumber = v.Business.GSTNumber
	m.PANNumber = v.Business.PANNumber
	m.AddressLine1 = v.Address.Line1
	m.AddressLine2 = v.Address.Line2
	m.City = v.Address.City
	m.State = v.Address.State
	m.PostalCode = v.Address.PostalCode
	m.Country = v.Address.Country
	m.BankHolderName = v.Bank.HolderName
	m.BankAccountNumber = v.Bank.AccountNumber
	m.BankIFSC = v.Bank.IFSC
	m.BankName = v.Bank.BankName
	m.StoreName = v.Store.Name
	m.StoreDescription = v.Store.Description
	m.StoreCategories = v.Store.Categories
	m.AcceptedTermsAt = v.AcceptedTermsAt
	m.Status = v.Status
	m.RejectionReason = v.RejectionReason
	m.ApprovedAt = v.ApprovedAt
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor aggregate.
func VendorModelFromDomain(v *vendor.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
