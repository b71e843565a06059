package models

import (
	"time"

	"github.com/sellaids/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email        string              `gorm:"type:varchar(254);not null;uniqueIndex"`
	Name         string              `gorm:"type:varchar(200);not null"`
	Phone        string              `gorm:"type:varchar(20)"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;index"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.aggregate(),
		Email:             m.Email,
		Name:              m.Name,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.AggregateModel = aggregateModelFrom(u.BaseAggregateRoot)
	m.Email = u.Email
	m.Name = u.Name
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
