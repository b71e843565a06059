package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
	User         UserInfo  `json:"user"`
}

// UserInfo is the account summary returned by login and /auth/me
type UserInfo struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"`
	Role         string     `json:"role"`
	VendorID     *uuid.UUID `json:"vendor_id,omitempty"`
	VendorStatus string     `json:"vendor_status,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	TokenJTI  string
	ExpiresAt time.Time
}

// BootstrapAdminInput describes the admin account created on first start
type BootstrapAdminInput struct {
	Email    string
	Password string
	Name     string
}
