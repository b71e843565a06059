package auth

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType separates access tokens from refresh tokens, which are signed
// with different secrets and are not interchangeable.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carries the account identity. VendorID is set only on vendor
// access tokens; refresh tokens carry just the user and refresh count.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role,omitempty"`
	VendorID     string    `json:"vendor_id,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetVendorUUID reports false for admin tokens and malformed ids
func (c *Claims) GetVendorUUID() (uuid.UUID, bool) {
	id, err := uuid.Parse(c.VendorID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Claims) HasRole(roles ...string) bool {
	return slices.Contains(roles, c.Role)
}

func (c *Claims) GetIssuedAtTime() time.Time {
	return numericTime(c.IssuedAt)
}

func (c *Claims) GetExpiresAtTime() time.Time {
	return numericTime(c.ExpiresAt)
}

// GetRemainingTTL is how long a revocation of this token must be kept
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}
