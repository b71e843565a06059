package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/infrastructure/config"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrMissingUserID      = errors.New("missing user_id in claims")
	ErrMissingRole        = errors.New("missing role in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
	ErrSigningKeyMissing  = errors.New("jwt signing key is not configured")
)

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// GenerateTokenInput describes the account a pair is issued for
type GenerateTokenInput struct {
	UserID   uuid.UUID
	Email    string
	Role     string
	VendorID *uuid.UUID
}

// JWTService issues and verifies HS256 tokens
type JWTService struct {
	keys            map[TokenType][]byte
	ttl             map[TokenType]time.Duration
	issuer          string
	maxRefreshCount int
}

// NewJWTService signs refresh tokens with RefreshSecret, or with Secret when
// no separate refresh secret is configured.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		keys: map[TokenType][]byte{
			TokenTypeAccess:  []byte(cfg.Secret),
			TokenTypeRefresh: []byte(refreshSecret),
		},
		ttl: map[TokenType]time.Duration{
			TokenTypeAccess:  cfg.AccessTokenExpiration,
			TokenTypeRefresh: cfg.RefreshTokenExpiration,
		},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
	}
}

func (s *JWTService) GetRefreshTokenExpiration() time.Duration {
	return s.ttl[TokenTypeRefresh]
}

func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	return s.issuePair(input, 0)
}

// RefreshTokenPair issues a new pair for validated refresh claims. input is
// rebuilt from the stored account, so role or vendor changes apply on
// refresh.
func (s *JWTService) RefreshTokenPair(refreshClaims *Claims, input GenerateTokenInput) (*TokenPair, error) {
	if refreshClaims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}
	if refreshClaims.UserID != input.UserID.String() {
		return nil, ErrInvalidClaims
	}
	return s.issuePair(input, refreshClaims.RefreshCount+1)
}

func (s *JWTService) issuePair(input GenerateTokenInput, refreshCount int) (*TokenPair, error) {
	now := time.Now()

	access := s.newClaims(TokenTypeAccess, input.UserID, now)
	access.Email = input.Email
	access.Role = input.Role
	if input.VendorID != nil {
		access.VendorID = input.VendorID.String()
	}
	accessToken, err := s.sign(access)
	if err != nil {
		return nil, err
	}

	refresh := s.newClaims(TokenTypeRefresh, input.UserID, now)
	refresh.RefreshCount = refreshCount
	refreshToken, err := s.sign(refresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  access.ExpiresAt.Time,
		RefreshTokenExpiresAt: refresh.ExpiresAt.Time,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) newClaims(typ TokenType, userID uuid.UUID, now time.Time) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl[typ])),
		},
		UserID:    userID.String(),
		TokenType: typ,
	}
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	key := s.keys[claims.TokenType]
	if len(key) == 0 {
		return "", ErrSigningKeyMissing
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ValidateAccessToken also requires a role, which refresh tokens never carry
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	if claims.Role == "" {
		return nil, ErrMissingRole
	}
	return claims, nil
}

func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, TokenTypeRefresh)
}

func (s *JWTService) parse(tokenString string, want TokenType) (*Claims, error) {
	key := s.keys[want]
	if len(key) == 0 {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.TokenType != want {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}
