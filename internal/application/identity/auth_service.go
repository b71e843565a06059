package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/identity"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/domain/vendor"
	"github.com/sellaids/backend/internal/infrastructure/auth"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	vendorRepo vendor.VendorRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	vendorRepo vendor.VendorRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		vendorRepo: vendorRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// Login authenticates a user and returns tokens. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()

	email := identity.NormalizeEmail(input.Email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, errInvalidCredentials
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}
	if !user.CanLogin() {
		s.logger.Warn("Login attempt for disabled account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	info, tokenInput, err := s.describe(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(tokenInput)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	info.LastLoginAt = user.LastLoginAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		// The login itself succeeded
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		TokenType:    pair.TokenType,
		User:         *info,
	}, nil
}

// RefreshToken issues a new token pair from a valid refresh token. Role and
// vendor are reloaded so that changes since login take effect.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, refreshError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	if s.blacklist != nil {
		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			s.logger.Error("Failed to check token revocation", zap.Error(err))
		} else if invalidated {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Session has been revoked. Please log in again")
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "User no longer exists")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	info, tokenInput, err := s.describe(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(claims, tokenInput)
	if err != nil {
		return nil, refreshError(err)
	}

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		TokenType:    pair.TokenType,
		User:         *info,
	}, nil
}

func refreshError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}

// Logout revokes the presented access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenJTI == "" {
		return nil
	}
	ttl := time.Until(input.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.WrapDomainError("SERVICE_UNAVAILABLE", "Failed to revoke token", err)
	}
	return nil
}

// RevokeUserSessions invalidates every token issued to the user so far
func (s *AuthService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	if s.blacklist == nil {
		return nil
	}
	return s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration())
}

// GetCurrentUser returns the account of the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info, _, err := s.describe(ctx, user)
	return info, err
}

// BootstrapAdmin creates the configured admin account when no user with
// that email exists. It reports whether an account was created.
func (s *AuthService) BootstrapAdmin(ctx context.Context, input BootstrapAdminInput) (bool, error) {
	email := identity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return false, nil
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	name := input.Name
	if name == "" {
		name = "Administrator"
	}
	admin, err := identity.NewUser(email, name, input.Password, identity.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("Bootstrap admin account created", zap.String("email", admin.Email))
	return true, nil
}

// describe builds the user summary and token claims, resolving the vendor
// record for vendor accounts.
func (s *AuthService) describe(ctx context.Context, user *identity.User) (*UserInfo, auth.GenerateTokenInput, error) {
	info := &UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
	}
	tokenInput := auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}

	if user.IsVendor() {
		v, err := s.vendorRepo.FindByUserID(ctx, user.ID)
		switch {
		case err == nil:
			info.VendorID = &v.ID
			info.VendorStatus = string(v.Status)
			tokenInput.VendorID = &v.ID
		case errors.Is(err, shared.ErrNotFound):
			s.logger.Warn("Vendor account without vendor record", zap.String("user_id", user.ID.String()))
		default:
			return nil, tokenInput, err
		}
	}
	return info, tokenInput, nil
}
