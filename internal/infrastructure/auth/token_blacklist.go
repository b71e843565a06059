package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sellaids/backend/internal/infrastructure/config"
)

// TokenBlacklist revokes access and refresh tokens before they expire.
// Logout revokes one token by its JTI. Suspending a vendor revokes every
// token the user was issued up to that moment.
type TokenBlacklist interface {
	// AddToBlacklist revokes jti for ttl, normally the token's remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// AddUserTokensToBlacklist records a cutoff; tokens issued at or before
	// it are rejected
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)

const (
	revokedJTIKey  = "sellaids:revoked:jti:"
	revokedUserKey = "sellaids:revoked:user:"
)

// RedisTokenBlacklist shares revocations across API instances
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist connects to Redis and fails fast when it is unreachable
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", cfg.Addr(), err)
	}
	return &RedisTokenBlacklist{client: client}, nil
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, revokedJTIKey+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedJTIKey+jti).Result()
	if err != nil {
		return false, fmt.Errorf("lookup revoked token %s: %w", jti, err)
	}
	return n == 1, nil
}

func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := strconv.FormatInt(time.Now().Unix(), 10)
	if err := b.client.Set(ctx, revokedUserKey+userID, cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("revoke sessions of %s: %w", userID, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	cutoff, err := b.client.Get(ctx, revokedUserKey+userID).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("lookup session cutoff of %s: %w", userID, err)
	}
	return tokenIssuedAt.Unix() <= cutoff, nil
}

// Close releases the Redis connection pool
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

// InMemoryTokenBlacklist is the single-instance fallback used when Redis is
// disabled or unreachable at startup. Cutoffs are whole Unix seconds, matching
// the precision of the iat claim and the Redis implementation.
type InMemoryTokenBlacklist struct {
	mu        sync.Mutex
	tokens    map[string]time.Time // jti -> expiry
	cutoffs   map[string]userCutoff
	lastSweep time.Time
	now       func() time.Time
}

type userCutoff struct {
	at      int64
	expires time.Time
}

// sweepInterval bounds how often writes scan for expired entries
const sweepInterval = time.Minute

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens:  make(map[string]time.Time),
		cutoffs: make(map[string]userCutoff),
		now:     time.Now,
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.sweepLocked(now)
	b.tokens[jti] = now.Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	expiry, ok := b.tokens[jti]
	if ok && b.now().After(expiry) {
		delete(b.tokens, jti)
		ok = false
	}
	return ok, nil
}

func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.sweepLocked(now)
	b.cutoffs[userID] = userCutoff{at: now.Unix(), expires: now.Add(ttl)}
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cutoff, ok := b.cutoffs[userID]
	if !ok {
		return false, nil
	}
	if b.now().After(cutoff.expires) {
		delete(b.cutoffs, userID)
		return false, nil
	}
	return tokenIssuedAt.Unix() <= cutoff.at, nil
}

// Len reports how many revocations are held, expired ones included
func (b *InMemoryTokenBlacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tokens) + len(b.cutoffs)
}

func (b *InMemoryTokenBlacklist) sweepLocked(now time.Time) {
	if now.Sub(b.lastSweep) < sweepInterval {
		return
	}
	b.lastSweep = now
	for jti, expiry := range b.tokens {
		if now.After(expiry) {
			delete(b.tokens, jti)
		}
	}
	for userID, cutoff := range b.cutoffs {
		if now.After(cutoff.expires) {
			delete(b.cutoffs, userID)
		}
	}
}

// Close is a no-op so both implementations satisfy io.Closer
func (b *InMemoryTokenBlacklist) Close() error { return nil }
