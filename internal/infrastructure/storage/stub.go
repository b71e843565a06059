package storage

import (
	"context"
	"strings"
	"time"

	catalogapp "github.com/sellaids/backend/internal/application/catalog"
)

// StubObjectStorage is used when storage.enabled is false. URLs are
// deterministic and point at BaseURL; nothing is actually stored.
type StubObjectStorage struct {
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage. An empty baseURL
// defaults to a local uploads path.
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	return &StubObjectStorage{BaseURL: strings.TrimRight(baseURL, "/")}
}

var _ catalogapp.ImageStorage = (*StubObjectStorage)(nil)

// GenerateUploadURL returns BaseURL/upload/<key>
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return s.BaseURL + "/upload/" + storageKey, time.Now().Add(expiresIn), nil
}

func (s *StubObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

func (s *StubObjectStorage) KeyFromURL(rawURL string) (string, bool) {
	return keyFromURL(s.BaseURL, rawURL)
}

// DeleteObject is a no-op
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errEmptyKey
	}
	return nil
}
