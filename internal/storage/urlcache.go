package storage

import (
	"context"
	"io"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	urlCacheSize = 1024

	// urlCacheTTL must stay comfortably below presignExpiry so a cached
	// URL is never handed out moments before it stops working.
	urlCacheTTL = 10 * time.Minute
)

type cachedStore struct {
	inner Store
	cache *expirable.LRU[string, string]
}

// WithURLCache wraps a Store so repeated PresignedURL calls for the
// same key reuse the signed URL instead of re-signing per request.
func WithURLCache(inner Store) Store {
	return &cachedStore{
		inner: inner,
		cache: expirable.NewLRU[string, string](urlCacheSize, nil, urlCacheTTL),
	}
}

func (s *cachedStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	s.cache.Remove(key)
	return s.inner.Upload(ctx, key, r, size, contentType)
}

func (s *cachedStore) PresignedURL(ctx context.Context, key string) (string, error) {
	if u, ok := s.cache.Get(key); ok {
		return u, nil
	}
	u, err := s.inner.PresignedURL(ctx, key)
	if err != nil {
		return "", err
	}
	s.cache.Add(key, u)
	return u, nil
}

func (s *cachedStore) Remove(ctx context.Context, key string) error {
	s.cache.Remove(key)
	return s.inner.Remove(ctx, key)
}
