package storage

import (
	"context"
	"io"
)

// Store persists card images and hands out time-limited read URLs.
type Store interface {
	// Upload writes the object under key, replacing any existing object.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// PresignedURL returns a time-limited URL for reading the object.
	PresignedURL(ctx context.Context, key string) (string, error)

	// Remove deletes the object. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
