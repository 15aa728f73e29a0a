package storage

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	signCalls int
	removed   []string
}

func (f *fakeStore) Upload(_ context.Context, _ string, _ io.Reader, _ int64, _ string) error {
	return nil
}

func (f *fakeStore) PresignedURL(_ context.Context, key string) (string, error) {
	f.signCalls++
	return fmt.Sprintf("https://store.local/%s?sig=%d", key, f.signCalls), nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func TestURLCache_ReusesSignedURL(t *testing.T) {
	inner := &fakeStore{}
	store := WithURLCache(inner)
	ctx := context.Background()

	first, err := store.PresignedURL(ctx, "cards/a.jpg")
	require.NoError(t, err)
	second, err := store.PresignedURL(ctx, "cards/a.jpg")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.signCalls)

	_, err = store.PresignedURL(ctx, "cards/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.signCalls)
}

func TestURLCache_UploadInvalidates(t *testing.T) {
	inner := &fakeStore{}
	store := WithURLCache(inner)
	ctx := context.Background()

	first, err := store.PresignedURL(ctx, "cards/a.jpg")
	require.NoError(t, err)

	require.NoError(t, store.Upload(ctx, "cards/a.jpg", nil, 0, "image/jpeg"))

	second, err := store.PresignedURL(ctx, "cards/a.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestURLCache_RemoveInvalidates(t *testing.T) {
	inner := &fakeStore{}
	store := WithURLCache(inner)
	ctx := context.Background()

	_, err := store.PresignedURL(ctx, "cards/a.jpg")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "cards/a.jpg"))
	assert.Equal(t, []string{"cards/a.jpg"}, inner.removed)

	_, err = store.PresignedURL(ctx, "cards/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.signCalls)
}
