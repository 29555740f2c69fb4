package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	s := NewMemoryObjectStorage()
	ctx := context.Background()

	t.Run("upload keeps a copy", func(t *testing.T) {
		data := []byte("png")
		require.NoError(t, s.Upload(ctx, "t1/qr/abc.png", data, "image/png"))
		data[0] = 'x'

		obj, ok := s.Get("t1/qr/abc.png")
		require.True(t, ok)
		assert.Equal(t, []byte("png"), obj.Data)
		assert.Equal(t, "image/png", obj.ContentType)
	})

	t.Run("download url", func(t *testing.T) {
		u, expiresAt, err := s.GenerateDownloadURL(ctx, "t1/qr/abc.png", time.Hour)
		require.NoError(t, err)
		assert.Contains(t, u, "https://storage.example.com/download/t1/qr/abc.png?expires=")
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)
	})

	t.Run("empty key", func(t *testing.T) {
		assert.ErrorIs(t, s.Upload(ctx, "", nil, ""), ErrKeyRequired)
		_, _, err := s.GenerateDownloadURL(ctx, "", time.Hour)
		assert.ErrorIs(t, err, ErrKeyRequired)
	})
}
