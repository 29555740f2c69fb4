package qrcode

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_Encode(t *testing.T) {
	enc := NewEncoder()

	t.Run("renders a square png of the requested size", func(t *testing.T) {
		data, err := enc.Encode("https://go.example.com/s/Abc123", 256)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
		assert.Equal(t, 256, img.Bounds().Dy())
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := enc.Encode("", 256)
		assert.Error(t, err)
	})

	t.Run("rejects content over capacity", func(t *testing.T) {
		_, err := enc.Encode(strings.Repeat("x", 4000), 256)
		assert.Error(t, err)
	})
}
