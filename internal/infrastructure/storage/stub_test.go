package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubVoucherStorage_Upload(t *testing.T) {
	t.Run("stores content and returns a URL", func(t *testing.T) {
		s := NewStubVoucherStorage()

		url, err := s.Upload(context.Background(), "vouchers/t1/v1.png", strings.NewReader("data"), 4, "image/png")

		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/vouchers/t1/v1.png", url)

		data, ok := s.Object("vouchers/t1/v1.png")
		require.True(t, ok)
		assert.Equal(t, []byte("data"), data)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		s := NewStubVoucherStorage()

		_, err := s.Upload(context.Background(), "", strings.NewReader("data"), 4, "image/png")
		assert.Error(t, err)
	})
}
