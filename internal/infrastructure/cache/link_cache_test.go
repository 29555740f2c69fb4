package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assetops/backend/internal/application/link"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLinkCache struct {
	mock.Mock
}

func (m *mockLinkCache) Get(ctx context.Context, code string) (*link.Resolved, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*link.Resolved), args.Error(1)
}

func (m *mockLinkCache) Set(ctx context.Context, r *link.Resolved) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockLinkCache) Delete(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Publish(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func resolved(code string) *link.Resolved {
	return &link.Resolved{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Code:      code,
		TargetURL: "https://example.com/" + code,
		Active:    true,
	}
}

func TestLRULinkCache(t *testing.T) {
	ctx := context.Background()

	t.Run("get set delete", func(t *testing.T) {
		c := NewLRULinkCache(10, time.Minute)
		got, err := c.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, c.Set(ctx, resolved("abc")))
		got, err = c.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "https://example.com/abc", got.TargetURL)

		require.NoError(t, c.Delete(ctx, "abc"))
		got, _ = c.Get(ctx, "abc")
		assert.Nil(t, got)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		c := NewLRULinkCache(2, time.Minute)
		_ = c.Set(ctx, resolved("a"))
		_ = c.Set(ctx, resolved("b"))
		_, _ = c.Get(ctx, "a")
		_ = c.Set(ctx, resolved("c"))

		assert.Equal(t, 2, c.Len())
		got, _ := c.Get(ctx, "b")
		assert.Nil(t, got)
		got, _ = c.Get(ctx, "a")
		assert.NotNil(t, got)
	})

	t.Run("expires entries", func(t *testing.T) {
		c := NewLRULinkCache(10, 20*time.Millisecond)
		_ = c.Set(ctx, resolved("abc"))
		assert.Eventually(t, func() bool {
			got, _ := c.Get(ctx, "abc")
			return got == nil
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("codes are case-sensitive", func(t *testing.T) {
		c := NewLRULinkCache(10, time.Minute)
		_ = c.Set(ctx, resolved("Abc"))
		got, _ := c.Get(ctx, "abc")
		assert.Nil(t, got)
	})
}

func TestTieredLinkCache_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("L1 hit skips L2", func(t *testing.T) {
		l1 := NewLRULinkCache(10, time.Minute)
		l2 := new(mockLinkCache)
		_ = l1.Set(ctx, resolved("abc"))

		got, err := NewTieredLinkCache(l1, l2).Get(ctx, "abc")
		require.NoError(t, err)
		assert.NotNil(t, got)
		l2.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("L2 hit populates L1", func(t *testing.T) {
		l1 := NewLRULinkCache(10, time.Minute)
		l2 := new(mockLinkCache)
		l2.On("Get", ctx, "abc").Return(resolved("abc"), nil).Once()

		c := NewTieredLinkCache(l1, l2)
		got, err := c.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)

		cached, _ := l1.Get(ctx, "abc")
		assert.NotNil(t, cached)
		l2.AssertExpectations(t)
	})

	t.Run("L2 error is a miss", func(t *testing.T) {
		l2 := new(mockLinkCache)
		l2.On("Get", ctx, "abc").Return(nil, errors.New("connection refused"))

		got, err := NewTieredLinkCache(NewLRULinkCache(10, time.Minute), l2).Get(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestTieredLinkCache_SetDelete(t *testing.T) {
	ctx := context.Background()
	l1 := NewLRULinkCache(10, time.Minute)
	l2 := new(mockLinkCache)
	inv := new(mockInvalidator)
	c := NewTieredLinkCache(l1, l2, WithInvalidator(inv))

	r := resolved("abc")
	l2.On("Set", ctx, r).Return(errors.New("redis down")).Once()
	require.NoError(t, c.Set(ctx, r))
	cached, _ := l1.Get(ctx, "abc")
	assert.NotNil(t, cached)

	l2.On("Delete", ctx, "abc").Return(nil).Once()
	inv.On("Publish", ctx, "abc").Return(nil).Once()
	require.NoError(t, c.Delete(ctx, "abc"))
	cached, _ = l1.Get(ctx, "abc")
	assert.Nil(t, cached)

	l2.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestTieredLinkCache_InvalidateLocal(t *testing.T) {
	ctx := context.Background()
	l1 := NewLRULinkCache(10, time.Minute)
	c := NewTieredLinkCache(l1, new(mockLinkCache))
	_ = l1.Set(ctx, resolved("abc"))

	c.InvalidateLocal("abc")
	assert.Zero(t, l1.Len())
}
