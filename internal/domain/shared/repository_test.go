package shared

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.NotNil(t, f.Filters)

	f = Filter{Page: 3, PageSize: 0}.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, 40, f.Offset())

	f = Filter{Page: 1, PageSize: -5}.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize, "negative sizes use the default, not 1")

	f = Filter{Page: 1, PageSize: 1}.Normalize()
	assert.Equal(t, 1, f.PageSize)
}

func TestFilter_WithDoesNotMutateOriginal(t *testing.T) {
	base := DefaultFilter()
	scoped := base.With("status", "active")

	assert.Empty(t, base.Filters)
	assert.Equal(t, "active", scoped.Filters["status"])
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPaginated[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", ErrNotFound)
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsNotFound(NewDomainError("NOT_FOUND", "Asset not found")))
	assert.False(t, IsNotFound(ErrAlreadyExists))
}

func TestMapNotFound(t *testing.T) {
	err := MapNotFound(fmt.Errorf("find: %w", ErrNotFound), "Asset")
	var derr *DomainError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOT_FOUND", derr.Code)
	assert.Equal(t, "Asset not found", derr.Message)

	other := fmt.Errorf("boom")
	assert.Same(t, other, MapNotFound(other, "Asset"))
	assert.NoError(t, MapNotFound(nil, "Asset"))
}
