package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepartment(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates root department", func(t *testing.T) {
		dept, err := NewDepartment(tenantID, "finance", "Finance")
		require.NoError(t, err)

		assert.Equal(t, "FINANCE", dept.Code)
		assert.Equal(t, tenantID, dept.TenantID)
		assert.Equal(t, DepartmentStatusActive, dept.Status)
		assert.Equal(t, "/"+dept.ID.String(), dept.Path)
		assert.Equal(t, 0, dept.Level)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewDepartment(tenantID, "", "Name")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewDepartment(tenantID, "CODE", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestDepartment_SetParent(t *testing.T) {
	tenantID := uuid.New()
	root, _ := NewDepartment(tenantID, "ROOT", "Root")
	child, _ := NewDepartment(tenantID, "CHILD", "Child")
	grandchild, _ := NewDepartment(tenantID, "GRAND", "Grandchild")

	require.NoError(t, child.SetParent(root))
	require.NoError(t, grandchild.SetParent(child))

	assert.Equal(t, root.Path+"/"+child.ID.String(), child.Path)
	assert.Equal(t, 2, grandchild.Level)
	assert.True(t, grandchild.IsDescendantOf(root.Path))

	t.Run("rejects self as parent", func(t *testing.T) {
		assert.Error(t, root.SetParent(root))
	})

	t.Run("rejects cycle through descendant", func(t *testing.T) {
		err := root.SetParent(grandchild)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "descendants")
	})

	t.Run("rejects parent from another tenant", func(t *testing.T) {
		other, _ := NewDepartment(uuid.New(), "OTHER", "Other")
		assert.Error(t, child.SetParent(other))
	})

	t.Run("nil parent moves to root", func(t *testing.T) {
		require.NoError(t, grandchild.SetParent(nil))
		assert.Nil(t, grandchild.ParentID)
		assert.Equal(t, 0, grandchild.Level)
	})
}

func TestDepartment_Update(t *testing.T) {
	dept, _ := NewDepartment(uuid.New(), "OPS", "Operations")
	manager := uuid.New()
	version := dept.Version

	require.NoError(t, dept.Update("Ops & Facilities", " keeps things running ", &manager, false))
	assert.Equal(t, "Ops & Facilities", dept.Name)
	assert.Equal(t, "keeps things running", dept.Description)
	assert.False(t, dept.IsActive())
	assert.Equal(t, version+1, dept.Version)
}
