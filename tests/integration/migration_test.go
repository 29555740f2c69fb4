//go:build integration

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_RoundTrip(t *testing.T) {
	tdb := NewTestDB(t)

	m := NewMigrator(t, tdb.DSN)
	t.Cleanup(func() { _ = m.Close() })

	status, err := m.Status()
	require.NoError(t, err)
	assert.False(t, status.Dirty)
	assert.Equal(t, status.Latest, status.Version)
	assert.Zero(t, status.Pending)

	tables := []string{"tenants", "users", "roles", "assets", "asset_categories", "leases", "short_urls", "notifications"}
	for _, table := range tables {
		assert.True(t, tdb.DB.Migrator().HasTable(table), "table %s should exist", table)
	}

	require.NoError(t, m.Down(0))
	status, err = m.Status()
	require.NoError(t, err)
	assert.Zero(t, status.Version)
	assert.False(t, tdb.DB.Migrator().HasTable("assets"))

	require.NoError(t, m.Up())
	assert.True(t, tdb.DB.Migrator().HasTable("assets"))
}
