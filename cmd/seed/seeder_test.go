package main

import (
	"context"
	"testing"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/persistence"
	"github.com/assetops/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions() Options {
	return Options{
		TenantCode:    "demo",
		TenantName:    "Demo Holdings",
		AdminEmail:    "admin@demo.test",
		AdminPassword: "Demo-pass-123",
		Count:         12,
		Seed:          42,
	}
}

func TestSeeder_Run(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	sum, err := newSeeder(db, zap.NewNop(), 42).Run(ctx, testOptions())
	require.NoError(t, err)

	assert.Equal(t, len(categoryNames), sum.Categories)
	assert.Equal(t, 3, sum.Locations)
	assert.Equal(t, 3, sum.Partners)
	assert.Equal(t, 12, sum.Assets)
	assert.Equal(t, 3, sum.Leases, "assets 0, 5 and 10 are leased")
	assert.Equal(t, len(quoteCurrencies), sum.ForexRates)

	total, err := persistence.NewGormAssetRepository(db).CountForTenant(ctx, sum.TenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)

	admin, err := persistence.NewGormUserRepository(db).FindByEmail(ctx, sum.TenantID, "admin@demo.test")
	require.NoError(t, err)
	assert.True(t, admin.VerifyPassword("Demo-pass-123"))
}

func TestSeeder_RunTwiceRejectsTenant(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	_, err := newSeeder(db, zap.NewNop(), 1).Run(context.Background(), testOptions())
	require.NoError(t, err)

	_, err = newSeeder(db, zap.NewNop(), 1).Run(context.Background(), testOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}
