package asset

import (
	"errors"
	"testing"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategory(t *testing.T) *Category {
	t.Helper()
	cat, err := NewCategory(uuid.New(), "it", "IT Equipment", 36)
	require.NoError(t, err)
	require.NoError(t, cat.SetDepreciation(MethodStraightLine, 36, decimal.NewFromFloat(0.1)))
	return cat
}

func newTestAsset(t *testing.T) *Asset {
	t.Helper()
	a, err := NewAsset(newTestCategory(t), "lap-001", "Laptop", decimal.NewFromInt(1200), valueobject.DefaultCurrency,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return a
}

func TestNewCategory(t *testing.T) {
	t.Run("defaults to straight line", func(t *testing.T) {
		cat, err := NewCategory(uuid.New(), "veh", "Vehicles", 60)
		require.NoError(t, err)
		assert.Equal(t, "VEH", cat.Code)
		assert.Equal(t, MethodStraightLine, cat.Method)
		assert.Equal(t, 1, cat.Version)
	})

	t.Run("rejects zero life", func(t *testing.T) {
		_, err := NewCategory(uuid.New(), "veh", "Vehicles", 0)
		require.Error(t, err)
	})

	t.Run("none method allows zero life", func(t *testing.T) {
		cat, _ := NewCategory(uuid.New(), "land", "Land", 1)
		require.NoError(t, cat.SetDepreciation(MethodNone, 0, decimal.Zero))
	})

	t.Run("rejects residual rate above one", func(t *testing.T) {
		cat, _ := NewCategory(uuid.New(), "land", "Land", 12)
		err := cat.SetDepreciation(MethodStraightLine, 12, decimal.NewFromFloat(1.5))
		require.Error(t, err)
	})
}

func TestParseDepreciationMethod(t *testing.T) {
	m, err := ParseDepreciationMethod("", MethodNone)
	require.NoError(t, err)
	assert.Equal(t, MethodNone, m)

	m, err = ParseDepreciationMethod(" Declining_Balance ", MethodNone)
	require.NoError(t, err)
	assert.Equal(t, MethodDecliningBalance, m)

	_, err = ParseDepreciationMethod("sum_of_years", MethodNone)
	require.Error(t, err)
}

func TestNewAsset(t *testing.T) {
	a := newTestAsset(t)

	assert.Equal(t, "LAP-001", a.Tag)
	assert.Equal(t, StatusInUse, a.Status)
	assert.Equal(t, 36, a.UsefulLifeMonths)
	assert.True(t, a.ResidualValue.Equal(decimal.NewFromInt(120)))
	assert.True(t, a.BookValue().Equal(decimal.NewFromInt(1200)))
	assert.True(t, a.DepreciableAmount().Equal(decimal.NewFromInt(1080)))

	t.Run("rejects negative cost", func(t *testing.T) {
		_, err := NewAsset(newTestCategory(t), "X", "X", decimal.NewFromInt(-1), "USD", time.Now())
		require.Error(t, err)
	})

	t.Run("requires acquisition date", func(t *testing.T) {
		_, err := NewAsset(newTestCategory(t), "X", "X", decimal.NewFromInt(1), "USD", time.Time{})
		require.Error(t, err)
	})
}

func TestAsset_MarkCreated(t *testing.T) {
	a := newTestAsset(t)
	actor := uuid.New()
	a.MarkCreated(actor)

	require.Len(t, a.GetDomainEvents(), 1)
	evt := a.GetDomainEvents()[0]
	assert.Equal(t, EventTypeAssetCreated, evt.EventType())
	assert.Equal(t, actor, evt.ActorID())
	assert.Equal(t, a.TenantID, evt.TenantID())
}

func TestAsset_Transfer(t *testing.T) {
	a := newTestAsset(t)
	loc := uuid.New()
	a.Assign(Assignment{LocationID: &loc})

	newLoc := uuid.New()
	require.NoError(t, a.Transfer(Assignment{LocationID: &newLoc}, uuid.New()))

	assert.Equal(t, newLoc, *a.LocationID)
	require.Len(t, a.GetDomainEvents(), 1)
	evt, ok := a.GetDomainEvents()[0].(*AssetTransferredEvent)
	require.True(t, ok)
	assert.Equal(t, loc, *evt.From.LocationID)
	assert.Equal(t, newLoc, *evt.To.LocationID)
}

func TestAsset_Dispose(t *testing.T) {
	a := newTestAsset(t)

	t.Run("cannot precede acquisition", func(t *testing.T) {
		err := a.Dispose(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), decimal.Zero, "", uuid.New())
		require.Error(t, err)
	})

	require.NoError(t, a.Dispose(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(300), " sold ", uuid.New()))
	assert.True(t, a.IsDisposed())
	assert.Equal(t, "sold", a.Disposal.Reason)

	t.Run("disposed asset is frozen", func(t *testing.T) {
		err := a.UpdateDetails("New", "", "", nil)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "ASSET_DISPOSED", de.Code)

		assert.Error(t, a.SetStatus(StatusInStorage))
		assert.Error(t, a.Transfer(Assignment{}, uuid.New()))
		assert.Error(t, a.Dispose(time.Now(), decimal.Zero, "", uuid.New()))
		assert.Error(t, a.PostDepreciation(decimal.NewFromInt(1)))
	})
}

func TestAsset_SetStatus(t *testing.T) {
	a := newTestAsset(t)
	require.NoError(t, a.SetStatus(StatusUnderMaintenance))
	assert.Equal(t, StatusUnderMaintenance, a.Status)
	assert.Error(t, a.SetStatus(StatusDisposed))

	_, err := ParseStatus("disposed")
	assert.Error(t, err)
}

func TestAsset_PostDepreciation(t *testing.T) {
	a := newTestAsset(t)

	require.NoError(t, a.PostDepreciation(decimal.NewFromInt(1000)))
	assert.True(t, a.BookValue().Equal(decimal.NewFromInt(200)))
	assert.False(t, a.IsFullyDepreciated())

	err := a.PostDepreciation(decimal.NewFromInt(100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below residual")

	require.NoError(t, a.PostDepreciation(decimal.NewFromInt(80)))
	assert.True(t, a.IsFullyDepreciated())
}

func TestAsset_SetFinancials(t *testing.T) {
	a := newTestAsset(t)
	require.NoError(t, a.PostDepreciation(decimal.NewFromInt(500)))

	err := a.SetFinancials(decimal.NewFromInt(600), decimal.NewFromInt(200), "USD", a.AcquisitionDate, MethodStraightLine, 36)
	require.Error(t, err)

	err = a.SetFinancials(decimal.NewFromInt(100), decimal.NewFromInt(200), "USD", a.AcquisitionDate, MethodStraightLine, 36)
	require.Error(t, err)

	require.NoError(t, a.SetFinancials(decimal.NewFromInt(2000), decimal.Zero, "EUR", a.AcquisitionDate, MethodDecliningBalance, 48))
	assert.Equal(t, valueobject.Currency("EUR"), a.Currency)
	assert.Equal(t, 48, a.UsefulLifeMonths)
}

func TestNewComponent(t *testing.T) {
	a := newTestAsset(t)

	c, err := NewComponent(a, "Battery", "BAT-1", decimal.NewFromInt(90), nil)
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.AssetID)
	assert.Equal(t, a.TenantID, c.TenantID)

	require.NoError(t, a.Dispose(time.Now(), decimal.Zero, "", uuid.New()))
	_, err = NewComponent(a, "Screen", "", decimal.NewFromInt(10), nil)
	require.Error(t, err)
}

func TestWipAsset_Lifecycle(t *testing.T) {
	cat := newTestCategory(t)
	wip, err := NewWipAsset(cat, "wip-1", "Server Room", decimal.NewFromInt(50000), "USD")
	require.NoError(t, err)
	assert.Equal(t, WipInProgress, wip.Status)

	require.NoError(t, wip.AddCost(decimal.NewFromInt(10000)))
	require.NoError(t, wip.AddCost(decimal.NewFromInt(2500)))
	assert.Error(t, wip.AddCost(decimal.Zero))
	assert.True(t, wip.AccumulatedCost.Equal(decimal.NewFromInt(12500)))

	require.NoError(t, wip.Complete())
	assert.Error(t, wip.AddCost(decimal.NewFromInt(1)))

	actor := uuid.New()
	created, err := wip.Capitalize(cat, "SRV-ROOM", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), actor)
	require.NoError(t, err)

	assert.True(t, created.AcquisitionCost.Equal(decimal.NewFromInt(12500)))
	assert.Equal(t, "Server Room", created.Name)
	assert.Equal(t, actor, *created.CreatedBy)
	assert.Equal(t, WipCapitalized, wip.Status)
	assert.Equal(t, created.ID, *wip.CapitalizedAssetID)
	require.Len(t, wip.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeWipCapitalized, wip.GetDomainEvents()[0].EventType())

	_, err = wip.Capitalize(cat, "AGAIN", time.Now(), actor)
	require.Error(t, err)
}

func TestWipAsset_CapitalizeRejectsOtherCategory(t *testing.T) {
	cat := newTestCategory(t)
	wip, _ := NewWipAsset(cat, "wip-2", "Annex", decimal.Zero, "USD")
	other := newTestCategory(t)

	_, err := wip.Capitalize(other, "ANNEX", time.Now(), uuid.New())
	require.Error(t, err)
}
