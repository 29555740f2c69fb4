package asset

import (
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Component is a part fitted to an asset, tracked for maintenance and cost
type Component struct {
	shared.TenantAggregateRoot
	AssetID      uuid.UUID
	Name         string
	SerialNumber string
	Cost         decimal.Decimal
	InstalledAt  *time.Time
}

// NewComponent attaches a component to an asset that is still in the register
func NewComponent(parent *Asset, name, serialNumber string, cost decimal.Decimal, installedAt *time.Time) (*Component, error) {
	if parent.IsDisposed() {
		return nil, shared.NewDomainError("ASSET_DISPOSED", "Components cannot be added to a disposed asset")
	}
	name, err := shared.RequireName("component", name, 200)
	if err != nil {
		return nil, err
	}
	if err := valueobject.RequireNonNegative("cost", cost); err != nil {
		return nil, err
	}
	return &Component{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(parent.TenantID),
		AssetID:             parent.ID,
		Name:                name,
		SerialNumber:        strings.TrimSpace(serialNumber),
		Cost:                cost,
		InstalledAt:         installedAt,
	}, nil
}
