package asset

import (
	"context"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository persists asset categories
type CategoryRepository interface {
	shared.CrudRepository[Category]
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// LocationRepository persists locations
type LocationRepository interface {
	shared.CrudRepository[Location]
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// CostCentreRepository persists cost centres
type CostCentreRepository interface {
	shared.CrudRepository[CostCentre]
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// AssetRepository persists assets
type AssetRepository interface {
	shared.CrudRepository[Asset]
	ExistsByTag(ctx context.Context, tenantID uuid.UUID, tag string) (bool, error)
	// CountByCategory counts assets referencing a category, used to guard deletes
	CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error)
	// FindDepreciable returns every non-disposed asset with a depreciation method
	FindDepreciable(ctx context.Context, tenantID uuid.UUID) ([]Asset, error)
}

// ComponentRepository persists asset components
type ComponentRepository interface {
	shared.CrudRepository[Component]
	FindByAsset(ctx context.Context, tenantID, assetID uuid.UUID) ([]Component, error)
}

// WipAssetRepository persists assets under construction
type WipAssetRepository interface {
	shared.CrudRepository[WipAsset]
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}
