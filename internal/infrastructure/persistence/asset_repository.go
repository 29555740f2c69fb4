package persistence

import (
	"context"
	"strings"

	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func codeOf(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type categoryCrud = GormCrudRepository[asset.Category, models.CategoryModel, *models.CategoryModel]

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	*categoryCrud
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{
		categoryCrud: newCrudRepository[asset.Category, models.CategoryModel, *models.CategoryModel](db, listSpec{
			search:     []string{"code", "name", "description"},
			sortFields: CategorySortFields,
			filters:    set("parent_id", "method"),
		}),
	}
}

// ExistsByCode checks if a category code exists within a tenant
func (r *GormCategoryRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

type locationCrud = GormCrudRepository[asset.Location, models.LocationModel, *models.LocationModel]

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	*locationCrud
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{
		locationCrud: newCrudRepository[asset.Location, models.LocationModel, *models.LocationModel](db, listSpec{
			search:     []string{"code", "name", "address", "city", "country"},
			sortFields: LocationSortFields,
			filters:    set("parent_id", "city", "country"),
		}),
	}
}

// ExistsByCode checks if a location code exists within a tenant
func (r *GormLocationRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

type costCentreCrud = GormCrudRepository[asset.CostCentre, models.CostCentreModel, *models.CostCentreModel]

// GormCostCentreRepository implements CostCentreRepository using GORM
type GormCostCentreRepository struct {
	*costCentreCrud
}

// NewGormCostCentreRepository creates a new GormCostCentreRepository
func NewGormCostCentreRepository(db *gorm.DB) *GormCostCentreRepository {
	return &GormCostCentreRepository{
		costCentreCrud: newCrudRepository[asset.CostCentre, models.CostCentreModel, *models.CostCentreModel](db, listSpec{
			search:     []string{"code", "name"},
			sortFields: CostCentreSortFields,
			filters:    set("department_id", "manager_id", "active"),
		}),
	}
}

// ExistsByCode checks if a cost centre code exists within a tenant
func (r *GormCostCentreRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

type assetCrud = GormCrudRepository[asset.Asset, models.AssetModel, *models.AssetModel]

// GormAssetRepository implements AssetRepository using GORM
type GormAssetRepository struct {
	*assetCrud
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{
		assetCrud: newCrudRepository[asset.Asset, models.AssetModel, *models.AssetModel](db, listSpec{
			search:     []string{"tag", "name", "description", "serial_number"},
			sortFields: AssetSortFields,
			filters: set("status", "category_id", "supplier_id", "location_id",
				"department_id", "cost_centre_id", "custodian_id", "method", "currency"),
		}),
	}
}

// ExistsByTag checks if an asset tag exists within a tenant
func (r *GormAssetRepository) ExistsByTag(ctx context.Context, tenantID uuid.UUID, tag string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("tag = ?", codeOf(tag)))
}

// CountByCategory counts assets referencing a category
func (r *GormAssetRepository) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	return r.count(r.scoped(ctx, tenantID).Where("category_id = ?", categoryID))
}

// FindDepreciable returns every non-disposed asset with a depreciation method,
// oldest acquisition first
func (r *GormAssetRepository) FindDepreciable(ctx context.Context, tenantID uuid.UUID) ([]asset.Asset, error) {
	return r.find(r.scoped(ctx, tenantID).
		Where("status <> ? AND method <> ?", asset.StatusDisposed, asset.MethodNone),
		"acquisition_date ASC, tag ASC")
}

type componentCrud = GormCrudRepository[asset.Component, models.ComponentModel, *models.ComponentModel]

// GormComponentRepository implements ComponentRepository using GORM
type GormComponentRepository struct {
	*componentCrud
}

// NewGormComponentRepository creates a new GormComponentRepository
func NewGormComponentRepository(db *gorm.DB) *GormComponentRepository {
	return &GormComponentRepository{
		componentCrud: newCrudRepository[asset.Component, models.ComponentModel, *models.ComponentModel](db, listSpec{
			search:     []string{"name", "serial_number"},
			sortFields: ComponentSortFields,
			filters:    set("asset_id"),
		}),
	}
}

// FindByAsset lists the components of an asset
func (r *GormComponentRepository) FindByAsset(ctx context.Context, tenantID, assetID uuid.UUID) ([]asset.Component, error) {
	return r.find(r.scoped(ctx, tenantID).Where("asset_id = ?", assetID), "created_at ASC")
}

type wipCrud = GormCrudRepository[asset.WipAsset, models.WipAssetModel, *models.WipAssetModel]

// GormWipAssetRepository implements WipAssetRepository using GORM
type GormWipAssetRepository struct {
	*wipCrud
}

// NewGormWipAssetRepository creates a new GormWipAssetRepository
func NewGormWipAssetRepository(db *gorm.DB) *GormWipAssetRepository {
	return &GormWipAssetRepository{
		wipCrud: newCrudRepository[asset.WipAsset, models.WipAssetModel, *models.WipAssetModel](db, listSpec{
			search:     []string{"code", "name"},
			sortFields: WipAssetSortFields,
			filters:    set("status", "category_id", "location_id"),
		}),
	}
}

// ExistsByCode checks if a WIP code exists within a tenant
func (r *GormWipAssetRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

var (
	_ asset.CategoryRepository   = (*GormCategoryRepository)(nil)
	_ asset.LocationRepository   = (*GormLocationRepository)(nil)
	_ asset.CostCentreRepository = (*GormCostCentreRepository)(nil)
	_ asset.AssetRepository      = (*GormAssetRepository)(nil)
	_ asset.ComponentRepository  = (*GormComponentRepository)(nil)
	_ asset.WipAssetRepository   = (*GormWipAssetRepository)(nil)
)
