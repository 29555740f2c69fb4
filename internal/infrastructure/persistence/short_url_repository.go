package persistence

import (
	"context"

	"github.com/assetops/backend/internal/domain/link"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type shortURLCrud = GormCrudRepository[link.ShortURL, models.ShortURLModel, *models.ShortURLModel]

// GormShortURLRepository implements link.Repository using GORM. Codes are
// global: lookups by code ignore the tenant.
type GormShortURLRepository struct {
	*shortURLCrud
}

// NewGormShortURLRepository creates a new GormShortURLRepository
func NewGormShortURLRepository(db *gorm.DB) *GormShortURLRepository {
	return &GormShortURLRepository{
		shortURLCrud: newCrudRepository[link.ShortURL, models.ShortURLModel, *models.ShortURLModel](db, listSpec{
			search:     []string{"code", "title", "target_url"},
			sortFields: ShortURLSortFields,
			filters:    set("active", "asset_id"),
		}),
	}
}

// FindByCode finds a short URL by its code in any tenant
func (r *GormShortURLRepository) FindByCode(ctx context.Context, code string) (*link.ShortURL, error) {
	return r.first(r.where(ctx, "code = ?", code))
}

// ExistsByCode checks if a code is taken in any tenant
func (r *GormShortURLRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(r.where(ctx, "code = ?", code))
}

// IncrementClicks adds delta to the click counter. The version is unchanged.
func (r *GormShortURLRepository) IncrementClicks(ctx context.Context, id uuid.UUID, delta int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.ShortURLModel{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormShortURLRepository implements link.Repository
var _ link.Repository = (*GormShortURLRepository)(nil)
