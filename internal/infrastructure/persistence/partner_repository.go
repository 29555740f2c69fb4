package persistence

import (
	"context"

	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type partnerCrud = GormCrudRepository[partner.Partner, models.PartnerModel, *models.PartnerModel]

// GormPartnerRepository implements partner.Repository using GORM
type GormPartnerRepository struct {
	*partnerCrud
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{
		partnerCrud: newCrudRepository[partner.Partner, models.PartnerModel, *models.PartnerModel](db, listSpec{
			search:     []string{"code", "name", "email", "phone", "tax_id"},
			sortFields: PartnerSortFields,
			filters:    set("type", "active"),
		}),
	}
}

// ExistsByCode checks if a partner code exists within a tenant
func (r *GormPartnerRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

// Ensure GormPartnerRepository implements partner.Repository
var _ partner.Repository = (*GormPartnerRepository)(nil)
