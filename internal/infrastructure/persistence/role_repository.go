package persistence

import (
	"context"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roleCrud = GormCrudRepository[identity.Role, models.RoleModel, *models.RoleModel]

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	*roleCrud
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{
		roleCrud: newCrudRepository[identity.Role, models.RoleModel, *models.RoleModel](db, listSpec{
			search:     []string{"code", "name", "description"},
			sortFields: RoleSortFields,
			filters:    set("is_enabled", "is_system_role"),
		}),
	}
}

// FindByIDs finds roles by ID within a tenant
func (r *GormRoleRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]identity.Role, error) {
	if len(ids) == 0 {
		return []identity.Role{}, nil
	}
	return r.find(r.scoped(ctx, tenantID).Where("id IN ?", ids), "code ASC")
}

// FindByCode finds a role by code within a tenant
func (r *GormRoleRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*identity.Role, error) {
	return r.first(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

// ExistsByCode checks if a role code exists within a tenant
func (r *GormRoleRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

// Ensure GormRoleRepository implements RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)
