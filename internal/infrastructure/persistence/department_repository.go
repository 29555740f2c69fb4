package persistence

import (
	"context"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type departmentCrud = GormCrudRepository[identity.Department, models.DepartmentModel, *models.DepartmentModel]

// GormDepartmentRepository implements DepartmentRepository using GORM
type GormDepartmentRepository struct {
	*departmentCrud
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{
		departmentCrud: newCrudRepository[identity.Department, models.DepartmentModel, *models.DepartmentModel](db, listSpec{
			search:     []string{"code", "name", "description"},
			sortFields: DepartmentSortFields,
			filters:    set("status", "parent_id", "manager_id", "level"),
		}),
	}
}

// ExistsByCode checks if a department code exists within a tenant
func (r *GormDepartmentRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

// CountChildren counts the direct children of a department
func (r *GormDepartmentRepository) CountChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int64, error) {
	return r.count(r.scoped(ctx, tenantID).Where("parent_id = ?", parentID))
}

// Ensure GormDepartmentRepository implements DepartmentRepository
var _ identity.DepartmentRepository = (*GormDepartmentRepository)(nil)
