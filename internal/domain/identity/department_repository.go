package identity

import (
	"context"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DepartmentRepository defines the interface for department persistence
type DepartmentRepository interface {
	shared.CrudRepository[Department]

	// ExistsByCode checks if a department code exists within a tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// CountChildren counts the direct children of a department
	CountChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int64, error)
}
