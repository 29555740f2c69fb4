package identity

import (
	"context"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	shared.CrudRepository[Role]

	// FindByIDs finds roles by ID within a tenant
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Role, error)

	// FindByCode finds a role by code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Role, error)

	// ExistsByCode checks if a role code exists within a tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}
