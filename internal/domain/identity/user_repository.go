package identity

import (
	"context"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	shared.CrudRepository[User]

	// FindByID finds a user in any tenant; used when refreshing tokens
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within a tenant
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindAllByEmail finds the users with this email across tenants
	FindAllByEmail(ctx context.Context, email string) ([]User, error)

	// ExistsByEmail checks if an email is taken within a tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// CountByRole counts the users holding a role
	CountByRole(ctx context.Context, tenantID, roleID uuid.UUID) (int64, error)
}
