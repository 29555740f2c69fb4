package lease

import (
	"context"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractRepository persists contracts
type ContractRepository interface {
	shared.CrudRepository[Contract]
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
}

// LeaseRepository persists leases
type LeaseRepository interface {
	shared.CrudRepository[Lease]
	CountByContract(ctx context.Context, tenantID, contractID uuid.UUID) (int64, error)
}
