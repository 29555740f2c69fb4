package persistence

import (
	"context"

	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contractCrud = GormCrudRepository[lease.Contract, models.ContractModel, *models.ContractModel]

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	*contractCrud
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{
		contractCrud: newCrudRepository[lease.Contract, models.ContractModel, *models.ContractModel](db, listSpec{
			search:     []string{"number", "title", "notes"},
			sortFields: ContractSortFields,
			filters:    set("status", "partner_id", "currency"),
		}),
	}
}

// ExistsByNumber checks if a contract number exists within a tenant
func (r *GormContractRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("number = ?", codeOf(number)))
}

type leaseCrud = GormCrudRepository[lease.Lease, models.LeaseModel, *models.LeaseModel]

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	*leaseCrud
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{
		leaseCrud: newCrudRepository[lease.Lease, models.LeaseModel, *models.LeaseModel](db, listSpec{
			sortFields: LeaseSortFields,
			filters:    set("status", "direction", "contract_id", "asset_id", "partner_id", "frequency"),
		}),
	}
}

// CountByContract counts the leases under a contract
func (r *GormLeaseRepository) CountByContract(ctx context.Context, tenantID, contractID uuid.UUID) (int64, error) {
	return r.count(r.scoped(ctx, tenantID).Where("contract_id = ?", contractID))
}

var (
	_ lease.ContractRepository = (*GormContractRepository)(nil)
	_ lease.LeaseRepository    = (*GormLeaseRepository)(nil)
)
