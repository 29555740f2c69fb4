package lease

import (
	"context"
	"strings"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ContractService manages contracts with partners
type ContractService struct {
	contractRepo lease.ContractRepository
	leaseRepo    lease.LeaseRepository
	partnerRepo  partner.Repository
}

// NewContractService creates a new contract service
func NewContractService(contractRepo lease.ContractRepository, leaseRepo lease.LeaseRepository, partnerRepo partner.Repository) *ContractService {
	return &ContractService{contractRepo: contractRepo, leaseRepo: leaseRepo, partnerRepo: partnerRepo}
}

// Create creates a draft contract
func (s *ContractService) Create(ctx context.Context, input CreateContractInput) (*ContractDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	contract, err := lease.NewContract(sess.TenantID, input.Number, input.Title, input.PartnerID,
		input.StartDate.Time, input.EndDate.Time, input.Value, currency)
	if err != nil {
		return nil, err
	}
	exists, err := s.contractRepo.ExistsByNumber(ctx, sess.TenantID, contract.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Contract number already exists")
	}
	if err := crud.Ensure(ctx, s.partnerRepo, sess.TenantID, &input.PartnerID, "partner_id"); err != nil {
		return nil, err
	}
	contract.Notes = strings.TrimSpace(input.Notes)
	contract.SetCreatedBy(sess.UserID)

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}
	dto := toContractDTO(contract)
	return &dto, nil
}

// Get returns a contract
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*ContractDTO, error) {
	contract, err := crud.Find(ctx, s.contractRepo, id, "Contract")
	if err != nil {
		return nil, err
	}
	dto := toContractDTO(contract)
	return &dto, nil
}

// List returns a page of contracts
func (s *ContractService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ContractDTO], error) {
	return crud.List(ctx, s.contractRepo, filter, toContractDTO)
}

// Update edits a contract and applies a requested status change
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, input UpdateContractInput) (*ContractDTO, error) {
	contract, err := crud.Find(ctx, s.contractRepo, id, "Contract")
	if err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, contract.Currency)
	if err != nil {
		return nil, err
	}
	if err := contract.Update(input.Title, input.StartDate.Time, input.EndDate.Time, input.Value, currency, input.Notes); err != nil {
		return nil, err
	}
	switch lease.ContractStatus(input.Status) {
	case lease.ContractActive:
		if contract.Status != lease.ContractActive {
			err = contract.Activate()
		}
	case lease.ContractTerminated:
		err = contract.Terminate()
	case lease.ContractDraft:
		if contract.Status != lease.ContractDraft {
			err = shared.NewDomainError("INVALID_STATE", "Contracts cannot return to draft")
		}
	}
	if err != nil {
		return nil, err
	}
	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}
	dto := toContractDTO(contract)
	return &dto, nil
}

// Delete removes a contract no lease refers to
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := session.Require(ctx)
	if err != nil {
		return err
	}
	if _, err := crud.Find(ctx, s.contractRepo, id, "Contract"); err != nil {
		return err
	}
	count, err := s.leaseRepo.CountByContract(ctx, sess.TenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CONTRACT_IN_USE", "Contract has leases")
	}
	return crud.Delete(ctx, s.contractRepo, id, "Contract")
}
