package partner

import (
	"context"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerService manages suppliers, lessors, lessees and customers
type PartnerService struct {
	partnerRepo partner.Repository
}

// NewPartnerService creates a new partner service
func NewPartnerService(partnerRepo partner.Repository) *PartnerService {
	return &PartnerService{partnerRepo: partnerRepo}
}

// Create creates a partner
func (s *PartnerService) Create(ctx context.Context, input PartnerInput) (*PartnerDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	partnerType, err := partner.ParseType(input.Type)
	if err != nil {
		return nil, err
	}
	p, err := partner.NewPartner(sess.TenantID, input.Code, input.Name, partnerType)
	if err != nil {
		return nil, err
	}
	exists, err := s.partnerRepo.ExistsByCode(ctx, sess.TenantID, p.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Partner code already exists")
	}
	if err := s.apply(p, input); err != nil {
		return nil, err
	}
	p.SetCreatedBy(sess.UserID)

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	dto := toPartnerDTO(p)
	return &dto, nil
}

// Get returns a partner
func (s *PartnerService) Get(ctx context.Context, id uuid.UUID) (*PartnerDTO, error) {
	p, err := crud.Find(ctx, s.partnerRepo, id, "Partner")
	if err != nil {
		return nil, err
	}
	dto := toPartnerDTO(p)
	return &dto, nil
}

// List returns a page of partners
func (s *PartnerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PartnerDTO], error) {
	return crud.List(ctx, s.partnerRepo, filter, toPartnerDTO)
}

// Update edits a partner
func (s *PartnerService) Update(ctx context.Context, id uuid.UUID, input PartnerInput) (*PartnerDTO, error) {
	p, err := crud.Find(ctx, s.partnerRepo, id, "Partner")
	if err != nil {
		return nil, err
	}
	if err := s.apply(p, input); err != nil {
		return nil, err
	}
	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	dto := toPartnerDTO(p)
	return &dto, nil
}

// Delete removes a partner
func (s *PartnerService) Delete(ctx context.Context, id uuid.UUID) error {
	return crud.Delete(ctx, s.partnerRepo, id, "Partner")
}

func (s *PartnerService) apply(p *partner.Partner, input PartnerInput) error {
	partnerType := p.Type
	if input.Type != "" {
		t, err := partner.ParseType(input.Type)
		if err != nil {
			return err
		}
		partnerType = t
	}
	active := p.Active
	if input.Active != nil {
		active = *input.Active
	}
	return p.Update(input.Name, partnerType, input.Email, input.Phone, input.Address, input.TaxID, active)
}
