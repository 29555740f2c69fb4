package lease

import (
	"context"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeaseService manages leases and their payment schedules
type LeaseService struct {
	leaseRepo    lease.LeaseRepository
	contractRepo lease.ContractRepository
	assetRepo    asset.AssetRepository
	partnerRepo  partner.Repository
	publisher    shared.EventPublisher
}

// NewLeaseService creates a new lease service
func NewLeaseService(
	leaseRepo lease.LeaseRepository,
	contractRepo lease.ContractRepository,
	assetRepo asset.AssetRepository,
	partnerRepo partner.Repository,
	publisher shared.EventPublisher,
) *LeaseService {
	return &LeaseService{
		leaseRepo:    leaseRepo,
		contractRepo: contractRepo,
		assetRepo:    assetRepo,
		partnerRepo:  partnerRepo,
		publisher:    publisher,
	}
}

// Create creates an active lease
func (s *LeaseService) Create(ctx context.Context, input LeaseInput) (*LeaseDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	direction, terms, err := parseTerms(input, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	l, err := lease.NewLease(sess.TenantID, input.AssetID, input.PartnerID, direction, terms)
	if err != nil {
		return nil, err
	}
	if err := crud.Ensure(ctx, s.assetRepo, sess.TenantID, &input.AssetID, "asset_id"); err != nil {
		return nil, err
	}
	if err := crud.Ensure(ctx, s.partnerRepo, sess.TenantID, &input.PartnerID, "partner_id"); err != nil {
		return nil, err
	}
	if err := crud.Ensure(ctx, s.contractRepo, sess.TenantID, input.ContractID, "contract_id"); err != nil {
		return nil, err
	}
	l.ContractID = input.ContractID
	l.SetCreatedBy(sess.UserID)

	if err := s.leaseRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	dto := ToLeaseDTO(l)
	return &dto, nil
}

// Get returns a lease
func (s *LeaseService) Get(ctx context.Context, id uuid.UUID) (*LeaseDTO, error) {
	l, err := crud.Find(ctx, s.leaseRepo, id, "Lease")
	if err != nil {
		return nil, err
	}
	dto := ToLeaseDTO(l)
	return &dto, nil
}

// List returns a page of leases
func (s *LeaseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[LeaseDTO], error) {
	return crud.List(ctx, s.leaseRepo, filter, ToLeaseDTO)
}

// Update replaces the terms of an active lease
func (s *LeaseService) Update(ctx context.Context, id uuid.UUID, input LeaseInput) (*LeaseDTO, error) {
	l, err := crud.Find(ctx, s.leaseRepo, id, "Lease")
	if err != nil {
		return nil, err
	}
	direction, terms, err := parseTerms(input, l.Currency)
	if err != nil {
		return nil, err
	}
	if err := crud.Ensure(ctx, s.contractRepo, l.TenantID, input.ContractID, "contract_id"); err != nil {
		return nil, err
	}
	if err := l.Update(input.ContractID, direction, terms); err != nil {
		return nil, err
	}
	if err := s.leaseRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	dto := ToLeaseDTO(l)
	return &dto, nil
}

// Delete removes a lease
func (s *LeaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return crud.Delete(ctx, s.leaseRepo, id, "Lease")
}

// Schedule lists the lease payments with their present values
func (s *LeaseService) Schedule(ctx context.Context, id uuid.UUID) (*ScheduleDTO, error) {
	l, err := crud.Find(ctx, s.leaseRepo, id, "Lease")
	if err != nil {
		return nil, err
	}
	rows := l.Schedule()
	dto := &ScheduleDTO{
		LeaseID:       l.ID,
		Currency:      l.Currency.String(),
		PresentValue:  l.PresentValue(),
		TotalPayments: l.TotalPayments(),
		Rows:          make([]ScheduleRowDTO, len(rows)),
	}
	for i, r := range rows {
		dto.Rows[i] = ScheduleRowDTO{
			Number:         r.Number,
			Date:           valueobject.NewDate(r.Date),
			Amount:         r.Amount,
			DiscountFactor: r.DiscountFactor,
			PresentValue:   r.PresentValue,
			RunningTotal:   r.RunningTotal,
		}
	}
	return dto, nil
}

// Terminate ends an active lease early
func (s *LeaseService) Terminate(ctx context.Context, id uuid.UUID, input TerminateInput) (*LeaseDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	l, err := crud.Find(ctx, s.leaseRepo, id, "Lease")
	if err != nil {
		return nil, err
	}
	if err := l.Terminate(input.Date.Time, sess.UserID); err != nil {
		return nil, err
	}
	if err := s.leaseRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	crud.Publish(ctx, s.publisher, l)

	logger.L(ctx).Info("Lease terminated",
		zap.String("lease_id", l.ID.String()),
		zap.Time("end_date", l.EndDate),
	)
	dto := ToLeaseDTO(l)
	return &dto, nil
}

func parseTerms(input LeaseInput, fallback valueobject.Currency) (lease.Direction, lease.Terms, error) {
	direction, err := lease.ParseDirection(input.Direction)
	if err != nil {
		return "", lease.Terms{}, err
	}
	frequency, err := lease.ParseFrequency(input.Frequency)
	if err != nil {
		return "", lease.Terms{}, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, fallback)
	if err != nil {
		return "", lease.Terms{}, err
	}
	return direction, lease.Terms{
		StartDate:    input.StartDate.Time,
		EndDate:      input.EndDate.Time,
		Payment:      input.PaymentAmount,
		Frequency:    frequency,
		Currency:     currency,
		DiscountRate: input.DiscountRate,
	}, nil
}
