package finance

import (
	"context"
	"strings"
	"time"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ForexService manages exchange rates and conversions
type ForexService struct {
	rateRepo finance.ForexRateRepository
	now      func() time.Time
}

// NewForexService creates a new forex service
func NewForexService(rateRepo finance.ForexRateRepository) *ForexService {
	return &ForexService{rateRepo: rateRepo, now: time.Now}
}

// Create records a rate. One rate per pair and effective date.
func (s *ForexService) Create(ctx context.Context, input CreateForexRateInput) (*ForexRateDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	base, err := valueobject.ParseCurrency(input.Base, "")
	if err != nil {
		return nil, err
	}
	quote, err := valueobject.ParseCurrency(input.Quote, "")
	if err != nil {
		return nil, err
	}
	rate, err := finance.NewForexRate(sess.TenantID, base, quote, input.Rate, input.EffectiveDate.Time)
	if err != nil {
		return nil, err
	}
	exists, err := s.rateRepo.Exists(ctx, sess.TenantID, rate.Base, rate.Quote, rate.EffectiveDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A rate for this pair and date already exists")
	}
	rate.SetCreatedBy(sess.UserID)

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	dto := toForexRateDTO(rate)
	return &dto, nil
}

// Get returns a rate
func (s *ForexService) Get(ctx context.Context, id uuid.UUID) (*ForexRateDTO, error) {
	rate, err := crud.Find(ctx, s.rateRepo, id, "Forex rate")
	if err != nil {
		return nil, err
	}
	dto := toForexRateDTO(rate)
	return &dto, nil
}

// List returns a page of rates
func (s *ForexService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ForexRateDTO], error) {
	return crud.List(ctx, s.rateRepo, filter, toForexRateDTO)
}

// Update changes a rate's value or effective date
func (s *ForexService) Update(ctx context.Context, id uuid.UUID, input UpdateForexRateInput) (*ForexRateDTO, error) {
	rate, err := crud.Find(ctx, s.rateRepo, id, "Forex rate")
	if err != nil {
		return nil, err
	}
	previous := rate.EffectiveDate
	if err := rate.Update(input.Rate, input.EffectiveDate.Time); err != nil {
		return nil, err
	}
	if !rate.EffectiveDate.Equal(previous) {
		exists, err := s.rateRepo.Exists(ctx, rate.TenantID, rate.Base, rate.Quote, rate.EffectiveDate)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A rate for this pair and date already exists")
		}
	}
	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	dto := toForexRateDTO(rate)
	return &dto, nil
}

// Delete removes a rate
func (s *ForexService) Delete(ctx context.Context, id uuid.UUID) error {
	return crud.Delete(ctx, s.rateRepo, id, "Forex rate")
}

// Convert converts an amount using the latest rate effective on the date,
// direct or inverse. The date defaults to today.
func (s *ForexService) Convert(ctx context.Context, input ConvertInput) (*ConversionDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	from, err := valueobject.ParseCurrency(input.From, "")
	if err != nil {
		return nil, err
	}
	to, err := valueobject.ParseCurrency(input.To, "")
	if err != nil {
		return nil, err
	}
	on := finance.DateOnly(s.now())
	if strings.TrimSpace(input.Date) != "" {
		d, err := valueobject.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
		on = d.Time
	}

	var candidates []*finance.ForexRate
	if from != to {
		direct, err := s.rateRepo.FindLatest(ctx, sess.TenantID, from, to, on)
		if err != nil {
			return nil, err
		}
		inverse, err := s.rateRepo.FindLatest(ctx, sess.TenantID, to, from, on)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, direct, inverse)
	}
	conv, err := finance.Convert(input.Amount, from, to, candidates...)
	if err != nil {
		return nil, err
	}
	dto := &ConversionDTO{
		From:    conv.From.String(),
		To:      conv.To.String(),
		Amount:  conv.Amount,
		Result:  conv.Result,
		Rate:    conv.Rate,
		Inverse: conv.Inverse,
	}
	if conv.EffectiveDate != nil {
		d := valueobject.NewDate(*conv.EffectiveDate)
		dto.EffectiveDate = &d
	}
	return dto, nil
}
