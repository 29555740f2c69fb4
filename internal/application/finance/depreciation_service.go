package finance

import (
	"context"
	"errors"
	"time"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	AssetRepo() asset.AssetRepository
	DepreciationRepo() finance.DepreciationRepository
}

// TransactionScope runs fn atomically; any error rolls back every write
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// DepreciationService posts and projects depreciation
type DepreciationService struct {
	recordRepo finance.DepreciationRepository
	assetRepo  asset.AssetRepository
	txScope    TransactionScope
	publisher  shared.EventPublisher
	now        func() time.Time
}

// NewDepreciationService creates a new depreciation service
func NewDepreciationService(
	recordRepo finance.DepreciationRepository,
	assetRepo asset.AssetRepository,
	txScope TransactionScope,
	publisher shared.EventPublisher,
) *DepreciationService {
	return &DepreciationService{
		recordRepo: recordRepo,
		assetRepo:  assetRepo,
		txScope:    txScope,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Get returns a posted record
func (s *DepreciationService) Get(ctx context.Context, id uuid.UUID) (*DepreciationRecordDTO, error) {
	record, err := crud.Find(ctx, s.recordRepo, id, "Depreciation record")
	if err != nil {
		return nil, err
	}
	dto := ToDepreciationRecordDTO(record)
	return &dto, nil
}

// List returns a page of posted records
func (s *DepreciationService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[DepreciationRecordDTO], error) {
	return crud.List(ctx, s.recordRepo, filter, ToDepreciationRecordDTO)
}

// Run posts one month of depreciation for every eligible asset of the
// tenant. Assets acquired after the period are not considered. Assets already
// posted for the period or fully depreciated are skipped. The run is atomic.
func (s *DepreciationService) Run(ctx context.Context, input RunInput) (*finance.RunResult, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	period, err := finance.ParsePeriod(input.Period)
	if err != nil {
		return nil, err
	}
	log := logger.L(ctx).With(zap.String("period", period.String()))

	result := finance.RunResult{Period: period.String()}
	postedAt := s.now()
	cutoff := period.End().AddDate(0, 0, 1)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		result.Created, result.Skipped = 0, 0
		assets, err := repos.AssetRepo().FindDepreciable(ctx, sess.TenantID)
		if err != nil {
			return err
		}
		for i := range assets {
			a := &assets[i]
			if !a.AcquisitionDate.Before(cutoff) {
				continue
			}
			posted, err := repos.DepreciationRepo().ExistsForPeriod(ctx, sess.TenantID, a.ID, result.Period)
			if err != nil {
				return err
			}
			if posted || a.IsFullyDepreciated() {
				result.Skipped++
				continue
			}
			record, err := finance.Post(a, period, postedAt)
			if errors.Is(err, finance.ErrNoDepreciationDue) {
				result.Skipped++
				continue
			}
			if err != nil {
				return err
			}
			record.SetCreatedBy(sess.UserID)
			if err := repos.DepreciationRepo().Save(ctx, record); err != nil {
				return err
			}
			if err := repos.AssetRepo().Save(ctx, a); err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		log.Error("Depreciation run failed", zap.Error(err))
		return nil, err
	}

	event := finance.NewDepreciationRunCompletedEvent(sess.TenantID, sess.UserID, result)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Error("Failed to publish depreciation run event", zap.Error(err))
		}
	}
	log.Info("Depreciation run completed",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return &result, nil
}

// Schedule projects an asset's depreciation over its useful life without
// posting anything
func (s *DepreciationService) Schedule(ctx context.Context, assetID uuid.UUID) (*ScheduleDTO, error) {
	a, err := crud.Find(ctx, s.assetRepo, assetID, "Asset")
	if err != nil {
		return nil, err
	}
	rows := finance.Schedule(a)
	dto := &ScheduleDTO{
		AssetID:          a.ID,
		Tag:              a.Tag,
		Method:           string(a.Method),
		Cost:             a.AcquisitionCost,
		Residual:         a.ResidualValue,
		UsefulLifeMonths: a.UsefulLifeMonths,
		Total:            decimal.Zero,
		Rows:             make([]ScheduleRowDTO, len(rows)),
	}
	for i, r := range rows {
		dto.Rows[i] = ScheduleRowDTO{
			Period:           r.Period,
			Amount:           r.Amount,
			AccumulatedAfter: r.AccumulatedAfter,
			BookValueAfter:   r.BookValueAfter,
		}
		dto.Total = dto.Total.Add(r.Amount)
	}
	return dto, nil
}
