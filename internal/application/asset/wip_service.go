package asset

import (
	"context"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	AssetRepo() asset.AssetRepository
	WipAssetRepo() asset.WipAssetRepository
}

// TransactionScope runs fn atomically; any error rolls back every write
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// WipAssetService manages assets under construction
type WipAssetService struct {
	wipRepo      asset.WipAssetRepository
	assetRepo    asset.AssetRepository
	categoryRepo asset.CategoryRepository
	locationRepo asset.LocationRepository
	txScope      TransactionScope
	publisher    shared.EventPublisher
}

// NewWipAssetService creates a new WIP asset service
func NewWipAssetService(
	wipRepo asset.WipAssetRepository,
	assetRepo asset.AssetRepository,
	categoryRepo asset.CategoryRepository,
	locationRepo asset.LocationRepository,
	txScope TransactionScope,
	publisher shared.EventPublisher,
) *WipAssetService {
	return &WipAssetService{
		wipRepo:      wipRepo,
		assetRepo:    assetRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		txScope:      txScope,
		publisher:    publisher,
	}
}

// Create starts tracking an asset under construction
func (s *WipAssetService) Create(ctx context.Context, input CreateWipAssetInput) (*WipAssetDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByIDForTenant(ctx, sess.TenantID, input.CategoryID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "category_id does not exist")
		}
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	wip, err := asset.NewWipAsset(category, input.Code, input.Name, input.BudgetAmount, currency)
	if err != nil {
		return nil, err
	}
	exists, err := s.wipRepo.ExistsByCode(ctx, sess.TenantID, wip.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "WIP asset code already exists")
	}
	if err := crud.Ensure(ctx, s.locationRepo, sess.TenantID, input.LocationID, "location_id"); err != nil {
		return nil, err
	}
	wip.LocationID = input.LocationID
	wip.SetCreatedBy(sess.UserID)

	if err := s.wipRepo.Save(ctx, wip); err != nil {
		return nil, err
	}
	dto := toWipAssetDTO(wip)
	return &dto, nil
}

// Get returns a WIP asset
func (s *WipAssetService) Get(ctx context.Context, id uuid.UUID) (*WipAssetDTO, error) {
	wip, err := crud.Find(ctx, s.wipRepo, id, "WIP asset")
	if err != nil {
		return nil, err
	}
	dto := toWipAssetDTO(wip)
	return &dto, nil
}

// List returns a page of WIP assets
func (s *WipAssetService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WipAssetDTO], error) {
	return crud.List(ctx, s.wipRepo, filter, toWipAssetDTO)
}

// Update edits open work and optionally completes or cancels it
func (s *WipAssetService) Update(ctx context.Context, id uuid.UUID, input UpdateWipAssetInput) (*WipAssetDTO, error) {
	wip, err := crud.Find(ctx, s.wipRepo, id, "WIP asset")
	if err != nil {
		return nil, err
	}
	if err := crud.Ensure(ctx, s.locationRepo, wip.TenantID, input.LocationID, "location_id"); err != nil {
		return nil, err
	}
	if err := wip.Update(input.Name, input.LocationID, input.BudgetAmount, input.ProgressPercent); err != nil {
		return nil, err
	}
	switch asset.WipStatus(input.Status) {
	case asset.WipCompleted:
		if wip.Status != asset.WipCompleted {
			err = wip.Complete()
		}
	case asset.WipCancelled:
		err = wip.Cancel()
	case asset.WipInProgress:
		if wip.Status != asset.WipInProgress {
			err = shared.NewDomainError("INVALID_STATE", "Completed work cannot be reopened")
		}
	}
	if err != nil {
		return nil, err
	}
	if err := s.wipRepo.Save(ctx, wip); err != nil {
		return nil, err
	}
	dto := toWipAssetDTO(wip)
	return &dto, nil
}

// Delete removes a WIP asset that was never capitalized
func (s *WipAssetService) Delete(ctx context.Context, id uuid.UUID) error {
	wip, err := crud.Find(ctx, s.wipRepo, id, "WIP asset")
	if err != nil {
		return err
	}
	if wip.Status == asset.WipCapitalized {
		return shared.NewDomainError("INVALID_STATE", "Capitalized work in progress cannot be deleted")
	}
	return crud.Delete(ctx, s.wipRepo, id, "WIP asset")
}

// AddCost books a construction cost
func (s *WipAssetService) AddCost(ctx context.Context, id uuid.UUID, input AddCostInput) (*WipAssetDTO, error) {
	wip, err := crud.Find(ctx, s.wipRepo, id, "WIP asset")
	if err != nil {
		return nil, err
	}
	if err := wip.AddCost(input.Amount); err != nil {
		return nil, err
	}
	if err := s.wipRepo.Save(ctx, wip); err != nil {
		return nil, err
	}
	dto := toWipAssetDTO(wip)
	return &dto, nil
}

// Capitalize turns the work into a registered asset
func (s *WipAssetService) Capitalize(ctx context.Context, id uuid.UUID, input CapitalizeInput) (*CapitalizeResult, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	wip, err := crud.Find(ctx, s.wipRepo, id, "WIP asset")
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByIDForTenant(ctx, sess.TenantID, wip.CategoryID)
	if err != nil {
		return nil, shared.MapNotFound(err, "Category")
	}
	created, err := wip.Capitalize(category, input.Tag, input.AcquisitionDate.Time, sess.UserID)
	if err != nil {
		return nil, err
	}
	exists, err := s.assetRepo.ExistsByTag(ctx, sess.TenantID, created.Tag)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Asset tag already exists")
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.AssetRepo().Save(ctx, created); err != nil {
			return err
		}
		return repos.WipAssetRepo().Save(ctx, wip)
	})
	if err != nil {
		return nil, err
	}
	crud.Publish(ctx, s.publisher, created)
	crud.Publish(ctx, s.publisher, wip)

	logger.L(ctx).Info("WIP asset capitalized",
		zap.String("wip_id", wip.ID.String()),
		zap.String("asset_id", created.ID.String()),
		zap.String("cost", created.AcquisitionCost.String()),
	)
	return &CapitalizeResult{WipAsset: toWipAssetDTO(wip), Asset: ToAssetDTO(created)}, nil
}
