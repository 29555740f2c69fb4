package asset

import (
	"context"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// References groups the repositories an asset's foreign keys are checked against
type References struct {
	Locations   asset.LocationRepository
	CostCentres asset.CostCentreRepository
	Departments identity.DepartmentRepository
	Users       identity.UserRepository
	Partners    partner.Repository
}

func (r References) checkAssignment(ctx context.Context, tenantID uuid.UUID, a AssignmentInput) error {
	if err := crud.Ensure(ctx, r.Locations, tenantID, a.LocationID, "location_id"); err != nil {
		return err
	}
	if err := crud.Ensure(ctx, r.Departments, tenantID, a.DepartmentID, "department_id"); err != nil {
		return err
	}
	if err := crud.Ensure(ctx, r.CostCentres, tenantID, a.CostCentreID, "cost_centre_id"); err != nil {
		return err
	}
	return crud.Ensure(ctx, r.Users, tenantID, a.CustodianID, "custodian_id")
}

func (r References) checkSupplier(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID) error {
	return crud.Ensure(ctx, r.Partners, tenantID, supplierID, "supplier_id")
}

// AssetService manages the asset register
type AssetService struct {
	assetRepo     asset.AssetRepository
	categoryRepo  asset.CategoryRepository
	componentRepo asset.ComponentRepository
	refs          References
	publisher     shared.EventPublisher
	currency      valueobject.Currency
}

// NewAssetService creates a new asset service. Assets registered without a
// currency use valueobject.DefaultCurrency.
func NewAssetService(
	assetRepo asset.AssetRepository,
	categoryRepo asset.CategoryRepository,
	componentRepo asset.ComponentRepository,
	refs References,
	publisher shared.EventPublisher,
) *AssetService {
	return &AssetService{
		assetRepo:     assetRepo,
		categoryRepo:  categoryRepo,
		componentRepo: componentRepo,
		refs:          refs,
		publisher:     publisher,
		currency:      valueobject.DefaultCurrency,
	}
}

// Create registers an asset
func (s *AssetService) Create(ctx context.Context, input CreateAssetInput) (*AssetDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	category, err := s.category(ctx, sess.TenantID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, s.currency)
	if err != nil {
		return nil, err
	}
	a, err := asset.NewAsset(category, input.Tag, input.Name, input.AcquisitionCost, currency, input.AcquisitionDate.Time)
	if err != nil {
		return nil, err
	}
	exists, err := s.assetRepo.ExistsByTag(ctx, sess.TenantID, a.Tag)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Asset tag already exists")
	}
	if err := s.refs.checkAssignment(ctx, sess.TenantID, input.AssignmentInput); err != nil {
		return nil, err
	}
	if err := s.refs.checkSupplier(ctx, sess.TenantID, input.SupplierID); err != nil {
		return nil, err
	}
	if err := a.UpdateDetails(input.Name, input.Description, input.SerialNumber, input.SupplierID); err != nil {
		return nil, err
	}

	method, err := asset.ParseDepreciationMethod(input.DepreciationMethod, a.Method)
	if err != nil {
		return nil, err
	}
	life := a.UsefulLifeMonths
	if input.UsefulLifeMonths != nil {
		life = *input.UsefulLifeMonths
	}
	residual := a.ResidualValue
	if input.ResidualValue != nil {
		residual = *input.ResidualValue
	}
	if err := a.SetFinancials(a.AcquisitionCost, residual, currency, a.AcquisitionDate, method, life); err != nil {
		return nil, err
	}
	if input.Status != "" {
		status, err := asset.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		if err := a.SetStatus(status); err != nil {
			return nil, err
		}
	}
	a.Assign(input.toAssignment())
	a.MarkCreated(sess.UserID)

	if err := s.assetRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	crud.Publish(ctx, s.publisher, a)

	logger.L(ctx).Info("Asset registered",
		zap.String("asset_id", a.ID.String()),
		zap.String("tag", a.Tag),
		zap.String("cost", a.AcquisitionCost.String()),
	)
	dto := ToAssetDTO(a)
	return &dto, nil
}

// Get returns an asset
func (s *AssetService) Get(ctx context.Context, id uuid.UUID) (*AssetDTO, error) {
	a, err := crud.Find(ctx, s.assetRepo, id, "Asset")
	if err != nil {
		return nil, err
	}
	dto := ToAssetDTO(a)
	return &dto, nil
}

// List returns a page of assets
func (s *AssetService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[AssetDTO], error) {
	return crud.List(ctx, s.assetRepo, filter, ToAssetDTO)
}

// Update edits an asset's details, category, financials and status
func (s *AssetService) Update(ctx context.Context, id uuid.UUID, input UpdateAssetInput) (*AssetDTO, error) {
	a, err := crud.Find(ctx, s.assetRepo, id, "Asset")
	if err != nil {
		return nil, err
	}
	if a.IsDisposed() {
		return nil, shared.NewDomainError("ASSET_DISPOSED", "Disposed assets cannot be modified")
	}
	if input.CategoryID != a.CategoryID {
		category, err := s.category(ctx, a.TenantID, input.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := a.SetCategory(category); err != nil {
			return nil, err
		}
	}
	if err := s.refs.checkSupplier(ctx, a.TenantID, input.SupplierID); err != nil {
		return nil, err
	}
	if err := a.UpdateDetails(input.Name, input.Description, input.SerialNumber, input.SupplierID); err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, a.Currency)
	if err != nil {
		return nil, err
	}
	method, err := asset.ParseDepreciationMethod(input.DepreciationMethod, a.Method)
	if err != nil {
		return nil, err
	}
	if err := a.SetFinancials(
		input.AcquisitionCost, input.ResidualValue, currency,
		input.AcquisitionDate.Time, method, input.UsefulLifeMonths,
	); err != nil {
		return nil, err
	}
	status, err := asset.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if err := a.SetStatus(status); err != nil {
		return nil, err
	}

	if err := s.assetRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	dto := ToAssetDTO(a)
	return &dto, nil
}

// Transfer moves an asset to a new location, department, cost centre or custodian
func (s *AssetService) Transfer(ctx context.Context, id uuid.UUID, input TransferInput) (*AssetDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	a, err := crud.Find(ctx, s.assetRepo, id, "Asset")
	if err != nil {
		return nil, err
	}
	if err := s.refs.checkAssignment(ctx, sess.TenantID, input.AssignmentInput); err != nil {
		return nil, err
	}
	if err := a.Transfer(input.toAssignment(), sess.UserID); err != nil {
		return nil, err
	}
	if err := s.assetRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	crud.Publish(ctx, s.publisher, a)

	logger.L(ctx).Info("Asset transferred", zap.String("asset_id", a.ID.String()))
	dto := ToAssetDTO(a)
	return &dto, nil
}

// Dispose takes an asset out of service
func (s *AssetService) Dispose(ctx context.Context, id uuid.UUID, input DisposeInput) (*AssetDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	a, err := crud.Find(ctx, s.assetRepo, id, "Asset")
	if err != nil {
		return nil, err
	}
	if err := a.Dispose(input.Date.Time, input.Proceeds, input.Reason, sess.UserID); err != nil {
		return nil, err
	}
	if err := s.assetRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	crud.Publish(ctx, s.publisher, a)

	logger.L(ctx).Info("Asset disposed",
		zap.String("asset_id", a.ID.String()),
		zap.String("proceeds", input.Proceeds.String()),
	)
	dto := ToAssetDTO(a)
	return &dto, nil
}

// Delete removes an asset that never had depreciation posted. Assets with
// history must be disposed instead.
func (s *AssetService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := crud.Find(ctx, s.assetRepo, id, "Asset")
	if err != nil {
		return err
	}
	if !a.AccumulatedDepreciation.IsZero() {
		return shared.NewDomainError("ASSET_HAS_HISTORY", "Assets with posted depreciation must be disposed, not deleted")
	}
	return crud.Delete(ctx, s.assetRepo, id, "Asset")
}

// Components lists the parts fitted to an asset
func (s *AssetService) Components(ctx context.Context, assetID uuid.UUID) ([]ComponentDTO, error) {
	a, err := crud.Find(ctx, s.assetRepo, assetID, "Asset")
	if err != nil {
		return nil, err
	}
	components, err := s.componentRepo.FindByAsset(ctx, a.TenantID, a.ID)
	if err != nil {
		return nil, err
	}
	return crud.Map(components, toComponentDTO), nil
}

// AddComponent fits a part to an asset
func (s *AssetService) AddComponent(ctx context.Context, assetID uuid.UUID, input ComponentInput) (*ComponentDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	a, err := crud.Find(ctx, s.assetRepo, assetID, "Asset")
	if err != nil {
		return nil, err
	}
	component, err := asset.NewComponent(a, input.Name, input.SerialNumber, input.Cost, valueobject.DatePtr(input.InstalledAt))
	if err != nil {
		return nil, err
	}
	component.SetCreatedBy(sess.UserID)
	if err := s.componentRepo.Save(ctx, component); err != nil {
		return nil, err
	}
	dto := toComponentDTO(component)
	return &dto, nil
}

// RemoveComponent deletes a part of the given asset
func (s *AssetService) RemoveComponent(ctx context.Context, assetID, componentID uuid.UUID) error {
	component, err := crud.Find(ctx, s.componentRepo, componentID, "Component")
	if err != nil {
		return err
	}
	if component.AssetID != assetID {
		return shared.NewNotFoundError("Component")
	}
	return crud.Delete(ctx, s.componentRepo, componentID, "Component")
}

func (s *AssetService) category(ctx context.Context, tenantID, id uuid.UUID) (*asset.Category, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "category_id does not exist")
		}
		return nil, err
	}
	return category, nil
}
