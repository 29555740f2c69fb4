package asset

import (
	"context"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LocationService manages locations
type LocationService struct {
	locationRepo asset.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo asset.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// Create creates a location
func (s *LocationService) Create(ctx context.Context, input LocationInput) (*LocationDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	location, err := asset.NewLocation(sess.TenantID, input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.locationRepo.ExistsByCode(ctx, sess.TenantID, location.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Location code already exists")
	}
	if err := s.apply(ctx, location, input); err != nil {
		return nil, err
	}
	location.SetCreatedBy(sess.UserID)

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	dto := toLocationDTO(location)
	return &dto, nil
}

// Get returns a location
func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (*LocationDTO, error) {
	location, err := crud.Find(ctx, s.locationRepo, id, "Location")
	if err != nil {
		return nil, err
	}
	dto := toLocationDTO(location)
	return &dto, nil
}

// List returns a page of locations
func (s *LocationService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[LocationDTO], error) {
	return crud.List(ctx, s.locationRepo, filter, toLocationDTO)
}

// Update edits a location
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, input LocationInput) (*LocationDTO, error) {
	location, err := crud.Find(ctx, s.locationRepo, id, "Location")
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, location, input); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	dto := toLocationDTO(location)
	return &dto, nil
}

// Delete removes a location
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	return crud.Delete(ctx, s.locationRepo, id, "Location")
}

func (s *LocationService) apply(ctx context.Context, location *asset.Location, input LocationInput) error {
	if input.ParentID != nil && *input.ParentID != location.ID {
		if err := crud.Ensure(ctx, s.locationRepo, location.TenantID, input.ParentID, "parent_id"); err != nil {
			return err
		}
	}
	return location.Update(input.Name, input.Address, input.City, input.Country, input.ParentID)
}

// CostCentreService manages cost centres
type CostCentreService struct {
	costCentreRepo asset.CostCentreRepository
	deptRepo       identity.DepartmentRepository
	userRepo       identity.UserRepository
}

// NewCostCentreService creates a new cost centre service
func NewCostCentreService(
	costCentreRepo asset.CostCentreRepository,
	deptRepo identity.DepartmentRepository,
	userRepo identity.UserRepository,
) *CostCentreService {
	return &CostCentreService{costCentreRepo: costCentreRepo, deptRepo: deptRepo, userRepo: userRepo}
}

// Create creates a cost centre
func (s *CostCentreService) Create(ctx context.Context, input CostCentreInput) (*CostCentreDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	cc, err := asset.NewCostCentre(sess.TenantID, input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.costCentreRepo.ExistsByCode(ctx, sess.TenantID, cc.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Cost centre code already exists")
	}
	if err := s.apply(ctx, cc, input); err != nil {
		return nil, err
	}
	cc.SetCreatedBy(sess.UserID)

	if err := s.costCentreRepo.Save(ctx, cc); err != nil {
		return nil, err
	}
	dto := toCostCentreDTO(cc)
	return &dto, nil
}

// Get returns a cost centre
func (s *CostCentreService) Get(ctx context.Context, id uuid.UUID) (*CostCentreDTO, error) {
	cc, err := crud.Find(ctx, s.costCentreRepo, id, "Cost centre")
	if err != nil {
		return nil, err
	}
	dto := toCostCentreDTO(cc)
	return &dto, nil
}

// List returns a page of cost centres
func (s *CostCentreService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CostCentreDTO], error) {
	return crud.List(ctx, s.costCentreRepo, filter, toCostCentreDTO)
}

// Update edits a cost centre
func (s *CostCentreService) Update(ctx context.Context, id uuid.UUID, input CostCentreInput) (*CostCentreDTO, error) {
	cc, err := crud.Find(ctx, s.costCentreRepo, id, "Cost centre")
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, cc, input); err != nil {
		return nil, err
	}
	if err := s.costCentreRepo.Save(ctx, cc); err != nil {
		return nil, err
	}
	dto := toCostCentreDTO(cc)
	return &dto, nil
}

// Delete removes a cost centre
func (s *CostCentreService) Delete(ctx context.Context, id uuid.UUID) error {
	return crud.Delete(ctx, s.costCentreRepo, id, "Cost centre")
}

func (s *CostCentreService) apply(ctx context.Context, cc *asset.CostCentre, input CostCentreInput) error {
	if err := crud.Ensure(ctx, s.deptRepo, cc.TenantID, input.DepartmentID, "department_id"); err != nil {
		return err
	}
	if err := crud.Ensure(ctx, s.userRepo, cc.TenantID, input.ManagerID, "manager_id"); err != nil {
		return err
	}
	active := cc.Active
	if input.Active != nil {
		active = *input.Active
	}
	return cc.Update(input.Name, input.DepartmentID, input.ManagerID, active)
}
