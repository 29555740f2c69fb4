package identity

import (
	"context"

	"github.com/assetops/backend/internal/application/listview"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleService manages roles and exposes the permission catalog
type RoleService struct {
	roleRepo identity.RoleRepository
	userRepo identity.UserRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository, userRepo identity.UserRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo, userRepo: userRepo}
}

// Create creates a role with an initial permission set
func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*RoleDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	role, err := identity.NewRole(sess.TenantID, input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.roleRepo.ExistsByCode(ctx, sess.TenantID, role.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role code already exists")
	}
	if err := role.Update(input.Name, input.Description, true); err != nil {
		return nil, err
	}
	if err := role.SetPermissions(input.Permissions); err != nil {
		return nil, err
	}
	role.SetCreatedBy(sess.UserID)

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Role created", zap.String("role_code", role.Code))
	dto := toRoleDTO(role)
	return &dto, nil
}

// Get returns a role
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRoleDTO(role)
	return &dto, nil
}

// List returns a page of roles
func (s *RoleService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[RoleDTO], error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	filter = filter.Normalize()
	roles, err := s.roleRepo.FindAllForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.roleRepo.CountForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(mapSlice(roles, toRoleDTO), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces a role's name, description and enabled flag
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, input UpdateRoleInput) (*RoleDTO, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	enabled := role.IsEnabled
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	if err := role.Update(input.Name, input.Description, enabled); err != nil {
		return nil, err
	}
	return s.save(ctx, role)
}

// SetPermissions replaces a role's permissions
func (s *RoleService) SetPermissions(ctx context.Context, id uuid.UUID, input SetPermissionsInput) (*RoleDTO, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := role.SetPermissions(input.Permissions); err != nil {
		return nil, err
	}
	return s.save(ctx, role)
}

// Delete removes a role that is neither a system role nor assigned to a user
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !role.CanDelete() {
		return shared.NewDomainError("SYSTEM_ROLE_IMMUTABLE", "System roles cannot be deleted")
	}
	inUse, err := s.userRepo.CountByRole(ctx, role.TenantID, role.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is assigned to users")
	}
	if err := s.roleRepo.DeleteForTenant(ctx, role.TenantID, role.ID); err != nil {
		return shared.MapNotFound(err, "Role")
	}
	return nil
}

// Permissions pages through the permission catalog with list view semantics
func (s *RoleService) Permissions(_ context.Context, q listview.Query) (*listview.Page, error) {
	records, err := listview.ToRecords(identity.PermissionCatalog())
	if err != nil {
		return nil, err
	}
	page, err := listview.Apply(records, q)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *RoleService) find(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindByIDForTenant(ctx, sess.TenantID, id)
	if err != nil {
		return nil, shared.MapNotFound(err, "Role")
	}
	return role, nil
}

func (s *RoleService) save(ctx context.Context, role *identity.Role) (*RoleDTO, error) {
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	dto := toRoleDTO(role)
	return &dto, nil
}
