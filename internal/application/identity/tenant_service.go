package identity

import (
	"context"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionalRepositories exposes the identity repositories bound to one
// transaction
type TransactionalRepositories interface {
	TenantRepo() identity.TenantRepository
	RoleRepo() identity.RoleRepository
	UserRepo() identity.UserRepository
}

// TransactionScope runs fn atomically; any error rolls back every write
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TenantService manages tenants. Creating a tenant also provisions its
// ADMIN role and, when requested, its first administrator.
//
// Members of the platform tenant manage every tenant. Anyone else sees and
// edits only their own tenant and cannot create, activate, suspend or delete
// tenants. Calls without a session come from operator tooling and are not
// restricted.
type TenantService struct {
	tenantRepo identity.TenantRepository
	roleRepo   identity.RoleRepository
	userRepo   identity.UserRepository
	txScope    TransactionScope
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	roleRepo identity.RoleRepository,
	userRepo identity.UserRepository,
	txScope TransactionScope,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		roleRepo:   roleRepo,
		userRepo:   userRepo,
		txScope:    txScope,
	}
}

// Create creates a tenant with its ADMIN role. The tenant, role and first
// administrator are written in one transaction.
func (s *TenantService) Create(ctx context.Context, input CreateTenantInput) (*TenantDTO, error) {
	if err := s.requirePlatform(ctx); err != nil {
		return nil, err
	}
	tenant, err := identity.NewTenant(input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.tenantRepo.ExistsByCode(ctx, tenant.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant code already exists")
	}
	if err := tenant.Update(input.Name, input.ContactEmail, input.Phone, input.Address, input.Currency); err != nil {
		return nil, err
	}
	if input.Trial {
		tenant.Status = identity.TenantStatusTrial
	}

	// validate the administrator before anything is written
	var admin *identity.User
	if input.AdminEmail != "" {
		admin, err = identity.NewActiveUser(tenant.ID, input.AdminEmail, input.AdminPassword)
		if err != nil {
			return nil, err
		}
		admin.DisplayName = "Administrator"
	}
	role := identity.NewAdminRole(tenant.ID)
	if sess, ok := session.FromContext(ctx); ok {
		role.SetCreatedBy(sess.UserID)
	}
	if admin != nil {
		if err := admin.SetRoles([]uuid.UUID{role.ID}); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.TenantRepo().Save(ctx, tenant); err != nil {
			return err
		}
		if err := repos.RoleRepo().Save(ctx, role); err != nil {
			return err
		}
		if admin != nil {
			return repos.UserRepo().Save(ctx, admin)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Tenant created",
		zap.String("tenant_code", tenant.Code),
		zap.Bool("with_admin", admin != nil))
	dto := toTenantDTO(tenant)
	return &dto, nil
}

// Get returns a tenant. Outside the platform tenant only the caller's own
// tenant is visible.
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.findVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toTenantDTO(tenant)
	return &dto, nil
}

// List returns a page of tenants. Outside the platform tenant the page holds
// the caller's own tenant only.
func (s *TenantService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[TenantDTO], error) {
	filter = filter.Normalize()
	scope, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if scope != uuid.Nil {
		own, err := s.tenantRepo.FindByID(ctx, scope)
		if err != nil {
			return nil, shared.MapNotFound(err, "Tenant")
		}
		page := shared.NewPaginated([]TenantDTO{toTenantDTO(own)}, 1, 1, filter.PageSize)
		return &page, nil
	}

	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.tenantRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(mapSlice(tenants, toTenantDTO), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces a tenant's descriptive fields
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*TenantDTO, error) {
	tenant, err := s.findVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Update(input.Name, input.ContactEmail, input.Phone, input.Address, input.Currency); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	dto := toTenantDTO(tenant)
	return &dto, nil
}

// Activate reactivates a suspended or trial tenant
func (s *TenantService) Activate(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	if err := s.requirePlatform(ctx); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, (*identity.Tenant).Activate)
}

// Suspend blocks sign-in for a tenant's users. The caller's own tenant
// cannot be suspended.
func (s *TenantService) Suspend(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	if err := s.requirePlatform(ctx); err != nil {
		return nil, err
	}
	if err := s.guardOwnTenant(ctx, id, "suspend"); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, (*identity.Tenant).Suspend)
}

// Delete removes a tenant other than the caller's
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.requirePlatform(ctx); err != nil {
		return err
	}
	if err := s.guardOwnTenant(ctx, id, "delete"); err != nil {
		return err
	}
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return shared.MapNotFound(err, "Tenant")
	}
	logger.L(ctx).Info("Tenant deleted", zap.String("deleted_tenant_id", id.String()))
	return nil
}

func (s *TenantService) transition(ctx context.Context, id uuid.UUID, apply func(*identity.Tenant) error) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.MapNotFound(err, "Tenant")
	}
	if err := apply(tenant); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Tenant status changed",
		zap.String("tenant_code", tenant.Code),
		zap.String("status", string(tenant.Status)))
	dto := toTenantDTO(tenant)
	return &dto, nil
}

// scope returns the only tenant the caller may see, or uuid.Nil when the
// caller may see every tenant
func (s *TenantService) scope(ctx context.Context) (uuid.UUID, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return uuid.Nil, nil
	}
	own, err := s.tenantRepo.FindByID(ctx, sess.TenantID)
	if err != nil {
		if shared.IsNotFound(err) {
			return uuid.Nil, shared.ErrForbidden
		}
		return uuid.Nil, err
	}
	if own.IsPlatform() {
		return uuid.Nil, nil
	}
	return own.ID, nil
}

func (s *TenantService) requirePlatform(ctx context.Context) error {
	scope, err := s.scope(ctx)
	if err != nil {
		return err
	}
	if scope != uuid.Nil {
		return shared.NewDomainError("FORBIDDEN", "Only platform administrators can manage tenants")
	}
	return nil
}

// findVisible loads a tenant the caller may see. Other tenants are reported
// as not found.
func (s *TenantService) findVisible(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	scope, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if scope != uuid.Nil && scope != id {
		return nil, shared.NewNotFoundError("Tenant")
	}
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.MapNotFound(err, "Tenant")
	}
	return tenant, nil
}

func (s *TenantService) guardOwnTenant(ctx context.Context, id uuid.UUID, action string) error {
	if sess, ok := session.FromContext(ctx); ok && sess.TenantID == id {
		return shared.NewDomainError("INVALID_STATE", "Cannot "+action+" your own tenant")
	}
	return nil
}
