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

// UserService manages the users of the caller's tenant
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	deptRepo identity.DepartmentRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	deptRepo identity.DepartmentRepository,
) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo, deptRepo: deptRepo}
}

// Create creates a user. Users are active unless activate is false.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(sess.TenantID, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, sess.TenantID, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered in this tenant")
	}
	if err := s.checkDepartment(ctx, sess.TenantID, input.DepartmentID); err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(input.DisplayName, input.Phone, input.DepartmentID); err != nil {
		return nil, err
	}
	if err := s.assignRoles(ctx, user, input.RoleIDs); err != nil {
		return nil, err
	}
	if input.Activate == nil || *input.Activate {
		if err := user.Activate(); err != nil {
			return nil, err
		}
	}
	user.SetCreatedBy(sess.UserID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("User created", zap.String("new_user_id", user.ID.String()))
	dto := toUserDTO(user)
	return &dto, nil
}

// Get returns a user of the caller's tenant
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserDTO], error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	filter = filter.Normalize()
	users, err := s.userRepo.FindAllForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.CountForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(mapSlice(users, toUserDTO), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces a user's profile
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, user.TenantID, input.DepartmentID); err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(input.DisplayName, input.Phone, input.DepartmentID); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

// SetRoles replaces a user's roles
func (s *UserService) SetRoles(ctx context.Context, id uuid.UUID, input SetRolesInput) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.assignRoles(ctx, user, input.RoleIDs); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

// Activate lets a user sign in again and clears any lock
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

// Deactivate blocks a user other than the caller
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	if err := guardSelf(ctx, id, "deactivate"); err != nil {
		return nil, err
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

// Delete removes a user other than the caller
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := guardSelf(ctx, id, "delete"); err != nil {
		return err
	}
	sess, err := session.Require(ctx)
	if err != nil {
		return err
	}
	if err := s.userRepo.DeleteForTenant(ctx, sess.TenantID, id); err != nil {
		return shared.MapNotFound(err, "User")
	}
	return nil
}

func (s *UserService) find(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByIDForTenant(ctx, sess.TenantID, id)
	if err != nil {
		return nil, shared.MapNotFound(err, "User")
	}
	return user, nil
}

func (s *UserService) save(ctx context.Context, user *identity.User) (*UserDTO, error) {
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// assignRoles sets roles after checking that each exists in the user's tenant
func (s *UserService) assignRoles(ctx context.Context, user *identity.User, roleIDs []uuid.UUID) error {
	if len(roleIDs) > 0 {
		roles, err := s.roleRepo.FindByIDs(ctx, user.TenantID, roleIDs)
		if err != nil {
			return err
		}
		found := make(map[uuid.UUID]bool, len(roles))
		for _, r := range roles {
			found[r.ID] = true
		}
		for _, id := range roleIDs {
			if !found[id] {
				return shared.NewDomainError("INVALID_ROLE_ID", "Role "+id.String()+" does not exist")
			}
		}
	}
	return user.SetRoles(roleIDs)
}

func (s *UserService) checkDepartment(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.deptRepo.FindByIDForTenant(ctx, tenantID, *id); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_DEPARTMENT", "Department does not exist")
		}
		return err
	}
	return nil
}

func guardSelf(ctx context.Context, id uuid.UUID, action string) error {
	if sess, ok := session.FromContext(ctx); ok && sess.UserID == id {
		return shared.NewDomainError("INVALID_STATE", "Cannot "+action+" your own account")
	}
	return nil
}
