package identity

import (
	"context"
	"testing"

	"github.com/assetops/backend/internal/application/listview"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	tenantID, actor := uuid.New(), uuid.New()
	ctx := sessionCtx(tenantID, actor)
	users, roles, depts := new(MockUserRepository), new(MockRoleRepository), new(MockDepartmentRepository)
	svc := NewUserService(users, roles, depts)

	role, err := identity.NewRole(tenantID, "viewer", "Viewer")
	require.NoError(t, err)
	users.On("ExistsByEmail", mock.Anything, tenantID, "new@acme.test").Return(false, nil)
	roles.On("FindByIDs", mock.Anything, tenantID, []uuid.UUID{role.ID}).Return([]identity.Role{*role}, nil)
	users.On("Save", mock.Anything, mock.Anything).Return(nil)

	dto, err := svc.Create(ctx, CreateUserInput{
		Email:       "New@Acme.test",
		Password:    testPassword,
		DisplayName: "New Hire",
		RoleIDs:     []uuid.UUID{role.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "new@acme.test", dto.Email)
	assert.Equal(t, string(identity.UserStatusActive), dto.Status)
	assert.Equal(t, []uuid.UUID{role.ID}, dto.RoleIDs)
	require.NotNil(t, dto.CreatedBy)
	assert.Equal(t, actor, *dto.CreatedBy)
}

func TestUserService_Create_Rejections(t *testing.T) {
	tenantID := uuid.New()
	ctx := sessionCtx(tenantID, uuid.New())

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("ExistsByEmail", mock.Anything, tenantID, "dup@acme.test").Return(true, nil)
		svc := NewUserService(users, new(MockRoleRepository), new(MockDepartmentRepository))

		_, err := svc.Create(ctx, CreateUserInput{Email: "dup@acme.test", Password: testPassword})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("unknown role", func(t *testing.T) {
		users, roles := new(MockUserRepository), new(MockRoleRepository)
		users.On("ExistsByEmail", mock.Anything, tenantID, mock.Anything).Return(false, nil)
		roles.On("FindByIDs", mock.Anything, tenantID, mock.Anything).Return([]identity.Role{}, nil)
		svc := NewUserService(users, roles, new(MockDepartmentRepository))

		_, err := svc.Create(ctx, CreateUserInput{Email: "x@acme.test", Password: testPassword, RoleIDs: []uuid.UUID{uuid.New()}})
		requireCode(t, err, "INVALID_ROLE_ID")
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown department", func(t *testing.T) {
		users, depts := new(MockUserRepository), new(MockDepartmentRepository)
		deptID := uuid.New()
		users.On("ExistsByEmail", mock.Anything, tenantID, mock.Anything).Return(false, nil)
		depts.On("FindByIDForTenant", mock.Anything, tenantID, deptID).Return(nil, shared.ErrNotFound)
		svc := NewUserService(users, new(MockRoleRepository), depts)

		_, err := svc.Create(ctx, CreateUserInput{Email: "x@acme.test", Password: testPassword, DepartmentID: &deptID})
		requireCode(t, err, "INVALID_DEPARTMENT")
	})
}

func TestUserService_CannotDeactivateSelf(t *testing.T) {
	self := uuid.New()
	svc := NewUserService(new(MockUserRepository), new(MockRoleRepository), new(MockDepartmentRepository))

	_, err := svc.Deactivate(sessionCtx(uuid.New(), self), self)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	err = svc.Delete(sessionCtx(uuid.New(), self), self)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestUserService_Get_OtherTenantIsNotFound(t *testing.T) {
	tenantID := uuid.New()
	users := new(MockUserRepository)
	id := uuid.New()
	users.On("FindByIDForTenant", mock.Anything, tenantID, id).Return(nil, shared.ErrNotFound)
	svc := NewUserService(users, new(MockRoleRepository), new(MockDepartmentRepository))

	_, err := svc.Get(sessionCtx(tenantID, uuid.New()), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestUserService_RequiresSession(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), new(MockRoleRepository), new(MockDepartmentRepository))
	_, err := svc.List(context.Background(), shared.DefaultFilter())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestRoleService_Delete(t *testing.T) {
	tenantID := uuid.New()
	ctx := sessionCtx(tenantID, uuid.New())

	t.Run("system role", func(t *testing.T) {
		roles := new(MockRoleRepository)
		admin := identity.NewAdminRole(tenantID)
		roles.On("FindByIDForTenant", mock.Anything, tenantID, admin.ID).Return(admin, nil)
		svc := NewRoleService(roles, new(MockUserRepository))

		requireCode(t, svc.Delete(ctx, admin.ID), "SYSTEM_ROLE_IMMUTABLE")
	})

	t.Run("assigned role", func(t *testing.T) {
		roles, users := new(MockRoleRepository), new(MockUserRepository)
		role, _ := identity.NewRole(tenantID, "clerk", "Clerk")
		roles.On("FindByIDForTenant", mock.Anything, tenantID, role.ID).Return(role, nil)
		users.On("CountByRole", mock.Anything, tenantID, role.ID).Return(int64(2), nil)
		svc := NewRoleService(roles, users)

		requireCode(t, svc.Delete(ctx, role.ID), "ROLE_IN_USE")
	})

	t.Run("unused role", func(t *testing.T) {
		roles, users := new(MockRoleRepository), new(MockUserRepository)
		role, _ := identity.NewRole(tenantID, "clerk", "Clerk")
		roles.On("FindByIDForTenant", mock.Anything, tenantID, role.ID).Return(role, nil)
		roles.On("DeleteForTenant", mock.Anything, tenantID, role.ID).Return(nil)
		users.On("CountByRole", mock.Anything, tenantID, role.ID).Return(int64(0), nil)
		svc := NewRoleService(roles, users)

		require.NoError(t, svc.Delete(ctx, role.ID))
		roles.AssertExpectations(t)
	})
}

func TestRoleService_CreateRejectsBadPermission(t *testing.T) {
	tenantID := uuid.New()
	roles := new(MockRoleRepository)
	roles.On("ExistsByCode", mock.Anything, tenantID, "CLERK").Return(false, nil)
	svc := NewRoleService(roles, new(MockUserRepository))

	_, err := svc.Create(sessionCtx(tenantID, uuid.New()), CreateRoleInput{Code: "clerk", Name: "Clerk", Permissions: []string{"asset"}})
	requireCode(t, err, "INVALID_PERMISSION_CODE")
}

func TestRoleService_Permissions(t *testing.T) {
	svc := NewRoleService(new(MockRoleRepository), new(MockUserRepository))

	page, err := svc.Permissions(context.Background(), listview.Query{Search: "LEASE", SortBy: "code", PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, "lease:create", listview.Cell(page.Rows[0], "code"))

	page, err = svc.Permissions(context.Background(), listview.Query{})
	require.NoError(t, err)
	assert.Equal(t, len(identity.Resources)*4, page.Total)
	assert.Equal(t, listview.DefaultPageSize, len(page.Rows))
}

func TestDepartmentService_Create_UnderParent(t *testing.T) {
	tenantID := uuid.New()
	depts := new(MockDepartmentRepository)
	parent, _ := identity.NewDepartment(tenantID, "OPS", "Operations")
	depts.On("ExistsByCode", mock.Anything, tenantID, "FLEET").Return(false, nil)
	depts.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
	depts.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc := NewDepartmentService(depts)

	dto, err := svc.Create(sessionCtx(tenantID, uuid.New()), CreateDepartmentInput{Code: "fleet", Name: "Fleet", ParentID: &parent.ID})

	require.NoError(t, err)
	assert.Equal(t, 1, dto.Level)
	assert.Equal(t, parent.Path+"/"+dto.ID.String(), dto.Path)
}

func TestDepartmentService_Delete_WithChildren(t *testing.T) {
	tenantID := uuid.New()
	depts := new(MockDepartmentRepository)
	dept, _ := identity.NewDepartment(tenantID, "OPS", "Operations")
	depts.On("FindByIDForTenant", mock.Anything, tenantID, dept.ID).Return(dept, nil)
	depts.On("CountChildren", mock.Anything, tenantID, dept.ID).Return(int64(1), nil)
	svc := NewDepartmentService(depts)

	requireCode(t, svc.Delete(sessionCtx(tenantID, uuid.New()), dept.ID), "DEPARTMENT_HAS_CHILDREN")
}
