package identity

import (
	"time"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput is the body of POST /user/auth
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	TenantCode string `json:"tenant_code"`
	IP         string `json:"-"`
}

// LoginResult mirrors the session keys the console stores after sign-in
type LoginResult struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TenantID     uuid.UUID `json:"tenantId"`
	UserID       uuid.UUID `json:"userId"`
	UserRole     string    `json:"userRole"`
	Email        string    `json:"email"`
	User         UserDTO   `json:"user"`
}

// RefreshInput is the body of POST /user/auth/refresh
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordInput is the body of PUT /user/auth/password
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// MeResult describes the current session
type MeResult struct {
	TenantID    uuid.UUID  `json:"tenantId"`
	TenantCode  string     `json:"tenant_code"`
	UserID      uuid.UUID  `json:"userId"`
	UserRole    string     `json:"userRole"`
	Email       string     `json:"email"`
	Permissions []string   `json:"permissions"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	User        UserDTO    `json:"user"`
}

// TenantDTO represents a tenant
type TenantDTO struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// CreateTenantInput creates a tenant, its ADMIN role and optionally its first user
type CreateTenantInput struct {
	Code          string `json:"code" binding:"required,min=2,max=50"`
	Name          string `json:"name" binding:"required,max=200"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
	Trial         bool   `json:"trial"`
	AdminEmail    string `json:"admin_email" binding:"omitempty,email"`
	AdminPassword string `json:"admin_password" binding:"required_with=AdminEmail"`
}

// UpdateTenantInput replaces a tenant's descriptive fields
type UpdateTenantInput struct {
	Name         string `json:"name" binding:"required,max=200"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"max=50"`
	Address      string `json:"address"`
	Currency     string `json:"currency" binding:"omitempty,len=3"`
}

// UserDTO represents a user; the password hash is never exposed
type UserDTO struct {
	ID           uuid.UUID   `json:"id"`
	TenantID     uuid.UUID   `json:"tenant_id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"display_name"`
	Phone        string      `json:"phone,omitempty"`
	Status       string      `json:"status"`
	DepartmentID *uuid.UUID  `json:"department_id,omitempty"`
	RoleIDs      []uuid.UUID `json:"role_ids"`
	LastLoginAt  *time.Time  `json:"last_login_at,omitempty"`
	LockedUntil  *time.Time  `json:"locked_until,omitempty"`
	CreatedBy    *uuid.UUID  `json:"created_by,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Version      int         `json:"version"`
}

// CreateUserInput creates a user in the caller's tenant
type CreateUserInput struct {
	Email        string      `json:"email" binding:"required,email"`
	Password     string      `json:"password" binding:"required,min=8,max=72"`
	DisplayName  string      `json:"display_name" binding:"max=200"`
	Phone        string      `json:"phone" binding:"max=50"`
	DepartmentID *uuid.UUID  `json:"department_id"`
	RoleIDs      []uuid.UUID `json:"role_ids"`
	Activate     *bool       `json:"activate"`
}

// UpdateUserInput replaces a user's profile
type UpdateUserInput struct {
	DisplayName  string     `json:"display_name" binding:"max=200"`
	Phone        string     `json:"phone" binding:"max=50"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

// SetRolesInput is the body of PUT /users/:id/roles
type SetRolesInput struct {
	RoleIDs []uuid.UUID `json:"role_ids" binding:"required"`
}

// RoleDTO represents a role
type RoleDTO struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	IsSystemRole bool       `json:"is_system_role"`
	IsEnabled    bool       `json:"is_enabled"`
	Permissions  []string   `json:"permissions"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// CreateRoleInput creates a role
type CreateRoleInput struct {
	Code        string   `json:"code" binding:"required,max=50"`
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleInput replaces a role's descriptive fields
type UpdateRoleInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Enabled     *bool  `json:"is_enabled"`
}

// SetPermissionsInput is the body of PUT /tenant/roles/:id/permissions
type SetPermissionsInput struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// DepartmentDTO represents a department
type DepartmentDTO struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Path        string     `json:"path"`
	Level       int        `json:"level"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// CreateDepartmentInput creates a department
type CreateDepartmentInput struct {
	Code        string     `json:"code" binding:"required,max=50"`
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

// UpdateDepartmentInput replaces a department's fields
type UpdateDepartmentInput struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ManagerID   *uuid.UUID `json:"manager_id"`
	Active      *bool      `json:"active"`
}

func toTenantDTO(t *identity.Tenant) TenantDTO {
	return TenantDTO{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		ContactEmail: t.ContactEmail,
		Phone:        t.Phone,
		Address:      t.Address,
		Currency:     t.Currency.String(),
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		Version:      t.Version,
	}
}

func toUserDTO(u *identity.User) UserDTO {
	roleIDs := u.RoleIDs
	if roleIDs == nil {
		roleIDs = []uuid.UUID{}
	}
	return UserDTO{
		ID:           u.ID,
		TenantID:     u.TenantID,
		Email:        u.Email,
		DisplayName:  u.DisplayNameOrEmail(),
		Phone:        u.Phone,
		Status:       string(u.Status),
		DepartmentID: u.DepartmentID,
		RoleIDs:      roleIDs,
		LastLoginAt:  u.LastLoginAt,
		LockedUntil:  u.LockedUntil,
		CreatedBy:    u.CreatedBy,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Version:      u.Version,
	}
}

func toRoleDTO(r *identity.Role) RoleDTO {
	return RoleDTO{
		ID:           r.ID,
		TenantID:     r.TenantID,
		Code:         r.Code,
		Name:         r.Name,
		Description:  r.Description,
		IsSystemRole: r.IsSystemRole,
		IsEnabled:    r.IsEnabled,
		Permissions:  r.PermissionCodes(),
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Version:      r.Version,
	}
}

func toDepartmentDTO(d *identity.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:          d.ID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		ParentID:    d.ParentID,
		Path:        d.Path,
		Level:       d.Level,
		ManagerID:   d.ManagerID,
		Status:      string(d.Status),
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Version:     d.Version,
	}
}

func mapSlice[T any, D any](items []T, fn func(*T) D) []D {
	out := make([]D, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
