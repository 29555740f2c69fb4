package identity

import (
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role groups permissions. Users are granted the union of their enabled roles.
type Role struct {
	shared.TenantAggregateRoot
	Code         string
	Name         string
	Description  string
	IsSystemRole bool // System roles cannot be deleted or renamed
	IsEnabled    bool
	Permissions  []Permission
}

// NewRole creates a new role with required fields
func NewRole(tenantID uuid.UUID, code, name string) (*Role, error) {
	code, err := shared.NormalizeCode("role", code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("role", name, 100)
	if err != nil {
		return nil, err
	}

	return &Role{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		IsEnabled:           true,
		Permissions:         make([]Permission, 0),
	}, nil
}

// NewAdminRole creates the tenant's system administrator role holding *:*
func NewAdminRole(tenantID uuid.UUID) *Role {
	role, _ := NewRole(tenantID, AdminRoleCode, "Administrator")
	role.IsSystemRole = true
	role.Description = "Full access to every resource of the tenant"
	all, _ := NewPermission(Wildcard, Wildcard)
	role.Permissions = []Permission{all}
	return role
}

// Update sets the name, description and enabled flag
func (r *Role) Update(name, description string, enabled bool) error {
	name, err := shared.RequireName("role", name, 100)
	if err != nil {
		return err
	}
	if r.IsSystemRole && (name != r.Name || !enabled) {
		return shared.NewDomainError("SYSTEM_ROLE_IMMUTABLE", "System roles cannot be renamed or disabled")
	}
	r.Name = name
	r.Description = strings.TrimSpace(description)
	r.IsEnabled = enabled
	r.Touch()
	return nil
}

// SetPermissions replaces the role's permission set from codes
func (r *Role) SetPermissions(codes []string) error {
	if r.IsSystemRole {
		return shared.NewDomainError("SYSTEM_ROLE_IMMUTABLE", "System role permissions cannot be changed")
	}
	seen := make(map[string]struct{}, len(codes))
	perms := make([]Permission, 0, len(codes))
	for _, code := range codes {
		p, err := ParsePermission(code)
		if err != nil {
			return err
		}
		if _, ok := seen[p.Code]; ok {
			continue
		}
		seen[p.Code] = struct{}{}
		perms = append(perms, p)
	}
	r.Permissions = perms
	r.Touch()
	return nil
}

// PermissionCodes returns the codes of the role's permissions
func (r *Role) PermissionCodes() []string {
	codes := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		codes[i] = p.Code
	}
	return codes
}

// HasPermission reports whether the role grants the required code
func (r *Role) HasPermission(required string) bool {
	return r.IsEnabled && Allows(r.PermissionCodes(), required)
}

// CanDelete returns true unless the role is a system role
func (r *Role) CanDelete() bool {
	return !r.IsSystemRole
}
