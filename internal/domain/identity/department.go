package identity

import (
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DepartmentStatus represents the status of a department
type DepartmentStatus string

const (
	DepartmentStatusActive   DepartmentStatus = "active"
	DepartmentStatusInactive DepartmentStatus = "inactive"
)

// Department represents an organizational unit. Departments form a tree
// stored as a materialized path ("/root-id/parent-id/this-id").
type Department struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	Description string
	ParentID    *uuid.UUID
	Path        string
	Level       int
	ManagerID   *uuid.UUID
	Status      DepartmentStatus
}

// NewDepartment creates a root department
func NewDepartment(tenantID uuid.UUID, code, name string) (*Department, error) {
	code, err := shared.NormalizeCode("department", code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("department", name, 100)
	if err != nil {
		return nil, err
	}

	dept := &Department{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Status:              DepartmentStatusActive,
	}
	dept.Path = "/" + dept.ID.String()
	return dept, nil
}

// Update sets the descriptive fields and status
func (d *Department) Update(name, description string, managerID *uuid.UUID, active bool) error {
	name, err := shared.RequireName("department", name, 100)
	if err != nil {
		return err
	}
	d.Name = name
	d.Description = strings.TrimSpace(description)
	d.ManagerID = managerID
	d.Status = DepartmentStatusInactive
	if active {
		d.Status = DepartmentStatusActive
	}
	d.Touch()
	return nil
}

// SetParent moves the department under parent, or to the root when parent is nil.
// Moving a department under itself or one of its descendants is rejected.
func (d *Department) SetParent(parent *Department) error {
	if parent == nil {
		d.ParentID = nil
		d.Path = "/" + d.ID.String()
		d.Level = 0
		d.Touch()
		return nil
	}
	if shared.SameEntity(parent, d) || parent.IsDescendantOf(d.Path) {
		return shared.NewDomainError("INVALID_PARENT", "Department cannot be moved under itself or its descendants")
	}
	if parent.TenantID != d.TenantID {
		return shared.NewDomainError("INVALID_PARENT", "Parent department belongs to another tenant")
	}

	id := parent.ID
	d.ParentID = &id
	d.Path = parent.Path + "/" + d.ID.String()
	d.Level = parent.Level + 1
	d.Touch()
	return nil
}

// IsActive returns true if department is active
func (d *Department) IsActive() bool {
	return d.Status == DepartmentStatusActive
}

// IsDescendantOf checks whether this department lies under ancestorPath
func (d *Department) IsDescendantOf(ancestorPath string) bool {
	return strings.HasPrefix(d.Path, ancestorPath+"/")
}
