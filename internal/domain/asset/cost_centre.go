package asset

import (
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CostCentre is the accounting unit depreciation and budgets are charged to
type CostCentre struct {
	shared.TenantAggregateRoot
	Code         string
	Name         string
	DepartmentID *uuid.UUID
	ManagerID    *uuid.UUID
	Active       bool
}

// NewCostCentre creates an active cost centre
func NewCostCentre(tenantID uuid.UUID, code, name string) (*CostCentre, error) {
	code, err := shared.NormalizeCode("cost_centre", code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("cost_centre", name, 100)
	if err != nil {
		return nil, err
	}
	return &CostCentre{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Active:              true,
	}, nil
}

// Update sets the descriptive fields
func (c *CostCentre) Update(name string, departmentID, managerID *uuid.UUID, active bool) error {
	name, err := shared.RequireName("cost_centre", name, 100)
	if err != nil {
		return err
	}
	c.Name = name
	c.DepartmentID = departmentID
	c.ManagerID = managerID
	c.Active = active
	c.Touch()
	return nil
}
