// Package asset holds the fixed-asset register: categories, locations, cost
// centres, assets with their components, and assets under construction.
package asset

import (
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepreciationMethod selects how an asset loses book value over time
type DepreciationMethod string

const (
	MethodStraightLine     DepreciationMethod = "straight_line"
	MethodDecliningBalance DepreciationMethod = "declining_balance"
	MethodNone             DepreciationMethod = "none"
)

// ParseDepreciationMethod validates a method; empty resolves to fallback
func ParseDepreciationMethod(s string, fallback DepreciationMethod) (DepreciationMethod, error) {
	switch m := DepreciationMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return fallback, nil
	case MethodStraightLine, MethodDecliningBalance, MethodNone:
		return m, nil
	}
	return "", shared.NewDomainError("INVALID_DEPRECIATION_METHOD", "Depreciation method must be straight_line, declining_balance or none")
}

// Category classifies assets and supplies their default depreciation terms
type Category struct {
	shared.TenantAggregateRoot
	Code             string
	Name             string
	Description      string
	ParentID         *uuid.UUID
	Method           DepreciationMethod
	UsefulLifeMonths int
	ResidualRate     decimal.Decimal // fraction of cost kept at end of life, 0..1
}

// NewCategory creates a category depreciated straight-line over usefulLifeMonths
func NewCategory(tenantID uuid.UUID, code, name string, usefulLifeMonths int) (*Category, error) {
	code, err := shared.NormalizeCode("category", code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("category", name, 100)
	if err != nil {
		return nil, err
	}
	if err := validateDepreciationTerms(MethodStraightLine, usefulLifeMonths, decimal.Zero); err != nil {
		return nil, err
	}
	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Method:              MethodStraightLine,
		UsefulLifeMonths:    usefulLifeMonths,
		ResidualRate:        decimal.Zero,
	}, nil
}

// Update sets the descriptive fields
func (c *Category) Update(name, description string, parentID *uuid.UUID) error {
	name, err := shared.RequireName("category", name, 100)
	if err != nil {
		return err
	}
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.ParentID = parentID
	c.Touch()
	return nil
}

// SetDepreciation sets the default depreciation terms for assets of this category
func (c *Category) SetDepreciation(method DepreciationMethod, usefulLifeMonths int, residualRate decimal.Decimal) error {
	if err := validateDepreciationTerms(method, usefulLifeMonths, residualRate); err != nil {
		return err
	}
	c.Method = method
	c.UsefulLifeMonths = usefulLifeMonths
	c.ResidualRate = residualRate
	c.Touch()
	return nil
}

func validateDepreciationTerms(method DepreciationMethod, usefulLifeMonths int, residualRate decimal.Decimal) error {
	if method != MethodNone && usefulLifeMonths <= 0 {
		return shared.NewDomainError("INVALID_USEFUL_LIFE", "Useful life must be positive unless the method is none")
	}
	if usefulLifeMonths < 0 || usefulLifeMonths > 1200 {
		return shared.NewDomainError("INVALID_USEFUL_LIFE", "Useful life must be between 0 and 1200 months")
	}
	if residualRate.IsNegative() || residualRate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_RESIDUAL_RATE", "Residual rate must be between 0 and 1")
	}
	return nil
}
