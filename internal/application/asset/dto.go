package asset

import (
	"time"

	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO represents an asset category
type CategoryDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	ParentID           *uuid.UUID      `json:"parent_id,omitempty"`
	DepreciationMethod string          `json:"depreciation_method"`
	UsefulLifeMonths   int             `json:"useful_life_months"`
	ResidualRate       decimal.Decimal `json:"residual_rate"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// CategoryInput creates or updates a category. Code is ignored on update.
type CategoryInput struct {
	Code               string           `json:"code" binding:"max=50"`
	Name               string           `json:"name" binding:"required,max=100"`
	Description        string           `json:"description"`
	ParentID           *uuid.UUID       `json:"parent_id"`
	DepreciationMethod string           `json:"depreciation_method" binding:"omitempty,oneof=straight_line declining_balance none"`
	UsefulLifeMonths   int              `json:"useful_life_months" binding:"min=0,max=1200"`
	ResidualRate       *decimal.Decimal `json:"residual_rate"`
}

// LocationDTO represents a location
type LocationDTO struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	Country   string     `json:"country,omitempty"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

// LocationInput creates or updates a location
type LocationInput struct {
	Code     string     `json:"code" binding:"max=50"`
	Name     string     `json:"name" binding:"required,max=100"`
	Address  string     `json:"address"`
	City     string     `json:"city" binding:"max=100"`
	Country  string     `json:"country" binding:"omitempty,len=2"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CostCentreDTO represents a cost centre
type CostCentreDTO struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	ManagerID    *uuid.UUID `json:"manager_id,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// CostCentreInput creates or updates a cost centre
type CostCentreInput struct {
	Code         string     `json:"code" binding:"max=50"`
	Name         string     `json:"name" binding:"required,max=100"`
	DepartmentID *uuid.UUID `json:"department_id"`
	ManagerID    *uuid.UUID `json:"manager_id"`
	Active       *bool      `json:"active"`
}

// AssetDTO represents an asset with its derived book value
type AssetDTO struct {
	ID                      uuid.UUID         `json:"id"`
	Tag                     string            `json:"tag"`
	Name                    string            `json:"name"`
	Description             string            `json:"description,omitempty"`
	SerialNumber            string            `json:"serial_number,omitempty"`
	CategoryID              uuid.UUID         `json:"category_id"`
	LocationID              *uuid.UUID        `json:"location_id,omitempty"`
	DepartmentID            *uuid.UUID        `json:"department_id,omitempty"`
	CostCentreID            *uuid.UUID        `json:"cost_centre_id,omitempty"`
	CustodianID             *uuid.UUID        `json:"custodian_id,omitempty"`
	SupplierID              *uuid.UUID        `json:"supplier_id,omitempty"`
	AcquisitionDate         valueobject.Date  `json:"acquisition_date"`
	AcquisitionCost         decimal.Decimal   `json:"acquisition_cost"`
	Currency                string            `json:"currency"`
	ResidualValue           decimal.Decimal   `json:"residual_value"`
	UsefulLifeMonths        int               `json:"useful_life_months"`
	DepreciationMethod      string            `json:"depreciation_method"`
	AccumulatedDepreciation decimal.Decimal   `json:"accumulated_depreciation"`
	BookValue               decimal.Decimal   `json:"book_value"`
	Status                  string            `json:"status"`
	DisposalDate            *valueobject.Date `json:"disposal_date,omitempty"`
	DisposalProceeds        *decimal.Decimal  `json:"disposal_proceeds,omitempty"`
	DisposalReason          string            `json:"disposal_reason,omitempty"`
	CreatedBy               *uuid.UUID        `json:"created_by,omitempty"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
	Version                 int               `json:"version"`
}

// AssignmentInput places an asset
type AssignmentInput struct {
	LocationID   *uuid.UUID `json:"location_id"`
	DepartmentID *uuid.UUID `json:"department_id"`
	CostCentreID *uuid.UUID `json:"cost_centre_id"`
	CustodianID  *uuid.UUID `json:"custodian_id"`
}

func (in AssignmentInput) toAssignment() asset.Assignment {
	return asset.Assignment{
		LocationID:   in.LocationID,
		DepartmentID: in.DepartmentID,
		CostCentreID: in.CostCentreID,
		CustodianID:  in.CustodianID,
	}
}

// CreateAssetInput registers an asset. Unset depreciation terms are taken
// from the category.
type CreateAssetInput struct {
	Tag          string     `json:"tag" binding:"required,max=50"`
	Name         string     `json:"name" binding:"required,max=200"`
	Description  string     `json:"description"`
	SerialNumber string     `json:"serial_number" binding:"max=100"`
	CategoryID   uuid.UUID  `json:"category_id" binding:"required"`
	SupplierID   *uuid.UUID `json:"supplier_id"`
	AssignmentInput

	AcquisitionDate    valueobject.Date `json:"acquisition_date"`
	AcquisitionCost    decimal.Decimal  `json:"acquisition_cost"`
	Currency           string           `json:"currency" binding:"omitempty,len=3"`
	ResidualValue      *decimal.Decimal `json:"residual_value"`
	UsefulLifeMonths   *int             `json:"useful_life_months" binding:"omitempty,min=0,max=1200"`
	DepreciationMethod string           `json:"depreciation_method" binding:"omitempty,oneof=straight_line declining_balance none"`
	Status             string           `json:"status" binding:"omitempty,oneof=in_use in_storage under_maintenance"`
}

// UpdateAssetInput edits an asset. Assignment changes go through transfer.
type UpdateAssetInput struct {
	Name         string     `json:"name" binding:"required,max=200"`
	Description  string     `json:"description"`
	SerialNumber string     `json:"serial_number" binding:"max=100"`
	CategoryID   uuid.UUID  `json:"category_id" binding:"required"`
	SupplierID   *uuid.UUID `json:"supplier_id"`

	AcquisitionDate    valueobject.Date `json:"acquisition_date"`
	AcquisitionCost    decimal.Decimal  `json:"acquisition_cost"`
	Currency           string           `json:"currency" binding:"omitempty,len=3"`
	ResidualValue      decimal.Decimal  `json:"residual_value"`
	UsefulLifeMonths   int              `json:"useful_life_months" binding:"min=0,max=1200"`
	DepreciationMethod string           `json:"depreciation_method" binding:"required,oneof=straight_line declining_balance none"`
	Status             string           `json:"status" binding:"required,oneof=in_use in_storage under_maintenance"`
}

// TransferInput is the body of POST /assets/:id/transfer
type TransferInput struct {
	AssignmentInput
}

// DisposeInput is the body of POST /assets/:id/dispose
type DisposeInput struct {
	Date     valueobject.Date `json:"date"`
	Proceeds decimal.Decimal  `json:"proceeds"`
	Reason   string           `json:"reason" binding:"max=500"`
}

// ComponentDTO represents a part fitted to an asset
type ComponentDTO struct {
	ID           uuid.UUID         `json:"id"`
	AssetID      uuid.UUID         `json:"asset_id"`
	Name         string            `json:"name"`
	SerialNumber string            `json:"serial_number,omitempty"`
	Cost         decimal.Decimal   `json:"cost"`
	InstalledAt  *valueobject.Date `json:"installed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ComponentInput is the body of POST /assets/:id/components
type ComponentInput struct {
	Name         string            `json:"name" binding:"required,max=200"`
	SerialNumber string            `json:"serial_number" binding:"max=100"`
	Cost         decimal.Decimal   `json:"cost"`
	InstalledAt  *valueobject.Date `json:"installed_at"`
}

// WipAssetDTO represents an asset under construction
type WipAssetDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	CategoryID         uuid.UUID       `json:"category_id"`
	LocationID         *uuid.UUID      `json:"location_id,omitempty"`
	Currency           string          `json:"currency"`
	BudgetAmount       decimal.Decimal `json:"budget_amount"`
	AccumulatedCost    decimal.Decimal `json:"accumulated_cost"`
	ProgressPercent    int             `json:"progress_percent"`
	Status             string          `json:"status"`
	CapitalizedAssetID *uuid.UUID      `json:"capitalized_asset_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// CreateWipAssetInput starts an asset under construction
type CreateWipAssetInput struct {
	Code         string          `json:"code" binding:"required,max=50"`
	Name         string          `json:"name" binding:"required,max=200"`
	CategoryID   uuid.UUID       `json:"category_id" binding:"required"`
	LocationID   *uuid.UUID      `json:"location_id"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	Currency     string          `json:"currency" binding:"omitempty,len=3"`
}

// UpdateWipAssetInput edits open work in progress. Status "completed" or
// "cancelled" applies that transition.
type UpdateWipAssetInput struct {
	Name            string          `json:"name" binding:"required,max=200"`
	LocationID      *uuid.UUID      `json:"location_id"`
	BudgetAmount    decimal.Decimal `json:"budget_amount"`
	ProgressPercent int             `json:"progress_percent" binding:"min=0,max=100"`
	Status          string          `json:"status" binding:"omitempty,oneof=in_progress completed cancelled"`
}

// AddCostInput is the body of POST /wip-assets/:id/costs
type AddCostInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// CapitalizeInput is the body of POST /wip-assets/:id/capitalize
type CapitalizeInput struct {
	Tag             string           `json:"tag" binding:"required,max=50"`
	AcquisitionDate valueobject.Date `json:"acquisition_date"`
}

// CapitalizeResult returns both sides of a capitalization
type CapitalizeResult struct {
	WipAsset WipAssetDTO `json:"wip_asset"`
	Asset    AssetDTO    `json:"asset"`
}

func toCategoryDTO(c *asset.Category) CategoryDTO {
	return CategoryDTO{
		ID:                 c.ID,
		Code:               c.Code,
		Name:               c.Name,
		Description:        c.Description,
		ParentID:           c.ParentID,
		DepreciationMethod: string(c.Method),
		UsefulLifeMonths:   c.UsefulLifeMonths,
		ResidualRate:       c.ResidualRate,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
		Version:            c.Version,
	}
}

func toLocationDTO(l *asset.Location) LocationDTO {
	return LocationDTO{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Address:   l.Address,
		City:      l.City,
		Country:   l.Country,
		ParentID:  l.ParentID,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Version:   l.Version,
	}
}

func toCostCentreDTO(c *asset.CostCentre) CostCentreDTO {
	return CostCentreDTO{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		DepartmentID: c.DepartmentID,
		ManagerID:    c.ManagerID,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Version:      c.Version,
	}
}

// ToAssetDTO converts an asset for other packages rendering asset rows
func ToAssetDTO(a *asset.Asset) AssetDTO {
	dto := AssetDTO{
		ID:                      a.ID,
		Tag:                     a.Tag,
		Name:                    a.Name,
		Description:             a.Description,
		SerialNumber:            a.SerialNumber,
		CategoryID:              a.CategoryID,
		LocationID:              a.LocationID,
		DepartmentID:            a.DepartmentID,
		CostCentreID:            a.CostCentreID,
		CustodianID:             a.CustodianID,
		SupplierID:              a.SupplierID,
		AcquisitionDate:         valueobject.NewDate(a.AcquisitionDate),
		AcquisitionCost:         a.AcquisitionCost,
		Currency:                a.Currency.String(),
		ResidualValue:           a.ResidualValue,
		UsefulLifeMonths:        a.UsefulLifeMonths,
		DepreciationMethod:      string(a.Method),
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		BookValue:               a.BookValue(),
		Status:                  string(a.Status),
		CreatedBy:               a.CreatedBy,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
		Version:                 a.Version,
	}
	if a.Disposal != nil {
		date := valueobject.NewDate(a.Disposal.Date)
		proceeds := a.Disposal.Proceeds
		dto.DisposalDate = &date
		dto.DisposalProceeds = &proceeds
		dto.DisposalReason = a.Disposal.Reason
	}
	return dto
}

func toComponentDTO(c *asset.Component) ComponentDTO {
	dto := ComponentDTO{
		ID:           c.ID,
		AssetID:      c.AssetID,
		Name:         c.Name,
		SerialNumber: c.SerialNumber,
		Cost:         c.Cost,
		CreatedAt:    c.CreatedAt,
	}
	if c.InstalledAt != nil {
		d := valueobject.NewDate(*c.InstalledAt)
		dto.InstalledAt = &d
	}
	return dto
}

func toWipAssetDTO(w *asset.WipAsset) WipAssetDTO {
	return WipAssetDTO{
		ID:                 w.ID,
		Code:               w.Code,
		Name:               w.Name,
		CategoryID:         w.CategoryID,
		LocationID:         w.LocationID,
		Currency:           w.Currency.String(),
		BudgetAmount:       w.BudgetAmount,
		AccumulatedCost:    w.AccumulatedCost,
		ProgressPercent:    w.ProgressPercent,
		Status:             string(w.Status),
		CapitalizedAssetID: w.CapitalizedAssetID,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
		Version:            w.Version,
	}
}
