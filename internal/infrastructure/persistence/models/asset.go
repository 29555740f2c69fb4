package models

import (
	"time"

	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetModel is the persistence model for assets. The disposal is flattened
// into nullable columns.
type AssetModel struct {
	TenantAggregateModel
	Tag                     string                   `gorm:"type:varchar(50);not null"`
	Name                    string                   `gorm:"type:varchar(200);not null"`
	Description             string                   `gorm:"type:text"`
	SerialNumber            string                   `gorm:"type:varchar(100)"`
	CategoryID              uuid.UUID                `gorm:"type:uuid;not null;index"`
	SupplierID              *uuid.UUID               `gorm:"type:uuid;index"`
	LocationID              *uuid.UUID               `gorm:"type:uuid;index"`
	DepartmentID            *uuid.UUID               `gorm:"type:uuid;index"`
	CostCentreID            *uuid.UUID               `gorm:"type:uuid;index"`
	CustodianID             *uuid.UUID               `gorm:"type:uuid"`
	AcquisitionDate         time.Time                `gorm:"type:date;not null"`
	AcquisitionCost         decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Currency                string                   `gorm:"type:char(3);not null"`
	ResidualValue           decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	UsefulLifeMonths        int                      `gorm:"not null"`
	Method                  asset.DepreciationMethod `gorm:"type:varchar(30);not null"`
	AccumulatedDepreciation decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Status                  asset.Status             `gorm:"type:varchar(30);not null;index"`
	DisposalDate            *time.Time               `gorm:"type:date"`
	DisposalProceeds        decimal.NullDecimal      `gorm:"type:decimal(18,4)"`
	DisposalReason          string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AssetModel) TableName() string {
	return "assets"
}

// ToDomain converts the model to a domain Asset
func (m *AssetModel) ToDomain() *asset.Asset {
	a := &asset.Asset{
		TenantAggregateRoot: m.tenantRoot(),
		Tag:                 m.Tag,
		Name:                m.Name,
		Description:         m.Description,
		SerialNumber:        m.SerialNumber,
		CategoryID:          m.CategoryID,
		SupplierID:          m.SupplierID,
		Assignment: asset.Assignment{
			LocationID:   m.LocationID,
			DepartmentID: m.DepartmentID,
			CostCentreID: m.CostCentreID,
			CustodianID:  m.CustodianID,
		},
		AcquisitionDate:         m.AcquisitionDate,
		AcquisitionCost:         m.AcquisitionCost,
		Currency:                valueobject.Currency(m.Currency),
		ResidualValue:           m.ResidualValue,
		UsefulLifeMonths:        m.UsefulLifeMonths,
		Method:                  m.Method,
		AccumulatedDepreciation: m.AccumulatedDepreciation,
		Status:                  m.Status,
	}
	if m.DisposalDate != nil {
		a.Disposal = &asset.Disposal{
			Date:     *m.DisposalDate,
			Proceeds: m.DisposalProceeds.Decimal,
			Reason:   m.DisposalReason,
		}
	}
	return a
}

// FromDomain populates the model from a domain Asset
func (m *AssetModel) FromDomain(a *asset.Asset) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Tag = a.Tag
	m.Name = a.Name
	m.Description = a.Description
	m.SerialNumber = a.SerialNumber
	m.CategoryID = a.CategoryID
	m.SupplierID = a.SupplierID
	m.LocationID = a.LocationID
	m.DepartmentID = a.DepartmentID
	m.CostCentreID = a.CostCentreID
	m.CustodianID = a.CustodianID
	m.AcquisitionDate = a.AcquisitionDate
	m.AcquisitionCost = a.AcquisitionCost
	m.Currency = a.Currency.String()
	m.ResidualValue = a.ResidualValue
	m.UsefulLifeMonths = a.UsefulLifeMonths
	m.Method = a.Method
	m.AccumulatedDepreciation = a.AccumulatedDepreciation
	m.Status = a.Status
	m.DisposalDate = nil
	m.DisposalProceeds = decimal.NullDecimal{}
	m.DisposalReason = ""
	if a.Disposal != nil {
		d := a.Disposal.Date
		m.DisposalDate = &d
		m.DisposalProceeds = decimal.NewNullDecimal(a.Disposal.Proceeds)
		m.DisposalReason = a.Disposal.Reason
	}
}

// CategoryModel is the persistence model for asset categories
type CategoryModel struct {
	TenantAggregateModel
	Code             string                   `gorm:"type:varchar(50);not null"`
	Name             string                   `gorm:"type:varchar(200);not null"`
	Description      string                   `gorm:"type:text"`
	ParentID         *uuid.UUID               `gorm:"type:uuid;index"`
	Method           asset.DepreciationMethod `gorm:"type:varchar(30);not null"`
	UsefulLifeMonths int                      `gorm:"not null"`
	ResidualRate     decimal.Decimal          `gorm:"type:decimal(5,4);not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "asset_categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *asset.Category {
	return &asset.Category{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		ParentID:            m.ParentID,
		Method:              m.Method,
		UsefulLifeMonths:    m.UsefulLifeMonths,
		ResidualRate:        m.ResidualRate,
	}
}

// FromDomain populates the model from a domain Category
func (m *CategoryModel) FromDomain(c *asset.Category) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Description = c.Description
	m.ParentID = c.ParentID
	m.Method = c.Method
	m.UsefulLifeMonths = c.UsefulLifeMonths
	m.ResidualRate = c.ResidualRate
}

// ComponentModel is the persistence model for asset components
type ComponentModel struct {
	TenantAggregateModel
	AssetID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	SerialNumber string          `gorm:"type:varchar(100)"`
	Cost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InstalledAt  *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (ComponentModel) TableName() string {
	return "asset_components"
}

// ToDomain converts the model to a domain Component
func (m *ComponentModel) ToDomain() *asset.Component {
	return &asset.Component{
		TenantAggregateRoot: m.tenantRoot(),
		AssetID:             m.AssetID,
		Name:                m.Name,
		SerialNumber:        m.SerialNumber,
		Cost:                m.Cost,
		InstalledAt:         m.InstalledAt,
	}
}

// FromDomain populates the model from a domain Component
func (m *ComponentModel) FromDomain(c *asset.Component) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.AssetID = c.AssetID
	m.Name = c.Name
	m.SerialNumber = c.SerialNumber
	m.Cost = c.Cost
	m.InstalledAt = c.InstalledAt
}

// CostCentreModel is the persistence model for cost centres
type CostCentreModel struct {
	TenantAggregateModel
	Code         string     `gorm:"type:varchar(50);not null"`
	Name         string     `gorm:"type:varchar(200);not null"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid"`
	Active       bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CostCentreModel) TableName() string {
	return "cost_centres"
}

// ToDomain converts the model to a domain CostCentre
func (m *CostCentreModel) ToDomain() *asset.CostCentre {
	return &asset.CostCentre{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		DepartmentID:        m.DepartmentID,
		ManagerID:           m.ManagerID,
		Active:              m.Active,
	}
}

// FromDomain populates the model from a domain CostCentre
func (m *CostCentreModel) FromDomain(c *asset.CostCentre) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.DepartmentID = c.DepartmentID
	m.ManagerID = c.ManagerID
	m.Active = c.Active
}

// LocationModel is the persistence model for locations
type LocationModel struct {
	TenantAggregateModel
	Code     string     `gorm:"type:varchar(50);not null"`
	Name     string     `gorm:"type:varchar(200);not null"`
	Address  string     `gorm:"type:text"`
	City     string     `gorm:"type:varchar(100)"`
	Country  string     `gorm:"type:varchar(100)"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the model to a domain Location
func (m *LocationModel) ToDomain() *asset.Location {
	return &asset.Location{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Address:             m.Address,
		City:                m.City,
		Country:             m.Country,
		ParentID:            m.ParentID,
	}
}

// FromDomain populates the model from a domain Location
func (m *LocationModel) FromDomain(l *asset.Location) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.Code = l.Code
	m.Name = l.Name
	m.Address = l.Address
	m.City = l.City
	m.Country = l.Country
	m.ParentID = l.ParentID
}

// WipAssetModel is the persistence model for assets under construction
type WipAssetModel struct {
	TenantAggregateModel
	Code               string          `gorm:"type:varchar(50);not null"`
	Name               string          `gorm:"type:varchar(200);not null"`
	CategoryID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID         *uuid.UUID      `gorm:"type:uuid"`
	Currency           string          `gorm:"type:char(3);not null"`
	BudgetAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccumulatedCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ProgressPercent    int             `gorm:"not null;default:0"`
	Status             asset.WipStatus `gorm:"type:varchar(20);not null"`
	CapitalizedAssetID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (WipAssetModel) TableName() string {
	return "wip_assets"
}

// ToDomain converts the model to a domain WipAsset
func (m *WipAssetModel) ToDomain() *asset.WipAsset {
	return &asset.WipAsset{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		CategoryID:          m.CategoryID,
		LocationID:          m.LocationID,
		Currency:            valueobject.Currency(m.Currency),
		BudgetAmount:        m.BudgetAmount,
		AccumulatedCost:     m.AccumulatedCost,
		ProgressPercent:     m.ProgressPercent,
		Status:              m.Status,
		CapitalizedAssetID:  m.CapitalizedAssetID,
	}
}

// FromDomain populates the model from a domain WipAsset
func (m *WipAssetModel) FromDomain(w *asset.WipAsset) {
	m.FromDomainTenantAggregateRoot(w.TenantAggregateRoot)
	m.Code = w.Code
	m.Name = w.Name
	m.CategoryID = w.CategoryID
	m.LocationID = w.LocationID
	m.Currency = w.Currency.String()
	m.BudgetAmount = w.BudgetAmount
	m.AccumulatedCost = w.AccumulatedCost
	m.ProgressPercent = w.ProgressPercent
	m.Status = w.Status
	m.CapitalizedAssetID = w.CapitalizedAssetID
}
