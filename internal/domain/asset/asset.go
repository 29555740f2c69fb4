package asset

import (
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an asset
type Status string

const (
	StatusInUse            Status = "in_use"
	StatusInStorage        Status = "in_storage"
	StatusUnderMaintenance Status = "under_maintenance"
	StatusDisposed         Status = "disposed"
)

// ParseStatus validates an operational (non-disposed) status
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusInUse, StatusInStorage, StatusUnderMaintenance:
		return st, nil
	case StatusDisposed:
		return "", shared.NewDomainError("INVALID_ASSET_STATUS", "Use the dispose operation to dispose an asset")
	}
	return "", shared.NewDomainError("INVALID_ASSET_STATUS", "Status must be in_use, in_storage or under_maintenance")
}

// Assignment says where an asset is and who is accountable for it
type Assignment struct {
	LocationID   *uuid.UUID
	DepartmentID *uuid.UUID
	CostCentreID *uuid.UUID
	CustodianID  *uuid.UUID
}

// Disposal records how an asset left the register
type Disposal struct {
	Date     time.Time
	Proceeds decimal.Decimal
	Reason   string
}

// Asset is a trackable physical or financial item owned by a tenant
type Asset struct {
	shared.TenantAggregateRoot
	Tag          string
	Name         string
	Description  string
	SerialNumber string
	CategoryID   uuid.UUID
	SupplierID   *uuid.UUID
	Assignment

	AcquisitionDate         time.Time
	AcquisitionCost         decimal.Decimal
	Currency                valueobject.Currency
	ResidualValue           decimal.Decimal
	UsefulLifeMonths        int
	Method                  DepreciationMethod
	AccumulatedDepreciation decimal.Decimal

	Status   Status
	Disposal *Disposal
}

// NewAsset registers an asset in use. Depreciation terms are inherited from
// the category: method and life as-is, residual value as cost times the rate.
func NewAsset(
	category *Category,
	tag, name string,
	cost decimal.Decimal,
	currency valueobject.Currency,
	acquiredOn time.Time,
) (*Asset, error) {
	tag, err := shared.NormalizeCode("asset", tag, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("asset", name, 200)
	if err != nil {
		return nil, err
	}
	if err := valueobject.RequireNonNegative("acquisition_cost", cost); err != nil {
		return nil, err
	}
	if acquiredOn.IsZero() {
		return nil, shared.NewDomainError("INVALID_ACQUISITION_DATE", "Acquisition date is required")
	}

	a := &Asset{
		TenantAggregateRoot:     shared.NewTenantAggregateRoot(category.TenantID),
		Tag:                     tag,
		Name:                    name,
		CategoryID:              category.ID,
		AcquisitionDate:         acquiredOn,
		AcquisitionCost:         cost,
		Currency:                currency,
		ResidualValue:           valueobject.RoundAmount(cost.Mul(category.ResidualRate)),
		UsefulLifeMonths:        category.UsefulLifeMonths,
		Method:                  category.Method,
		AccumulatedDepreciation: decimal.Zero,
		Status:                  StatusInUse,
	}
	return a, nil
}

// MarkCreated records the creator and raises AssetCreated
func (a *Asset) MarkCreated(createdBy uuid.UUID) {
	a.SetCreatedBy(createdBy)
	a.AddDomainEvent(NewAssetCreatedEvent(a))
}

// UpdateDetails sets the descriptive fields
func (a *Asset) UpdateDetails(name, description, serialNumber string, supplierID *uuid.UUID) error {
	if err := a.ensureNotDisposed(); err != nil {
		return err
	}
	name, err := shared.RequireName("asset", name, 200)
	if err != nil {
		return err
	}
	a.Name = name
	a.Description = strings.TrimSpace(description)
	a.SerialNumber = strings.TrimSpace(serialNumber)
	a.SupplierID = supplierID
	a.Touch()
	return nil
}

// SetCategory moves the asset to another category of the same tenant
func (a *Asset) SetCategory(category *Category) error {
	if err := a.ensureNotDisposed(); err != nil {
		return err
	}
	if category.TenantID != a.TenantID {
		return shared.NewDomainError("INVALID_CATEGORY", "Category belongs to another tenant")
	}
	a.CategoryID = category.ID
	a.Touch()
	return nil
}

// SetFinancials sets acquisition and depreciation terms. Terms cannot be
// changed below what has already been depreciated.
func (a *Asset) SetFinancials(
	cost, residual decimal.Decimal,
	currency valueobject.Currency,
	acquiredOn time.Time,
	method DepreciationMethod,
	usefulLifeMonths int,
) error {
	if err := a.ensureNotDisposed(); err != nil {
		return err
	}
	if err := valueobject.RequireNonNegative("acquisition_cost", cost); err != nil {
		return err
	}
	if err := valueobject.RequireNonNegative("residual_value", residual); err != nil {
		return err
	}
	if residual.GreaterThan(cost) {
		return shared.NewDomainError("INVALID_RESIDUAL_VALUE", "Residual value cannot exceed acquisition cost")
	}
	if a.AccumulatedDepreciation.GreaterThan(cost.Sub(residual)) {
		return shared.NewDomainError("INVALID_RESIDUAL_VALUE", "Depreciable amount cannot be below accumulated depreciation")
	}
	if err := validateDepreciationTerms(method, usefulLifeMonths, decimal.Zero); err != nil {
		return err
	}
	if acquiredOn.IsZero() {
		return shared.NewDomainError("INVALID_ACQUISITION_DATE", "Acquisition date is required")
	}
	a.AcquisitionCost = cost
	a.ResidualValue = residual
	a.Currency = currency
	a.AcquisitionDate = acquiredOn
	a.Method = method
	a.UsefulLifeMonths = usefulLifeMonths
	a.Touch()
	return nil
}

// SetStatus changes the operational status
func (a *Asset) SetStatus(status Status) error {
	if err := a.ensureNotDisposed(); err != nil {
		return err
	}
	if status == StatusDisposed {
		return shared.NewDomainError("INVALID_ASSET_STATUS", "Use the dispose operation to dispose an asset")
	}
	a.Status = status
	a.Touch()
	return nil
}

// Assign sets the initial assignment without raising a transfer
func (a *Asset) Assign(to Assignment) {
	a.Assignment = to
}

// Transfer moves the asset to a new assignment and raises AssetTransferred
func (a *Asset) Transfer(to Assignment, actor uuid.UUID) error {
	if err := a.ensureNotDisposed(); err != nil {
		return err
	}
	from := a.Assignment
	a.Assignment = to
	a.Touch()
	a.AddDomainEvent(NewAssetTransferredEvent(a, from, actor))
	return nil
}

// Dispose removes the asset from service. A disposed asset is frozen.
func (a *Asset) Dispose(date time.Time, proceeds decimal.Decimal, reason string, actor uuid.UUID) error {
	if err := a.ensureNotDisposed(); err != nil {
		return err
	}
	if err := valueobject.RequireNonNegative("proceeds", proceeds); err != nil {
		return err
	}
	if date.IsZero() {
		date = time.Now()
	}
	if date.Before(a.AcquisitionDate) {
		return shared.NewDomainError("INVALID_DISPOSAL_DATE", "Disposal date cannot precede acquisition")
	}
	a.Status = StatusDisposed
	a.Disposal = &Disposal{Date: date, Proceeds: proceeds, Reason: strings.TrimSpace(reason)}
	a.Touch()
	a.AddDomainEvent(NewAssetDisposedEvent(a, actor))
	return nil
}

// PostDepreciation adds a posted depreciation amount
func (a *Asset) PostDepreciation(amount decimal.Decimal) error {
	if err := a.ensureNotDisposed(); err != nil {
		return err
	}
	if err := valueobject.RequireNonNegative("depreciation", amount); err != nil {
		return err
	}
	if a.AccumulatedDepreciation.Add(amount).GreaterThan(a.DepreciableAmount()) {
		return shared.NewDomainError("OVER_DEPRECIATION", "Depreciation would reduce book value below residual")
	}
	a.AccumulatedDepreciation = a.AccumulatedDepreciation.Add(amount)
	a.Touch()
	return nil
}

// BookValue is cost less accumulated depreciation
func (a *Asset) BookValue() decimal.Decimal {
	return a.AcquisitionCost.Sub(a.AccumulatedDepreciation)
}

// DepreciableAmount is cost less residual value
func (a *Asset) DepreciableAmount() decimal.Decimal {
	return a.AcquisitionCost.Sub(a.ResidualValue)
}

// IsFullyDepreciated reports whether book value has reached residual
func (a *Asset) IsFullyDepreciated() bool {
	return !a.AccumulatedDepreciation.LessThan(a.DepreciableAmount())
}

// IsDisposed reports whether the asset has left the register
func (a *Asset) IsDisposed() bool {
	return a.Status == StatusDisposed
}

func (a *Asset) ensureNotDisposed() error {
	if a.IsDisposed() {
		return shared.NewDomainError("ASSET_DISPOSED", "Disposed assets cannot be modified")
	}
	return nil
}
