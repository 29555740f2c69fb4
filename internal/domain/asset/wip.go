package asset

import (
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WipStatus is the state of an asset under construction
type WipStatus string

const (
	WipInProgress  WipStatus = "in_progress"
	WipCompleted   WipStatus = "completed"
	WipCancelled   WipStatus = "cancelled"
	WipCapitalized WipStatus = "capitalized"
)

// WipAsset accumulates construction costs until it is capitalized into an Asset
type WipAsset struct {
	shared.TenantAggregateRoot
	Code               string
	Name               string
	CategoryID         uuid.UUID
	LocationID         *uuid.UUID
	Currency           valueobject.Currency
	BudgetAmount       decimal.Decimal
	AccumulatedCost    decimal.Decimal
	ProgressPercent    int
	Status             WipStatus
	CapitalizedAssetID *uuid.UUID
}

// NewWipAsset starts tracking an asset under construction
func NewWipAsset(category *Category, code, name string, budget decimal.Decimal, currency valueobject.Currency) (*WipAsset, error) {
	code, err := shared.NormalizeCode("wip_asset", code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("wip_asset", name, 200)
	if err != nil {
		return nil, err
	}
	if err := valueobject.RequireNonNegative("budget_amount", budget); err != nil {
		return nil, err
	}
	return &WipAsset{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(category.TenantID),
		Code:                code,
		Name:                name,
		CategoryID:          category.ID,
		Currency:            currency,
		BudgetAmount:        budget,
		AccumulatedCost:     decimal.Zero,
		Status:              WipInProgress,
	}, nil
}

// Update sets the descriptive fields and progress while work is open
func (w *WipAsset) Update(name string, locationID *uuid.UUID, budget decimal.Decimal, progress int) error {
	if w.Status != WipInProgress && w.Status != WipCompleted {
		return shared.NewDomainError("INVALID_STATE", "Only open work in progress can be edited")
	}
	name, err := shared.RequireName("wip_asset", name, 200)
	if err != nil {
		return err
	}
	if err := valueobject.RequireNonNegative("budget_amount", budget); err != nil {
		return err
	}
	if progress < 0 || progress > 100 {
		return shared.NewDomainError("INVALID_PROGRESS", "Progress must be between 0 and 100")
	}
	w.Name = name
	w.LocationID = locationID
	w.BudgetAmount = budget
	w.ProgressPercent = progress
	w.Touch()
	return nil
}

// AddCost books a construction cost
func (w *WipAsset) AddCost(amount decimal.Decimal) error {
	if w.Status != WipInProgress {
		return shared.NewDomainError("INVALID_STATE", "Costs can only be added while in progress")
	}
	if err := valueobject.RequirePositive("amount", amount); err != nil {
		return err
	}
	w.AccumulatedCost = w.AccumulatedCost.Add(amount)
	w.Touch()
	return nil
}

// Complete marks construction finished
func (w *WipAsset) Complete() error {
	if w.Status != WipInProgress {
		return shared.NewDomainError("INVALID_STATE", "Only work in progress can be completed")
	}
	w.Status = WipCompleted
	w.ProgressPercent = 100
	w.Touch()
	return nil
}

// Cancel abandons the construction
func (w *WipAsset) Cancel() error {
	if w.Status != WipInProgress && w.Status != WipCompleted {
		return shared.NewDomainError("INVALID_STATE", "Only open work in progress can be cancelled")
	}
	w.Status = WipCancelled
	w.Touch()
	return nil
}

// Capitalize creates the finished Asset from the accumulated cost and marks
// this record capitalized. category must be the WIP's category.
func (w *WipAsset) Capitalize(category *Category, tag string, acquiredOn time.Time, actor uuid.UUID) (*Asset, error) {
	if w.Status != WipInProgress && w.Status != WipCompleted {
		return nil, shared.NewDomainError("INVALID_STATE", "Only open work in progress can be capitalized")
	}
	if category.ID != w.CategoryID {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not match the work in progress")
	}
	if acquiredOn.IsZero() {
		acquiredOn = time.Now()
	}

	created, err := NewAsset(category, tag, w.Name, w.AccumulatedCost, w.Currency, acquiredOn)
	if err != nil {
		return nil, err
	}
	created.Assign(Assignment{LocationID: w.LocationID})
	created.MarkCreated(actor)

	id := created.ID
	w.Status = WipCapitalized
	w.ProgressPercent = 100
	w.CapitalizedAssetID = &id
	w.Touch()
	w.AddDomainEvent(NewWipCapitalizedEvent(w, actor))
	return created, nil
}
