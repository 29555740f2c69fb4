package models

import (
	"time"

	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetModel is the persistence model for budgets
type BudgetModel struct {
	TenantAggregateModel
	Code         string               `gorm:"type:varchar(50);not null"`
	Name         string               `gorm:"type:varchar(200);not null"`
	FiscalYear   int                  `gorm:"not null;index"`
	CostCentreID *uuid.UUID           `gorm:"type:uuid;index"`
	CategoryID   *uuid.UUID           `gorm:"type:uuid;index"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency     string               `gorm:"type:char(3);not null"`
	Spent        decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Status       finance.BudgetStatus `gorm:"type:varchar(20);not null"`
	ApprovedBy   *uuid.UUID           `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the model to a domain Budget
func (m *BudgetModel) ToDomain() *finance.Budget {
	return &finance.Budget{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		FiscalYear:          m.FiscalYear,
		CostCentreID:        m.CostCentreID,
		CategoryID:          m.CategoryID,
		Amount:              m.Amount,
		Currency:            valueobject.Currency(m.Currency),
		Spent:               m.Spent,
		Status:              m.Status,
		ApprovedBy:          m.ApprovedBy,
	}
}

// FromDomain populates the model from a domain Budget
func (m *BudgetModel) FromDomain(b *finance.Budget) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.Code = b.Code
	m.Name = b.Name
	m.FiscalYear = b.FiscalYear
	m.CostCentreID = b.CostCentreID
	m.CategoryID = b.CategoryID
	m.Amount = b.Amount
	m.Currency = b.Currency.String()
	m.Spent = b.Spent
	m.Status = b.Status
	m.ApprovedBy = b.ApprovedBy
}

// DepreciationRecordModel is the persistence model for posted depreciation.
// (asset_id, period) is unique per tenant.
type DepreciationRecordModel struct {
	TenantAggregateModel
	AssetID          uuid.UUID                `gorm:"type:uuid;not null;index"`
	Period           string                   `gorm:"type:char(7);not null;index"`
	Method           asset.DepreciationMethod `gorm:"type:varchar(30);not null"`
	Amount           decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	AccumulatedAfter decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	BookValueAfter   decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PostedAt         time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DepreciationRecordModel) TableName() string {
	return "depreciation_records"
}

// ToDomain converts the model to a domain DepreciationRecord
func (m *DepreciationRecordModel) ToDomain() *finance.DepreciationRecord {
	return &finance.DepreciationRecord{
		TenantAggregateRoot: m.tenantRoot(),
		AssetID:             m.AssetID,
		Period:              m.Period,
		Method:              m.Method,
		Amount:              m.Amount,
		AccumulatedAfter:    m.AccumulatedAfter,
		BookValueAfter:      m.BookValueAfter,
		PostedAt:            m.PostedAt,
	}
}

// FromDomain populates the model from a domain DepreciationRecord
func (m *DepreciationRecordModel) FromDomain(r *finance.DepreciationRecord) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.AssetID = r.AssetID
	m.Period = r.Period
	m.Method = r.Method
	m.Amount = r.Amount
	m.AccumulatedAfter = r.AccumulatedAfter
	m.BookValueAfter = r.BookValueAfter
	m.PostedAt = r.PostedAt
}

// ForexRateModel is the persistence model for exchange rates
type ForexRateModel struct {
	TenantAggregateModel
	Base          string          `gorm:"type:char(3);not null;index:idx_forex_pair"`
	Quote         string          `gorm:"type:char(3);not null;index:idx_forex_pair"`
	Rate          decimal.Decimal `gorm:"type:decimal(20,10);not null"`
	EffectiveDate time.Time       `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (ForexRateModel) TableName() string {
	return "forex_rates"
}

// ToDomain converts the model to a domain ForexRate
func (m *ForexRateModel) ToDomain() *finance.ForexRate {
	return &finance.ForexRate{
		TenantAggregateRoot: m.tenantRoot(),
		Base:                valueobject.Currency(m.Base),
		Quote:               valueobject.Currency(m.Quote),
		Rate:                m.Rate,
		EffectiveDate:       m.EffectiveDate,
	}
}

// FromDomain populates the model from a domain ForexRate
func (m *ForexRateModel) FromDomain(r *finance.ForexRate) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.Base = r.Base.String()
	m.Quote = r.Quote.String()
	m.Rate = r.Rate
	m.EffectiveDate = r.EffectiveDate
}
