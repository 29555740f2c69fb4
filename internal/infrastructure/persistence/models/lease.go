package models

import (
	"time"

	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractModel is the persistence model for contracts
type ContractModel struct {
	TenantAggregateModel
	Number    string               `gorm:"type:varchar(50);not null"`
	Title     string               `gorm:"type:varchar(200);not null"`
	PartnerID uuid.UUID            `gorm:"type:uuid;not null;index"`
	StartDate time.Time            `gorm:"type:date;not null"`
	EndDate   time.Time            `gorm:"type:date;not null"`
	Value     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency  string               `gorm:"type:char(3);not null"`
	Notes     string               `gorm:"type:text"`
	Status    lease.ContractStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the model to a domain Contract
func (m *ContractModel) ToDomain() *lease.Contract {
	return &lease.Contract{
		TenantAggregateRoot: m.tenantRoot(),
		Number:              m.Number,
		Title:               m.Title,
		PartnerID:           m.PartnerID,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		Value:               m.Value,
		Currency:            valueobject.Currency(m.Currency),
		Notes:               m.Notes,
		Status:              m.Status,
	}
}

// FromDomain populates the model from a domain Contract
func (m *ContractModel) FromDomain(c *lease.Contract) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Number = c.Number
	m.Title = c.Title
	m.PartnerID = c.PartnerID
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Value = c.Value
	m.Currency = c.Currency.String()
	m.Notes = c.Notes
	m.Status = c.Status
}

// LeaseModel is the persistence model for leases. Terms are flattened into
// columns.
type LeaseModel struct {
	TenantAggregateModel
	ContractID   *uuid.UUID      `gorm:"type:uuid;index"`
	AssetID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartnerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction    lease.Direction `gorm:"type:varchar(10);not null"`
	StartDate    time.Time       `gorm:"type:date;not null"`
	EndDate      time.Time       `gorm:"type:date;not null"`
	Payment      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Frequency    lease.Frequency `gorm:"type:varchar(20);not null"`
	Currency     string          `gorm:"type:char(3);not null"`
	DiscountRate decimal.Decimal `gorm:"type:decimal(9,6);not null"`
	Status       lease.Status    `gorm:"type:varchar(20);not null"`
	TerminatedAt *time.Time
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the model to a domain Lease
func (m *LeaseModel) ToDomain() *lease.Lease {
	return &lease.Lease{
		TenantAggregateRoot: m.tenantRoot(),
		ContractID:          m.ContractID,
		AssetID:             m.AssetID,
		PartnerID:           m.PartnerID,
		Direction:           m.Direction,
		Terms: lease.Terms{
			StartDate:    m.StartDate,
			EndDate:      m.EndDate,
			Payment:      m.Payment,
			Frequency:    m.Frequency,
			Currency:     valueobject.Currency(m.Currency),
			DiscountRate: m.DiscountRate,
		},
		Status:       m.Status,
		TerminatedAt: m.TerminatedAt,
	}
}

// FromDomain populates the model from a domain Lease
func (m *LeaseModel) FromDomain(l *lease.Lease) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.ContractID = l.ContractID
	m.AssetID = l.AssetID
	m.PartnerID = l.PartnerID
	m.Direction = l.Direction
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.Payment = l.Payment
	m.Frequency = l.Frequency
	m.Currency = l.Currency.String()
	m.DiscountRate = l.DiscountRate
	m.Status = l.Status
	m.TerminatedAt = l.TerminatedAt
}
