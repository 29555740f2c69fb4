package lease

import (
	"time"

	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractDTO represents a contract
type ContractDTO struct {
	ID        uuid.UUID        `json:"id"`
	Number    string           `json:"number"`
	Title     string           `json:"title"`
	PartnerID uuid.UUID        `json:"partner_id"`
	StartDate valueobject.Date `json:"start_date"`
	EndDate   valueobject.Date `json:"end_date"`
	Value     decimal.Decimal  `json:"value"`
	Currency  string           `json:"currency"`
	Notes     string           `json:"notes,omitempty"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Version   int              `json:"version"`
}

// CreateContractInput is the body of POST /contracts
type CreateContractInput struct {
	Number    string           `json:"number" binding:"required,max=50"`
	Title     string           `json:"title" binding:"required,max=200"`
	PartnerID uuid.UUID        `json:"partner_id" binding:"required"`
	StartDate valueobject.Date `json:"start_date"`
	EndDate   valueobject.Date `json:"end_date"`
	Value     decimal.Decimal  `json:"value"`
	Currency  string           `json:"currency" binding:"omitempty,len=3"`
	Notes     string           `json:"notes"`
}

// UpdateContractInput is the body of PUT /contracts/:id. Status "active"
// activates a draft, "terminated" ends an active contract.
type UpdateContractInput struct {
	Title     string           `json:"title" binding:"required,max=200"`
	StartDate valueobject.Date `json:"start_date"`
	EndDate   valueobject.Date `json:"end_date"`
	Value     decimal.Decimal  `json:"value"`
	Currency  string           `json:"currency" binding:"omitempty,len=3"`
	Notes     string           `json:"notes"`
	Status    string           `json:"status" binding:"omitempty,oneof=draft active terminated"`
}

// LeaseDTO represents a lease with its valuation
type LeaseDTO struct {
	ID            uuid.UUID         `json:"id"`
	ContractID    *uuid.UUID        `json:"contract_id,omitempty"`
	AssetID       uuid.UUID         `json:"asset_id"`
	PartnerID     uuid.UUID         `json:"partner_id"`
	Direction     string            `json:"direction"`
	StartDate     valueobject.Date  `json:"start_date"`
	EndDate       valueobject.Date  `json:"end_date"`
	PaymentAmount decimal.Decimal   `json:"payment_amount"`
	Frequency     string            `json:"frequency"`
	Currency      string            `json:"currency"`
	DiscountRate  decimal.Decimal   `json:"discount_rate"`
	PresentValue  decimal.Decimal   `json:"present_value"`
	TotalPayments decimal.Decimal   `json:"total_payments"`
	Status        string            `json:"status"`
	TerminatedAt  *valueobject.Date `json:"terminated_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Version       int               `json:"version"`
}

// LeaseInput creates or updates a lease. AssetID and PartnerID are fixed
// after creation.
type LeaseInput struct {
	ContractID    *uuid.UUID       `json:"contract_id"`
	AssetID       uuid.UUID        `json:"asset_id"`
	PartnerID     uuid.UUID        `json:"partner_id"`
	Direction     string           `json:"direction" binding:"omitempty,oneof=lessee lessor"`
	StartDate     valueobject.Date `json:"start_date"`
	EndDate       valueobject.Date `json:"end_date"`
	PaymentAmount decimal.Decimal  `json:"payment_amount"`
	Frequency     string           `json:"frequency" binding:"omitempty,oneof=monthly quarterly yearly"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	DiscountRate  decimal.Decimal  `json:"discount_rate"`
}

// TerminateInput is the body of POST /leases/:id/terminate
type TerminateInput struct {
	Date valueobject.Date `json:"date"`
}

// ScheduleRowDTO is one lease payment
type ScheduleRowDTO struct {
	Number         int              `json:"number"`
	Date           valueobject.Date `json:"date"`
	Amount         decimal.Decimal  `json:"amount"`
	DiscountFactor decimal.Decimal  `json:"discount_factor"`
	PresentValue   decimal.Decimal  `json:"present_value"`
	RunningTotal   decimal.Decimal  `json:"running_total"`
}

// ScheduleDTO is the payment schedule of a lease
type ScheduleDTO struct {
	LeaseID       uuid.UUID        `json:"lease_id"`
	Currency      string           `json:"currency"`
	PresentValue  decimal.Decimal  `json:"present_value"`
	TotalPayments decimal.Decimal  `json:"total_payments"`
	Rows          []ScheduleRowDTO `json:"rows"`
}

func toContractDTO(c *lease.Contract) ContractDTO {
	return ContractDTO{
		ID:        c.ID,
		Number:    c.Number,
		Title:     c.Title,
		PartnerID: c.PartnerID,
		StartDate: valueobject.NewDate(c.StartDate),
		EndDate:   valueobject.NewDate(c.EndDate),
		Value:     c.Value,
		Currency:  c.Currency.String(),
		Notes:     c.Notes,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToLeaseDTO converts a lease for other packages rendering lease rows
func ToLeaseDTO(l *lease.Lease) LeaseDTO {
	dto := LeaseDTO{
		ID:            l.ID,
		ContractID:    l.ContractID,
		AssetID:       l.AssetID,
		PartnerID:     l.PartnerID,
		Direction:     string(l.Direction),
		StartDate:     valueobject.NewDate(l.StartDate),
		EndDate:       valueobject.NewDate(l.EndDate),
		PaymentAmount: l.Payment,
		Frequency:     string(l.Frequency),
		Currency:      l.Currency.String(),
		DiscountRate:  l.DiscountRate,
		PresentValue:  l.PresentValue(),
		TotalPayments: l.TotalPayments(),
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		Version:       l.Version,
	}
	if l.TerminatedAt != nil {
		d := valueobject.NewDate(*l.TerminatedAt)
		dto.TerminatedAt = &d
	}
	return dto
}
