// Package lease holds contracts with partners and the leases written under them.
package lease

import (
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractStatus is the lifecycle state of a contract
type ContractStatus string

const (
	ContractDraft      ContractStatus = "draft"
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
)

// Contract is an agreement with a partner covering one or more leases
type Contract struct {
	shared.TenantAggregateRoot
	Number    string
	Title     string
	PartnerID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Value     decimal.Decimal
	Currency  valueobject.Currency
	Notes     string
	Status    ContractStatus
}

// NewContract creates a draft contract
func NewContract(tenantID uuid.UUID, number, title string, partnerID uuid.UUID, start, end time.Time, value decimal.Decimal, currency valueobject.Currency) (*Contract, error) {
	number, err := shared.NormalizeCode("contract", number, 50)
	if err != nil {
		return nil, err
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner is required")
	}
	c := &Contract{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		PartnerID:           partnerID,
		Status:              ContractDraft,
	}
	if err := c.apply(title, start, end, value, currency); err != nil {
		return nil, err
	}
	return c, nil
}

// Update sets the editable terms; closed contracts are read-only
func (c *Contract) Update(title string, start, end time.Time, value decimal.Decimal, currency valueobject.Currency, notes string) error {
	if c.Status == ContractExpired || c.Status == ContractTerminated {
		return shared.NewDomainError("INVALID_STATE", "Closed contracts cannot be edited")
	}
	if err := c.apply(title, start, end, value, currency); err != nil {
		return err
	}
	c.Notes = strings.TrimSpace(notes)
	c.Touch()
	return nil
}

func (c *Contract) apply(title string, start, end time.Time, value decimal.Decimal, currency valueobject.Currency) error {
	title, err := shared.RequireName("contract", title, 200)
	if err != nil {
		return err
	}
	if err := validateTerm(start, end); err != nil {
		return err
	}
	if err := valueobject.RequireNonNegative("value", value); err != nil {
		return err
	}
	c.Title = title
	c.StartDate = start
	c.EndDate = end
	c.Value = value
	c.Currency = currency
	return nil
}

// Activate moves a draft contract to active
func (c *Contract) Activate() error {
	if c.Status != ContractDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft contracts can be activated")
	}
	c.Status = ContractActive
	c.Touch()
	return nil
}

// Terminate ends an active contract early
func (c *Contract) Terminate() error {
	if c.Status != ContractActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can be terminated")
	}
	c.Status = ContractTerminated
	c.Touch()
	return nil
}

// Expire closes an active contract whose end date has passed
func (c *Contract) Expire(now time.Time) bool {
	if c.Status != ContractActive || !now.After(c.EndDate) {
		return false
	}
	c.Status = ContractExpired
	c.Touch()
	return true
}

func validateTerm(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_TERM", "Start and end dates are required")
	}
	if end.Before(start) {
		return shared.NewDomainError("INVALID_TERM", "End date cannot precede start date")
	}
	return nil
}
