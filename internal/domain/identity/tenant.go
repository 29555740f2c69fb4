package identity

import (
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusTrial     TenantStatus = "trial"
)

// PlatformTenantCode is the code of the operator's tenant. Its members
// administer every other tenant; members of any other tenant only see their
// own.
const PlatformTenantCode = "PLATFORM"

// Tenant is a customer organization. Every other aggregate is scoped to one.
type Tenant struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	ContactEmail string
	Phone        string
	Address      string
	Currency     valueobject.Currency
	Status       TenantStatus
}

// NewTenant creates an active tenant
func NewTenant(code, name string) (*Tenant, error) {
	code, err := validateTenantCode(code)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("tenant", name, 200)
	if err != nil {
		return nil, err
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Currency:          valueobject.DefaultCurrency,
		Status:            TenantStatusActive,
	}, nil
}

// IsPlatform reports whether t is the operator's tenant
func (t *Tenant) IsPlatform() bool {
	return t.Code == PlatformTenantCode
}

// Update replaces the tenant's descriptive fields
func (t *Tenant) Update(name, contactEmail, phone, address, currency string) error {
	name, err := shared.RequireName("tenant", name, 200)
	if err != nil {
		return err
	}
	email, err := shared.NormalizeEmail(contactEmail)
	if err != nil {
		return err
	}
	cur, err := valueobject.ParseCurrency(currency, t.Currency)
	if err != nil {
		return err
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	t.Name = name
	t.ContactEmail = email
	t.Phone = strings.TrimSpace(phone)
	t.Address = strings.TrimSpace(address)
	t.Currency = cur
	t.Touch()
	return nil
}

// Activate moves a suspended or trial tenant to active
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}
	t.Status = TenantStatusActive
	t.Touch()
	return nil
}

// Suspend blocks the tenant's users from signing in
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}
	t.Status = TenantStatusSuspended
	t.Touch()
	return nil
}

// IsActive reports whether the tenant's users may sign in
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive || t.Status == TenantStatusTrial
}

func validateTenantCode(code string) (string, error) {
	code, err := shared.NormalizeCode("tenant", code, 50)
	if err != nil {
		return "", err
	}
	if len(code) < 2 {
		return "", shared.NewDomainError("INVALID_TENANT_CODE", "tenant code must be at least 2 characters")
	}
	return code, nil
}
