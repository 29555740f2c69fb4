// Package partner holds the external parties assets are bought from or leased with.
package partner

import (
	"context"
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type classifies a partner
type Type string

const (
	TypeSupplier Type = "supplier"
	TypeLessor   Type = "lessor"
	TypeLessee   Type = "lessee"
	TypeCustomer Type = "customer"
	TypeOther    Type = "other"
)

// ParseType validates a partner type; empty means other
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TypeOther, nil
	case TypeSupplier, TypeLessor, TypeLessee, TypeCustomer, TypeOther:
		return t, nil
	}
	return "", shared.NewDomainError("INVALID_PARTNER_TYPE", "Partner type must be supplier, lessor, lessee, customer or other")
}

// Partner is a supplier, lessor, lessee or customer
type Partner struct {
	shared.TenantAggregateRoot
	Code    string
	Name    string
	Type    Type
	Email   string
	Phone   string
	Address string
	TaxID   string
	Active  bool
}

// NewPartner creates an active partner
func NewPartner(tenantID uuid.UUID, code, name string, partnerType Type) (*Partner, error) {
	code, err := shared.NormalizeCode("partner", code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("partner", name, 200)
	if err != nil {
		return nil, err
	}
	return &Partner{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Type:                partnerType,
		Active:              true,
	}, nil
}

// Update sets the editable fields
func (p *Partner) Update(name string, partnerType Type, email, phone, address, taxID string, active bool) error {
	name, err := shared.RequireName("partner", name, 200)
	if err != nil {
		return err
	}
	email, err = shared.NormalizeEmail(email)
	if err != nil {
		return err
	}
	p.Name = name
	p.Type = partnerType
	p.Email = email
	p.Phone = strings.TrimSpace(phone)
	p.Address = strings.TrimSpace(address)
	p.TaxID = strings.TrimSpace(taxID)
	p.Active = active
	p.Touch()
	return nil
}

// Repository persists partners
type Repository interface {
	shared.CrudRepository[Partner]
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}
