package asset

import (
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Location is a site, building or room where assets are kept
type Location struct {
	shared.TenantAggregateRoot
	Code     string
	Name     string
	Address  string
	City     string
	Country  string
	ParentID *uuid.UUID
}

// NewLocation creates a location
func NewLocation(tenantID uuid.UUID, code, name string) (*Location, error) {
	code, err := shared.NormalizeCode("location", code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName("location", name, 100)
	if err != nil {
		return nil, err
	}
	return &Location{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
	}, nil
}

// Update sets the descriptive fields
func (l *Location) Update(name, address, city, country string, parentID *uuid.UUID) error {
	name, err := shared.RequireName("location", name, 100)
	if err != nil {
		return err
	}
	if parentID != nil && *parentID == l.ID {
		return shared.NewDomainError("INVALID_PARENT", "Location cannot be its own parent")
	}
	l.Name = name
	l.Address = strings.TrimSpace(address)
	l.City = strings.TrimSpace(city)
	l.Country = strings.ToUpper(strings.TrimSpace(country))
	l.ParentID = parentID
	l.Touch()
	return nil
}
