package models

import (
	"github.com/assetops/backend/internal/domain/partner"
)

// PartnerModel is the persistence model for partners
type PartnerModel struct {
	TenantAggregateModel
	Code    string       `gorm:"type:varchar(50);not null"`
	Name    string       `gorm:"type:varchar(200);not null"`
	Type    partner.Type `gorm:"type:varchar(20);not null;index"`
	Email   string       `gorm:"type:varchar(200)"`
	Phone   string       `gorm:"type:varchar(50)"`
	Address string       `gorm:"type:text"`
	TaxID   string       `gorm:"type:varchar(50)"`
	Active  bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the model to a domain Partner
func (m *PartnerModel) ToDomain() *partner.Partner {
	return &partner.Partner{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Type:                m.Type,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		TaxID:               m.TaxID,
		Active:              m.Active,
	}
}

// FromDomain populates the model from a domain Partner
func (m *PartnerModel) FromDomain(p *partner.Partner) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Type = p.Type
	m.Email = p.Email
	m.Phone = p.Phone
	m.Address = p.Address
	m.TaxID = p.TaxID
	m.Active = p.Active
}
