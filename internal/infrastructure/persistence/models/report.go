package models

import (
	"github.com/assetops/backend/internal/domain/report"
)

// ReportTemplateModel is the persistence model for report templates. Columns
// are stored as a JSON array.
type ReportTemplateModel struct {
	TenantAggregateModel
	Code          string          `gorm:"type:varchar(50);not null"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Entity        report.Entity   `gorm:"type:varchar(30);not null"`
	Columns       []report.Column `gorm:"type:text;serializer:json"`
	Body          string          `gorm:"type:text"`
	DefaultFormat report.Format   `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (ReportTemplateModel) TableName() string {
	return "report_templates"
}

// ToDomain converts the model to a domain Template
func (m *ReportTemplateModel) ToDomain() *report.Template {
	return &report.Template{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		Entity:              m.Entity,
		Columns:             m.Columns,
		Body:                m.Body,
		DefaultFormat:       m.DefaultFormat,
	}
}

// FromDomain populates the model from a domain Template
func (m *ReportTemplateModel) FromDomain(t *report.Template) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.Description = t.Description
	m.Entity = t.Entity
	m.Columns = t.Columns
	m.Body = t.Body
	m.DefaultFormat = t.DefaultFormat
}
