package models

import (
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the primary key
func (m *BaseModel) GetID() uuid.UUID {
	return m.ID
}

// AggregateModel extends BaseModel with the version used for optimistic locking
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the stored version
func (m *AggregateModel) GetVersion() int {
	return m.Version
}

// FromDomainAggregateRoot populates AggregateModel from a domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// aggregateRoot rebuilds the domain BaseAggregateRoot
func (m *AggregateModel) aggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Version: m.Version,
	}
}

// TenantAggregateModel extends AggregateModel with tenant ID and creator
type TenantAggregateModel struct {
	AggregateModel
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}

// GetTenantID returns the owning tenant
func (m *TenantAggregateModel) GetTenantID() uuid.UUID {
	return m.TenantID
}

// FromDomainTenantAggregateRoot populates TenantAggregateModel from a domain TenantAggregateRoot
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(t shared.TenantAggregateRoot) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.TenantID = t.TenantID
	m.CreatedBy = t.CreatedBy
}

// tenantRoot rebuilds the domain TenantAggregateRoot
func (m *TenantAggregateModel) tenantRoot() shared.TenantAggregateRoot {
	return shared.TenantAggregateRoot{
		BaseAggregateRoot: m.aggregateRoot(),
		TenantID:          m.TenantID,
		CreatedBy:         m.CreatedBy,
	}
}

// All returns every persistence model. Used by AutoMigrate for sqlite and in
// tests.
func All() []interface{} {
	return []interface{}{
		&TenantModel{},
		&UserModel{},
		&UserRoleModel{},
		&RoleModel{},
		&DepartmentModel{},
		&CategoryModel{},
		&LocationModel{},
		&CostCentreModel{},
		&AssetModel{},
		&ComponentModel{},
		&WipAssetModel{},
		&BudgetModel{},
		&ForexRateModel{},
		&DepreciationRecordModel{},
		&PartnerModel{},
		&ContractModel{},
		&LeaseModel{},
		&ShortURLModel{},
		&ReportTemplateModel{},
		&NotificationModel{},
	}
}
