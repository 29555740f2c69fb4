package models

import (
	"time"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TenantModel is the persistence model for tenants
type TenantModel struct {
	AggregateModel
	Code         string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string                `gorm:"type:varchar(200);not null"`
	ContactEmail string                `gorm:"type:varchar(200)"`
	Phone        string                `gorm:"type:varchar(50)"`
	Address      string                `gorm:"type:text"`
	Currency     string                `gorm:"type:char(3);not null"`
	Status       identity.TenantStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain Tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: m.aggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		ContactEmail:      m.ContactEmail,
		Phone:             m.Phone,
		Address:           m.Address,
		Currency:          valueobject.Currency(m.Currency),
		Status:            m.Status,
	}
}

// FromDomain populates the model from a domain Tenant
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.ContactEmail = t.ContactEmail
	m.Phone = t.Phone
	m.Address = t.Address
	m.Currency = t.Currency.String()
	m.Status = t.Status
}

// UserModel is the persistence model for users. Role assignments live in
// user_roles.
type UserModel struct {
	TenantAggregateModel
	Email             string              `gorm:"type:varchar(200);not null"`
	DisplayName       string              `gorm:"type:varchar(200)"`
	Phone             string              `gorm:"type:varchar(50)"`
	PasswordHash      string              `gorm:"type:varchar(255);not null"`
	Status            identity.UserStatus `gorm:"type:varchar(20);not null"`
	DepartmentID      *uuid.UUID          `gorm:"type:uuid;index"`
	LastLoginAt       *time.Time
	LastLoginIP       string `gorm:"type:varchar(45)"`
	FailedAttempts    int    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User. RoleIDs are loaded by the
// repository.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAggregateRoot: m.tenantRoot(),
		Email:               m.Email,
		DisplayName:         m.DisplayName,
		Phone:               m.Phone,
		PasswordHash:        m.PasswordHash,
		Status:              m.Status,
		DepartmentID:        m.DepartmentID,
		RoleIDs:             []uuid.UUID{},
		LastLoginAt:         m.LastLoginAt,
		LastLoginIP:         m.LastLoginIP,
		FailedAttempts:      m.FailedAttempts,
		LockedUntil:         m.LockedUntil,
		PasswordChangedAt:   m.PasswordChangedAt,
	}
}

// FromDomain populates the model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Email = u.Email
	m.DisplayName = u.DisplayName
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Status = u.Status
	m.DepartmentID = u.DepartmentID
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
}

// UserRoleModel links a user to a role. Position keeps the assignment order;
// the first role is the user's primary role.
type UserRoleModel struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// RoleModel is the persistence model for roles. Permissions are stored as a
// JSON array.
type RoleModel struct {
	TenantAggregateModel
	Code         string                `gorm:"type:varchar(50);not null"`
	Name         string                `gorm:"type:varchar(100);not null"`
	Description  string                `gorm:"type:text"`
	IsSystemRole bool                  `gorm:"not null;default:false"`
	IsEnabled    bool                  `gorm:"not null;default:true"`
	Permissions  []identity.Permission `gorm:"type:text;serializer:json"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the model to a domain Role
func (m *RoleModel) ToDomain() *identity.Role {
	perms := m.Permissions
	if perms == nil {
		perms = []identity.Permission{}
	}
	return &identity.Role{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		IsSystemRole:        m.IsSystemRole,
		IsEnabled:           m.IsEnabled,
		Permissions:         perms,
	}
}

// FromDomain populates the model from a domain Role
func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.Code = r.Code
	m.Name = r.Name
	m.Description = r.Description
	m.IsSystemRole = r.IsSystemRole
	m.IsEnabled = r.IsEnabled
	m.Permissions = r.Permissions
}

// DepartmentModel is the persistence model for departments
type DepartmentModel struct {
	TenantAggregateModel
	Code        string                    `gorm:"type:varchar(50);not null"`
	Name        string                    `gorm:"type:varchar(200);not null"`
	Description string                    `gorm:"type:text"`
	ParentID    *uuid.UUID                `gorm:"type:uuid;index"`
	Path        string                    `gorm:"type:text;not null"`
	Level       int                       `gorm:"not null;default:0"`
	ManagerID   *uuid.UUID                `gorm:"type:uuid"`
	Status      identity.DepartmentStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the model to a domain Department
func (m *DepartmentModel) ToDomain() *identity.Department {
	return &identity.Department{
		TenantAggregateRoot: m.tenantRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		ParentID:            m.ParentID,
		Path:                m.Path,
		Level:               m.Level,
		ManagerID:           m.ManagerID,
		Status:              m.Status,
	}
}

// FromDomain populates the model from a domain Department
func (m *DepartmentModel) FromDomain(d *identity.Department) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.Code = d.Code
	m.Name = d.Name
	m.Description = d.Description
	m.ParentID = d.ParentID
	m.Path = d.Path
	m.Level = d.Level
	m.ManagerID = d.ManagerID
	m.Status = d.Status
}
