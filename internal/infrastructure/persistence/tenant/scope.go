// Package tenant provides multi-tenant database scoping for GORM.
//
// Every tenant-scoped repository query goes through Scope, so a missing
// tenant ID fails the query instead of reading across tenants.
//
// Usage:
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Find(&assets)
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Column is the tenant ID column of every tenant-scoped table
const Column = "tenant_id"

// ErrTenantIDRequired is returned when a scoped query has no tenant
var ErrTenantIDRequired = errors.New("tenant_id is required for a tenant-scoped query")

// Scope filters a query to one tenant. A nil tenant ID adds
// ErrTenantIDRequired to the statement.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(Column+" = ?", tenantID)
	}
}
