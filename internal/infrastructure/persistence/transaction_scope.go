package persistence

import (
	"context"

	appasset "github.com/assetops/backend/internal/application/asset"
	appfinance "github.com/assetops/backend/internal/application/finance"
	appidentity "github.com/assetops/backend/internal/application/identity"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormAssetTransactionScope implements the asset TransactionScope using GORM
// transactions. WIP capitalization runs in it.
type GormAssetTransactionScope struct {
	db *gorm.DB
}

// NewGormAssetTransactionScope creates a new GormAssetTransactionScope
func NewGormAssetTransactionScope(db *gorm.DB) *GormAssetTransactionScope {
	return &GormAssetTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormAssetTransactionScope) Execute(ctx context.Context, fn func(repos appasset.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormDepreciationTransactionScope implements the finance TransactionScope
// using GORM transactions. A depreciation run posts in it.
type GormDepreciationTransactionScope struct {
	db *gorm.DB
}

// NewGormDepreciationTransactionScope creates a new GormDepreciationTransactionScope
func NewGormDepreciationTransactionScope(db *gorm.DB) *GormDepreciationTransactionScope {
	return &GormDepreciationTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormDepreciationTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormIdentityTransactionScope implements the identity TransactionScope.
// Tenant provisioning writes the tenant, its ADMIN role and first user in it.
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

// NewGormIdentityTransactionScope creates a new GormIdentityTransactionScope
func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// AssetRepo returns the asset repository scoped to the current transaction
func (r *gormTransactionalRepositories) AssetRepo() asset.AssetRepository {
	return NewGormAssetRepository(r.tx)
}

// WipAssetRepo returns the WIP repository scoped to the current transaction
func (r *gormTransactionalRepositories) WipAssetRepo() asset.WipAssetRepository {
	return NewGormWipAssetRepository(r.tx)
}

// DepreciationRepo returns the depreciation repository scoped to the current transaction
func (r *gormTransactionalRepositories) DepreciationRepo() finance.DepreciationRepository {
	return NewGormDepreciationRepository(r.tx)
}

// TenantRepo returns the tenant repository scoped to the current transaction
func (r *gormTransactionalRepositories) TenantRepo() identity.TenantRepository {
	return NewGormTenantRepository(r.tx)
}

// RoleRepo returns the role repository scoped to the current transaction
func (r *gormTransactionalRepositories) RoleRepo() identity.RoleRepository {
	return NewGormRoleRepository(r.tx)
}

// UserRepo returns the user repository scoped to the current transaction
func (r *gormTransactionalRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

var (
	_ appasset.TransactionScope             = (*GormAssetTransactionScope)(nil)
	_ appfinance.TransactionScope           = (*GormDepreciationTransactionScope)(nil)
	_ appasset.TransactionalRepositories    = (*gormTransactionalRepositories)(nil)
	_ appfinance.TransactionalRepositories  = (*gormTransactionalRepositories)(nil)
	_ appidentity.TransactionScope          = (*GormIdentityTransactionScope)(nil)
	_ appidentity.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
