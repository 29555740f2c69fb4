// Package models contains GORM persistence models that map to database tables.
// They are separate from domain entities so the domain stays free of ORM tags.
//
// Each model offers FromDomain and ToDomain. Repositories load and store
// models and hand domain aggregates to the application layer.
//
// Files follow the bounded contexts:
//   - base.go: shared columns (id, timestamps, version, tenant, created_by)
//   - identity.go: tenants, users, roles, departments
//   - asset.go: categories, locations, cost centres, assets, components, WIP
//   - finance.go: budgets, forex rates, depreciation records
//   - lease.go: contracts and leases
//   - partner.go, link.go, report.go, notification.go
package models
