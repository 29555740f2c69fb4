package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to all entities
var CommonSortFields = columns()

// columns builds a column whitelist holding the common fields plus extra
func columns(extra ...string) map[string]bool {
	m := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, c := range extra {
		m[c] = true
	}
	return m
}

// set builds a whitelist of exactly the given columns
func set(cols ...string) map[string]bool {
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}

// Per-entity sort whitelists
var (
	TenantSortFields       = columns("code", "name", "status")
	UserSortFields         = columns("email", "display_name", "status", "last_login_at")
	RoleSortFields         = columns("code", "name", "is_enabled")
	DepartmentSortFields   = columns("code", "name", "path", "level", "status")
	CategorySortFields     = columns("code", "name", "method", "useful_life_months")
	LocationSortFields     = columns("code", "name", "city", "country")
	CostCentreSortFields   = columns("code", "name", "active")
	AssetSortFields        = columns("tag", "name", "status", "acquisition_date", "acquisition_cost", "accumulated_depreciation")
	ComponentSortFields    = columns("name", "cost", "installed_at")
	WipAssetSortFields     = columns("code", "name", "status", "budget_amount", "accumulated_cost", "progress_percent")
	BudgetSortFields       = columns("code", "name", "fiscal_year", "amount", "spent", "status")
	ForexRateSortFields    = columns("base", "quote", "rate", "effective_date")
	DepreciationSortFields = columns("period", "amount", "posted_at")
	PartnerSortFields      = columns("code", "name", "type", "active")
	ContractSortFields     = columns("number", "title", "start_date", "end_date", "value", "status")
	LeaseSortFields        = columns("start_date", "end_date", "payment", "status", "direction")
	ShortURLSortFields     = columns("code", "title", "clicks", "expires_at", "active")
	ReportSortFields       = columns("code", "name", "entity")
	NotificationSortFields = columns("level", "read_at")
)
