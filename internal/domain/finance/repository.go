package finance

import (
	"context"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BudgetRepository persists budgets
type BudgetRepository interface {
	shared.CrudRepository[Budget]
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}

// ForexRateRepository persists exchange rates
type ForexRateRepository interface {
	shared.CrudRepository[ForexRate]
	// FindLatest returns the base/quote rate with the latest effective date on or
	// before on, or nil when there is none
	FindLatest(ctx context.Context, tenantID uuid.UUID, base, quote valueobject.Currency, on time.Time) (*ForexRate, error)
	Exists(ctx context.Context, tenantID uuid.UUID, base, quote valueobject.Currency, effective time.Time) (bool, error)
}

// DepreciationRepository persists depreciation records
type DepreciationRepository interface {
	shared.CrudRepository[DepreciationRecord]
	ExistsForPeriod(ctx context.Context, tenantID, assetID uuid.UUID, period string) (bool, error)
}
