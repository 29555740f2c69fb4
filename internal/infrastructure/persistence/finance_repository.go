package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type budgetCrud = GormCrudRepository[finance.Budget, models.BudgetModel, *models.BudgetModel]

// GormBudgetRepository implements BudgetRepository using GORM
type GormBudgetRepository struct {
	*budgetCrud
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{
		budgetCrud: newCrudRepository[finance.Budget, models.BudgetModel, *models.BudgetModel](db, listSpec{
			search:     []string{"code", "name"},
			sortFields: BudgetSortFields,
			filters:    set("status", "fiscal_year", "cost_centre_id", "category_id", "currency"),
		}),
	}
}

// ExistsByCode checks if a budget code exists within a tenant
func (r *GormBudgetRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

type forexCrud = GormCrudRepository[finance.ForexRate, models.ForexRateModel, *models.ForexRateModel]

// GormForexRateRepository implements ForexRateRepository using GORM
type GormForexRateRepository struct {
	*forexCrud
}

// NewGormForexRateRepository creates a new GormForexRateRepository
func NewGormForexRateRepository(db *gorm.DB) *GormForexRateRepository {
	return &GormForexRateRepository{
		forexCrud: newCrudRepository[finance.ForexRate, models.ForexRateModel, *models.ForexRateModel](db, listSpec{
			search:     []string{"base", "quote"},
			sortFields: ForexRateSortFields,
			filters:    set("base", "quote"),
		}),
	}
}

// FindLatest returns the base/quote rate with the latest effective date on or
// before on, or nil when there is none
func (r *GormForexRateRepository) FindLatest(ctx context.Context, tenantID uuid.UUID, base, quote valueobject.Currency, on time.Time) (*finance.ForexRate, error) {
	var model models.ForexRateModel
	err := r.scoped(ctx, tenantID).
		Where("base = ? AND quote = ? AND effective_date <= ?", base.String(), quote.String(), valueobject.NewDate(on).Time).
		Order("effective_date DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Exists checks for a rate of the pair on the effective date
func (r *GormForexRateRepository) Exists(ctx context.Context, tenantID uuid.UUID, base, quote valueobject.Currency, effective time.Time) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).
		Where("base = ? AND quote = ? AND effective_date = ?", base.String(), quote.String(), valueobject.NewDate(effective).Time))
}

type depreciationCrud = GormCrudRepository[finance.DepreciationRecord, models.DepreciationRecordModel, *models.DepreciationRecordModel]

// GormDepreciationRepository implements DepreciationRepository using GORM
type GormDepreciationRepository struct {
	*depreciationCrud
}

// NewGormDepreciationRepository creates a new GormDepreciationRepository
func NewGormDepreciationRepository(db *gorm.DB) *GormDepreciationRepository {
	return &GormDepreciationRepository{
		depreciationCrud: newCrudRepository[finance.DepreciationRecord, models.DepreciationRecordModel, *models.DepreciationRecordModel](db, listSpec{
			search:     []string{"period"},
			sortFields: DepreciationSortFields,
			filters:    set("asset_id", "period", "method"),
		}),
	}
}

// ExistsForPeriod checks whether the asset was already depreciated for period
func (r *GormDepreciationRepository) ExistsForPeriod(ctx context.Context, tenantID, assetID uuid.UUID, period string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("asset_id = ? AND period = ?", assetID, period))
}

var (
	_ finance.BudgetRepository       = (*GormBudgetRepository)(nil)
	_ finance.ForexRateRepository    = (*GormForexRateRepository)(nil)
	_ finance.DepreciationRepository = (*GormDepreciationRepository)(nil)
)
