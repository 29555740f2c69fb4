package finance

import (
	"context"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BudgetService manages capital budgets
type BudgetService struct {
	budgetRepo     finance.BudgetRepository
	costCentreRepo asset.CostCentreRepository
	categoryRepo   asset.CategoryRepository
	publisher      shared.EventPublisher
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo finance.BudgetRepository,
	costCentreRepo asset.CostCentreRepository,
	categoryRepo asset.CategoryRepository,
	publisher shared.EventPublisher,
) *BudgetService {
	return &BudgetService{
		budgetRepo:     budgetRepo,
		costCentreRepo: costCentreRepo,
		categoryRepo:   categoryRepo,
		publisher:      publisher,
	}
}

// Create creates a draft budget
func (s *BudgetService) Create(ctx context.Context, input BudgetInput) (*BudgetDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	budget, err := finance.NewBudget(sess.TenantID, input.Code, input.Name, input.FiscalYear, input.Amount, currency)
	if err != nil {
		return nil, err
	}
	exists, err := s.budgetRepo.ExistsByCode(ctx, sess.TenantID, budget.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Budget code already exists")
	}
	if err := s.checkReferences(ctx, sess.TenantID, input); err != nil {
		return nil, err
	}
	budget.CostCentreID = input.CostCentreID
	budget.CategoryID = input.CategoryID
	budget.SetCreatedBy(sess.UserID)

	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	dto := toBudgetDTO(budget)
	return &dto, nil
}

// Get returns a budget
func (s *BudgetService) Get(ctx context.Context, id uuid.UUID) (*BudgetDTO, error) {
	budget, err := crud.Find(ctx, s.budgetRepo, id, "Budget")
	if err != nil {
		return nil, err
	}
	dto := toBudgetDTO(budget)
	return &dto, nil
}

// List returns a page of budgets
func (s *BudgetService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BudgetDTO], error) {
	return crud.List(ctx, s.budgetRepo, filter, toBudgetDTO)
}

// Update edits a draft budget
func (s *BudgetService) Update(ctx context.Context, id uuid.UUID, input BudgetInput) (*BudgetDTO, error) {
	budget, err := crud.Find(ctx, s.budgetRepo, id, "Budget")
	if err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(input.Currency, budget.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, budget.TenantID, input); err != nil {
		return nil, err
	}
	if err := budget.Update(input.Name, input.FiscalYear, input.Amount, currency, input.CostCentreID, input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	dto := toBudgetDTO(budget)
	return &dto, nil
}

// Delete removes a draft budget
func (s *BudgetService) Delete(ctx context.Context, id uuid.UUID) error {
	budget, err := crud.Find(ctx, s.budgetRepo, id, "Budget")
	if err != nil {
		return err
	}
	if budget.Status != finance.BudgetDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft budgets can be deleted")
	}
	return crud.Delete(ctx, s.budgetRepo, id, "Budget")
}

// Approve approves a draft budget
func (s *BudgetService) Approve(ctx context.Context, id uuid.UUID) (*BudgetDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	budget, err := crud.Find(ctx, s.budgetRepo, id, "Budget")
	if err != nil {
		return nil, err
	}
	if err := budget.Approve(sess.UserID); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	crud.Publish(ctx, s.publisher, budget)

	logger.L(ctx).Info("Budget approved",
		zap.String("budget_id", budget.ID.String()),
		zap.String("amount", budget.Amount.String()),
	)
	dto := toBudgetDTO(budget)
	return &dto, nil
}

// Close closes an approved budget
func (s *BudgetService) Close(ctx context.Context, id uuid.UUID) (*BudgetDTO, error) {
	budget, err := crud.Find(ctx, s.budgetRepo, id, "Budget")
	if err != nil {
		return nil, err
	}
	if err := budget.Close(); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	dto := toBudgetDTO(budget)
	return &dto, nil
}

func (s *BudgetService) checkReferences(ctx context.Context, tenantID uuid.UUID, input BudgetInput) error {
	if err := crud.Ensure(ctx, s.costCentreRepo, tenantID, input.CostCentreID, "cost_centre_id"); err != nil {
		return err
	}
	return crud.Ensure(ctx, s.categoryRepo, tenantID, input.CategoryID, "category_id")
}
