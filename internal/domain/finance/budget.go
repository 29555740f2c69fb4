// Package finance holds budgets, exchange rates and the depreciation ledger.
package finance

import (
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus is the approval state of a budget
type BudgetStatus string

const (
	BudgetDraft    BudgetStatus = "draft"
	BudgetApproved BudgetStatus = "approved"
	BudgetClosed   BudgetStatus = "closed"
)

// Budget is a capital spending allowance for a fiscal year
type Budget struct {
	shared.TenantAggregateRoot
	Code         string
	Name         string
	FiscalYear   int
	CostCentreID *uuid.UUID
	CategoryID   *uuid.UUID
	Amount       decimal.Decimal
	Currency     valueobject.Currency
	Spent        decimal.Decimal
	Status       BudgetStatus
	ApprovedBy   *uuid.UUID
}

// NewBudget creates a draft budget
func NewBudget(tenantID uuid.UUID, code, name string, fiscalYear int, amount decimal.Decimal, currency valueobject.Currency) (*Budget, error) {
	code, err := shared.NormalizeCode("budget", code, 50)
	if err != nil {
		return nil, err
	}
	b := &Budget{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Spent:               decimal.Zero,
		Status:              BudgetDraft,
	}
	if err := b.apply(name, fiscalYear, amount, currency); err != nil {
		return nil, err
	}
	return b, nil
}

// Update edits a draft budget
func (b *Budget) Update(name string, fiscalYear int, amount decimal.Decimal, currency valueobject.Currency, costCentreID, categoryID *uuid.UUID) error {
	if b.Status != BudgetDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft budgets can be edited")
	}
	if err := b.apply(name, fiscalYear, amount, currency); err != nil {
		return err
	}
	b.CostCentreID = costCentreID
	b.CategoryID = categoryID
	b.Touch()
	return nil
}

func (b *Budget) apply(name string, fiscalYear int, amount decimal.Decimal, currency valueobject.Currency) error {
	name, err := shared.RequireName("budget", name, 200)
	if err != nil {
		return err
	}
	if fiscalYear < 1900 || fiscalYear > 9999 {
		return shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year must be between 1900 and 9999")
	}
	if err := valueobject.RequirePositive("amount", amount); err != nil {
		return err
	}
	b.Name = name
	b.FiscalYear = fiscalYear
	b.Amount = amount
	b.Currency = currency
	return nil
}

// Approve moves a draft budget to approved
func (b *Budget) Approve(approver uuid.UUID) error {
	if b.Status != BudgetDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft budgets can be approved")
	}
	b.Status = BudgetApproved
	b.ApprovedBy = &approver
	b.Touch()
	b.AddDomainEvent(NewBudgetApprovedEvent(b, approver))
	return nil
}

// Close moves an approved budget to closed
func (b *Budget) Close() error {
	if b.Status != BudgetApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved budgets can be closed")
	}
	b.Status = BudgetClosed
	b.Touch()
	return nil
}

// RecordSpend books spending against an approved budget
func (b *Budget) RecordSpend(amount decimal.Decimal) error {
	if b.Status != BudgetApproved {
		return shared.NewDomainError("INVALID_STATE", "Spending can only be recorded on approved budgets")
	}
	if err := valueobject.RequirePositive("amount", amount); err != nil {
		return err
	}
	b.Spent = b.Spent.Add(amount)
	b.Touch()
	return nil
}

// Remaining is amount less spent
func (b *Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// Utilisation is spent as a fraction of amount, rounded to 4 places
func (b *Budget) Utilisation() decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}
	return b.Spent.DivRound(b.Amount, 4)
}
