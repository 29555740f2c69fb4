package finance

import (
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate and event types
const (
	AggregateTypeBudget          = "Budget"
	AggregateTypeDepreciationRun = "DepreciationRun"

	EventTypeBudgetApproved           = "BudgetApproved"
	EventTypeDepreciationRunCompleted = "DepreciationRunCompleted"
)

// BudgetApprovedEvent is published when a budget is approved
type BudgetApprovedEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// NewBudgetApprovedEvent creates a new BudgetApprovedEvent
func NewBudgetApprovedEvent(b *Budget, approver uuid.UUID) *BudgetApprovedEvent {
	return &BudgetApprovedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(EventTypeBudgetApproved, AggregateTypeBudget, b.ID, b.TenantID, &approver),
		Code:            b.Code,
		Name:            b.Name,
		Amount:          b.Amount.StringFixed(2) + " " + b.Currency.String(),
	}
}

// DepreciationRunCompletedEvent is published after a depreciation run
type DepreciationRunCompletedEvent struct {
	shared.BaseDomainEvent
	RunResult
}

// NewDepreciationRunCompletedEvent creates a new DepreciationRunCompletedEvent.
// Each run gets its own aggregate id.
func NewDepreciationRunCompletedEvent(tenantID, actor uuid.UUID, result RunResult) *DepreciationRunCompletedEvent {
	return &DepreciationRunCompletedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(EventTypeDepreciationRunCompleted, AggregateTypeDepreciationRun, uuid.New(), tenantID, &actor),
		RunResult:       result,
	}
}
