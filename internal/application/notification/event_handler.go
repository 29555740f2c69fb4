package notification

import (
	"context"
	"fmt"

	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/domain/notification"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventHandler turns domain events into notifications for the acting user
type EventHandler struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewEventHandler creates a new notification event handler
func NewEventHandler(repo notification.Repository, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{repo: repo, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *EventHandler) EventTypes() []string {
	return []string{
		asset.EventTypeAssetCreated,
		asset.EventTypeAssetDisposed,
		asset.EventTypeAssetTransferred,
		asset.EventTypeWipCapitalized,
		lease.EventTypeLeaseTerminated,
		finance.EventTypeBudgetApproved,
		finance.EventTypeDepreciationRunCompleted,
	}
}

// notice is the content derived from one event
type notice struct {
	level      notification.Level
	title      string
	body       string
	entityType string
	entityID   uuid.UUID
}

// Handle stores a notification for the user who caused the event. System
// events without an actor are skipped.
func (h *EventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	actor := event.ActorID()
	if actor == uuid.Nil {
		h.logger.Debug("skipping notification for system event", zap.String("event_type", event.EventType()))
		return nil
	}
	n, err := describe(event)
	if err != nil {
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return err
	}

	note, err := notification.New(event.TenantID(), actor, n.level, n.title, n.body)
	if err != nil {
		return err
	}
	if n.entityType != "" {
		note.About(n.entityType, n.entityID)
	}
	note.SetCreatedBy(actor)
	if err := h.repo.Save(ctx, note); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	h.logger.Debug("notification created",
		zap.String("event_type", event.EventType()),
		zap.String("user_id", actor.String()))
	return nil
}

func describe(event shared.DomainEvent) (notice, error) {
	switch e := event.(type) {
	case *asset.AssetCreatedEvent:
		return notice{notification.LevelInfo, "Asset created",
			fmt.Sprintf("Asset %s (%s) was added to the register.", e.Tag, e.Name), "asset", e.AggregateID()}, nil
	case *asset.AssetDisposedEvent:
		body := fmt.Sprintf("Asset %s was disposed for %s.", e.Tag, e.Proceeds)
		if e.Reason != "" {
			body += " Reason: " + e.Reason
		}
		return notice{notification.LevelWarning, "Asset disposed", body, "asset", e.AggregateID()}, nil
	case *asset.AssetTransferredEvent:
		return notice{notification.LevelInfo, "Asset transferred",
			fmt.Sprintf("Asset %s has a new assignment.", e.Tag), "asset", e.AggregateID()}, nil
	case *asset.WipCapitalizedEvent:
		return notice{notification.LevelInfo, "Work in progress capitalized",
			fmt.Sprintf("%s was capitalized at %s.", e.Code, e.Cost), "asset", e.AssetID}, nil
	case *lease.LeaseTerminatedEvent:
		return notice{notification.LevelWarning, "Lease terminated",
			"The lease was terminated on " + e.TerminatedAt.Format("2006-01-02") + ".", "lease", e.AggregateID()}, nil
	case *finance.BudgetApprovedEvent:
		return notice{notification.LevelInfo, "Budget approved",
			fmt.Sprintf("Budget %s (%s) was approved for %s.", e.Code, e.Name, e.Amount), "budget", e.AggregateID()}, nil
	case *finance.DepreciationRunCompletedEvent:
		level := notification.LevelInfo
		if e.Created == 0 {
			level = notification.LevelWarning
		}
		return notice{level, "Depreciation run completed",
			fmt.Sprintf("Period %s: %d records posted, %d assets skipped.", e.Period, e.Created, e.Skipped), "", uuid.Nil}, nil
	}
	return notice{}, fmt.Errorf("unexpected event type: %s", event.EventType())
}
