package lease

import (
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate and event types
const (
	AggregateTypeLease       = "Lease"
	EventTypeLeaseTerminated = "LeaseTerminated"
)

// LeaseTerminatedEvent is published when a lease ends early
type LeaseTerminatedEvent struct {
	shared.BaseDomainEvent
	AssetID      uuid.UUID `json:"asset_id"`
	TerminatedAt time.Time `json:"terminated_at"`
}

// NewLeaseTerminatedEvent creates a new LeaseTerminatedEvent
func NewLeaseTerminatedEvent(l *Lease, actor uuid.UUID) *LeaseTerminatedEvent {
	return &LeaseTerminatedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(EventTypeLeaseTerminated, AggregateTypeLease, l.ID, l.TenantID, &actor),
		AssetID:         l.AssetID,
		TerminatedAt:    l.EndDate,
	}
}
