package asset

import (
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeAsset    = "Asset"
	AggregateTypeWipAsset = "WipAsset"
)

// Asset domain event types
const (
	EventTypeAssetCreated     = "AssetCreated"
	EventTypeAssetTransferred = "AssetTransferred"
	EventTypeAssetDisposed    = "AssetDisposed"
	EventTypeWipCapitalized   = "WipCapitalized"
)

// AssetCreatedEvent is published when an asset enters the register
type AssetCreatedEvent struct {
	shared.BaseDomainEvent
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

// NewAssetCreatedEvent creates a new AssetCreatedEvent
func NewAssetCreatedEvent(a *Asset) *AssetCreatedEvent {
	return &AssetCreatedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(EventTypeAssetCreated, AggregateTypeAsset, a.ID, a.TenantID, a.CreatedBy),
		Tag:             a.Tag,
		Name:            a.Name,
	}
}

// AssetTransferredEvent is published when an asset's assignment changes
type AssetTransferredEvent struct {
	shared.BaseDomainEvent
	Tag  string     `json:"tag"`
	From Assignment `json:"from"`
	To   Assignment `json:"to"`
}

// NewAssetTransferredEvent creates a new AssetTransferredEvent
func NewAssetTransferredEvent(a *Asset, from Assignment, actor uuid.UUID) *AssetTransferredEvent {
	return &AssetTransferredEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(EventTypeAssetTransferred, AggregateTypeAsset, a.ID, a.TenantID, &actor),
		Tag:             a.Tag,
		From:            from,
		To:              a.Assignment,
	}
}

// AssetDisposedEvent is published when an asset is disposed
type AssetDisposedEvent struct {
	shared.BaseDomainEvent
	Tag      string `json:"tag"`
	Proceeds string `json:"proceeds"`
	Reason   string `json:"reason"`
}

// NewAssetDisposedEvent creates a new AssetDisposedEvent
func NewAssetDisposedEvent(a *Asset, actor uuid.UUID) *AssetDisposedEvent {
	return &AssetDisposedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(EventTypeAssetDisposed, AggregateTypeAsset, a.ID, a.TenantID, &actor),
		Tag:             a.Tag,
		Proceeds:        a.Disposal.Proceeds.StringFixed(2),
		Reason:          a.Disposal.Reason,
	}
}

// WipCapitalizedEvent is published when a WIP asset becomes an Asset
type WipCapitalizedEvent struct {
	shared.BaseDomainEvent
	Code    string    `json:"code"`
	AssetID uuid.UUID `json:"asset_id"`
	Cost    string    `json:"cost"`
}

// NewWipCapitalizedEvent creates a new WipCapitalizedEvent
func NewWipCapitalizedEvent(w *WipAsset, actor uuid.UUID) *WipCapitalizedEvent {
	return &WipCapitalizedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(EventTypeWipCapitalized, AggregateTypeWipAsset, w.ID, w.TenantID, &actor),
		Code:            w.Code,
		AssetID:         *w.CapitalizedAssetID,
		Cost:            w.AccumulatedCost.StringFixed(2),
	}
}
