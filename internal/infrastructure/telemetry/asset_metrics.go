package telemetry

import (
	"context"

	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrTenantID  = attribute.Key("tenant_id")
	AttrEventType = attribute.Key("event_type")
	AttrResult    = attribute.Key("result")
)

// AssetMetrics turns asset register events into OpenTelemetry counters. It
// is an event handler on the domain event bus.
type AssetMetrics struct {
	lifecycle    *Counter
	depreciation *Counter
}

// NewAssetMetrics creates the asset counters on meter
func NewAssetMetrics(meter metric.Meter) (*AssetMetrics, error) {
	lifecycle, err := NewCounter(meter, "assetops.asset.lifecycle_events",
		"Asset register lifecycle events", "{event}")
	if err != nil {
		return nil, err
	}
	depreciation, err := NewCounter(meter, "assetops.depreciation.entries",
		"Depreciation entries handled by depreciation runs", "{entry}")
	if err != nil {
		return nil, err
	}
	return &AssetMetrics{lifecycle: lifecycle, depreciation: depreciation}, nil
}

// EventTypes implements shared.EventHandler
func (m *AssetMetrics) EventTypes() []string {
	return []string{
		asset.EventTypeAssetCreated,
		asset.EventTypeAssetTransferred,
		asset.EventTypeAssetDisposed,
		asset.EventTypeWipCapitalized,
		finance.EventTypeBudgetApproved,
		finance.EventTypeDepreciationRunCompleted,
		lease.EventTypeLeaseTerminated,
	}
}

// Handle implements shared.EventHandler
func (m *AssetMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	tenant := AttrTenantID.String(event.TenantID().String())

	if run, ok := event.(*finance.DepreciationRunCompletedEvent); ok {
		m.depreciation.Add(ctx, int64(run.Created), tenant, AttrResult.String("created"))
		m.depreciation.Add(ctx, int64(run.Skipped), tenant, AttrResult.String("skipped"))
	}
	m.lifecycle.Inc(ctx, tenant, AttrEventType.String(event.EventType()))
	return nil
}

var _ shared.EventHandler = (*AssetMetrics)(nil)
