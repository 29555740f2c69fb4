// Package crud holds the tenant-scoped lookup, list and delete steps shared
// by the entity services.
package crud

import (
	"context"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Find loads an entity of the caller's tenant. Entities of other tenants are
// reported as not found.
func Find[T any](ctx context.Context, repo shared.CrudRepository[T], id uuid.UUID, entity string) (*T, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	e, err := repo.FindByIDForTenant(ctx, sess.TenantID, id)
	if err != nil {
		return nil, shared.MapNotFound(err, entity)
	}
	return e, nil
}

// List returns one page of the caller's entities mapped to DTOs
func List[T any, D any](ctx context.Context, repo shared.CrudRepository[T], filter shared.Filter, toDTO func(*T) D) (*shared.Paginated[D], error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	filter = filter.Normalize()
	items, err := repo.FindAllForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := repo.CountForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(Map(items, toDTO), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes an entity of the caller's tenant
func Delete[T any](ctx context.Context, repo shared.CrudRepository[T], id uuid.UUID, entity string) error {
	sess, err := session.Require(ctx)
	if err != nil {
		return err
	}
	if err := repo.DeleteForTenant(ctx, sess.TenantID, id); err != nil {
		return shared.MapNotFound(err, entity)
	}
	logger.L(ctx).Info(entity+" deleted", zap.String("id", id.String()))
	return nil
}

// Ensure checks that an optional reference points at an entity of the
// tenant. field names the input field in the error.
func Ensure[T any](ctx context.Context, repo shared.CrudRepository[T], tenantID uuid.UUID, id *uuid.UUID, field string) error {
	if id == nil {
		return nil
	}
	if _, err := repo.FindByIDForTenant(ctx, tenantID, *id); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_REFERENCE", field+" does not exist")
		}
		return err
	}
	return nil
}

// Map converts a slice of entities to DTOs
func Map[T any, D any](items []T, fn func(*T) D) []D {
	out := make([]D, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}

// Publish sends an aggregate's pending events. Failures are logged; the
// change they describe is already stored.
func Publish(ctx context.Context, publisher shared.EventPublisher, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, publisher, aggregate); err != nil {
		logger.L(ctx).Error("Failed to publish domain events", zap.Error(err))
	}
}
