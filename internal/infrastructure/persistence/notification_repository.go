package persistence

import (
	"context"
	"time"

	appnotification "github.com/assetops/backend/internal/application/notification"
	"github.com/assetops/backend/internal/domain/notification"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationCrud = GormCrudRepository[notification.Notification, models.NotificationModel, *models.NotificationModel]

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	*notificationCrud
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{
		notificationCrud: newCrudRepository[notification.Notification, models.NotificationModel, *models.NotificationModel](db, listSpec{
			search:     []string{"title", "body"},
			sortFields: NotificationSortFields,
			filters:    set(appnotification.FilterUserID, "level", "entity_type", "entity_id"),
			scopes: map[string]func(*gorm.DB, interface{}) *gorm.DB{
				appnotification.FilterUnreadOnly: func(q *gorm.DB, v interface{}) *gorm.DB {
					if on, ok := v.(bool); ok && on {
						return q.Where("read_at IS NULL")
					}
					return q
				},
			},
		}),
	}
}

// MarkAllRead marks every unread notification of the user as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID, at time.Time) (int64, error) {
	result := r.scoped(ctx, tenantID).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Updates(map[string]interface{}{
			"read_at":    at,
			"updated_at": at,
			"version":    gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

// CountUnread counts the user's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	return r.count(r.scoped(ctx, tenantID).Where("user_id = ? AND read_at IS NULL", userID))
}

// Ensure GormNotificationRepository implements notification.Repository
var _ notification.Repository = (*GormNotificationRepository)(nil)
