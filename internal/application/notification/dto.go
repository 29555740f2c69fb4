package notification

import (
	"time"

	"github.com/assetops/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationDTO represents a notification
type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body,omitempty"`
	Level      string     `json:"level"`
	EntityType string     `json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ReadAllResult reports how many notifications were marked read
type ReadAllResult struct {
	Updated int64 `json:"updated"`
}

func toNotificationDTO(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID,
		Title:      n.Title,
		Body:       n.Body,
		Level:      string(n.Level),
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		Read:       n.IsRead(),
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}
