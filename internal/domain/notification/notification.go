// Package notification holds per-user notices raised by domain events.
package notification

import (
	"context"
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Level is the severity of a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a message addressed to one user
type Notification struct {
	shared.TenantAggregateRoot
	UserID     uuid.UUID
	Title      string
	Body       string
	Level      Level
	EntityType string
	EntityID   *uuid.UUID
	ReadAt     *time.Time
}

// New creates an unread notification
func New(tenantID, userID uuid.UUID, level Level, title, body string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Notification recipient is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if level == "" {
		level = LevelInfo
	}
	return &Notification{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Title:               title,
		Body:                strings.TrimSpace(body),
		Level:               level,
	}, nil
}

// About links the notification to the entity it concerns
func (n *Notification) About(entityType string, entityID uuid.UUID) *Notification {
	n.EntityType = entityType
	n.EntityID = &entityID
	return n
}

// MarkRead marks the notification read; repeated calls keep the first time
func (n *Notification) MarkRead(at time.Time) {
	if n.ReadAt != nil {
		return
	}
	n.ReadAt = &at
	n.Touch()
}

// IsRead reports whether the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// Repository persists notifications
type Repository interface {
	shared.CrudRepository[Notification]
	MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID, at time.Time) (int64, error)
	CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
}
