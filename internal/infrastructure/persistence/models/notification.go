package models

import (
	"time"

	"github.com/assetops/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for in-app notifications
type NotificationModel struct {
	TenantAggregateModel
	UserID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	Title      string             `gorm:"type:varchar(200);not null"`
	Body       string             `gorm:"type:text"`
	Level      notification.Level `gorm:"type:varchar(20);not null"`
	EntityType string             `gorm:"type:varchar(50)"`
	EntityID   *uuid.UUID         `gorm:"type:uuid"`
	ReadAt     *time.Time         `gorm:"index"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the model to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		TenantAggregateRoot: m.tenantRoot(),
		UserID:              m.UserID,
		Title:               m.Title,
		Body:                m.Body,
		Level:               m.Level,
		EntityType:          m.EntityType,
		EntityID:            m.EntityID,
		ReadAt:              m.ReadAt,
	}
}

// FromDomain populates the model from a domain Notification
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainTenantAggregateRoot(n.TenantAggregateRoot)
	m.UserID = n.UserID
	m.Title = n.Title
	m.Body = n.Body
	m.Level = n.Level
	m.EntityType = n.EntityType
	m.EntityID = n.EntityID
	m.ReadAt = n.ReadAt
}
