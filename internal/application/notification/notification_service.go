// Package notification delivers notices raised by domain events to the
// acting user and lets users read them.
package notification

import (
	"context"
	"time"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/notification"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by the notification repository
const (
	FilterUserID     = "user_id"
	FilterUnreadOnly = "unread_only"
)

// NotificationService lists and acknowledges the caller's notifications
type NotificationService struct {
	repo notification.Repository
	now  func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, filter shared.Filter, unreadOnly bool) (*shared.Paginated[NotificationDTO], error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	filter = filter.With(FilterUserID, sess.UserID)
	if unreadOnly {
		filter = filter.With(FilterUnreadOnly, true)
	}
	return crud.List(ctx, s.repo, filter, toNotificationDTO)
}

// UnreadCount returns the number of unread notifications of the caller
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, sess.TenantID, sess.UserID)
}

// MarkRead marks one of the caller's notifications read. Notifications of
// other users are not found.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*NotificationDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	n, err := crud.Find(ctx, s.repo, id, "Notification")
	if err != nil {
		return nil, err
	}
	if n.UserID != sess.UserID {
		return nil, shared.NewNotFoundError("Notification")
	}
	if !n.IsRead() {
		n.MarkRead(s.now())
		if err := s.repo.Save(ctx, n); err != nil {
			return nil, err
		}
	}
	dto := toNotificationDTO(n)
	return &dto, nil
}

// MarkAllRead marks every unread notification of the caller read
func (s *NotificationService) MarkAllRead(ctx context.Context) (*ReadAllResult, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.MarkAllRead(ctx, sess.TenantID, sess.UserID, s.now())
	if err != nil {
		return nil, err
	}
	return &ReadAllResult{Updated: n}, nil
}
