// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for notification-related database operations.
type NotificationRepository interface {
	// Create persists a notification row.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByID retrieves a notification by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// ListByUser returns a user's notifications newest first and the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page Page) ([]*entity.Notification, int64, error)

	// MarkRead marks one of the user's notifications as read.
	MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error

	// MarkAllRead marks all of the user's unread notifications as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)

	// CountUnread counts the user's unread notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
