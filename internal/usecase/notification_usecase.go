package usecase

import (
	"context"
	"errors"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"

	"github.com/google/uuid"
)

// NotificationPage is one page of a user's inbox.
type NotificationPage struct {
	Notifications []*entity.Notification `json:"notifications"`
	Total         int64                  `json:"total"`
	Unread        int64                  `json:"unread"`
}

// NotificationUsecase is a user's notification inbox.
type NotificationUsecase interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, page repository.Page) (*NotificationPage, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ErrMalformedEvent marks an event that can never be delivered. Transports
// acknowledge it instead of redelivering.
var ErrMalformedEvent = errors.New("malformed notification event")

// PushDeliveryUsecase fans a notification event out to the recipient's devices.
type PushDeliveryUsecase interface {
	// Deliver sends the event to every active device of its user. Errors marked
	// retryable should be redelivered by the transport.
	Deliver(ctx context.Context, event *service.NotificationEvent) (*PushResult, error)
}

// PushResult summarises one delivery.
type PushResult struct {
	Devices       int
	Sent          int
	Failed        int
	InvalidTokens int
}
