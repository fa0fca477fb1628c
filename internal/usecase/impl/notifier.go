package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// notifier writes notification rows inside the caller's transaction and
// publishes their push events once the transaction has committed.
type notifier struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

func newNotifier(publisher service.EventPublisher, logger *slog.Logger) *notifier {
	return &notifier{publisher: publisher, logger: logger}
}

// outbox collects the notifications created in one transaction.
type outbox struct {
	items []*entity.Notification
}

// notificationDraft is the content of one notification.
type notificationDraft struct {
	UserID    uuid.UUID
	Type      entity.NotificationType
	Title     string
	Message   string
	RelatedID *uuid.UUID
}

// add persists the draft through repo and queues it for publishing.
func (o *outbox) add(ctx context.Context, repo repository.NotificationRepository, draft notificationDraft, at time.Time) error {
	n := &entity.Notification{
		UserID:    draft.UserID,
		Type:      draft.Type,
		Title:     draft.Title,
		Message:   draft.Message,
		RelatedID: draft.RelatedID,
		CreatedAt: at,
	}

	if err := repo.Create(ctx, n); err != nil {
		return errors.Wrapf(err, "failed to create %s notification", draft.Type)
	}

	o.items = append(o.items, n)

	return nil
}

func (o *outbox) len() int {
	if o == nil {
		return 0
	}

	return len(o.items)
}

// publish sends one event per queued notification. Push delivery is best
// effort: the rows already exist, so failures are only logged.
func (n *notifier) publish(ctx context.Context, o *outbox) {
	if o == nil {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, n.logger)
	requestID := deliverycontext.GetRequestIDFromContext(ctx)

	for _, item := range o.items {
		event := &service.NotificationEvent{
			RequestID:      requestID,
			NotificationID: item.ID.String(),
			UserID:         item.UserID.String(),
			Type:           string(item.Type),
			Title:          item.Title,
			Message:        item.Message,
		}
		if item.RelatedID != nil {
			event.RelatedID = item.RelatedID.String()
		}

		if err := n.publisher.PublishNotificationEvent(ctx, event); err != nil {
			logger.Warn("Failed to publish notification event",
				slog.String("notification_id", event.NotificationID),
				slog.String("type", event.Type),
				slog.Any("error", err),
			)
		}
	}
}
