package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	// Firebase batch size limit
	firebaseBatchSize = 500
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
	now              func() time.Time
}

// NotificationServiceParams holds dependencies for the inbox, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	Logger           *slog.Logger
}

// NewNotificationService creates the notification inbox service
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		logger:           params.Logger,
		now:              utcNow,
	}
}

// ListNotifications returns a page of the inbox together with the unread count.
func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, page repository.Page) (*usecase.NotificationPage, error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly, page)
	if err != nil {
		return nil, mapRepoError(err, notificationErrors, "failed to list notifications")
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, notificationErrors, "failed to count unread notifications")
	}

	if notifications == nil {
		notifications = []*entity.Notification{}
	}

	return &usecase.NotificationPage{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
	}, nil
}

// MarkRead marks one of the user's notifications read. Another user's
// notification is not found.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID, s.now()); err != nil {
		return mapRepoError(err, notificationErrors, "failed to mark notification read")
	}

	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, mapRepoError(err, notificationErrors, "failed to mark notifications read")
	}

	return updated, nil
}

type pushDeliveryService struct {
	deviceRepo      repository.DeviceRepository
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// PushDeliveryServiceParams holds dependencies for push delivery, injected by Fx.
type PushDeliveryServiceParams struct {
	fx.In

	DeviceRepo      repository.DeviceRepository
	NotificationSvc service.NotificationService `optional:"true"`
	Logger          *slog.Logger
}

// NewPushDeliveryService creates the worker-side push fan-out.
func NewPushDeliveryService(params PushDeliveryServiceParams) usecase.PushDeliveryUsecase {
	return &pushDeliveryService{
		deviceRepo:      params.DeviceRepo,
		notificationSvc: params.NotificationSvc,
		logger:          params.Logger,
	}
}

// Deliver sends the event to the user's active devices in FCM-sized batches and
// deactivates tokens FCM reports as invalid. It fails only when no batch could
// be sent, so the transport redelivers.
func (s *pushDeliveryService) Deliver(ctx context.Context, event *service.NotificationEvent) (*usecase.PushResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger).With(
		slog.String("notification_id", event.NotificationID),
		slog.String("user_id", event.UserID),
	)

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return nil, errors.Wrapf(usecase.ErrMalformedEvent, "invalid user id %q", event.UserID)
	}

	result := &usecase.PushResult{}

	if s.notificationSvc == nil {
		logger.Debug("Push delivery disabled, dropping event")

		return result, nil
	}

	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active devices")
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		if device.FCMToken != "" {
			tokens = append(tokens, device.FCMToken)
		}
	}
	result.Devices = len(tokens)

	if len(tokens) == 0 {
		logger.Debug("No active devices for user")

		return result, nil
	}

	data := map[string]string{
		"notification_id": event.NotificationID,
		"type":            event.Type,
	}
	if event.RelatedID != "" {
		data["related_id"] = event.RelatedID
	}
	for k, v := range event.Data {
		data[k] = v
	}

	var (
		invalidTokens []string
		lastErr       error
		failedBatches int
		batches       int
	)

	for i := 0; i < len(tokens); i += firebaseBatchSize {
		end := min(i+firebaseBatchSize, len(tokens))
		batch := tokens[i:end]
		batches++

		sent, failed, batchInvalid, err := s.notificationSvc.SendBatchNotification(ctx, batch, event.Title, event.Message, data)
		if err != nil {
			logger.Warn("Failed to send push batch", slog.Int("size", len(batch)), slog.Any("error", err))
			result.Failed += len(batch)
			failedBatches++
			lastErr = err

			continue
		}

		result.Sent += sent
		result.Failed += failed
		invalidTokens = append(invalidTokens, batchInvalid...)
	}

	if len(invalidTokens) > 0 {
		deactivated, err := s.deviceRepo.DeactivateByTokens(ctx, invalidTokens)
		if err != nil {
			logger.Warn("Failed to deactivate invalid tokens", slog.Any("error", err))
		}
		result.InvalidTokens = int(deactivated)
	}

	logger.Info("Push notification delivered",
		slog.Int("devices", result.Devices),
		slog.Int("sent", result.Sent),
		slog.Int("failed", result.Failed),
		slog.Int("invalid_tokens", result.InvalidTokens),
	)

	if failedBatches == batches {
		return result, errors.Wrap(lastErr, "push delivery failed")
	}

	return result, nil
}
