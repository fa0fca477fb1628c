package impl

import (
	"context"
	"fmt"
	"testing"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"
	mockRepo "cargomatch/internal/mocks/repository"
	mockService "cargomatch/internal/mocks/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListNotifications(t *testing.T) {
	repo := mockRepo.NewMockNotificationRepository(t)
	svc := NewNotificationService(NotificationServiceParams{NotificationRepo: repo, Logger: newDiscardLogger()})
	ctx := context.Background()
	userID := uuid.New()
	page := repository.Page{Limit: 20}

	repo.EXPECT().ListByUser(ctx, userID, true, page).Return(nil, int64(0), nil)
	repo.EXPECT().CountUnread(ctx, userID).Return(int64(3), nil)

	out, err := svc.ListNotifications(ctx, userID, true, page)
	require.NoError(t, err)
	assert.NotNil(t, out.Notifications)
	assert.Equal(t, int64(3), out.Unread)
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := mockRepo.NewMockNotificationRepository(t)
	svc := NewNotificationService(NotificationServiceParams{NotificationRepo: repo, Logger: newDiscardLogger()})
	svc.(*notificationService).now = fixedClock
	ctx := context.Background()
	userID := uuid.New()
	id := uuid.New()

	repo.EXPECT().MarkRead(ctx, id, userID, fixedNow).Return(repository.ErrNotificationNotFound).Once()
	assert.ErrorIs(t, svc.MarkRead(ctx, userID, id), domainerrors.ErrNotificationNotFound)

	repo.EXPECT().MarkAllRead(ctx, userID, fixedNow).Return(int64(7), nil)
	updated, err := svc.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated)
}

func createTestPushDelivery(t *testing.T) (*pushDeliveryService, *mockRepo.MockDeviceRepository, *mockService.MockNotificationService) {
	devices := mockRepo.NewMockDeviceRepository(t)
	fcm := mockService.NewMockNotificationService(t)

	svc := NewPushDeliveryService(PushDeliveryServiceParams{
		DeviceRepo:      devices,
		NotificationSvc: fcm,
		Logger:          newDiscardLogger(),
	})

	return svc.(*pushDeliveryService), devices, fcm
}

func devicesWithTokens(userID uuid.UUID, n int) []*entity.UserDevice {
	out := make([]*entity.UserDevice, n)
	for i := range out {
		out[i] = &entity.UserDevice{ID: uuid.New(), UserID: userID, FCMToken: fmt.Sprintf("token-%d", i), IsActive: true}
	}

	return out
}

func TestPushDelivery_Deliver_BatchesAndDeactivatesInvalidTokens(t *testing.T) {
	svc, devices, fcm := createTestPushDelivery(t)
	ctx := context.Background()
	userID := uuid.New()
	event := &service.NotificationEvent{
		NotificationID: uuid.NewString(),
		UserID:         userID.String(),
		Type:           string(entity.NotificationBookingApproved),
		Title:          "Booking approved",
		Message:        "Your booking has been approved",
	}

	devices.EXPECT().FindActiveDevicesByUser(ctx, userID).Return(devicesWithTokens(userID, 501), nil)
	fcm.EXPECT().
		SendBatchNotification(ctx, mock.MatchedBy(func(tokens []string) bool { return len(tokens) == 500 }), event.Title, event.Message, mock.Anything).
		Return(499, 1, []string{"token-3"}, nil).Once()
	fcm.EXPECT().
		SendBatchNotification(ctx, mock.MatchedBy(func(tokens []string) bool { return len(tokens) == 1 }), event.Title, event.Message, mock.Anything).
		Return(1, 0, nil, nil).Once()
	devices.EXPECT().DeactivateByTokens(ctx, []string{"token-3"}).Return(int64(1), nil)

	result, err := svc.Deliver(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 501, result.Devices)
	assert.Equal(t, 500, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.InvalidTokens)
}

func TestPushDelivery_Deliver_AllBatchesFailIsRetryable(t *testing.T) {
	svc, devices, fcm := createTestPushDelivery(t)
	ctx := context.Background()
	userID := uuid.New()

	devices.EXPECT().FindActiveDevicesByUser(ctx, userID).Return(devicesWithTokens(userID, 2), nil)
	fcm.EXPECT().SendBatchNotification(ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0, 0, nil, errors.New("fcm unavailable"))

	_, err := svc.Deliver(ctx, &service.NotificationEvent{UserID: userID.String()})
	assert.Error(t, err)
}

func TestPushDelivery_Deliver_NoDevices(t *testing.T) {
	svc, devices, _ := createTestPushDelivery(t)
	ctx := context.Background()
	userID := uuid.New()

	devices.EXPECT().FindActiveDevicesByUser(ctx, userID).Return(nil, nil)

	result, err := svc.Deliver(ctx, &service.NotificationEvent{UserID: userID.String()})
	require.NoError(t, err)
	assert.Zero(t, result.Devices)
}

func TestPushDelivery_Deliver_InvalidUserID(t *testing.T) {
	svc, _, _ := createTestPushDelivery(t)

	_, err := svc.Deliver(context.Background(), &service.NotificationEvent{UserID: "not-a-uuid"})
	assert.ErrorIs(t, err, usecase.ErrMalformedEvent)
}

func TestPushDelivery_Deliver_FirebaseDisabled(t *testing.T) {
	svc := NewPushDeliveryService(PushDeliveryServiceParams{
		DeviceRepo: mockRepo.NewMockDeviceRepository(t),
		Logger:     newDiscardLogger(),
	})

	result, err := svc.Deliver(context.Background(), &service.NotificationEvent{UserID: uuid.NewString()})
	require.NoError(t, err)
	assert.Zero(t, result.Sent)
}
