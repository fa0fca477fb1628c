package repository

import (
	"context"
	"time"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.NotificationRepository = (*MockNotificationRepository)(nil)

// MockNotificationRepository is a testify mock of domainrepository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

type MockNotificationRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockNotificationRepository) EXPECT() *MockNotificationRepository_Expecter {
	return &MockNotificationRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for NotificationRepository.Create.
func (_m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	ret := _m.Called(ctx, notification)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockNotificationRepository_Expecter) Create(ctx any, notification any) *mock.Call {
	return _e.mock.On("Create", ctx, notification)
}

// FindByID provides a mock function for NotificationRepository.FindByID.
func (_m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Notification
	if v, ok := ret.Get(0).(*entity.Notification); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockNotificationRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// ListByUser provides a mock function for NotificationRepository.ListByUser.
func (_m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page domainrepository.Page) ([]*entity.Notification, int64, error) {
	ret := _m.Called(ctx, userID, unreadOnly, page)

	var r0 []*entity.Notification
	if v, ok := ret.Get(0).([]*entity.Notification); ok {
		r0 = v
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// ListByUser sets an expectation on ListByUser.
func (_e *MockNotificationRepository_Expecter) ListByUser(ctx any, userID any, unreadOnly any, page any) *mock.Call {
	return _e.mock.On("ListByUser", ctx, userID, unreadOnly, page)
}

// MarkRead provides a mock function for NotificationRepository.MarkRead.
func (_m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID, at time.Time) error {
	ret := _m.Called(ctx, id, userID, at)

	return ret.Error(0)
}

// MarkRead sets an expectation on MarkRead.
func (_e *MockNotificationRepository_Expecter) MarkRead(ctx any, id any, userID any, at any) *mock.Call {
	return _e.mock.On("MarkRead", ctx, id, userID, at)
}

// MarkAllRead provides a mock function for NotificationRepository.MarkAllRead.
func (_m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	ret := _m.Called(ctx, userID, at)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// MarkAllRead sets an expectation on MarkAllRead.
func (_e *MockNotificationRepository_Expecter) MarkAllRead(ctx any, userID any, at any) *mock.Call {
	return _e.mock.On("MarkAllRead", ctx, userID, at)
}

// CountUnread provides a mock function for NotificationRepository.CountUnread.
func (_m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, userID)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountUnread sets an expectation on CountUnread.
func (_e *MockNotificationRepository_Expecter) CountUnread(ctx any, userID any) *mock.Call {
	return _e.mock.On("CountUnread", ctx, userID)
}

// NewMockNotificationRepository creates a MockNotificationRepository that asserts its expectations on cleanup.
func NewMockNotificationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
