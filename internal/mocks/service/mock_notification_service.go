package service

import (
	"context"

	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.NotificationService = (*MockNotificationService)(nil)

// MockNotificationService is a testify mock of domainservice.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

type MockNotificationService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockNotificationService) EXPECT() *MockNotificationService_Expecter {
	return &MockNotificationService_Expecter{mock: &_m.Mock}
}

// SendBatchNotification provides a mock function for NotificationService.SendBatchNotification.
func (_m *MockNotificationService) SendBatchNotification(ctx context.Context, tokens []string, title string, body string, data map[string]string) (int, int, []string, error) {
	ret := _m.Called(ctx, tokens, title, body, data)

	var r0 int
	if v, ok := ret.Get(0).(int); ok {
		r0 = v
	}

	var r1 int
	if v, ok := ret.Get(1).(int); ok {
		r1 = v
	}

	var r2 []string
	if v, ok := ret.Get(2).([]string); ok {
		r2 = v
	}

	return r0, r1, r2, ret.Error(3)
}

// SendBatchNotification sets an expectation on SendBatchNotification.
func (_e *MockNotificationService_Expecter) SendBatchNotification(ctx any, tokens any, title any, body any, data any) *mock.Call {
	return _e.mock.On("SendBatchNotification", ctx, tokens, title, body, data)
}

// SendSingleNotification provides a mock function for NotificationService.SendSingleNotification.
func (_m *MockNotificationService) SendSingleNotification(ctx context.Context, token string, title string, body string, data map[string]string) error {
	ret := _m.Called(ctx, token, title, body, data)

	return ret.Error(0)
}

// SendSingleNotification sets an expectation on SendSingleNotification.
func (_e *MockNotificationService_Expecter) SendSingleNotification(ctx any, token any, title any, body any, data any) *mock.Call {
	return _e.mock.On("SendSingleNotification", ctx, token, title, body, data)
}

// NewMockNotificationService creates a MockNotificationService that asserts its expectations on cleanup.
func NewMockNotificationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
