package service

import (
	"context"

	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.EventPublisher = (*MockEventPublisher)(nil)

// MockEventPublisher is a testify mock of domainservice.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

// PublishNotificationEvent provides a mock function for EventPublisher.PublishNotificationEvent.
func (_m *MockEventPublisher) PublishNotificationEvent(ctx context.Context, event *domainservice.NotificationEvent) error {
	ret := _m.Called(ctx, event)

	return ret.Error(0)
}

// PublishNotificationEvent sets an expectation on PublishNotificationEvent.
func (_e *MockEventPublisher_Expecter) PublishNotificationEvent(ctx any, event any) *mock.Call {
	return _e.mock.On("PublishNotificationEvent", ctx, event)
}

// Close provides a mock function for EventPublisher.Close.
func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

// Close sets an expectation on Close.
func (_e *MockEventPublisher_Expecter) Close() *mock.Call {
	return _e.mock.On("Close")
}

// NewMockEventPublisher creates a MockEventPublisher that asserts its expectations on cleanup.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
