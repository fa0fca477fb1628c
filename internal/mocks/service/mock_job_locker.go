package service

import (
	"context"
	"time"

	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.JobLocker = (*MockJobLocker)(nil)

// MockJobLocker is a testify mock of domainservice.JobLocker.
type MockJobLocker struct {
	mock.Mock
}

type MockJobLocker_Expecter struct {
	mock *mock.Mock
}

func (_m *MockJobLocker) EXPECT() *MockJobLocker_Expecter {
	return &MockJobLocker_Expecter{mock: &_m.Mock}
}

// Acquire provides a mock function for JobLocker.Acquire.
func (_m *MockJobLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	ret := _m.Called(ctx, key, ttl)

	var r0 func(context.Context) error
	if v, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Acquire sets an expectation on Acquire.
func (_e *MockJobLocker_Expecter) Acquire(ctx any, key any, ttl any) *mock.Call {
	return _e.mock.On("Acquire", ctx, key, ttl)
}

// NewMockJobLocker creates a MockJobLocker that asserts its expectations on cleanup.
func NewMockJobLocker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockJobLocker {
	m := &MockJobLocker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
