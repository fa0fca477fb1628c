package service

import (
	"time"

	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.MetricsRecorder = (*MockMetricsRecorder)(nil)

// MockMetricsRecorder is a testify mock of domainservice.MetricsRecorder.
type MockMetricsRecorder struct {
	mock.Mock
}

type MockMetricsRecorder_Expecter struct {
	mock *mock.Mock
}

func (_m *MockMetricsRecorder) EXPECT() *MockMetricsRecorder_Expecter {
	return &MockMetricsRecorder_Expecter{mock: &_m.Mock}
}

// ObserveHTTPRequest provides a mock function for MetricsRecorder.ObserveHTTPRequest.
func (_m *MockMetricsRecorder) ObserveHTTPRequest(method string, route string, status int, elapsed time.Duration) {
	_m.Called(method, route, status, elapsed)
}

// ObserveHTTPRequest sets an expectation on ObserveHTTPRequest.
func (_e *MockMetricsRecorder_Expecter) ObserveHTTPRequest(method any, route any, status any, elapsed any) *mock.Call {
	return _e.mock.On("ObserveHTTPRequest", method, route, status, elapsed)
}

// BookingTransitioned provides a mock function for MetricsRecorder.BookingTransitioned.
func (_m *MockMetricsRecorder) BookingTransitioned(to string) {
	_m.Called(to)
}

// BookingTransitioned sets an expectation on BookingTransitioned.
func (_e *MockMetricsRecorder_Expecter) BookingTransitioned(to any) *mock.Call {
	return _e.mock.On("BookingTransitioned", to)
}

// ContainerReviewed provides a mock function for MetricsRecorder.ContainerReviewed.
func (_m *MockMetricsRecorder) ContainerReviewed(decision string) {
	_m.Called(decision)
}

// ContainerReviewed sets an expectation on ContainerReviewed.
func (_e *MockMetricsRecorder_Expecter) ContainerReviewed(decision any) *mock.Call {
	return _e.mock.On("ContainerReviewed", decision)
}

// ClosureRun provides a mock function for MetricsRecorder.ClosureRun.
func (_m *MockMetricsRecorder) ClosureRun(result string, closed int) {
	_m.Called(result, closed)
}

// ClosureRun sets an expectation on ClosureRun.
func (_e *MockMetricsRecorder_Expecter) ClosureRun(result any, closed any) *mock.Call {
	return _e.mock.On("ClosureRun", result, closed)
}

// NewMockMetricsRecorder creates a MockMetricsRecorder that asserts its expectations on cleanup.
func NewMockMetricsRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMetricsRecorder {
	m := &MockMetricsRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
