package service

import (
	"io"

	"cargomatch/internal/domain/entity"
	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.BookingExporter = (*MockBookingExporter)(nil)

// MockBookingExporter is a testify mock of domainservice.BookingExporter.
type MockBookingExporter struct {
	mock.Mock
}

type MockBookingExporter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockBookingExporter) EXPECT() *MockBookingExporter_Expecter {
	return &MockBookingExporter_Expecter{mock: &_m.Mock}
}

// ContentType provides a mock function for BookingExporter.ContentType.
func (_m *MockBookingExporter) ContentType() string {
	ret := _m.Called()

	var r0 string
	if v, ok := ret.Get(0).(string); ok {
		r0 = v
	}

	return r0
}

// ContentType sets an expectation on ContentType.
func (_e *MockBookingExporter_Expecter) ContentType() *mock.Call {
	return _e.mock.On("ContentType")
}

// Export provides a mock function for BookingExporter.Export.
func (_m *MockBookingExporter) Export(w io.Writer, bookings []*entity.Booking) error {
	ret := _m.Called(w, bookings)

	return ret.Error(0)
}

// Export sets an expectation on Export.
func (_e *MockBookingExporter_Expecter) Export(w any, bookings any) *mock.Call {
	return _e.mock.On("Export", w, bookings)
}

// NewMockBookingExporter creates a MockBookingExporter that asserts its expectations on cleanup.
func NewMockBookingExporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingExporter {
	m := &MockBookingExporter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
