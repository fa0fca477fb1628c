package repository

import (
	"context"
	"time"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.BookingRepository = (*MockBookingRepository)(nil)

// MockBookingRepository is a testify mock of domainrepository.BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

type MockBookingRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockBookingRepository) EXPECT() *MockBookingRepository_Expecter {
	return &MockBookingRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for BookingRepository.Create.
func (_m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	ret := _m.Called(ctx, booking)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockBookingRepository_Expecter) Create(ctx any, booking any) *mock.Call {
	return _e.mock.On("Create", ctx, booking)
}

// FindByID provides a mock function for BookingRepository.FindByID.
func (_m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Booking
	if v, ok := ret.Get(0).(*entity.Booking); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockBookingRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// List provides a mock function for BookingRepository.List.
func (_m *MockBookingRepository) List(ctx context.Context, filter domainrepository.BookingFilter) ([]*entity.Booking, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*entity.Booking
	if v, ok := ret.Get(0).([]*entity.Booking); ok {
		r0 = v
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// List sets an expectation on List.
func (_e *MockBookingRepository_Expecter) List(ctx any, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

// Approve provides a mock function for BookingRepository.Approve.
func (_m *MockBookingRepository) Approve(ctx context.Context, id uuid.UUID, notes string, at time.Time) error {
	ret := _m.Called(ctx, id, notes, at)

	return ret.Error(0)
}

// Approve sets an expectation on Approve.
func (_e *MockBookingRepository_Expecter) Approve(ctx any, id any, notes any, at any) *mock.Call {
	return _e.mock.On("Approve", ctx, id, notes, at)
}

// Reject provides a mock function for BookingRepository.Reject.
func (_m *MockBookingRepository) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	ret := _m.Called(ctx, id, reason)

	return ret.Error(0)
}

// Reject sets an expectation on Reject.
func (_e *MockBookingRepository_Expecter) Reject(ctx any, id any, reason any) *mock.Call {
	return _e.mock.On("Reject", ctx, id, reason)
}

// Cancel provides a mock function for BookingRepository.Cancel.
func (_m *MockBookingRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	ret := _m.Called(ctx, id, at)

	return ret.Error(0)
}

// Cancel sets an expectation on Cancel.
func (_e *MockBookingRepository_Expecter) Cancel(ctx any, id any, at any) *mock.Call {
	return _e.mock.On("Cancel", ctx, id, at)
}

// Close provides a mock function for BookingRepository.Close.
func (_m *MockBookingRepository) Close(ctx context.Context, id uuid.UUID, from entity.BookingStatus, closedBy string, at time.Time) error {
	ret := _m.Called(ctx, id, from, closedBy, at)

	return ret.Error(0)
}

// Close sets an expectation on Close.
func (_e *MockBookingRepository_Expecter) Close(ctx any, id any, from any, closedBy any, at any) *mock.Call {
	return _e.mock.On("Close", ctx, id, from, closedBy, at)
}

// FindDueForClosure provides a mock function for BookingRepository.FindDueForClosure.
func (_m *MockBookingRepository) FindDueForClosure(ctx context.Context, departureDay time.Time) ([]*entity.Booking, error) {
	ret := _m.Called(ctx, departureDay)

	var r0 []*entity.Booking
	if v, ok := ret.Get(0).([]*entity.Booking); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindDueForClosure sets an expectation on FindDueForClosure.
func (_e *MockBookingRepository_Expecter) FindDueForClosure(ctx any, departureDay any) *mock.Call {
	return _e.mock.On("FindDueForClosure", ctx, departureDay)
}

// CountByStatus provides a mock function for BookingRepository.CountByStatus.
func (_m *MockBookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	ret := _m.Called(ctx)

	var r0 map[entity.BookingStatus]int64
	if v, ok := ret.Get(0).(map[entity.BookingStatus]int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountByStatus sets an expectation on CountByStatus.
func (_e *MockBookingRepository_Expecter) CountByStatus(ctx any) *mock.Call {
	return _e.mock.On("CountByStatus", ctx)
}

// CountByContainer provides a mock function for BookingRepository.CountByContainer.
func (_m *MockBookingRepository) CountByContainer(ctx context.Context, containerID uuid.UUID, statuses []entity.BookingStatus) (int64, error) {
	ret := _m.Called(ctx, containerID, statuses)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountByContainer sets an expectation on CountByContainer.
func (_e *MockBookingRepository_Expecter) CountByContainer(ctx any, containerID any, statuses any) *mock.Call {
	return _e.mock.On("CountByContainer", ctx, containerID, statuses)
}

// NewMockBookingRepository creates a MockBookingRepository that asserts its expectations on cleanup.
func NewMockBookingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingRepository {
	m := &MockBookingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
