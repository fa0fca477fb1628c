package repository

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.ShipmentRepository = (*MockShipmentRepository)(nil)

// MockShipmentRepository is a testify mock of domainrepository.ShipmentRepository.
type MockShipmentRepository struct {
	mock.Mock
}

type MockShipmentRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockShipmentRepository) EXPECT() *MockShipmentRepository_Expecter {
	return &MockShipmentRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for ShipmentRepository.Create.
func (_m *MockShipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	ret := _m.Called(ctx, shipment)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockShipmentRepository_Expecter) Create(ctx any, shipment any) *mock.Call {
	return _e.mock.On("Create", ctx, shipment)
}

// FindByID provides a mock function for ShipmentRepository.FindByID.
func (_m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Shipment
	if v, ok := ret.Get(0).(*entity.Shipment); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockShipmentRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// FindByBookingID provides a mock function for ShipmentRepository.FindByBookingID.
func (_m *MockShipmentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Shipment, error) {
	ret := _m.Called(ctx, bookingID)

	var r0 *entity.Shipment
	if v, ok := ret.Get(0).(*entity.Shipment); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByBookingID sets an expectation on FindByBookingID.
func (_e *MockShipmentRepository_Expecter) FindByBookingID(ctx any, bookingID any) *mock.Call {
	return _e.mock.On("FindByBookingID", ctx, bookingID)
}

// FindByTrackingNumber provides a mock function for ShipmentRepository.FindByTrackingNumber.
func (_m *MockShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error) {
	ret := _m.Called(ctx, trackingNumber)

	var r0 *entity.Shipment
	if v, ok := ret.Get(0).(*entity.Shipment); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByTrackingNumber sets an expectation on FindByTrackingNumber.
func (_e *MockShipmentRepository_Expecter) FindByTrackingNumber(ctx any, trackingNumber any) *mock.Call {
	return _e.mock.On("FindByTrackingNumber", ctx, trackingNumber)
}

// List provides a mock function for ShipmentRepository.List.
func (_m *MockShipmentRepository) List(ctx context.Context, filter domainrepository.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*entity.Shipment
	if v, ok := ret.Get(0).([]*entity.Shipment); ok {
		r0 = v
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// List sets an expectation on List.
func (_e *MockShipmentRepository_Expecter) List(ctx any, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

// UpdateStatus provides a mock function for ShipmentRepository.UpdateStatus.
func (_m *MockShipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from entity.ShipmentStatus, to entity.ShipmentStatus, location string) error {
	ret := _m.Called(ctx, id, from, to, location)

	return ret.Error(0)
}

// UpdateStatus sets an expectation on UpdateStatus.
func (_e *MockShipmentRepository_Expecter) UpdateStatus(ctx any, id any, from any, to any, location any) *mock.Call {
	return _e.mock.On("UpdateStatus", ctx, id, from, to, location)
}

// AppendHistory provides a mock function for ShipmentRepository.AppendHistory.
func (_m *MockShipmentRepository) AppendHistory(ctx context.Context, entry *entity.ShipmentStatusHistory) error {
	ret := _m.Called(ctx, entry)

	return ret.Error(0)
}

// AppendHistory sets an expectation on AppendHistory.
func (_e *MockShipmentRepository_Expecter) AppendHistory(ctx any, entry any) *mock.Call {
	return _e.mock.On("AppendHistory", ctx, entry)
}

// ListHistory provides a mock function for ShipmentRepository.ListHistory.
func (_m *MockShipmentRepository) ListHistory(ctx context.Context, shipmentID uuid.UUID) ([]*entity.ShipmentStatusHistory, error) {
	ret := _m.Called(ctx, shipmentID)

	var r0 []*entity.ShipmentStatusHistory
	if v, ok := ret.Get(0).([]*entity.ShipmentStatusHistory); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// ListHistory sets an expectation on ListHistory.
func (_e *MockShipmentRepository_Expecter) ListHistory(ctx any, shipmentID any) *mock.Call {
	return _e.mock.On("ListHistory", ctx, shipmentID)
}

// CountActive provides a mock function for ShipmentRepository.CountActive.
func (_m *MockShipmentRepository) CountActive(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountActive sets an expectation on CountActive.
func (_e *MockShipmentRepository_Expecter) CountActive(ctx any) *mock.Call {
	return _e.mock.On("CountActive", ctx)
}

// NewMockShipmentRepository creates a MockShipmentRepository that asserts its expectations on cleanup.
func NewMockShipmentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockShipmentRepository {
	m := &MockShipmentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
