package repository

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.DeviceRepository = (*MockDeviceRepository)(nil)

// MockDeviceRepository is a testify mock of domainrepository.DeviceRepository.
type MockDeviceRepository struct {
	mock.Mock
}

type MockDeviceRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockDeviceRepository) EXPECT() *MockDeviceRepository_Expecter {
	return &MockDeviceRepository_Expecter{mock: &_m.Mock}
}

// CreateDevice provides a mock function for DeviceRepository.CreateDevice.
func (_m *MockDeviceRepository) CreateDevice(ctx context.Context, device *entity.UserDevice) error {
	ret := _m.Called(ctx, device)

	return ret.Error(0)
}

// CreateDevice sets an expectation on CreateDevice.
func (_e *MockDeviceRepository_Expecter) CreateDevice(ctx any, device any) *mock.Call {
	return _e.mock.On("CreateDevice", ctx, device)
}

// FindDeviceByID provides a mock function for DeviceRepository.FindDeviceByID.
func (_m *MockDeviceRepository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.UserDevice, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.UserDevice
	if v, ok := ret.Get(0).(*entity.UserDevice); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindDeviceByID sets an expectation on FindDeviceByID.
func (_e *MockDeviceRepository_Expecter) FindDeviceByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindDeviceByID", ctx, id)
}

// FindDevicesByUser provides a mock function for DeviceRepository.FindDevicesByUser.
func (_m *MockDeviceRepository) FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*entity.UserDevice
	if v, ok := ret.Get(0).([]*entity.UserDevice); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindDevicesByUser sets an expectation on FindDevicesByUser.
func (_e *MockDeviceRepository_Expecter) FindDevicesByUser(ctx any, userID any) *mock.Call {
	return _e.mock.On("FindDevicesByUser", ctx, userID)
}

// FindActiveDevicesByUser provides a mock function for DeviceRepository.FindActiveDevicesByUser.
func (_m *MockDeviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*entity.UserDevice
	if v, ok := ret.Get(0).([]*entity.UserDevice); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindActiveDevicesByUser sets an expectation on FindActiveDevicesByUser.
func (_e *MockDeviceRepository_Expecter) FindActiveDevicesByUser(ctx any, userID any) *mock.Call {
	return _e.mock.On("FindActiveDevicesByUser", ctx, userID)
}

// UpdateFCMToken provides a mock function for DeviceRepository.UpdateFCMToken.
func (_m *MockDeviceRepository) UpdateFCMToken(ctx context.Context, deviceID uuid.UUID, fcmToken string) error {
	ret := _m.Called(ctx, deviceID, fcmToken)

	return ret.Error(0)
}

// UpdateFCMToken sets an expectation on UpdateFCMToken.
func (_e *MockDeviceRepository_Expecter) UpdateFCMToken(ctx any, deviceID any, fcmToken any) *mock.Call {
	return _e.mock.On("UpdateFCMToken", ctx, deviceID, fcmToken)
}

// DeleteDevice provides a mock function for DeviceRepository.DeleteDevice.
func (_m *MockDeviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// DeleteDevice sets an expectation on DeleteDevice.
func (_e *MockDeviceRepository_Expecter) DeleteDevice(ctx any, id any) *mock.Call {
	return _e.mock.On("DeleteDevice", ctx, id)
}

// DeactivateByTokens provides a mock function for DeviceRepository.DeactivateByTokens.
func (_m *MockDeviceRepository) DeactivateByTokens(ctx context.Context, fcmTokens []string) (int64, error) {
	ret := _m.Called(ctx, fcmTokens)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// DeactivateByTokens sets an expectation on DeactivateByTokens.
func (_e *MockDeviceRepository_Expecter) DeactivateByTokens(ctx any, fcmTokens any) *mock.Call {
	return _e.mock.On("DeactivateByTokens", ctx, fcmTokens)
}

// NewMockDeviceRepository creates a MockDeviceRepository that asserts its expectations on cleanup.
func NewMockDeviceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
