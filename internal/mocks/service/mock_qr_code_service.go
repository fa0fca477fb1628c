package service

import (
	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.QRCodeService = (*MockQRCodeService)(nil)

// MockQRCodeService is a testify mock of domainservice.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

type MockQRCodeService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockQRCodeService) EXPECT() *MockQRCodeService_Expecter {
	return &MockQRCodeService_Expecter{mock: &_m.Mock}
}

// GenerateTrackingQR provides a mock function for QRCodeService.GenerateTrackingQR.
func (_m *MockQRCodeService) GenerateTrackingQR(trackingNumber string) ([]byte, error) {
	ret := _m.Called(trackingNumber)

	var r0 []byte
	if v, ok := ret.Get(0).([]byte); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// GenerateTrackingQR sets an expectation on GenerateTrackingQR.
func (_e *MockQRCodeService_Expecter) GenerateTrackingQR(trackingNumber any) *mock.Call {
	return _e.mock.On("GenerateTrackingQR", trackingNumber)
}

// ParseTrackingQR provides a mock function for QRCodeService.ParseTrackingQR.
func (_m *MockQRCodeService) ParseTrackingQR(qrData string) (string, error) {
	ret := _m.Called(qrData)

	var r0 string
	if v, ok := ret.Get(0).(string); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// ParseTrackingQR sets an expectation on ParseTrackingQR.
func (_e *MockQRCodeService_Expecter) ParseTrackingQR(qrData any) *mock.Call {
	return _e.mock.On("ParseTrackingQR", qrData)
}

// NewMockQRCodeService creates a MockQRCodeService that asserts its expectations on cleanup.
func NewMockQRCodeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
