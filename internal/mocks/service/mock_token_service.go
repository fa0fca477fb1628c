package service

import (
	"time"

	"cargomatch/internal/domain/entity"
	domainservice "cargomatch/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainservice.TokenService = (*MockTokenService)(nil)

// MockTokenService is a testify mock of domainservice.TokenService.
type MockTokenService struct {
	mock.Mock
}

type MockTokenService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTokenService) EXPECT() *MockTokenService_Expecter {
	return &MockTokenService_Expecter{mock: &_m.Mock}
}

// GenerateAccessToken provides a mock function for TokenService.GenerateAccessToken.
func (_m *MockTokenService) GenerateAccessToken(subject uuid.UUID, role entity.Role, lspID *uuid.UUID) (string, time.Time, error) {
	ret := _m.Called(subject, role, lspID)

	var r0 string
	if v, ok := ret.Get(0).(string); ok {
		r0 = v
	}

	var r1 time.Time
	if v, ok := ret.Get(1).(time.Time); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// GenerateAccessToken sets an expectation on GenerateAccessToken.
func (_e *MockTokenService_Expecter) GenerateAccessToken(subject any, role any, lspID any) *mock.Call {
	return _e.mock.On("GenerateAccessToken", subject, role, lspID)
}

// ValidateToken provides a mock function for TokenService.ValidateToken.
func (_m *MockTokenService) ValidateToken(tokenString string, role entity.Role) (*domainservice.Claims, error) {
	ret := _m.Called(tokenString, role)

	var r0 *domainservice.Claims
	if v, ok := ret.Get(0).(*domainservice.Claims); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// ValidateToken sets an expectation on ValidateToken.
func (_e *MockTokenService_Expecter) ValidateToken(tokenString any, role any) *mock.Call {
	return _e.mock.On("ValidateToken", tokenString, role)
}

// NewMockTokenService creates a MockTokenService that asserts its expectations on cleanup.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
