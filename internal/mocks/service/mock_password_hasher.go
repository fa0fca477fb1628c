package service

import (
	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.PasswordHasher = (*MockPasswordHasher)(nil)

// MockPasswordHasher is a testify mock of domainservice.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

type MockPasswordHasher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPasswordHasher) EXPECT() *MockPasswordHasher_Expecter {
	return &MockPasswordHasher_Expecter{mock: &_m.Mock}
}

// Hash provides a mock function for PasswordHasher.Hash.
func (_m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)

	var r0 string
	if v, ok := ret.Get(0).(string); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Hash sets an expectation on Hash.
func (_e *MockPasswordHasher_Expecter) Hash(password any) *mock.Call {
	return _e.mock.On("Hash", password)
}

// Check provides a mock function for PasswordHasher.Check.
func (_m *MockPasswordHasher) Check(password string, hash string) bool {
	ret := _m.Called(password, hash)

	var r0 bool
	if v, ok := ret.Get(0).(bool); ok {
		r0 = v
	}

	return r0
}

// Check sets an expectation on Check.
func (_e *MockPasswordHasher_Expecter) Check(password any, hash any) *mock.Call {
	return _e.mock.On("Check", password, hash)
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its expectations on cleanup.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
