package service

import (
	"context"
	"io"
	"time"

	domainservice "cargomatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var _ domainservice.DocumentStorage = (*MockDocumentStorage)(nil)

// MockDocumentStorage is a testify mock of domainservice.DocumentStorage.
type MockDocumentStorage struct {
	mock.Mock
}

type MockDocumentStorage_Expecter struct {
	mock *mock.Mock
}

func (_m *MockDocumentStorage) EXPECT() *MockDocumentStorage_Expecter {
	return &MockDocumentStorage_Expecter{mock: &_m.Mock}
}

// Put provides a mock function for DocumentStorage.Put.
func (_m *MockDocumentStorage) Put(ctx context.Context, key string, r io.Reader, contentType string) (*domainservice.StoredObject, error) {
	ret := _m.Called(ctx, key, r, contentType)

	var r0 *domainservice.StoredObject
	if v, ok := ret.Get(0).(*domainservice.StoredObject); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Put sets an expectation on Put.
func (_e *MockDocumentStorage_Expecter) Put(ctx any, key any, r any, contentType any) *mock.Call {
	return _e.mock.On("Put", ctx, key, r, contentType)
}

// Open provides a mock function for DocumentStorage.Open.
func (_m *MockDocumentStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, key)

	var r0 io.ReadCloser
	if v, ok := ret.Get(0).(io.ReadCloser); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Open sets an expectation on Open.
func (_e *MockDocumentStorage_Expecter) Open(ctx any, key any) *mock.Call {
	return _e.mock.On("Open", ctx, key)
}

// Delete provides a mock function for DocumentStorage.Delete.
func (_m *MockDocumentStorage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	return ret.Error(0)
}

// Delete sets an expectation on Delete.
func (_e *MockDocumentStorage_Expecter) Delete(ctx any, key any) *mock.Call {
	return _e.mock.On("Delete", ctx, key)
}

// Exists provides a mock function for DocumentStorage.Exists.
func (_m *MockDocumentStorage) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)

	var r0 bool
	if v, ok := ret.Get(0).(bool); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Exists sets an expectation on Exists.
func (_e *MockDocumentStorage_Expecter) Exists(ctx any, key any) *mock.Call {
	return _e.mock.On("Exists", ctx, key)
}

// URL provides a mock function for DocumentStorage.URL.
func (_m *MockDocumentStorage) URL(key string) string {
	ret := _m.Called(key)

	var r0 string
	if v, ok := ret.Get(0).(string); ok {
		r0 = v
	}

	return r0
}

// URL sets an expectation on URL.
func (_e *MockDocumentStorage_Expecter) URL(key any) *mock.Call {
	return _e.mock.On("URL", key)
}

// PublicURL provides a mock function for DocumentStorage.PublicURL.
func (_m *MockDocumentStorage) PublicURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	ret := _m.Called(ctx, key, ttl)

	var r0 string
	if v, ok := ret.Get(0).(string); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// PublicURL sets an expectation on PublicURL.
func (_e *MockDocumentStorage_Expecter) PublicURL(ctx any, key any, ttl any) *mock.Call {
	return _e.mock.On("PublicURL", ctx, key, ttl)
}

// Close provides a mock function for DocumentStorage.Close.
func (_m *MockDocumentStorage) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

// Close sets an expectation on Close.
func (_e *MockDocumentStorage_Expecter) Close() *mock.Call {
	return _e.mock.On("Close")
}

// NewMockDocumentStorage creates a MockDocumentStorage that asserts its expectations on cleanup.
func NewMockDocumentStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDocumentStorage {
	m := &MockDocumentStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
