package repository

import (
	"context"

	domainrepository "cargomatch/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

var _ domainrepository.RepositoryFactory = (*MockRepositoryFactory)(nil)

// MockRepositoryFactory hands out the same mock repositories inside and
// outside a transaction, so expectations set once cover both paths.
type MockRepositoryFactory struct {
	Users          *MockUserRepository
	LSPProfiles    *MockLSPProfileRepository
	ContainerTypes *MockContainerTypeRepository
	Containers     *MockContainerRepository
	Bookings       *MockBookingRepository
	Shipments      *MockShipmentRepository
	Complaints     *MockComplaintRepository
	Notifications  *MockNotificationRepository
}

// NewMockRepositoryFactory creates a factory with a fresh mock per repository.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	return &MockRepositoryFactory{
		Users:          NewMockUserRepository(t),
		LSPProfiles:    NewMockLSPProfileRepository(t),
		ContainerTypes: NewMockContainerTypeRepository(t),
		Containers:     NewMockContainerRepository(t),
		Bookings:       NewMockBookingRepository(t),
		Shipments:      NewMockShipmentRepository(t),
		Complaints:     NewMockComplaintRepository(t),
		Notifications:  NewMockNotificationRepository(t),
	}
}

func (f *MockRepositoryFactory) UserRepo() domainrepository.UserRepository { return f.Users }

func (f *MockRepositoryFactory) LSPProfileRepo() domainrepository.LSPProfileRepository {
	return f.LSPProfiles
}

func (f *MockRepositoryFactory) ContainerTypeRepo() domainrepository.ContainerTypeRepository {
	return f.ContainerTypes
}

func (f *MockRepositoryFactory) ContainerRepo() domainrepository.ContainerRepository {
	return f.Containers
}

func (f *MockRepositoryFactory) BookingRepo() domainrepository.BookingRepository { return f.Bookings }

func (f *MockRepositoryFactory) ShipmentRepo() domainrepository.ShipmentRepository {
	return f.Shipments
}

func (f *MockRepositoryFactory) ComplaintRepo() domainrepository.ComplaintRepository {
	return f.Complaints
}

func (f *MockRepositoryFactory) NotificationRepo() domainrepository.NotificationRepository {
	return f.Notifications
}

var _ domainrepository.TransactionManager = (*MockTransactionManager)(nil)

// MockTransactionManager runs fn directly against Factory.
// Err, when set, is returned instead of running fn.
type MockTransactionManager struct {
	Factory *MockRepositoryFactory
	Err     error
	Calls   int
}

// NewMockTransactionManager wraps a factory.
func NewMockTransactionManager(factory *MockRepositoryFactory) *MockTransactionManager {
	return &MockTransactionManager{Factory: factory}
}

// Execute calls fn with the mock factory.
func (m *MockTransactionManager) Execute(_ context.Context, fn func(domainrepository.RepositoryFactory) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}
