package repository

import (
	"context"
	"testing"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDeviceRepositoryThroughInterface(t *testing.T) {
	userID := uuid.New()
	devices := []*entity.UserDevice{{ID: uuid.New(), UserID: userID, FCMToken: "tok", IsActive: true}}

	m := NewMockDeviceRepository(t)
	m.EXPECT().FindActiveDevicesByUser(context.Background(), userID).Return(devices, nil)

	var repo domainrepository.DeviceRepository = m
	got, err := repo.FindActiveDevicesByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, devices, got)
}

func TestMockTransactionManagerRunsAgainstFactory(t *testing.T) {
	factory := NewMockRepositoryFactory(t)
	var txManager domainrepository.TransactionManager = NewMockTransactionManager(factory)

	var seen domainrepository.RepositoryFactory
	err := txManager.Execute(context.Background(), func(repos domainrepository.RepositoryFactory) error {
		seen = repos

		return nil
	})

	require.NoError(t, err)
	assert.Same(t, factory, seen)
}
