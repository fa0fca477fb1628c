package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"cargomatch/config"
	mockRepo "cargomatch/internal/mocks/repository"
)

var fixedNow = time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			AccessTokenTTL:    time.Hour,
			MinPasswordLength: 8,
		},
		Admin: &config.AdminConfig{
			Email:    "admin@cargomatch.test",
			Password: "admin-secret",
		},
		Booking: &config.BookingConfig{
			ClosureCron:     "0 6 * * *",
			TimeZone:        "UTC",
			ClosureLeadDays: 1,
			ClosureEnabled:  true,
			ClosureLockTTL:  10 * time.Minute,
		},
		Storage: &config.StorageConfig{
			Folder:        "cargomatch",
			SignedURLTTL:  time.Hour,
			MaxUploadSize: 1 << 20,
		},
	}
}

func newTestRepos(t *testing.T) (*mockRepo.MockRepositoryFactory, *mockRepo.MockTransactionManager) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)

	return factory, mockRepo.NewMockTransactionManager(factory)
}

func fixedClock() time.Time {
	return fixedNow
}
