package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId":     "",
			"rabbitmqUrl": "",
		},
		"secretKey": map[string]any{
			"trader": "",
			"lsp":    "",
		},
		"booking": map[string]any{
			"closureCron": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "PUBSUB_RABBITMQURL", want: "pubsub.rabbitmqUrl"},
		{envKey: "SECRETKEY_TRADER", want: "secretKey.trader"},
		{envKey: "BOOKING_CLOSURECRON", want: "booking.closureCron"},
		{envKey: "ADMIN_EMAIL", want: "admin.email"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultClosureCron, cfg.Booking.ClosureCron)
	assert.Equal(t, "UTC", cfg.Booking.TimeZone)
	assert.Equal(t, 1, cfg.Booking.ClosureLeadDays)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultMinPasswordLength, cfg.Auth.MinPasswordLength)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadSize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.NotNil(t, cfg.Redis)
	assert.NotNil(t, cfg.PubSub)
	assert.NotNil(t, cfg.RateLimit)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte("booking:\n  closureCron: \"0 6 * * *\"\n  closureLockTTL: 5m\nadmin:\n  email: a@example.com\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yamlBody, 0o600))

	t.Setenv("BOOKING_CLOSURECRON", "30 5 * * *")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	cfg, err := LoadWithEnv[Config]("test", rel)
	require.NoError(t, err)
	require.NotNil(t, cfg.Booking)
	require.NotNil(t, cfg.Admin)

	assert.Equal(t, "30 5 * * *", cfg.Booking.ClosureCron)
	assert.Equal(t, 5*time.Minute, cfg.Booking.ClosureLockTTL)
	assert.Equal(t, "ops@example.com", cfg.Admin.Email)
}
