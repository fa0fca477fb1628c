package auth

import (
	"testing"
	"time"

	"cargomatch/config"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{AccessTokenTTL: time.Hour}}
	cfg.SecretKey.Trader = "test_trader_secret_key_very_long_for_testing"
	cfg.SecretKey.LSP = "test_lsp_secret_key_very_long_for_testing"
	cfg.SecretKey.Admin = "test_admin_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	userID := uuid.New()
	lspID := uuid.New()

	token, expiresAt, err := tokens.GenerateAccessToken(userID, entity.RoleLSP, &lspID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tokens.ValidateToken(token, entity.RoleLSP)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleLSP, claims.Role)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	require.NotNil(t, claims.LSPID)
	assert.Equal(t, lspID, *claims.LSPID)
}

func TestJWTService_TokenOfOneRoleRejectedByAnother(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	token, _, err := tokens.GenerateAccessToken(uuid.New(), entity.RoleTrader, nil)
	require.NoError(t, err)

	for _, role := range []entity.Role{entity.RoleLSP, entity.RoleAdmin} {
		t.Run(role.String(), func(t *testing.T) {
			claims, err := tokens.ValidateToken(token, role)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	impl := svc.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := impl.GenerateAccessToken(uuid.New(), entity.RoleTrader, nil)
	require.NoError(t, err)

	impl.now = time.Now
	claims, err := impl.ValidateToken(token, entity.RoleTrader)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	claims, err := tokens.ValidateToken("clearly-not-a-jwt-token-format", entity.RoleTrader)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_SecretValidation(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		cfg := newTestJWTConfig()
		cfg.SecretKey.Admin = ""

		tokens, err := NewJWTService(cfg)
		assert.Error(t, err)
		assert.Nil(t, tokens)
	})

	t.Run("shared secret", func(t *testing.T) {
		cfg := newTestJWTConfig()
		cfg.SecretKey.LSP = cfg.SecretKey.Trader

		tokens, err := NewJWTService(cfg)
		assert.Error(t, err)
		assert.Nil(t, tokens)
	})
}
