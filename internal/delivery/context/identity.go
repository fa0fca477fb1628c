package context

import (
	"context"

	"cargomatch/internal/domain/constants"
	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// KeyIdentity is the key for storing the authenticated caller in context.
const KeyIdentity ContextKey = "identity"

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID uuid.UUID
	Role   entity.Role
	LSPID  *uuid.UUID // Set for LSP callers.
	User   *entity.User
}

// SetIdentity stores the caller on the echo context and on the request context
// so use cases can read it too.
func SetIdentity(c echo.Context, identity *Identity) {
	c.Set(string(KeyIdentity), identity)
	c.Set(constants.ContextKeyUserID, identity.UserID)
	c.Set(constants.ContextKeyRole, identity.Role)
	if identity.LSPID != nil {
		c.Set(constants.ContextKeyLSPID, *identity.LSPID)
	}

	c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), identity)))
}

// GetIdentity returns the caller set by the authentication middleware.
func GetIdentity(c echo.Context) (*Identity, bool) {
	identity, ok := c.Get(string(KeyIdentity)).(*Identity)

	return identity, ok && identity != nil
}

// WithIdentity returns a new context with the caller.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, identity)
}

// IdentityFromContext returns the caller stored on a standard context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(KeyIdentity).(*Identity)

	return identity, ok && identity != nil
}
