package middleware

import (
	"strings"

	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	AuthUC       usecase.AuthUsecase
}

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authUC   usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService, authUC: params.AuthUC}
}

// Authenticate validates the bearer token against the secret of role. A token
// signed for another role fails here.
func (m *AuthMiddleware) Authenticate(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domainerrors.ErrInvalidToken.WithDetails("authorization header is missing")
			}

			tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
			if tokenString == authHeader || tokenString == "" {
				return domainerrors.ErrInvalidToken.WithDetails("token must be a Bearer token")
			}

			claims, err := m.tokenSvc.ValidateToken(tokenString, role)
			if err != nil {
				return domainerrors.ErrInvalidToken
			}
			if claims.Role != role || claims.Type != service.TokenTypeAccess || claims.UserID == uuid.Nil {
				return domainerrors.ErrInvalidToken
			}

			deliverycontext.SetIdentity(c, &deliverycontext.Identity{
				UserID: claims.UserID,
				Role:   claims.Role,
				LSPID:  claims.LSPID,
			})

			return next(c)
		}
	}
}

// RequireTrader authenticates a trader token and re-loads the account so
// deactivated or rejected traders lose access immediately.
func (m *AuthMiddleware) RequireTrader(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Authenticate(entity.RoleTrader)(m.reloadAccount(entity.RoleTrader, next))
}

// RequireLSP authenticates an LSP token and re-checks the account and the
// profile verification on every request.
func (m *AuthMiddleware) RequireLSP(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Authenticate(entity.RoleLSP)(m.reloadAccount(entity.RoleLSP, next))
}

// RequireAdmin authenticates an admin token.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Authenticate(entity.RoleAdmin)(next)
}

func (m *AuthMiddleware) reloadAccount(role entity.Role, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := deliverycontext.GetIdentity(c)
		if !ok {
			return domainerrors.ErrInvalidToken
		}

		user, err := m.authUC.AuthorizeUser(c.Request().Context(), identity.UserID, role)
		if err != nil {
			return err
		}

		refreshed := &deliverycontext.Identity{
			UserID: user.ID,
			Role:   role,
			User:   user,
		}
		if role == entity.RoleLSP {
			if user.LSPProfile == nil {
				return domainerrors.ErrLSPNotFound
			}
			lspID := user.LSPProfile.ID
			refreshed.LSPID = &lspID
		}
		deliverycontext.SetIdentity(c, refreshed)

		return next(c)
	}
}

// GetUserID returns the authenticated user id.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return uuid.Nil, false
	}

	return identity.UserID, true
}

// GetLSPID returns the LSP profile id of an authenticated LSP.
func GetLSPID(c echo.Context) (uuid.UUID, bool) {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok || identity.LSPID == nil {
		return uuid.Nil, false
	}

	return *identity.LSPID, true
}

// GetRole returns the role the caller authenticated as.
func GetRole(c echo.Context) (entity.Role, bool) {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return "", false
	}

	return identity.Role, true
}
