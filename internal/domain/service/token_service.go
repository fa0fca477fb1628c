package service

import (
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeAccess is the only token type issued.
const TokenTypeAccess = "access"

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
	LSPID  *uuid.UUID // Set on LSP tokens.
	Type   string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// Every role signs with its own secret, so a token minted for one role never
// validates for another.
type TokenService interface {
	// GenerateAccessToken creates an access token for the subject acting as role.
	GenerateAccessToken(subject uuid.UUID, role entity.Role, lspID *uuid.UUID) (token string, expiresAt time.Time, err error)

	// ValidateToken checks a token against the secret of the expected role.
	ValidateToken(tokenString string, role entity.Role) (*Claims, error)
}
