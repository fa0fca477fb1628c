// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"cargomatch/config"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secrets   map[entity.Role][]byte // One signing secret per role.
	accessTTL time.Duration          // Time-to-live for access tokens.
	now       func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Trader == "" || cfg.SecretKey.LSP == "" || cfg.SecretKey.Admin == "" {
		return nil, errors.New("jwt secrets must be provided for every role")
	}
	if cfg.SecretKey.Trader == cfg.SecretKey.LSP || cfg.SecretKey.Trader == cfg.SecretKey.Admin || cfg.SecretKey.LSP == cfg.SecretKey.Admin {
		return nil, errors.New("jwt secrets must differ between roles")
	}

	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secrets: map[entity.Role][]byte{
			entity.RoleTrader: []byte(cfg.SecretKey.Trader),
			entity.RoleLSP:    []byte(cfg.SecretKey.LSP),
			entity.RoleAdmin:  []byte(cfg.SecretKey.Admin),
		},
		accessTTL: ttl,
		now:       time.Now,
	}, nil
}

// GenerateAccessToken creates a signed access token for the subject acting as role.
func (s *jwtService) GenerateAccessToken(subject uuid.UUID, role entity.Role, lspID *uuid.UUID) (string, time.Time, error) {
	secret, ok := s.secrets[role]
	if !ok {
		return "", time.Time{}, errors.Errorf("no signing secret for role %q", role)
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.accessTTL)

	claims := jwt.MapClaims{
		"sub":  subject.String(), // Subject (who the token is for)
		"role": role.String(),    // Role the token authorises
		"iat":  issuedAt.Unix(),  // Issued At
		"exp":  expiresAt.Unix(), // Expiration Time
		"type": service.TokenTypeAccess,
	}
	if lspID != nil {
		claims["lsp_id"] = lspID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}

	return signed, expiresAt, nil
}

// ValidateToken parses a token with the secret of the expected role and
// returns its claims.
func (s *jwtService) ValidateToken(tokenString string, role entity.Role) (*service.Claims, error) {
	secret, ok := s.secrets[role]
	if !ok {
		return nil, errors.Errorf("no signing secret for role %q", role)
	}

	mapClaims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, mapClaims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claimsFromMap(mapClaims, role)
}

func claimsFromMap(m jwt.MapClaims, role entity.Role) (*service.Claims, error) {
	sub, err := m.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "read subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "subject is not a uuid")
	}

	tokenRole, _ := m["role"].(string)
	if entity.Role(tokenRole) != role {
		return nil, errors.Errorf("token role %q does not match %q", tokenRole, role)
	}

	tokenType, _ := m["type"].(string)
	if tokenType != service.TokenTypeAccess {
		return nil, errors.Errorf("unexpected token type %q", tokenType)
	}

	claims := &service.Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
	}
	claims.Subject = sub

	if raw, ok := m["lsp_id"].(string); ok && raw != "" {
		lspID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.Wrap(err, "lsp_id is not a uuid")
		}
		claims.LSPID = &lspID
	}
	if exp, err := m.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp
	}
	if iat, err := m.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat
	}

	return claims, nil
}
