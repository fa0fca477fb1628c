// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterTraderInput defines the data required to register a trader.
type RegisterTraderInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	CompanyName string
}

// RegisterLSPInput defines the data required to register an LSP and its company profile.
type RegisterLSPInput struct {
	Name               string
	Email              string
	Password           string
	Phone              string
	CompanyName        string
	RegistrationNumber string
	GSTNumber          string
	Address            string
	Documents          entity.ComplianceDocuments
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the access token issued at login.
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Role        entity.Role
	User        *entity.User // Nil for admin logins.
}

// AuthUsecase covers registration and login for every role.
type AuthUsecase interface {
	RegisterTrader(ctx context.Context, input *RegisterTraderInput) (*RegisterOutput, error)

	// RegisterLSP creates the user and the pending LSP profile in one transaction.
	RegisterLSP(ctx context.Context, input *RegisterLSPInput) (*RegisterOutput, error)

	LoginTrader(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// LoginLSP fails with ErrLSPNotVerified before issuing a token to unverified LSPs.
	LoginLSP(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// LoginAdmin checks the configured static credentials.
	LoginAdmin(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Me returns the account behind a token.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// AuthorizeUser re-loads an account and checks it may still act as role.
	AuthorizeUser(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error)
}
