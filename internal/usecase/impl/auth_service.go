// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"cargomatch/config"
	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultMinPasswordLength = 8

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	admin             *config.AdminConfig
	minPasswordLength int
	logger            *slog.Logger
	now               func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	minPasswordLength := defaultMinPasswordLength
	if params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	return &authService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		admin:             params.Config.Admin,
		minPasswordLength: minPasswordLength,
		logger:            params.Logger,
		now:               utcNow,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterTrader creates an approved, active trader account.
func (srv *authService) RegisterTrader(ctx context.Context, input *usecase.RegisterTraderInput) (*usecase.RegisterOutput, error) {
	email, err := srv.validateCredentials(input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	now := srv.now()
	user := &entity.User{
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		Phone:          strings.TrimSpace(input.Phone),
		CompanyName:    strings.TrimSpace(input.CompanyName),
		PasswordHash:   hash,
		Role:           entity.RoleTrader,
		ApprovalStatus: entity.ApprovalStatusApproved,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, mapRepoError(err, userErrors, "failed to create trader")
	}

	srv.log(ctx).Info("Trader registered", slog.String("userID", user.ID.String()))

	return &usecase.RegisterOutput{User: user}, nil
}

// RegisterLSP creates the pending LSP user and its pending profile in one transaction.
func (srv *authService) RegisterLSP(ctx context.Context, input *usecase.RegisterLSPInput) (*usecase.RegisterOutput, error) {
	email, err := srv.validateCredentials(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("company name is required")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	now := srv.now()
	user := &entity.User{
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		Phone:          strings.TrimSpace(input.Phone),
		CompanyName:    strings.TrimSpace(input.CompanyName),
		PasswordHash:   hash,
		Role:           entity.RoleLSP,
		ApprovalStatus: entity.ApprovalStatusPending,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return mapRepoError(err, userErrors, "failed to create lsp user")
		}

		profile := &entity.LSPProfile{
			UserID:             user.ID,
			CompanyName:        user.CompanyName,
			RegistrationNumber: strings.TrimSpace(input.RegistrationNumber),
			GSTNumber:          strings.TrimSpace(input.GSTNumber),
			Address:            strings.TrimSpace(input.Address),
			ContactPhone:       user.Phone,
			Documents:          input.Documents,
			VerificationStatus: entity.VerificationStatusPending,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := repoFactory.LSPProfileRepo().Create(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create lsp profile")
		}
		user.LSPProfile = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register LSP", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("LSP registered, awaiting verification",
		slog.String("userID", user.ID.String()),
		slog.String("lspID", user.LSPProfile.ID.String()),
	)

	return &usecase.RegisterOutput{User: user}, nil
}

// LoginTrader authenticates a trader.
func (srv *authService) LoginTrader(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.authenticate(ctx, input, entity.RoleTrader)
	if err != nil {
		return nil, err
	}

	return srv.issue(user, nil)
}

// LoginLSP authenticates an LSP; unverified LSPs never receive a token.
func (srv *authService) LoginLSP(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.authenticate(ctx, input, entity.RoleLSP)
	if err != nil {
		return nil, err
	}

	if err := checkLSPVerified(user); err != nil {
		srv.log(ctx).Info("Rejected login of unverified LSP", slog.String("userID", user.ID.String()))

		return nil, err
	}

	return srv.issue(user, &user.LSPProfile.ID)
}

// LoginAdmin compares against the configured static credentials.
func (srv *authService) LoginAdmin(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if srv.admin == nil || srv.admin.Email == "" || srv.admin.Password == "" {
		srv.log(ctx).Warn("Admin login attempted but no admin credentials are configured")

		return nil, domainerrors.ErrInvalidCredentials
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(srv.admin.Email))) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(srv.admin.Password)) == 1
	if !emailOK || !passwordOK {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, expiresAt, err := srv.tokenService.GenerateAccessToken(AdminID(srv.admin.Email), entity.RoleAdmin, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate admin token")
	}

	return &usecase.LoginOutput{AccessToken: token, ExpiresAt: expiresAt, Role: entity.RoleAdmin}, nil
}

// Me returns the account behind a token.
func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, userErrors, "failed to find user")
	}

	return user, nil
}

// AuthorizeUser re-reads the account so revocations apply before the token expires.
func (srv *authService) AuthorizeUser(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	if user.Role != role {
		return nil, domainerrors.ErrForbidden
	}
	if err := checkAccountUsable(user); err != nil {
		return nil, err
	}
	if role == entity.RoleLSP {
		if err := checkLSPVerified(user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// AdminID derives the stable subject of admin tokens from the configured email.
func AdminID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("cargomatch:admin:"+strings.ToLower(email)))
}

func (srv *authService) validateCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return "", domainerrors.ErrValidationFailed.WithDetails("invalid email address")
	}
	if len(password) < srv.minPasswordLength {
		return "", domainerrors.ErrValidationFailed.WithDetails("password is too short")
	}

	return email, nil
}

// authenticate checks credentials for role. Unknown emails, role mismatches and
// wrong passwords all return ErrInvalidCredentials.
func (srv *authService) authenticate(ctx context.Context, input *usecase.LoginInput, role entity.Role) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if user.Role != role || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Debug("Login rejected", slog.String("role", role.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := checkAccountUsable(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *authService) issue(user *entity.User, lspID *uuid.UUID) (*usecase.LoginOutput, error) {
	token, expiresAt, err := srv.tokenService.GenerateAccessToken(user.ID, user.Role, lspID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.LoginOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Role:        user.Role,
		User:        user,
	}, nil
}

func checkAccountUsable(user *entity.User) error {
	if !user.IsActive {
		return domainerrors.ErrAccountInactive
	}
	if user.ApprovalStatus == entity.ApprovalStatusRejected {
		return domainerrors.ErrAccountRejected
	}

	return nil
}

func checkLSPVerified(user *entity.User) error {
	if user.LSPProfile == nil || !user.LSPProfile.IsVerified {
		return domainerrors.ErrLSPNotVerified
	}

	return nil
}
