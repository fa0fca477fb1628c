package handler

import (
	"context"
	"log/slog"
	"time"

	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves registration and login for traders, LSPs and the admin.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterTraderRequest is the body of POST /api/auth/register.
type RegisterTraderRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Phone       string `json:"phone" validate:"max=32"`
	CompanyName string `json:"company_name" validate:"max=255"`
	// Role is accepted for older clients and must name a trader when present.
	Role string `json:"role"`
}

// RegisterLSPRequest is the body of POST /api/lsp/register. The compliance
// document URLs sit at the top level.
type RegisterLSPRequest struct {
	Name               string `json:"name" validate:"required,max=255"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
	Phone              string `json:"phone" validate:"max=32"`
	CompanyName        string `json:"company_name" validate:"required,max=255"`
	RegistrationNumber string `json:"registration_number" validate:"max=64"`
	GSTNumber          string `json:"gst_number" validate:"max=64"`
	Address            string `json:"address" validate:"max=1024"`
	entity.ComplianceDocuments
}

// LoginRequest is the body of every login route.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by every login route.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Role        entity.Role  `json:"role"`
	User        *entity.User `json:"user,omitempty"`
}

// RegisterTrader handles POST /api/auth/register.
func (h *AuthHandler) RegisterTrader(c echo.Context) error {
	var req RegisterTraderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Role != "" {
		if role, ok := entity.ParseRole(req.Role); !ok || role != entity.RoleTrader {
			return domainerrors.ErrValidationFailed.WithDetails("role must be trader")
		}
	}

	out, err := h.authUC.RegisterTrader(c.Request().Context(), &usecase.RegisterTraderInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return err
	}

	return response.Created(c, out.User)
}

// RegisterLSP handles POST /api/lsp/register.
func (h *AuthHandler) RegisterLSP(c echo.Context) error {
	var req RegisterLSPRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.RegisterLSP(c.Request().Context(), &usecase.RegisterLSPInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		Phone:              req.Phone,
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		GSTNumber:          req.GSTNumber,
		Address:            req.Address,
		Documents:          req.ComplianceDocuments,
	})
	if err != nil {
		return err
	}

	return response.Created(c, out.User)
}

// LoginTrader handles POST /api/auth/login.
func (h *AuthHandler) LoginTrader(c echo.Context) error {
	return h.login(c, h.authUC.LoginTrader)
}

// LoginLSP handles POST /api/lsp/login.
func (h *AuthHandler) LoginLSP(c echo.Context) error {
	return h.login(c, h.authUC.LoginLSP)
}

// LoginAdmin handles POST /api/admin/login.
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	return h.login(c, h.authUC.LoginAdmin)
}

type loginFunc func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error)

func (h *AuthHandler) login(c echo.Context, fn loginFunc) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	out, err := fn(c.Request().Context(), &usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	return response.OK(c, LoginResponse{
		AccessToken: out.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   out.ExpiresAt,
		Role:        out.Role,
		User:        out.User,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authUC.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.OK(c, user)
}
