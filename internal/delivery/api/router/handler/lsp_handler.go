package handler

import (
	"log/slog"

	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LSPHandlerParams holds dependencies for LSPHandler, injected by Fx.
type LSPHandlerParams struct {
	fx.In

	LSPUC  usecase.LSPUsecase
	Logger *slog.Logger
}

// LSPHandler serves the LSP's own company profile.
type LSPHandler struct {
	lspUC  usecase.LSPUsecase
	logger *slog.Logger
}

// NewLSPHandler is the constructor for LSPHandler.
func NewLSPHandler(params LSPHandlerParams) *LSPHandler {
	return &LSPHandler{
		lspUC:  params.LSPUC,
		logger: params.Logger,
	}
}

// UpdateLSPProfileRequest is the body of PUT /api/lsp/profile. Omitted fields keep their value.
type UpdateLSPProfileRequest struct {
	CompanyName        string `json:"company_name" validate:"max=255"`
	RegistrationNumber string `json:"registration_number" validate:"max=64"`
	GSTNumber          string `json:"gst_number" validate:"max=64"`
	Address            string `json:"address" validate:"max=1024"`
	ContactPhone       string `json:"contact_phone" validate:"max=32"`
	entity.ComplianceDocuments
}

// GetProfile handles GET /api/lsp/profile.
func (h *LSPHandler) GetProfile(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}

	profile, err := h.lspUC.GetProfile(c.Request().Context(), lspID)
	if err != nil {
		return err
	}

	return response.OK(c, profile)
}

// UpdateProfile handles PUT /api/lsp/profile.
func (h *LSPHandler) UpdateProfile(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}

	var req UpdateLSPProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.lspUC.UpdateProfile(c.Request().Context(), lspID, &usecase.UpdateLSPProfileInput{
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		GSTNumber:          req.GSTNumber,
		Address:            req.Address,
		ContactPhone:       req.ContactPhone,
		Documents:          req.ComplianceDocuments,
	})
	if err != nil {
		return err
	}

	return response.OK(c, profile)
}
