package handler

import (
	"log/slog"

	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
	Logger   *slog.Logger
}

// DeviceHandler holds dependencies for device-related handlers
type DeviceHandler struct {
	deviceUC usecase.DeviceUsecase
	logger   *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		deviceUC: params.DeviceUC,
		logger:   params.Logger,
	}
}

// RegisterDeviceRequest represents the request body for registering a device
type RegisterDeviceRequest struct {
	FCMToken string `json:"fcm_token" validate:"required,max=4096"`
	DeviceID string `json:"device_id" validate:"required,max=255"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

// UpdateFCMTokenRequest represents the request body for updating FCM token
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required,max=4096"`
}

// RegisterDevice handles POST .../devices for traders and LSPs.
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}

	var req RegisterDeviceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	device, err := h.deviceUC.RegisterDevice(c.Request().Context(), userID, &usecase.DeviceInfo{
		FCMToken: req.FCMToken,
		DeviceID: req.DeviceID,
		Platform: req.Platform,
	})
	if err != nil {
		return err
	}

	return response.Created(c, device)
}

// GetUserDevices handles GET .../devices.
func (h *DeviceHandler) GetUserDevices(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}

	devices, err := h.deviceUC.GetUserDevices(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if devices == nil {
		devices = []*entity.UserDevice{}
	}

	return response.OK(c, devices)
}

// UpdateFCMToken handles PUT .../devices/:id/token.
func (h *DeviceHandler) UpdateFCMToken(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}
	deviceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateFCMTokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.deviceUC.UpdateFCMToken(c.Request().Context(), userID, deviceID, req.FCMToken); err != nil {
		return err
	}

	return response.Message(c, "FCM token updated successfully")
}

// DeactivateDevice handles DELETE .../devices/:id.
func (h *DeviceHandler) DeactivateDevice(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}
	deviceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.deviceUC.DeactivateDevice(c.Request().Context(), userID, deviceID); err != nil {
		return err
	}

	return response.Message(c, "Device deactivated successfully")
}
