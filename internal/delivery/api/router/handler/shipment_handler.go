package handler

import (
	"log/slog"
	"net/http"
	"time"

	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ShipmentHandlerParams holds dependencies for ShipmentHandler, injected by Fx.
type ShipmentHandlerParams struct {
	fx.In

	ShipmentUC usecase.ShipmentUsecase
	Logger     *slog.Logger
}

// ShipmentHandler serves shipment creation, status updates and tracking.
type ShipmentHandler struct {
	shipmentUC usecase.ShipmentUsecase
	logger     *slog.Logger
}

// NewShipmentHandler is the constructor for ShipmentHandler.
func NewShipmentHandler(params ShipmentHandlerParams) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentUC: params.ShipmentUC,
		logger:     params.Logger,
	}
}

// CreateShipmentRequest is the body of POST /api/lsp/shipments.
type CreateShipmentRequest struct {
	BookingID        uuid.UUID  `json:"booking_id" validate:"required"`
	CurrentLocation  string     `json:"current_location" validate:"max=255"`
	EstimatedArrival *time.Time `json:"estimated_arrival"`
}

// UpdateShipmentStatusRequest is the body of PUT /api/lsp/shipments/:id/status.
type UpdateShipmentStatusRequest struct {
	Status   entity.ShipmentStatus `json:"status" validate:"required,oneof=scheduled in_transit delivered closed"`
	Location string                `json:"location" validate:"max=255"`
	Notes    string                `json:"notes" validate:"max=2000"`
}

// TrackingResponse is a shipment with its status history.
type TrackingResponse struct {
	Shipment *entity.Shipment                `json:"shipment"`
	History  []*entity.ShipmentStatusHistory `json:"history"`
}

// CreateShipment handles POST /api/lsp/shipments.
func (h *ShipmentHandler) CreateShipment(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}

	var req CreateShipmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shipment, err := h.shipmentUC.CreateShipment(c.Request().Context(), lspID, &usecase.CreateShipmentInput{
		BookingID:        req.BookingID,
		CurrentLocation:  req.CurrentLocation,
		EstimatedArrival: req.EstimatedArrival,
	})
	if err != nil {
		return err
	}

	return response.Created(c, shipment)
}

// ListLSPShipments handles GET /api/lsp/shipments.
func (h *ShipmentHandler) ListLSPShipments(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	page, err := pageFrom(c)
	if err != nil {
		return err
	}
	status, err := queryStatus(c, "status", entity.ShipmentStatus.IsValid)
	if err != nil {
		return err
	}

	shipments, total, err := h.shipmentUC.ListLSPShipments(c.Request().Context(), lspID, status, page)
	if err != nil {
		return err
	}

	return response.List(c, shipments, total, page)
}

// UpdateShipmentStatus handles PUT /api/lsp/shipments/:id/status.
func (h *ShipmentHandler) UpdateShipmentStatus(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	shipmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateShipmentStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shipment, err := h.shipmentUC.UpdateShipmentStatus(c.Request().Context(), lspID, shipmentID, &usecase.UpdateShipmentStatusInput{
		Status:   req.Status,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}

	return response.OK(c, shipment)
}

// GetShipmentHistory handles GET /api/lsp/shipments/:id/history.
func (h *ShipmentHandler) GetShipmentHistory(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	shipmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	history, err := h.shipmentUC.GetShipmentHistory(c.Request().Context(), lspID, shipmentID)
	if err != nil {
		return err
	}
	if history == nil {
		history = []*entity.ShipmentStatusHistory{}
	}

	return response.OK(c, history)
}

// TrackShipment handles GET /api/trader/shipments/:trackingNumber.
func (h *ShipmentHandler) TrackShipment(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}

	shipment, history, err := h.shipmentUC.TrackShipment(c.Request().Context(), traderID, c.Param("trackingNumber"))
	if err != nil {
		return err
	}
	if history == nil {
		history = []*entity.ShipmentStatusHistory{}
	}

	return response.OK(c, TrackingResponse{Shipment: shipment, History: history})
}

// TrackingQRCode handles GET /api/trader/shipments/:trackingNumber/qr.
func (h *ShipmentHandler) TrackingQRCode(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}

	png, err := h.shipmentUC.TrackingQRCode(c.Request().Context(), traderID, c.Param("trackingNumber"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")

	return c.Blob(http.StatusOK, "image/png", png)
}
