package handler

import (
	"log/slog"
	"strings"

	"cargomatch/internal/delivery/api/middleware"
	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookingHandlerParams holds dependencies for BookingHandler, injected by Fx.
type BookingHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	Logger    *slog.Logger
}

// BookingHandler serves the booking routes of traders, LSPs and admins.
type BookingHandler struct {
	bookingUC usecase.BookingUsecase
	logger    *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler.
func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		bookingUC: params.BookingUC,
		logger:    params.Logger,
	}
}

// CreateBookingRequest is the body of POST /api/trader/bookings.
type CreateBookingRequest struct {
	ContainerID  uuid.UUID            `json:"container_id" validate:"required"`
	CargoDetails *entity.CargoDetails `json:"cargo_details" validate:"required"`
	VolumeCBM    float64              `json:"volume_cbm" validate:"gt=0"`
	WeightKg     float64              `json:"weight_kg" validate:"gte=0"`
	Notes        string               `json:"notes" validate:"max=4000"`
	Documents    []entity.DocumentRef `json:"documents" validate:"max=20"`
}

// ApproveBookingRequest is the optional body of the approve route.
type ApproveBookingRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// RejectBookingRequest is the body of the reject route. A blank reason is
// rejected by the use case.
type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

// CreateBooking handles POST /api/trader/bookings.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.CreateBooking(c.Request().Context(), traderID, &usecase.CreateBookingInput{
		ContainerID:  req.ContainerID,
		CargoDetails: *req.CargoDetails,
		VolumeCBM:    req.VolumeCBM,
		WeightKg:     req.WeightKg,
		Notes:        req.Notes,
		Documents:    req.Documents,
	})
	if err != nil {
		return err
	}

	return response.Created(c, booking)
}

// ListTraderBookings handles GET /api/trader/bookings.
func (h *BookingHandler) ListTraderBookings(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}
	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	bookings, total, err := h.bookingUC.ListTraderBookings(c.Request().Context(), traderID, page)
	if err != nil {
		return err
	}

	return response.List(c, bookings, total, page)
}

// GetTraderBooking handles GET /api/trader/bookings/:id.
func (h *BookingHandler) GetTraderBooking(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.GetTraderBooking(c.Request().Context(), traderID, bookingID)
	if err != nil {
		return err
	}

	return response.OK(c, booking)
}

// CancelBooking handles POST /api/trader/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.CancelBooking(c.Request().Context(), traderID, bookingID)
	if err != nil {
		return err
	}

	return response.OK(c, booking)
}

// ListLSPBookings handles GET /api/lsp/bookings?status=pending,approved.
func (h *BookingHandler) ListLSPBookings(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	page, err := pageFrom(c)
	if err != nil {
		return err
	}
	statuses, err := bookingStatuses(c.QueryParam("status"))
	if err != nil {
		return err
	}

	bookings, total, err := h.bookingUC.ListLSPBookings(c.Request().Context(), lspID, statuses, page)
	if err != nil {
		return err
	}

	return response.List(c, bookings, total, page)
}

// GetLSPBooking handles GET /api/lsp/bookings/:id.
func (h *BookingHandler) GetLSPBooking(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.GetLSPBooking(c.Request().Context(), lspID, bookingID)
	if err != nil {
		return err
	}

	return response.OK(c, booking)
}

// ApproveBooking handles POST /api/lsp/bookings/:id/approve.
func (h *BookingHandler) ApproveBooking(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ApproveBookingRequest
	if c.Request().ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	booking, err := h.bookingUC.ApproveBooking(c.Request().Context(), lspID, bookingID, req.Notes)
	if err != nil {
		return err
	}

	return response.OK(c, booking)
}

// RejectBooking handles POST /api/lsp/bookings/:id/reject.
func (h *BookingHandler) RejectBooking(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req RejectBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.RejectBooking(c.Request().Context(), lspID, bookingID, req.Reason)
	if err != nil {
		return err
	}

	return response.OK(c, booking)
}

// CloseBooking handles POST /api/lsp/bookings/:id/close and POST /api/admin/bookings/:id/close.
func (h *BookingHandler) CloseBooking(c echo.Context) error {
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	role, ok := middleware.GetRole(c)
	if !ok {
		return domainerrors.ErrInvalidToken
	}

	actor := usecase.Actor{Role: role}
	switch role {
	case entity.RoleLSP:
		lspID, err := callerLSPID(c)
		if err != nil {
			return err
		}
		actor.LSPID = &lspID
		actor.UserID, _ = middleware.GetUserID(c)
	case entity.RoleAdmin:
	default:
		return domainerrors.ErrForbidden
	}

	booking, err := h.bookingUC.CloseBooking(c.Request().Context(), actor, bookingID)
	if err != nil {
		return err
	}

	return response.OK(c, booking)
}

// bookingStatuses parses a comma separated status filter.
func bookingStatuses(raw string) ([]entity.BookingStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]entity.BookingStatus, 0, len(parts))
	for _, part := range parts {
		status := entity.BookingStatus(strings.ToLower(strings.TrimSpace(part)))
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("invalid booking status " + part)
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
