package handler

import (
	"log/slog"

	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ComplaintHandlerParams holds dependencies for ComplaintHandler, injected by Fx.
type ComplaintHandlerParams struct {
	fx.In

	ComplaintUC usecase.ComplaintUsecase
	Logger      *slog.Logger
}

// ComplaintHandler serves complaint tickets for traders, LSPs and admins.
type ComplaintHandler struct {
	complaintUC usecase.ComplaintUsecase
	logger      *slog.Logger
}

// NewComplaintHandler is the constructor for ComplaintHandler.
func NewComplaintHandler(params ComplaintHandlerParams) *ComplaintHandler {
	return &ComplaintHandler{
		complaintUC: params.ComplaintUC,
		logger:      params.Logger,
	}
}

// FileComplaintRequest is the body of POST /api/trader/complaints.
type FileComplaintRequest struct {
	BookingID   *uuid.UUID               `json:"booking_id"`
	Subject     string                   `json:"subject" validate:"required,max=255"`
	Description string                   `json:"description" validate:"required,max=8000"`
	Priority    entity.ComplaintPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateComplaintRequest is the body of the LSP and admin update routes.
type UpdateComplaintRequest struct {
	Status     *entity.ComplaintStatus   `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority   *entity.ComplaintPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Resolution *string                   `json:"resolution" validate:"omitempty,max=8000"`
}

func (r *UpdateComplaintRequest) toInput() *usecase.UpdateComplaintInput {
	return &usecase.UpdateComplaintInput{
		Status:     r.Status,
		Priority:   r.Priority,
		Resolution: r.Resolution,
	}
}

// FileComplaint handles POST /api/trader/complaints.
func (h *ComplaintHandler) FileComplaint(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}

	var req FileComplaintRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	complaint, err := h.complaintUC.FileComplaint(c.Request().Context(), traderID, &usecase.FileComplaintInput{
		BookingID:   req.BookingID,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}

	return response.Created(c, complaint)
}

// ListTraderComplaints handles GET /api/trader/complaints.
func (h *ComplaintHandler) ListTraderComplaints(c echo.Context) error {
	traderID, err := callerUserID(c)
	if err != nil {
		return err
	}
	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	complaints, total, err := h.complaintUC.ListTraderComplaints(c.Request().Context(), traderID, page)
	if err != nil {
		return err
	}

	return response.List(c, complaints, total, page)
}

// ListLSPComplaints handles GET /api/lsp/complaints.
func (h *ComplaintHandler) ListLSPComplaints(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	filter, err := complaintFilter(c)
	if err != nil {
		return err
	}

	complaints, total, err := h.complaintUC.ListLSPComplaints(c.Request().Context(), lspID, filter)
	if err != nil {
		return err
	}

	return response.List(c, complaints, total, filter.Page)
}

// UpdateLSPComplaint handles PUT /api/lsp/complaints/:id.
func (h *ComplaintHandler) UpdateLSPComplaint(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	complaintID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateComplaintRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	complaint, err := h.complaintUC.UpdateComplaintByLSP(c.Request().Context(), lspID, complaintID, req.toInput())
	if err != nil {
		return err
	}

	return response.OK(c, complaint)
}

// ListComplaints handles GET /api/admin/complaints.
func (h *ComplaintHandler) ListComplaints(c echo.Context) error {
	filter, err := complaintFilter(c)
	if err != nil {
		return err
	}

	complaints, total, err := h.complaintUC.ListComplaints(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.List(c, complaints, total, filter.Page)
}

// UpdateComplaint handles PUT /api/admin/complaints/:id.
func (h *ComplaintHandler) UpdateComplaint(c echo.Context) error {
	complaintID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateComplaintRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	complaint, err := h.complaintUC.UpdateComplaintByAdmin(c.Request().Context(), complaintID, req.toInput())
	if err != nil {
		return err
	}

	return response.OK(c, complaint)
}

func complaintFilter(c echo.Context) (repository.ComplaintFilter, error) {
	var filter repository.ComplaintFilter
	var err error

	if filter.Page, err = pageFrom(c); err != nil {
		return filter, err
	}
	if filter.Status, err = queryStatus(c, "status", entity.ComplaintStatus.IsValid); err != nil {
		return filter, err
	}
	if filter.Priority, err = queryStatus(c, "priority", entity.ComplaintPriority.IsValid); err != nil {
		return filter, err
	}

	return filter, nil
}
