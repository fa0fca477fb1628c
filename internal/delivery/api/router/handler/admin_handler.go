package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cargomatch/config"
	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC         usecase.AdminUsecase
	ContainerTypeUC usecase.ContainerTypeUsecase
	ClosureUC       usecase.BookingClosureUsecase
	Config          *config.Config
	Logger          *slog.Logger
}

// AdminHandler serves the admin console.
type AdminHandler struct {
	adminUC         usecase.AdminUsecase
	containerTypeUC usecase.ContainerTypeUsecase
	closureUC       usecase.BookingClosureUsecase
	location        *time.Location
	logger          *slog.Logger
	now             func() time.Time
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) (*AdminHandler, error) {
	tz := "UTC"
	if params.Config.Booking != nil && params.Config.Booking.TimeZone != "" {
		tz = params.Config.Booking.TimeZone
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid booking time zone %q", tz)
	}

	return &AdminHandler{
		adminUC:         params.AdminUC,
		containerTypeUC: params.ContainerTypeUC,
		closureUC:       params.ClosureUC,
		location:        location,
		logger:          params.Logger,
		now:             time.Now,
	}, nil
}

// SetUserStatusRequest is the body of PUT /api/admin/users/:id/status.
type SetUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// LSPDecisionRequest is the body of the LSP verify, approve and reject routes.
type LSPDecisionRequest struct {
	Notes           string `json:"notes" validate:"max=2000"`
	Reason          string `json:"reason" validate:"max=2000"`
	RejectionReason string `json:"rejectionReason" validate:"max=2000"`
}

// ContainerReviewRequest is the body of the container approve and reject routes.
// rejectionReason is accepted as an alias of reason.
type ContainerReviewRequest struct {
	Notes           string `json:"notes" validate:"max=2000"`
	Reason          string `json:"reason" validate:"max=2000"`
	RejectionReason string `json:"rejectionReason" validate:"max=2000"`
}

func (r *LSPDecisionRequest) reason() string {
	return firstNonBlank(r.Reason, r.RejectionReason)
}

func (r *ContainerReviewRequest) reason() string {
	return firstNonBlank(r.Reason, r.RejectionReason)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

// ContainerTypeRequest is the body of container type create and update.
type ContainerTypeRequest struct {
	Name        string  `json:"name" validate:"required,max=64"`
	SizeFeet    int     `json:"size_feet" validate:"gt=0"`
	CapacityCBM float64 `json:"capacity_cbm" validate:"gt=0"`
	MaxWeightKg float64 `json:"max_weight_kg" validate:"gt=0"`
	Description string  `json:"description" validate:"max=1024"`
}

// RunClosureRequest is the body of POST /api/admin/jobs/close-bookings. Date
// simulates the day the job runs on; empty means today.
type RunClosureRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *ContainerTypeRequest) toInput() *usecase.ContainerTypeInput {
	return &usecase.ContainerTypeInput{
		Name:        r.Name,
		SizeFeet:    r.SizeFeet,
		CapacityCBM: r.CapacityCBM,
		MaxWeightKg: r.MaxWeightKg,
		Description: r.Description,
	}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminUC.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, stats)
}

// ListUsers handles GET /api/admin/users?role=&approval_status=&is_active=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var filter repository.UserFilter
	var err error

	if filter.Page, err = pageFrom(c); err != nil {
		return err
	}
	if raw := c.QueryParam("role"); raw != "" {
		role, ok := entity.ParseRole(raw)
		if !ok || role == entity.RoleAdmin {
			return domainerrors.ErrValidationFailed.WithDetails("invalid role")
		}
		filter.Role = &role
	}
	if filter.ApprovalStatus, err = queryStatus(c, "approval_status", entity.ApprovalStatus.IsValid); err != nil {
		return err
	}
	if raw := c.QueryParam("is_active"); raw != "" {
		active, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return domainerrors.ErrValidationFailed.WithDetails("is_active must be a boolean")
		}
		filter.IsActive = &active
	}

	users, total, err := h.adminUC.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.List(c, users, total, filter.Page)
}

// SetUserStatus handles PUT /api/admin/users/:id/status.
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req SetUserStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.adminUC.SetUserActive(c.Request().Context(), userID, *req.IsActive)
	if err != nil {
		return err
	}

	return response.OK(c, user)
}

// ListLSPs handles GET /api/admin/lsps?status=.
func (h *AdminHandler) ListLSPs(c echo.Context) error {
	var filter repository.LSPFilter
	var err error

	if filter.Page, err = pageFrom(c); err != nil {
		return err
	}
	if filter.VerificationStatus, err = queryStatus(c, "status", entity.VerificationStatus.IsValid); err != nil {
		return err
	}

	profiles, total, err := h.adminUC.ListLSPs(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.List(c, profiles, total, filter.Page)
}

// GetLSP handles GET /api/admin/lsps/:id.
func (h *AdminHandler) GetLSP(c echo.Context) error {
	lspID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.adminUC.GetLSP(c.Request().Context(), lspID)
	if err != nil {
		return err
	}

	return response.OK(c, profile)
}

// ApproveLSP handles POST /api/admin/lsps/:id/approve and its verify alias.
func (h *AdminHandler) ApproveLSP(c echo.Context) error {
	return h.decideLSP(c, true)
}

// RejectLSP handles POST /api/admin/lsps/:id/reject.
func (h *AdminHandler) RejectLSP(c echo.Context) error {
	return h.decideLSP(c, false)
}

func (h *AdminHandler) decideLSP(c echo.Context, approve bool) error {
	adminID, err := callerUserID(c)
	if err != nil {
		return err
	}
	lspID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req LSPDecisionRequest
	if c.Request().ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	notes := req.Notes
	if reason := req.reason(); !approve && reason != "" {
		notes = reason
	}

	profile, err := h.adminUC.DecideLSP(c.Request().Context(), adminID, lspID, &usecase.LSPDecisionInput{
		Approve: approve,
		Notes:   notes,
	})
	if err != nil {
		return err
	}

	return response.OK(c, profile)
}

// ListContainers handles GET /api/admin/containers?status=&lsp_id=.
func (h *AdminHandler) ListContainers(c echo.Context) error {
	var filter repository.ContainerFilter
	var err error

	if filter.Page, err = pageFrom(c); err != nil {
		return err
	}
	if filter.ApprovalStatus, err = queryStatus(c, "status", entity.ContainerApprovalStatus.IsValid); err != nil {
		return err
	}
	if filter.LSPID, err = queryUUID(c, "lsp_id"); err != nil {
		return err
	}

	containers, total, err := h.adminUC.ListContainers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.List(c, containers, total, filter.Page)
}

// ApproveContainer handles POST /api/admin/containers/:id/approve.
func (h *AdminHandler) ApproveContainer(c echo.Context) error {
	return h.reviewContainer(c, true)
}

// RejectContainer handles POST /api/admin/containers/:id/reject.
func (h *AdminHandler) RejectContainer(c echo.Context) error {
	return h.reviewContainer(c, false)
}

func (h *AdminHandler) reviewContainer(c echo.Context, approve bool) error {
	adminID, err := callerUserID(c)
	if err != nil {
		return err
	}
	containerID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ContainerReviewRequest
	if c.Request().ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	container, err := h.adminUC.ReviewContainer(c.Request().Context(), adminID, containerID, &usecase.ContainerReviewInput{
		Approve: approve,
		Notes:   req.Notes,
		Reason:  req.reason(),
	})
	if err != nil {
		return err
	}

	return response.OK(c, container)
}

// ListBookings handles GET /api/admin/bookings.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	filter, err := adminBookingFilter(c)
	if err != nil {
		return err
	}

	bookings, total, err := h.adminUC.ListBookings(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.List(c, bookings, total, filter.Page)
}

// ExportBookings handles GET /api/admin/bookings/export.
func (h *AdminHandler) ExportBookings(c echo.Context) error {
	filter, err := adminBookingFilter(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	contentType, err := h.adminUC.ExportBookings(c.Request().Context(), filter, &buf)
	if err != nil {
		return err
	}

	filename := "bookings-" + h.now().In(h.location).Format("20060102") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// ListShipments handles GET /api/admin/shipments.
func (h *AdminHandler) ListShipments(c echo.Context) error {
	var filter repository.ShipmentFilter
	var err error

	if filter.Page, err = pageFrom(c); err != nil {
		return err
	}
	if filter.Status, err = queryStatus(c, "status", entity.ShipmentStatus.IsValid); err != nil {
		return err
	}
	if filter.LSPID, err = queryUUID(c, "lsp_id"); err != nil {
		return err
	}
	if filter.TraderID, err = queryUUID(c, "trader_id"); err != nil {
		return err
	}

	shipments, total, err := h.adminUC.ListShipments(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.List(c, shipments, total, filter.Page)
}

// CreateContainerType handles POST /api/admin/container-types.
func (h *AdminHandler) CreateContainerType(c echo.Context) error {
	var req ContainerTypeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	containerType, err := h.containerTypeUC.CreateContainerType(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	return response.Created(c, containerType)
}

// UpdateContainerType handles PUT /api/admin/container-types/:id.
func (h *AdminHandler) UpdateContainerType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ContainerTypeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	containerType, err := h.containerTypeUC.UpdateContainerType(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}

	return response.OK(c, containerType)
}

// DeleteContainerType handles DELETE /api/admin/container-types/:id.
func (h *AdminHandler) DeleteContainerType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.containerTypeUC.DeleteContainerType(c.Request().Context(), id); err != nil {
		return err
	}

	return response.Message(c, "Container type deleted")
}

// RunClosureJob handles POST /api/admin/jobs/close-bookings.
func (h *AdminHandler) RunClosureJob(c echo.Context) error {
	var req RunClosureRequest
	if c.Request().ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	if req.Date == "" {
		req.Date = c.QueryParam("date")
	}

	now := h.now()
	if req.Date != "" {
		day, err := time.ParseInLocation(dateLayout, req.Date, h.location)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("date must be YYYY-MM-DD")
		}
		now = day
	}

	report, err := h.closureUC.CloseBookingsBeforeDeparture(c.Request().Context(), now)
	if err != nil {
		return err
	}
	h.logger.Info("Closure job triggered manually",
		slog.String("target_date", report.TargetDate),
		slog.Int("closed", report.Closed),
		slog.Int("failed", report.Failed),
	)

	return response.OK(c, report)
}

func adminBookingFilter(c echo.Context) (repository.BookingFilter, error) {
	var filter repository.BookingFilter
	var err error

	if filter.Page, err = pageFrom(c); err != nil {
		return filter, err
	}
	if filter.Statuses, err = bookingStatuses(c.QueryParam("status")); err != nil {
		return filter, err
	}
	if filter.LSPID, err = queryUUID(c, "lsp_id"); err != nil {
		return filter, err
	}
	if filter.TraderID, err = queryUUID(c, "trader_id"); err != nil {
		return filter, err
	}
	if filter.ContainerID, err = queryUUID(c, "container_id"); err != nil {
		return filter, err
	}

	return filter, nil
}
