package handler

import (
	"log/slog"
	"net/http"
	"time"

	"cargomatch/internal/delivery/api/response"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ContainerHandlerParams holds dependencies for ContainerHandler, injected by Fx.
type ContainerHandlerParams struct {
	fx.In

	ContainerUC usecase.ContainerUsecase
	Logger      *slog.Logger
}

// ContainerHandler serves LSP container listings and trader search.
type ContainerHandler struct {
	containerUC usecase.ContainerUsecase
	logger      *slog.Logger
}

// NewContainerHandler is the constructor for ContainerHandler.
func NewContainerHandler(params ContainerHandlerParams) *ContainerHandler {
	return &ContainerHandler{
		containerUC: params.ContainerUC,
		logger:      params.Logger,
	}
}

// ContainerRequest is the body of container create and update.
type ContainerRequest struct {
	ContainerTypeID     uuid.UUID       `json:"container_type_id" validate:"required"`
	ContainerNumber     string          `json:"container_number" validate:"required,max=32"`
	Origin              string          `json:"origin" validate:"required,max=255"`
	Destination         string          `json:"destination" validate:"required,max=255"`
	DepartureDate       time.Time       `json:"departure_date" validate:"required"`
	ArrivalDate         time.Time       `json:"arrival_date" validate:"required"`
	CapacityCBM         float64         `json:"capacity_cbm" validate:"gt=0"`
	PricePerCBM         decimal.Decimal `json:"price_per_cbm"`
	Currency            string          `json:"currency" validate:"omitempty,len=3"`
	AutoApproveBookings bool            `json:"auto_approve_bookings"`
}

func (r *ContainerRequest) toInput() (*usecase.ContainerInput, error) {
	if !r.PricePerCBM.IsPositive() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price_per_cbm must be greater than 0")
	}

	return &usecase.ContainerInput{
		ContainerTypeID:     r.ContainerTypeID,
		ContainerNumber:     r.ContainerNumber,
		Origin:              r.Origin,
		Destination:         r.Destination,
		DepartureDate:       r.DepartureDate,
		ArrivalDate:         r.ArrivalDate,
		CapacityCBM:         r.CapacityCBM,
		PricePerCBM:         r.PricePerCBM,
		Currency:            r.Currency,
		AutoApproveBookings: r.AutoApproveBookings,
	}, nil
}

// CreateContainer handles POST /api/lsp/containers.
func (h *ContainerHandler) CreateContainer(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}

	var req ContainerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	container, err := h.containerUC.CreateContainer(c.Request().Context(), lspID, input)
	if err != nil {
		return err
	}

	return response.Created(c, container)
}

// ListContainers handles GET /api/lsp/containers.
func (h *ContainerHandler) ListContainers(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	containers, total, err := h.containerUC.ListContainers(c.Request().Context(), lspID, page)
	if err != nil {
		return err
	}

	return response.List(c, containers, total, page)
}

// GetContainer handles GET /api/lsp/containers/:id.
func (h *ContainerHandler) GetContainer(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	containerID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	container, err := h.containerUC.GetContainer(c.Request().Context(), lspID, containerID)
	if err != nil {
		return err
	}

	return response.OK(c, container)
}

// UpdateContainer handles PUT /api/lsp/containers/:id.
func (h *ContainerHandler) UpdateContainer(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	containerID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ContainerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	container, err := h.containerUC.UpdateContainer(c.Request().Context(), lspID, containerID, input)
	if err != nil {
		return err
	}

	return response.OK(c, container)
}

// DeleteContainer handles DELETE /api/lsp/containers/:id.
func (h *ContainerHandler) DeleteContainer(c echo.Context) error {
	lspID, err := callerLSPID(c)
	if err != nil {
		return err
	}
	containerID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.containerUC.DeleteContainer(c.Request().Context(), lspID, containerID); err != nil {
		return err
	}

	return response.Message(c, "Container deleted")
}

// SearchContainers handles GET /api/trader/containers/search.
func (h *ContainerHandler) SearchContainers(c echo.Context) error {
	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	input := &usecase.ContainerSearchInput{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Page:        page,
	}
	if input.DepartureFrom, err = queryDate(c, "departure_from"); err != nil {
		return err
	}
	if input.DepartureTo, err = queryDate(c, "departure_to"); err != nil {
		return err
	}
	if input.ContainerTypeID, err = queryUUID(c, "container_type_id"); err != nil {
		return err
	}
	if err := echo.QueryParamsBinder(c).Float64("min_capacity", &input.MinCapacityCBM).BindError(); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("min_capacity must be a number")
	}

	containers, err := h.containerUC.SearchContainers(c.Request().Context(), input)
	if err != nil {
		return err
	}
	if containers == nil {
		containers = []*entity.Container{}
	}

	return response.Success(c, http.StatusOK, containers)
}

// ListContainerTypes handles GET /api/trader/container-types and GET /api/admin/container-types.
func (h *ContainerHandler) ListContainerTypes(c echo.Context) error {
	types, err := h.containerUC.ListContainerTypes(c.Request().Context())
	if err != nil {
		return err
	}
	if types == nil {
		types = []*entity.ContainerType{}
	}

	return response.OK(c, types)
}
