package handler

import (
	"log/slog"
	"strconv"

	"cargomatch/internal/delivery/api/response"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NotificationHandler serves a user's notification inbox.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		uc:     params.NotificationUC,
		logger: params.Logger,
	}
}

// ListNotifications handles GET .../notifications?unread=true.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}
	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	unreadOnly := false
	if raw := c.QueryParam("unread"); raw != "" {
		if unreadOnly, err = strconv.ParseBool(raw); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("unread must be a boolean")
		}
	}

	inbox, err := h.uc.ListNotifications(c.Request().Context(), userID, unreadOnly, page)
	if err != nil {
		return err
	}

	return response.OK(c, inbox)
}

// MarkRead handles PUT .../notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}
	notificationID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return err
	}

	return response.Message(c, "Notification marked as read")
}

// MarkAllRead handles PUT .../notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := callerUserID(c)
	if err != nil {
		return err
	}

	updated, err := h.uc.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.OK(c, map[string]int64{"updated": updated})
}
