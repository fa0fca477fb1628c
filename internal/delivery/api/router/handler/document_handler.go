package handler

import (
	"log/slog"
	"net/http"

	"cargomatch/internal/delivery/api/response"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DocumentHandlerParams holds dependencies for DocumentHandler, injected by Fx.
type DocumentHandlerParams struct {
	fx.In

	DocumentUC usecase.DocumentUsecase
	Logger     *slog.Logger
}

// DocumentHandler serves document uploads.
type DocumentHandler struct {
	documentUC usecase.DocumentUsecase
	logger     *slog.Logger
}

// NewDocumentHandler is the constructor for DocumentHandler.
func NewDocumentHandler(params DocumentHandlerParams) *DocumentHandler {
	return &DocumentHandler{
		documentUC: params.DocumentUC,
		logger:     params.Logger,
	}
}

// MakePublicRequest is the body of POST /api/documents/make-public.
type MakePublicRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Upload handles POST /api/documents/upload with a multipart "file" field.
func (h *DocumentHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("multipart field 'file' is required")
	}

	file, err := header.Open()
	if err != nil {
		return domainerrors.ErrDocumentInvalid.WithDetails("uploaded file cannot be read")
	}
	defer file.Close()

	out, err := h.documentUC.Upload(c.Request().Context(), &usecase.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		return err
	}

	return response.Created(c, out)
}

// MakePublic handles POST /api/documents/make-public.
func (h *DocumentHandler) MakePublic(c echo.Context) error {
	var req MakePublicRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	url, err := h.documentUC.MakePublic(c.Request().Context(), req.URL)
	if err != nil {
		return err
	}

	return response.OK(c, map[string]string{"url": url})
}

// ServeUpload handles GET /api/files/uploads/*.
func (h *DocumentHandler) ServeUpload(c echo.Context) error {
	rc, err := h.documentUC.OpenUpload(c.Request().Context(), c.Param("*"))
	if err != nil {
		return err
	}
	defer rc.Close()

	c.Response().Header().Set("Cache-Control", "private, max-age=300")

	return c.Stream(http.StatusOK, "application/pdf", rc)
}
