// Package handler contains the echo handlers of the REST API.
package handler

import (
	"strings"
	"time"

	"cargomatch/internal/delivery/api/middleware"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// bind decodes the request and runs its validate tags.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}

// pathUUID parses a path parameter as a UUID.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return id, nil
}

// pageFrom reads limit and offset from the query string.
func pageFrom(c echo.Context) (repository.Page, error) {
	var page repository.Page
	if err := echo.QueryParamsBinder(c).
		Int("limit", &page.Limit).
		Int("offset", &page.Offset).
		BindError(); err != nil {
		return page, domainerrors.ErrValidationFailed.WithDetails("limit and offset must be integers")
	}

	return page.Normalize(), nil
}

// queryDate parses an optional date query parameter given as YYYY-MM-DD or RFC 3339.
func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()

			return &t, nil
		}
	}

	return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a date (YYYY-MM-DD)")
}

// queryUUID parses an optional UUID query parameter.
func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return &id, nil
}

// queryStatus parses an optional enum query parameter with its IsValid check.
func queryStatus[T ~string](c echo.Context, name string, valid func(T) bool) (*T, error) {
	raw := strings.ToLower(strings.TrimSpace(c.QueryParam(name)))
	if raw == "" {
		return nil, nil
	}

	value := T(raw)
	if !valid(value) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return &value, nil
}

// callerUserID returns the authenticated user id.
func callerUserID(c echo.Context) (uuid.UUID, error) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrInvalidToken
	}

	return id, nil
}

// callerLSPID returns the LSP profile id of the authenticated LSP.
func callerLSPID(c echo.Context) (uuid.UUID, error) {
	id, ok := middleware.GetLSPID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrInvalidToken
	}

	return id, nil
}
