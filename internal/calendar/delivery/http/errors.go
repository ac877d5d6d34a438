package http

import (
	"errors"
	"net/http"

	"vision/internal/calendar"
	pkgErrors "vision/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, calendar.ErrNotConfigured):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, calendar.ErrInvalidDays):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "calendar import failed")
	}
}
