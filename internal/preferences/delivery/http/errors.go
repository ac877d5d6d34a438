package http

import (
	"errors"
	"net/http"

	"vision/internal/preferences"
	pkgErrors "vision/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, preferences.ErrInvalidTheme),
		errors.Is(err, preferences.ErrInvalidLocale),
		errors.Is(err, preferences.ErrInvalidHourlyRate):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
