package http

import (
	"errors"
	"net/http"

	"vision/internal/session"
	pkgErrors "vision/pkg/errors"
	"vision/pkg/visionapi"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, visionapi.ErrUnauthorized):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, session.ErrNotAuthenticated):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, session.ErrMissingCreds), errors.Is(err, session.ErrMissingToken):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNoAuthAPI):
		return pkgErrors.ErrServiceUnavailable
	default:
		var se *visionapi.StatusError
		if errors.As(err, &se) {
			return pkgErrors.NewHTTPError(http.StatusBadGateway, se.Error())
		}
		return pkgErrors.ErrInternalServerError
	}
}
