package http

import (
	"errors"
	"net/http"

	pkgErrors "vision/pkg/errors"
	"vision/pkg/visionapi"
)

func (h *handler) mapError(err error) error {
	var se *visionapi.StatusError
	switch {
	case errors.Is(err, visionapi.ErrUnauthorized):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "login required")
	case errors.As(err, &se):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, se.Error())
	default:
		return pkgErrors.ErrServiceUnavailable
	}
}
