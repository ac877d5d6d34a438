package http

import (
	"errors"
	"net/http"

	"vision/internal/sync"
	pkgErrors "vision/pkg/errors"
	"vision/pkg/visionapi"
)

// mapError reports remote failures as gateway errors; the local store is never at fault here.
func (h *handler) mapError(err error) error {
	var se *visionapi.StatusError
	switch {
	case errors.Is(err, visionapi.ErrUnauthorized):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, string(sync.StateUnauthorized))
	case errors.As(err, &se):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, se.Error())
	default:
		return pkgErrors.ErrServiceUnavailable
	}
}
