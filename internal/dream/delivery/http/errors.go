package http

import (
	"errors"
	"net/http"

	"vision/internal/dream"
	pkgErrors "vision/pkg/errors"
)

var errInvalidStepID = pkgErrors.NewHTTPError(http.StatusBadRequest, "step id must be a number")

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, dream.ErrEmptyDream),
		errors.Is(err, dream.ErrInvalidStepStatus),
		errors.Is(err, dream.ErrNoSteps):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, dream.ErrStepNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, dream.ErrAnalyzing):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, dream.ErrAnalysisFailed):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
