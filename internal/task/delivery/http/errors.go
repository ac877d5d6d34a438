package http

import (
	"errors"
	"net/http"

	"vision/internal/task"
	pkgErrors "vision/pkg/errors"
)

var errIDRequired = pkgErrors.NewHTTPError(http.StatusBadRequest, "id is required")

// mapError translates task use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrTaskDeleted):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, task.ErrTaskNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidSource),
		errors.Is(err, task.ErrEmptyReorder),
		errors.Is(err, task.ErrDuplicateOrder):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
