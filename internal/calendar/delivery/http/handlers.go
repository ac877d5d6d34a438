package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "vision/pkg/errors"
	"vision/pkg/response"
)

// Import godoc
// @Summary     Import upcoming calendar events as tasks
// @Description Each event becomes a task with source calendar. Importing twice does not duplicate tasks.
// @Tags        Integrations
// @Accept      json
// @Produce     json
// @Param       body body importReq false "Calendar and window in days"
// @Success     200 {object} importResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Calendar API error"
// @Failure     503 {object} response.Resp "Calendar not configured"
// @Router      /api/v1/integrations/calendar/import [POST]
func (h *handler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	var req importReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), nil)
			return
		}
	}

	out, err := h.uc.Import(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Import: %v", err)
		response.Error(c, h.mapError(err), map[string]interface{}{"result": h.newImportResp(out)})
		return
	}

	response.OK(c, h.newImportResp(out))
}
