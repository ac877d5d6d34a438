package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "vision/pkg/errors"
	"vision/pkg/response"
)

// Get godoc
// @Summary     Get preferences
// @Tags        Preferences
// @Produce     json
// @Success     200 {object} settingsResp
// @Router      /api/v1/preferences [GET]
func (h *handler) Get(c *gin.Context) {
	response.OK(c, h.newSettingsResp(h.uc.Get(c.Request.Context())))
}

// Update godoc
// @Summary     Update preferences
// @Description Absent fields keep their current value.
// @Tags        Preferences
// @Accept      json
// @Produce     json
// @Param       body body updateReq true "Fields to update"
// @Success     200 {object} settingsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/preferences [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), nil)
		return
	}

	s, err := h.uc.Update(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSettingsResp(s))
}

// Reset godoc
// @Summary     Reset preferences to defaults
// @Tags        Preferences
// @Produce     json
// @Success     200 {object} settingsResp
// @Router      /api/v1/preferences [DELETE]
func (h *handler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := h.uc.Reset(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Reset: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSettingsResp(s))
}
