package http

import (
	"github.com/gin-gonic/gin"

	"vision/pkg/response"
)

// Skills godoc
// @Summary     Skill tree
// @Tags        Insights
// @Produce     json
// @Success     200 {object} response.Resp
// @Failure     401 {object} response.Resp "Login required"
// @Failure     502 {object} response.Resp "Remote API error"
// @Router      /api/v1/insights/skills [GET]
func (h *handler) Skills(c *gin.Context) {
	ctx := c.Request.Context()
	skills, err := h.uc.Skills(ctx)
	if err != nil {
		h.l.Warnf(ctx, "insights.Skills: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, skills)
}

// Weekly godoc
// @Summary     Last seven days of tasks and hours
// @Tags        Insights
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/insights/stats/weekly [GET]
func (h *handler) Weekly(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.uc.WeeklyStats(ctx)
	if err != nil {
		h.l.Warnf(ctx, "insights.WeeklyStats: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, st)
}

// Monthly godoc
// @Summary     Completed tasks per week and skill distribution
// @Tags        Insights
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/insights/stats/monthly [GET]
func (h *handler) Monthly(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.uc.MonthlyStats(ctx)
	if err != nil {
		h.l.Warnf(ctx, "insights.MonthlyStats: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, st)
}

// Loss godoc
// @Summary     Idle time and hourly rate
// @Tags        Insights
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/insights/loss [GET]
func (h *handler) Loss(c *gin.Context) {
	ctx := c.Request.Context()
	loss, err := h.uc.LossData(ctx)
	if err != nil {
		h.l.Warnf(ctx, "insights.LossData: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, loss)
}
