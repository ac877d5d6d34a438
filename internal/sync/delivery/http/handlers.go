package http

import (
	"github.com/gin-gonic/gin"

	"vision/pkg/response"
)

// Status godoc
// @Summary     Replication status
// @Description Current replication state, last activity times, checkpoint and pending change count.
// @Tags        Sync
// @Produce     json
// @Success     200 {object} statusResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sync/status [GET]
func (h *handler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := h.r.Status(ctx)
	if err != nil {
		h.l.Errorf(ctx, "replicator.Status: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, h.newStatusResp(st))
}

// Run godoc
// @Summary     Run a replication cycle now
// @Description Pushes pending local changes, then pulls remote changes.
// @Tags        Sync
// @Produce     json
// @Success     200 {object} runResp
// @Failure     401 {object} response.Resp "Session expired"
// @Failure     502 {object} response.Resp "Remote API error"
// @Failure     503 {object} response.Resp "Remote API unreachable"
// @Router      /api/v1/sync/run [POST]
func (h *handler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	res, err := h.r.RunOnce(ctx)
	if err != nil {
		h.l.Warnf(ctx, "replicator.RunOnce: %v", err)
		response.Error(c, h.mapError(err), map[string]interface{}{"result": h.newRunResp(res)})
		return
	}

	response.OK(c, h.newRunResp(res))
}
