package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vision/internal/dream"
	pkgErrors "vision/pkg/errors"
	"vision/pkg/response"
)

// Get godoc
// @Summary     Get the dream plan
// @Tags        Dream
// @Produce     json
// @Success     200 {object} stateResp
// @Router      /api/v1/dream [GET]
func (h *handler) Get(c *gin.Context) {
	response.OK(c, h.newStateResp(h.uc.Get(c.Request.Context())))
}

// Update godoc
// @Summary     Set the dream text or target duration
// @Tags        Dream
// @Accept      json
// @Produce     json
// @Param       body body updateReq true "Fields to update"
// @Success     200 {object} stateResp
// @Router      /api/v1/dream [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), nil)
		return
	}

	st, err := h.uc.Update(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newStateResp(st))
}

// Clear godoc
// @Summary     Clear the dream and its steps
// @Tags        Dream
// @Produce     json
// @Success     200 {object} stateResp
// @Router      /api/v1/dream [DELETE]
func (h *handler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := h.uc.Clear(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Clear: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newStateResp(st))
}

// Analyze godoc
// @Summary     Break the dream into steps
// @Description Asks the remote assistant for a roadmap. The first step is marked active.
// @Tags        Dream
// @Produce     json
// @Success     200 {object} stateResp
// @Failure     400 {object} response.Resp "Dream is empty"
// @Failure     409 {object} response.Resp "Analysis already running"
// @Failure     502 {object} response.Resp "Assistant failed"
// @Router      /api/v1/dream/analyze [POST]
func (h *handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := h.uc.Analyze(ctx)
	if err != nil {
		h.l.Warnf(ctx, "uc.Analyze: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newStateResp(st))
}

// UpdateStep godoc
// @Summary     Set a step's status
// @Tags        Dream
// @Accept      json
// @Produce     json
// @Param       id   path int           true "Step ID"
// @Param       body body stepStatusReq true "New status"
// @Success     200 {object} stateResp
// @Failure     404 {object} response.Resp "Step not found"
// @Router      /api/v1/dream/steps/{id} [PATCH]
func (h *handler) UpdateStep(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, errInvalidStepID, nil)
		return
	}
	var req stepStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), nil)
		return
	}

	st, err := h.uc.UpdateStepStatus(ctx, id, dream.StepStatus(req.Status))
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newStateResp(st))
}

// Promote godoc
// @Summary     Add steps to the task list
// @Description Creates one task per step with source dream. Promoting a step twice returns the existing task.
// @Tags        Dream
// @Accept      json
// @Produce     json
// @Param       body body promoteReq false "Steps to promote; empty promotes every open step"
// @Success     200 {object} promoteResp
// @Router      /api/v1/dream/tasks [POST]
func (h *handler) Promote(c *gin.Context) {
	ctx := c.Request.Context()

	var req promoteReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), nil)
			return
		}
	}

	out, err := h.uc.PromoteSteps(ctx, dream.PromoteInput{StepIDs: req.StepIDs})
	if err != nil {
		h.l.Warnf(ctx, "uc.PromoteSteps: %v", err)
		response.Error(c, h.mapError(err), map[string]interface{}{"result": h.newPromoteResp(out)})
		return
	}

	response.OK(c, h.newPromoteResp(out))
}
