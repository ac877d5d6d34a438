package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "vision/pkg/errors"
	"vision/pkg/response"
)

// Get godoc
// @Summary     Current session
// @Tags        Session
// @Produce     json
// @Success     200 {object} stateResp
// @Router      /api/v1/session [GET]
func (h *handler) Get(c *gin.Context) {
	response.OK(c, h.newStateResp(h.uc.Current(c.Request.Context())))
}

// SignIn godoc
// @Summary     Sign in
// @Description Exchanges credentials with the remote API and stores the token locally.
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       body body signInReq true "Credentials"
// @Success     200 {object} stateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Invalid credentials"
// @Router      /api/v1/session [POST]
func (h *handler) SignIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), nil)
		return
	}

	if _, err := h.uc.SignIn(ctx, req.toInput()); err != nil {
		h.l.Warnf(ctx, "uc.SignIn: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newStateResp(h.uc.Current(ctx)))
}

// Logout godoc
// @Summary     Sign out
// @Tags        Session
// @Produce     json
// @Success     200 {object} stateResp
// @Router      /api/v1/session [DELETE]
func (h *handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Logout(ctx); err != nil {
		h.l.Errorf(ctx, "uc.Logout: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newStateResp(h.uc.Current(ctx)))
}

// UpdateUser godoc
// @Summary     Update the signed-in user's profile
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       body body updateUserReq true "Fields to update"
// @Success     200 {object} userResp
// @Failure     401 {object} response.Resp "Not signed in"
// @Router      /api/v1/session/user [PATCH]
func (h *handler) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), nil)
		return
	}

	user, err := h.uc.UpdateUser(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newUserResp(user))
}
