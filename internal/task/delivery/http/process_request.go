package http

import (
	pkgErrors "vision/pkg/errors"

	"github.com/gin-gonic/gin"
)

func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	return req, nil
}

func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	return req, nil
}

// processUpdateReq binds the partial update body plus the URI id.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errIDRequired
	}
	return req, nil
}

func (h *handler) processReorderReq(c *gin.Context) (reorderReq, error) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	return req, nil
}

func (h *handler) processIDParam(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", errIDRequired
	}
	return id, nil
}
