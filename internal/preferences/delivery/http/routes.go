package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps preference endpoints under /preferences.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	p := rg.Group("/preferences")
	{
		p.GET("", h.Get)
		p.PUT("", h.Update)
		p.DELETE("", h.Reset)
	}
}
