package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps calendar endpoints under /integrations/calendar.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	cal := rg.Group("/integrations/calendar")
	{
		cal.POST("/import", h.Import)
	}
}
