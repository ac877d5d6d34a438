package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps statistics endpoints under /insights.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	g := rg.Group("/insights")
	{
		g.GET("/skills", h.Skills)
		g.GET("/stats/weekly", h.Weekly)
		g.GET("/stats/monthly", h.Monthly)
		g.GET("/loss", h.Loss)
	}
}
