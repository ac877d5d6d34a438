package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps dream planner endpoints under /dream.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	d := rg.Group("/dream")
	{
		d.GET("", h.Get)
		d.PUT("", h.Update)
		d.DELETE("", h.Clear)
		d.POST("/analyze", h.Analyze)
		d.PATCH("/steps/:id", h.UpdateStep)
		d.POST("/tasks", h.Promote)
	}
}
