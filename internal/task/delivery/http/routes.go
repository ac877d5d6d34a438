package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps HTTP verbs and paths to handler methods under /tasks.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.List)
		tasks.POST("", h.Create)
		tasks.PUT("/order", h.Reorder)
		tasks.GET("/stream", h.Stream)
		tasks.GET("/:id", h.Detail)
		tasks.PATCH("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/start", h.Start)
		tasks.POST("/:id/complete", h.Complete)
	}
}
