package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps replication endpoints under /sync.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	s := rg.Group("/sync")
	{
		s.GET("/status", h.Status)
		s.POST("/run", h.Run)
	}
}
