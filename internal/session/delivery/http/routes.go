package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps session endpoints under /session.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	s := rg.Group("/session")
	{
		s.GET("", h.Get)
		s.POST("", h.SignIn)
		s.DELETE("", h.Logout)
		s.PATCH("/user", h.UpdateUser)
	}
}
