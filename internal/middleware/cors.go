package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS lets the UI origin call the local API. Unknown origins get no CORS headers,
// which makes the browser refuse the response.
func (mw Middleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && mw.originAllowed(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (mw Middleware) originAllowed(origin string) bool {
	if mw.allowAll {
		return true
	}
	_, ok := mw.allowedOrigins[origin]
	return ok
}
