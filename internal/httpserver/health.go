package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	pkgErrors "vision/pkg/errors"
	"vision/pkg/response"
)

const (
	HealthMessage = "Vision local agent"
	HealthVersion = "1.0.0"
	ServiceName   = "vision"

	readyTimeout = 2 * time.Second
)

// Pinger is the store handle /ready checks. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthCheck godoc
// @Summary     Health Check
// @Description Service identity and whether a user is signed in on this device.
// @Tags        Health
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	st := srv.sessionUC.Current(c.Request.Context())
	response.OK(c, gin.H{
		"status":        "healthy",
		"message":       HealthMessage,
		"version":       HealthVersion,
		"service":       ServiceName,
		"authenticated": st.Authenticated,
	})
}

// readyCheck godoc
// @Summary     Readiness Check
// @Description Pings the local store and reports replication state.
// @Tags        Health
// @Produce     json
// @Success     200 {object} response.Resp
// @Failure     503 {object} response.Resp "Local store unavailable"
// @Router      /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	data := gin.H{
		"service": ServiceName,
		"version": HealthVersion,
		"store":   "ok",
	}

	if srv.store != nil {
		if err := srv.store.PingContext(ctx); err != nil {
			srv.l.Errorf(ctx, "httpserver.readyCheck: store ping: %v", err)
			data["status"] = "not ready"
			data["store"] = "unavailable"
			response.Error(c, pkgErrors.ErrServiceUnavailable, data)
			return
		}
	}

	if srv.replicator != nil {
		if st, err := srv.replicator.Status(ctx); err == nil {
			data["replication"] = string(st.State)
			data["pending"] = st.Pending
		} else {
			srv.l.Warnf(ctx, "httpserver.readyCheck: replication status: %v", err)
		}
	}

	data["status"] = "ready"
	response.OK(c, data)
}

// liveCheck godoc
// @Summary     Liveness Check
// @Tags        Health
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": ServiceName,
		"version": HealthVersion,
	})
}
