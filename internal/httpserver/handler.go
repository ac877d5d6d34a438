package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	calendarHTTP "vision/internal/calendar/delivery/http"
	dreamHTTP "vision/internal/dream/delivery/http"
	insightsHTTP "vision/internal/insights/delivery/http"
	"vision/internal/middleware"
	prefsHTTP "vision/internal/preferences/delivery/http"
	sessionHTTP "vision/internal/session/delivery/http"
	syncHTTP "vision/internal/sync/delivery/http"
	taskHTTP "vision/internal/task/delivery/http"
	"vision/internal/webhook"
)

func (srv HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, middleware.Config{
		AllowedOrigins: srv.allowedOrigins,
		RequestsPerMin: srv.requestsPerMin,
	})

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.Logger())
	srv.gin.Use(mw.CORS())
	srv.gin.Use(mw.Metrics())
	srv.gin.Use(mw.RateLimit())

	ctx := context.Background()
	if srv.environment == environmentProduction {
		srv.l.Infof(ctx, "CORS mode: production, origins %v", srv.allowedOrigins)
	} else {
		srv.l.Infof(ctx, "CORS mode: %s, origins %v", srv.environment, srv.allowedOrigins)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	taskHTTP.RegisterRoutes(api, taskHTTP.New(srv.l, srv.taskUC, srv.streamer, srv.allowedOrigins))
	sessionHTTP.RegisterRoutes(api, sessionHTTP.New(srv.l, srv.sessionUC))
	prefsHTTP.RegisterRoutes(api, prefsHTTP.New(srv.l, srv.prefsUC))
	dreamHTTP.RegisterRoutes(api, dreamHTTP.New(srv.l, srv.dreamUC))

	if srv.replicator != nil {
		syncHTTP.RegisterRoutes(api, syncHTTP.New(srv.l, srv.replicator))
	} else {
		srv.l.Infof(ctx, "Replication disabled, skipping sync routes")
	}

	if srv.insightsUC != nil {
		insightsHTTP.RegisterRoutes(api, insightsHTTP.New(srv.l, srv.insightsUC))
	}

	if srv.calendarUC != nil {
		calendarHTTP.RegisterRoutes(api, calendarHTTP.New(srv.l, srv.calendarUC))
	} else {
		srv.l.Infof(ctx, "Calendar not configured, skipping import route")
	}

	if srv.github != nil && srv.githubSec.Secret != "" {
		webhook.RegisterRoutes(api, webhook.NewHandler(srv.github, srv.githubSec, srv.l))
		srv.l.Infof(ctx, "GitHub webhook route registered at POST /api/v1/integrations/github/webhook")
	} else {
		srv.l.Infof(ctx, "GitHub webhook secret not configured, skipping webhook route")
	}

	return nil
}
