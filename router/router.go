// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/workbench/controller"
	"github.com/dev-mohitbeniwal/workbench/metrics"
	"github.com/dev-mohitbeniwal/workbench/middleware"
)

type Options struct {
	Metrics           *metrics.Metrics
	Limiter           middleware.Limiter
	RateLimitRequests int
	RateLimitDuration time.Duration
}

// SetupRouter mounts the API under /api/v1. Rate limiting applies to the API
// only, never to /healthz or /metrics.
func SetupRouter(controllers *controller.Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(opts.Metrics))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	api := router.Group("/api/v1")
	if opts.Limiter != nil && opts.RateLimitRequests > 0 {
		api.Use(middleware.RateLimiter(opts.Limiter, opts.RateLimitRequests, opts.RateLimitDuration))
	}

	controllers.Panel.RegisterRoutes(api)
	controllers.Resource.RegisterRoutes(api)
	controllers.Notification.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)

	return router
}
