// Package server assembles the gin engine from feature handlers.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/shared/config"
	"cvmatch-backend/internal/shared/metrics"
	"cvmatch-backend/internal/shared/server/middleware"
)

// RouteRegistrar is implemented by feature handlers that attach routes to
// the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Deps carries everything the router needs.
type Deps struct {
	Config     config.Config
	Handlers   []RouteRegistrar
	GoogleAuth RouteRegistrar
}

// NewRouter builds the HTTP engine with the full middleware chain and all
// registered feature routes.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))
	r.Use(middleware.Auth())

	r.GET("/metrics", gin.WrapF(metrics.Handler()))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	for _, h := range deps.Handlers {
		h.RegisterRoutes(api)
	}
	return r
}
