// Package server assembles the HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/geo-directory/backend/internal/activities"
	"github.com/geo-directory/backend/internal/auth"
	"github.com/geo-directory/backend/internal/buildings"
	"github.com/geo-directory/backend/internal/middleware"
	"github.com/geo-directory/backend/internal/organizations"
	"github.com/geo-directory/backend/pkg/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router wires into routes.
type Deps struct {
	Activities    *activities.Handler
	Buildings     *buildings.Handler
	Organizations *organizations.Handler
	Auth          *auth.Authenticator
	DB            Pinger
	CORSOrigins   string
	Logger        *zap.Logger
}

// NewRouter builds the gin engine. Everything under /api/v1 requires an API key or bearer token;
// /health and /metrics are open.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.Metrics())

	router.GET("/health", health(d.DB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.APIKey(d.Auth))
	{
		api.GET("/activities", d.Activities.List)
		api.GET("/activities/tree", d.Activities.Tree)

		api.GET("/buildings", d.Buildings.List)
		api.GET("/buildings/:building_id/organizations", d.Buildings.Organizations)

		api.GET("/organizations", d.Organizations.Search)
		api.GET("/organizations/by-activity/:activity_id", d.Organizations.ByActivity)
		api.GET("/organizations/geo", d.Organizations.Geo)
		api.GET("/organizations/:org_id", d.Organizations.Card)
	}
	return router
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, response.Body{Success: false, Error: "database unavailable", Code: "UNAVAILABLE"})
				return
			}
		}
		response.OK(c, gin.H{"status": "ok"})
	}
}
