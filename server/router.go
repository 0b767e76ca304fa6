package server

import (
	"html/template"
	"time"

	httpHandler "rating-dashboard/interfaces/http"
	"rating-dashboard/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Dashboard httpHandler.IDashboardHandler
	Rating    httpHandler.IRatingHandler
	Widget    httpHandler.IWidgetHandler
	Health    httpHandler.IHealthHandler
}

func InitiateRouter(handlers Handlers, templates *template.Template, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
	}
	router.Use(cors.New(corsConfig))

	if templates != nil {
		router.SetHTMLTemplate(templates)
	}

	router.GET("/healthz", handlers.Health.Healthz)

	// Admin dashboard. Item ids are opaque and may contain "/", so they
	// travel as the itemId query parameter like on the rating API.
	router.GET("/", handlers.Dashboard.Page)
	router.POST("/refresh", handlers.Dashboard.Refresh)
	router.GET("/items", handlers.Dashboard.OpenDetail)
	router.POST("/items/close", handlers.Dashboard.CloseDetail)

	api := router.Group("api")
	{
		dashboard := api.Group("/dashboard")
		dashboard.GET("", handlers.Dashboard.State)
		dashboard.POST("/refresh", handlers.Dashboard.RefreshJSON)
		dashboard.GET("/items", handlers.Dashboard.DetailJSON)
		dashboard.DELETE("/items", handlers.Dashboard.CloseDetailJSON)

		// Data Service passthrough
		api.GET("/getAllRatings", handlers.Rating.GetAllRatings)
		api.GET("/getRating", handlers.Rating.GetRating)
	}

	// Embeddable widget
	router.GET("/rating-widget.js", handlers.Widget.Script)
	router.GET("/rating-widget.js.map", handlers.Widget.SourceMap)
	router.GET("/widget", handlers.Widget.View)
	router.GET("/widget/html", handlers.Widget.Fragment)

	return router
}
