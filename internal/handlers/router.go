package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rowjay/link-batch-shortener/internal/database"
	"github.com/rowjay/link-batch-shortener/internal/metrics"
	"github.com/rowjay/link-batch-shortener/internal/middleware"
	"github.com/rowjay/link-batch-shortener/internal/services"
)

type RouterOptions struct {
	Service            services.LinkService
	Store              database.KeyValueStore
	Metrics            *metrics.Metrics
	BaseURL            string
	CORSAllowedOrigins []string
}

func NewRouter(opts RouterOptions) *gin.Engine {
	linkHandler := NewLinkHandler(opts.Service, opts.BaseURL)
	healthHandler := NewHealthHandler(opts.Store)

	r := gin.New()
	r.SetHTMLTemplate(loadTemplates())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/", linkHandler.Home)
	r.GET("/stats", linkHandler.StatsPage)
	r.GET("/r/:shortcode", linkHandler.Redirect)

	api := r.Group("/api/v1")
	{
		api.POST("/shorten", linkHandler.CreateLinks)
		api.GET("/links", linkHandler.ListLinks)
		api.DELETE("/links", linkHandler.ClearLinks)
		api.GET("/resolve/:shortcode", linkHandler.ResolveJSON)
	}

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	return r
}
