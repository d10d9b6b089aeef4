package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/handlers"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/middleware"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/response"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/config"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/logger"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Health       database.HealthChecker
	Cache        handlers.CachePinger
	Locations    handlers.LocationService
	Houses       house.Repository
	Environments house.EnvironmentRepository
	Comparer     handlers.Comparer
}

// Router holds all dependencies for API routing
type Router struct {
	engine          *gin.Engine
	config          *config.Config
	healthHandler   *handlers.HealthHandler
	locationHandler *handlers.LocationHandler
	searchHandler   *handlers.SearchHandler
	itemHandler     *handlers.ItemHandler
	dssHandler      *handlers.DSSHandler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, deps Dependencies, version string) *Router {
	gin.SetMode(cfg.Server.Mode)

	router := &Router{
		engine:          gin.New(),
		config:          cfg,
		healthHandler:   handlers.NewHealthHandler(deps.Health, deps.Cache, version),
		locationHandler: handlers.NewLocationHandler(deps.Locations),
		searchHandler:   handlers.NewSearchHandler(deps.Houses),
		itemHandler:     handlers.NewItemHandler(deps.Houses, deps.Environments),
		dssHandler:      handlers.NewDSSHandler(deps.Comparer),
	}

	router.setupMiddlewares()
	router.setupRoutes()

	return router
}

// setupMiddlewares configures all global middlewares
func (r *Router) setupMiddlewares() {
	r.engine.Use(middleware.RequestID())

	// Logging wraps Recovery so recovered panics are still access-logged with their 500
	loggingCfg := middleware.LoggingConfig{
		SkipPaths: []string{"/health", "/health/ready"},
	}
	if r.config.Logging.FileEnabled {
		accessLogger := logger.NewAccessLogger(
			r.config.Logging.FilePath,
			r.config.Logging.RotationSize,
			r.config.Logging.RetentionDays,
		)
		loggingCfg.AccessLogger = &accessLogger
	}
	r.engine.Use(middleware.Logging(loggingCfg))
	r.engine.Use(middleware.Recovery())

	r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig(r.config.Server.AllowedOrigins)))
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Health checks (no /api prefix)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Ready)

	api := r.engine.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: r.config.Server.RateLimitRPS,
		Burst:             r.config.Server.RateLimitBurst,
	}, response.TooManyRequests))
	{
		api.GET("/health/detailed", r.healthHandler.Detailed)

		locations := api.Group("/locations")
		{
			locations.GET("/provinces", r.locationHandler.Provinces)
			locations.GET("/districts", r.locationHandler.Districts)
			locations.GET("/wards", r.locationHandler.Wards)
		}

		api.GET("/search/house-rent", r.searchHandler.Search)

		items := api.Group("/item")
		{
			items.GET("/house-types", r.itemHandler.HouseTypes)
			items.GET("/environments", r.itemHandler.Environments)
		}

		api.POST("/dss/compare", r.dssHandler.Compare)
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
