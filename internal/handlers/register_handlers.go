package handlers

import (
	"github.com/erpcore/sales_settlement_app/cmd/docs"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/middleware"
	"github.com/erpcore/sales_settlement_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// The acting user comes from the X-User-ID header; audit fields fall back
	// to "system" when it is absent.
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware(), newV1RateLimit(cfg))

	// Delegate route registration to specific handlers, passing required services
	RegisterInvoiceRoutes(v1, services.Invoice)
	registerStockRoutes(v1, services.Stock)
	registerRegistryRoutes(v1, services.Registry)
	registerCatalogRoutes(v1, services.Item, services.Branch)
}

// newV1RateLimit builds the per-IP rate limit middleware for the v1 group.
func newV1RateLimit(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		// Fall back to the default when the configured value is unparseable.
		rate, _ = limiter.NewRateFromFormatted(config.DefaultRateLimit)
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
