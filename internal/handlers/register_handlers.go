package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/uneural/treasury_backend/cmd/docs"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/middleware"
	"github.com/uneural/treasury_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	ingestRateLimit gin.HandlerFunc,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services, ingestRateLimit)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	ingestRateLimit gin.HandlerFunc,
) {
	// The actor middleware resolves who is acting from the X-Actor-ID
	// header; there is no authentication layer in front of it.
	v1 := r.Group("/api/v1", middleware.ActorMiddleware(cfg.DefaultActorID))

	// Delegate route registration to specific handlers, passing required services
	registerTransactionRoutes(v1, services, ingestRateLimit)
	registerBudgetRoutes(v1, services.Budget)
	registerProjectRoutes(v1, services.Project)
	registerUserRoutes(v1, services.User)
}

// registerCustomValidators wires the binding tags the DTOs rely on into
// gin's validator engine.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// txnstatus: a decision target must be a terminal status.
	_ = v.RegisterValidation("txnstatus", func(fl validator.FieldLevel) bool {
		return domain.TransactionStatus(fl.Field().String()).IsTerminal()
	})
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
