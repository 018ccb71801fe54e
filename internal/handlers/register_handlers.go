package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/finbooks-io/finbooks/cmd/docs"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/middleware"
	"github.com/finbooks-io/finbooks/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting services via
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServicesProvider,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// registerValidators wires custom binding validators into gin's validator
// engine.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("referencekind", func(fl validator.FieldLevel) bool {
		return domain.ReferenceKind(fl.Field().String()).IsValid()
	})
}

// setupAPIV1Routes configures the /api/v1 group. Every resource is nested
// under a tenant, and the auth middleware guards the whole group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServicesProvider,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	tenant := v1.Group("/tenants/:tenantID")
	{
		registerAccountRoutes(tenant, services.AccountSvc)
		registerCurrencyRoutes(tenant, services.CurrencySvc)
		registerExchangeRateRoutes(tenant, services.ExchangeRateSvc)
		registerFiscalRoutes(tenant, services.FiscalSvc)
		RegisterJournalRoutes(tenant, services.JournalSvc)
		registerReportingRoutes(tenant, services.ReportingSvc)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
